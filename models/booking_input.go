package models

// ReservationInput is the payload for creating a reservation or probing
// availability.
type ReservationInput struct {
	WorkspaceID string `json:"workspaceId" binding:"required"`
	StartDate   string `json:"startDate" binding:"required"`
	EndDate     string `json:"endDate" binding:"required"`
	StartTime   *int   `json:"startTime,omitempty"`
	EndTime     *int   `json:"endTime,omitempty"`
	Guests      int    `json:"guests" binding:"required"`
}

// RescheduleInput carries the replacement range for an existing reservation.
// Version is the version the caller last read; a stale version is rejected.
type RescheduleInput struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	StartTime *int   `json:"startTime,omitempty"`
	EndTime   *int   `json:"endTime,omitempty"`
	Version   int64  `json:"version"`
}

// CancelInput carries the cancellation reason and expected version.
type CancelInput struct {
	Reason  string `json:"reason"`
	Version int64  `json:"version"`
}

// ReservationFilter narrows reservation listings. Zero values mean "no filter"
// for that field. Dates are "2006-01-02" strings bounding the reservation's
// start date.
type ReservationFilter struct {
	UserID      string   `json:"userId,omitempty" form:"userId"`
	WorkspaceID string   `json:"workspaceId,omitempty" form:"workspaceId"`
	Statuses    []string `json:"statuses,omitempty" form:"status"`
	FromDate    string   `json:"fromDate,omitempty" form:"fromDate"`
	ToDate      string   `json:"toDate,omitempty" form:"toDate"`
}

// WorkspaceFilter narrows workspace listings.
type WorkspaceFilter struct {
	Location    string   `json:"location,omitempty" form:"location"`
	Tags        []string `json:"tags,omitempty" form:"tag"`
	MinCapacity int      `json:"minCapacity,omitempty" form:"minCapacity"`
}
