package models

import "time"

// Reservation lifecycle statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Reservation represents a booking of a workspace over a date range. Cancelled
// reservations are never deleted; cancellation is a status change so the audit
// trail survives.
type Reservation struct {
	ID          string `bson:"id" json:"id"`
	WorkspaceID string `bson:"workspace_id" json:"workspace_id"`
	UserID      string `bson:"user_id" json:"user_id"`

	// Closed date interval in "2006-01-02" form. StartDate == EndDate for a
	// single-day reservation.
	StartDate string `bson:"start_date" json:"start_date"`
	EndDate   string `bson:"end_date" json:"end_date"`

	// Optional time-of-day window, minutes from midnight. Required when the
	// workspace is priced per hour; nil for whole-day reservations.
	StartTime *int `bson:"start_time,omitempty" json:"start_time,omitempty"`
	EndTime   *int `bson:"end_time,omitempty" json:"end_time,omitempty"`

	Guests       int    `bson:"guests" json:"guests"`
	Status       string `bson:"status" json:"status"`
	CancelReason string `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	// Version guards every status or range mutation. Writers must present the
	// version they read; a stale version loses the write.
	Version int64 `bson:"version" json:"version"`
}

// Active reports whether the reservation still blocks its date range.
func (r *Reservation) Active() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// Terminal reports whether the reservation has reached a final status.
func (r *Reservation) Terminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}

// Timed reports whether the reservation carries a time-of-day window.
func (r *Reservation) Timed() bool {
	return r.StartTime != nil && r.EndTime != nil
}
