package models

// WorkspaceInput is the payload for creating or updating a workspace listing.
type WorkspaceInput struct {
	Title     string   `json:"title" binding:"required"`
	Location  string   `json:"location" binding:"required"`
	Capacity  int      `json:"capacity" binding:"required"`
	Price     float64  `json:"price"`
	PriceUnit string   `json:"priceUnit" binding:"required"`
	Currency  string   `json:"currency"`
	Tags      []string `json:"tags,omitempty"`

	InstantConfirm        bool `json:"instantConfirm"`
	ReconfirmOnReschedule bool `json:"reconfirmOnReschedule"`
}
