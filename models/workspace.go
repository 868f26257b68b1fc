package models

import "time"

// Price units supported for a workspace.
const (
	PriceUnitHour = "hour"
	PriceUnitDay  = "day"
)

// Workspace represents a bookable workspace listing. Workspaces are owned by
// an administrator and are read-only from the booking engine's perspective.
type Workspace struct {
	ID        string   `bson:"id" json:"id"`
	OwnerID   string   `bson:"owner_id" json:"owner_id"`
	Title     string   `bson:"title" json:"title"`
	Location  string   `bson:"location" json:"location"`
	Capacity  int      `bson:"capacity" json:"capacity"`
	Price     float64  `bson:"price" json:"price"`
	PriceUnit string   `bson:"price_unit" json:"price_unit"` // "hour" or "day"
	Currency  string   `bson:"currency" json:"currency"`
	Tags      []string `bson:"tags,omitempty" json:"tags,omitempty"`

	// InstantConfirm makes new reservations start out confirmed instead of pending.
	InstantConfirm bool `bson:"instant_confirm" json:"instant_confirm"`
	// ReconfirmOnReschedule resets a rescheduled reservation back to pending.
	ReconfirmOnReschedule bool `bson:"reconfirm_on_reschedule" json:"reconfirm_on_reschedule"`

	Archived  bool      `bson:"archived" json:"archived"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HourlyPriced reports whether the workspace is priced per hour, which requires
// reservations to carry a time-of-day range.
func (w *Workspace) HourlyPriced() bool {
	return w.PriceUnit == PriceUnitHour
}
