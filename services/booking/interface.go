package booking

import (
	"context"
	"time"

	reservationRepo "hively/database/repository/reservation"
	workspaceRepo "hively/database/repository/workspace"
	"hively/models"
)

// Actor identifies the authenticated caller of a booking operation.
type Actor struct {
	UserID string
	Admin  bool
}

// canManage reports whether the actor may mutate the given reservation.
// Ownership and the admin role are the only capabilities that grant access.
func (a Actor) canManage(r *models.Reservation) bool {
	return a.Admin || a.UserID == r.UserID
}

// AvailabilityResult is the outcome of a conflict probe. Available is false
// when BlockingIDs is non-empty.
type AvailabilityResult struct {
	Available   bool     `json:"available"`
	BlockingIDs []string `json:"blockingIds,omitempty"`
}

// BookingService is the reservation engine: availability probing, lifecycle
// transitions, and read paths.
type BookingService interface {
	// CheckAvailability decides whether the proposed range is free. It never
	// mutates state.
	CheckAvailability(ctx context.Context, input models.ReservationInput) (*AvailabilityResult, error)

	// Create validates the request, checks conflicts, and persists a new
	// reservation in pending state (or confirmed, for instant-confirm
	// workspaces).
	Create(ctx context.Context, actor Actor, input models.ReservationInput) (*models.Reservation, error)

	// Cancel transitions a non-terminal reservation to cancelled. A second
	// cancel fails with ErrInvalidTransition; callers should treat that as
	// expected.
	Cancel(ctx context.Context, actor Actor, id string, input models.CancelInput) (*models.Reservation, error)

	// Reschedule moves a non-terminal reservation to a new range, excluding
	// the reservation itself from conflict checking.
	Reschedule(ctx context.Context, actor Actor, id string, input models.RescheduleInput) (*models.Reservation, error)

	// Confirm transitions pending to confirmed. Admin only.
	Confirm(ctx context.Context, actor Actor, id string, expectedVersion int64) (*models.Reservation, error)

	// List returns reservations visible to the actor, ordered by start date.
	List(ctx context.Context, actor Actor, filter models.ReservationFilter) ([]models.Reservation, error)

	// Recommend suggests workspaces based on the actor's booking history.
	Recommend(ctx context.Context, actor Actor, limit int) ([]models.Workspace, error)

	// CompleteExpired sweeps confirmed reservations whose end date has passed
	// into the completed state.
	CompleteExpired(ctx context.Context) (int64, error)
}

// DefaultBookingService is the production booking engine.
type DefaultBookingService struct {
	Reservations reservationRepo.ReservationRepository
	Workspaces   workspaceRepo.WorkspaceRepository

	// Now is the engine's clock; tests pin it. Defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
