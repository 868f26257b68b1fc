package reservationRepo

import (
	"context"
	"errors"
	"time"

	"hively/models"
)

// Sentinel errors surfaced by the repository. Callers translate these into
// their own error kinds.
var (
	// ErrNotFound is returned when no reservation matches the given ID.
	ErrNotFound = errors.New("reservation not found")
	// ErrStaleVersion is returned when a guarded update presents a version
	// that no longer matches the stored document.
	ErrStaleVersion = errors.New("reservation version is stale")
)

// ConflictFn inspects the active reservations of a workspace and returns the
// IDs of those that block the proposed reservation. It runs inside the same
// logical transaction as the write it is guarding.
type ConflictFn func(existing []models.Reservation) []string

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	// GetByID fetches a reservation by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Reservation, error)

	// ActiveByWorkspace returns all pending or confirmed reservations for the
	// given workspace.
	ActiveByWorkspace(ctx context.Context, workspaceID string) ([]models.Reservation, error)

	// CreateIfFree atomically runs the conflict check against the workspace's
	// active reservations and inserts the new reservation when the check
	// returns no blockers. It returns the blocker IDs (and does not insert)
	// when the check fails.
	CreateIfFree(ctx context.Context, res *models.Reservation, conflicts ConflictFn) ([]string, error)

	// UpdateRangeIfFree atomically re-checks conflicts and replaces the date
	// and time range of an existing reservation, guarded by expectedVersion.
	// The updated document is written back into res on success.
	UpdateRangeIfFree(ctx context.Context, res *models.Reservation, expectedVersion int64, conflicts ConflictFn) ([]string, error)

	// UpdateStatus transitions a reservation to the given status, guarded by
	// expectedVersion. cancelReason is stored only for cancellations.
	UpdateStatus(ctx context.Context, id string, expectedVersion int64, status, cancelReason string, at time.Time) (*models.Reservation, error)

	// List returns reservations matching the filter, ordered by start date
	// ascending with creation time as tiebreak.
	List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)

	// CompleteExpired marks confirmed reservations whose end date falls before
	// today as completed and reports how many were updated.
	CompleteExpired(ctx context.Context, today string, at time.Time) (int64, error)
}
