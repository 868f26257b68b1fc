package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Error kinds surfaced by the booking engine. All are recoverable; only
// ErrVersionConflict and ErrTimeout should be retried automatically.
var (
	ErrInvalidRange      = errors.New("invalid reservation range")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrBookingConflict   = errors.New("reservation conflicts with an existing booking")
	ErrNotFound          = errors.New("reservation not found")
	ErrForbidden         = errors.New("not allowed to modify this reservation")
	ErrInvalidTransition = errors.New("invalid reservation status transition")
	ErrVersionConflict   = errors.New("reservation was modified concurrently")
	ErrTimeout           = errors.New("reservation store timed out")
)

// RangeError carries the specific validation failure behind ErrInvalidRange.
type RangeError struct {
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid reservation range: %s", e.Reason)
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// ConflictError names the reservations blocking the proposed range.
type ConflictError struct {
	BlockingIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("reservation conflicts with existing bookings: %s", strings.Join(e.BlockingIDs, ", "))
}

func (e *ConflictError) Unwrap() error { return ErrBookingConflict }

// Retryable reports whether the caller may retry the operation as-is, after
// re-reading current state.
func Retryable(err error) bool {
	return errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrTimeout)
}

// storeErr maps a store failure onto the engine's error kinds. Deadline
// expiry and driver-classified timeouts (network, server selection) surface
// as ErrTimeout so callers can tell them apart from a lost version race.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}
