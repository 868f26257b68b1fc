package booking

import (
	"context"

	"hively/models"
)

// List returns reservations matching the filter. Non-admin actors only ever
// see their own reservations; the filter's user field is forced to the actor.
func (s *DefaultBookingService) List(ctx context.Context, actor Actor, filter models.ReservationFilter) ([]models.Reservation, error) {
	if !actor.Admin {
		filter.UserID = actor.UserID
	}
	out, err := s.Reservations.List(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	return out, nil
}
