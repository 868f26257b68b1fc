package booking

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "hively/database/repository/reservation"
	"hively/models"
	"hively/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// getReservation loads a reservation, mapping store errors onto engine kinds.
func (s *DefaultBookingService) getReservation(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := s.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, storeErr(err)
	}
	return res, nil
}

// guardErr maps guarded-update failures onto engine kinds.
func guardErr(err error) error {
	switch {
	case errors.Is(err, reservationRepo.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, reservationRepo.ErrStaleVersion):
		return ErrVersionConflict
	default:
		return storeErr(err)
	}
}

// Create validates the request, runs the conflict check and the insert as one
// logical transaction, and returns the new reservation. Once the insert has
// committed it is not rolled back by client cancellation.
func (s *DefaultBookingService) Create(ctx context.Context, actor Actor, input models.ReservationInput) (*models.Reservation, error) {
	logger := utils.GetLogger()

	ws, err := s.workspaceFor(ctx, input.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err := validateInput(ws, input, s.now()); err != nil {
		return nil, err
	}

	status := models.StatusPending
	if ws.InstantConfirm {
		status = models.StatusConfirmed
	}

	now := s.now().UTC()
	res := &models.Reservation{
		ID:          uuid.New().String(),
		WorkspaceID: ws.ID,
		UserID:      actor.UserID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Guests:      input.Guests,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}

	proposal := span{input.StartDate, input.EndDate, input.StartTime, input.EndTime}
	blockers, err := s.Reservations.CreateIfFree(ctx, res, func(existing []models.Reservation) []string {
		return conflicts(proposal, existing, "")
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if len(blockers) > 0 {
		return nil, &ConflictError{BlockingIDs: blockers}
	}

	logger.Info("reservation created",
		zap.String("reservationID", res.ID),
		zap.String("workspaceID", ws.ID),
		zap.String("status", status))
	return res, nil
}

// Cancel transitions a non-terminal reservation to cancelled and records the
// reason. Cancelling an already-terminal reservation fails with
// ErrInvalidTransition; a repeated cancel is expected caller behavior, not a
// server fault.
func (s *DefaultBookingService) Cancel(ctx context.Context, actor Actor, id string, input models.CancelInput) (*models.Reservation, error) {
	res, err := s.getReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canManage(res) {
		return nil, ErrForbidden
	}
	if res.Terminal() {
		return nil, fmt.Errorf("%w: reservation is already %s", ErrInvalidTransition, res.Status)
	}

	expected := input.Version
	if expected == 0 {
		expected = res.Version
	}
	updated, err := s.Reservations.UpdateStatus(ctx, id, expected, models.StatusCancelled, input.Reason, s.now().UTC())
	if err != nil {
		return nil, guardErr(err)
	}

	utils.GetLogger().Info("reservation cancelled",
		zap.String("reservationID", id),
		zap.String("by", actor.UserID))
	return updated, nil
}

// Reschedule replaces the reservation's range. The reservation's own prior
// interval is excluded from conflict checking, so shifting within an
// overlapping-with-self window succeeds. The status drops back to pending
// when the workspace requires reconfirmation.
func (s *DefaultBookingService) Reschedule(ctx context.Context, actor Actor, id string, input models.RescheduleInput) (*models.Reservation, error) {
	res, err := s.getReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canManage(res) {
		return nil, ErrForbidden
	}
	if res.Terminal() {
		return nil, fmt.Errorf("%w: reservation is already %s", ErrInvalidTransition, res.Status)
	}

	ws, err := s.workspaceFor(ctx, res.WorkspaceID)
	if err != nil {
		return nil, err
	}
	probe := models.ReservationInput{
		WorkspaceID: res.WorkspaceID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Guests:      res.Guests,
	}
	if err := validateInput(ws, probe, s.now()); err != nil {
		return nil, err
	}

	expected := input.Version
	if expected == 0 {
		expected = res.Version
	}

	updated := *res
	updated.StartDate = input.StartDate
	updated.EndDate = input.EndDate
	updated.StartTime = input.StartTime
	updated.EndTime = input.EndTime
	updated.UpdatedAt = s.now().UTC()
	if ws.ReconfirmOnReschedule {
		updated.Status = models.StatusPending
	}

	proposal := span{input.StartDate, input.EndDate, input.StartTime, input.EndTime}
	blockers, err := s.Reservations.UpdateRangeIfFree(ctx, &updated, expected, func(existing []models.Reservation) []string {
		return conflicts(proposal, existing, res.ID)
	})
	if err != nil {
		return nil, guardErr(err)
	}
	if len(blockers) > 0 {
		return nil, &ConflictError{BlockingIDs: blockers}
	}

	utils.GetLogger().Info("reservation rescheduled",
		zap.String("reservationID", id),
		zap.String("startDate", input.StartDate),
		zap.String("endDate", input.EndDate))
	return &updated, nil
}

// Confirm transitions pending to confirmed. Only administrators confirm.
func (s *DefaultBookingService) Confirm(ctx context.Context, actor Actor, id string, expectedVersion int64) (*models.Reservation, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}

	res, err := s.getReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: cannot confirm a %s reservation", ErrInvalidTransition, res.Status)
	}

	if expectedVersion == 0 {
		expectedVersion = res.Version
	}
	updated, err := s.Reservations.UpdateStatus(ctx, id, expectedVersion, models.StatusConfirmed, "", s.now().UTC())
	if err != nil {
		return nil, guardErr(err)
	}
	return updated, nil
}

// CompleteExpired sweeps confirmed reservations whose end date has passed
// into the completed state.
func (s *DefaultBookingService) CompleteExpired(ctx context.Context) (int64, error) {
	now := s.now().UTC()
	n, err := s.Reservations.CompleteExpired(ctx, now.Format(dateLayout), now)
	if err != nil {
		return 0, storeErr(err)
	}
	if n > 0 {
		utils.GetLogger().Info("completed expired reservations", zap.Int64("count", n))
	}
	return n, nil
}
