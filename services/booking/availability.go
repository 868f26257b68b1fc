package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	workspaceRepo "hively/database/repository/workspace"
	"hively/models"
)

const dateLayout = "2006-01-02"

// span is a proposed occupancy: a closed date interval plus an optional
// time-of-day window.
type span struct {
	startDate string
	endDate   string
	startTime *int
	endTime   *int
}

func (s span) timed() bool { return s.startTime != nil && s.endTime != nil }

// datesOverlap tests closed-interval intersection. Dates in "2006-01-02" form
// order lexicographically, so string comparison is sufficient.
func datesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && bStart <= aEnd
}

// timesOverlap tests half-open intersection of minutes-from-midnight windows.
// Back-to-back slots ([540,600) and [600,660)) do not overlap.
func timesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// conflicts returns the IDs of active reservations blocking the proposal.
// Date overlap alone is not a conflict when both sides carry time windows;
// sub-daily bookings on disjoint slots of the same day coexist. excludeID
// skips the reservation being rescheduled.
func conflicts(proposal span, existing []models.Reservation, excludeID string) []string {
	var blockers []string
	for i := range existing {
		r := &existing[i]
		if r.ID == excludeID || !r.Active() {
			continue
		}
		if !datesOverlap(proposal.startDate, proposal.endDate, r.StartDate, r.EndDate) {
			continue
		}
		if proposal.timed() && r.Timed() &&
			!timesOverlap(*proposal.startTime, *proposal.endTime, *r.StartTime, *r.EndTime) {
			continue
		}
		blockers = append(blockers, r.ID)
	}
	sort.Strings(blockers)
	return blockers
}

// validateInput checks the proposed reservation against the workspace's
// constraints and the caller's clock. Violations wrap ErrInvalidRange.
func validateInput(ws *models.Workspace, input models.ReservationInput, now time.Time) error {
	start, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return &RangeError{Reason: fmt.Sprintf("bad start date %q", input.StartDate)}
	}
	if _, err := time.Parse(dateLayout, input.EndDate); err != nil {
		return &RangeError{Reason: fmt.Sprintf("bad end date %q", input.EndDate)}
	}
	if input.StartDate > input.EndDate {
		return &RangeError{Reason: "start date is after end date"}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(today) {
		return &RangeError{Reason: "start date is in the past"}
	}

	hasStart, hasEnd := input.StartTime != nil, input.EndTime != nil
	if hasStart != hasEnd {
		return &RangeError{Reason: "start and end time must be given together"}
	}
	if hasStart {
		st, et := *input.StartTime, *input.EndTime
		if st < 0 || et > 24*60 {
			return &RangeError{Reason: "time window is outside the day"}
		}
		if st >= et {
			return &RangeError{Reason: "start time is not before end time"}
		}
	} else if ws.HourlyPriced() {
		return &RangeError{Reason: "hourly workspace requires a time window"}
	}

	if input.Guests < 1 {
		return &RangeError{Reason: "guest count must be at least 1"}
	}
	if input.Guests > ws.Capacity {
		return &RangeError{Reason: fmt.Sprintf("guest count %d exceeds capacity %d", input.Guests, ws.Capacity)}
	}
	return nil
}

// workspaceFor loads the workspace backing a proposal. Archived workspaces are
// treated as absent so new bookings cannot target them.
func (s *DefaultBookingService) workspaceFor(ctx context.Context, id string) (*models.Workspace, error) {
	ws, err := s.Workspaces.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, workspaceRepo.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, id)
		}
		return nil, storeErr(err)
	}
	if ws.Archived {
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, id)
	}
	return ws, nil
}

// CheckAvailability decides whether the proposed range is free. Read only.
func (s *DefaultBookingService) CheckAvailability(ctx context.Context, input models.ReservationInput) (*AvailabilityResult, error) {
	ws, err := s.workspaceFor(ctx, input.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err := validateInput(ws, input, s.now()); err != nil {
		return nil, err
	}

	existing, err := s.Reservations.ActiveByWorkspace(ctx, input.WorkspaceID)
	if err != nil {
		return nil, storeErr(err)
	}

	proposal := span{input.StartDate, input.EndDate, input.StartTime, input.EndTime}
	blockers := conflicts(proposal, existing, "")
	return &AvailabilityResult{
		Available:   len(blockers) == 0,
		BlockingIDs: blockers,
	}, nil
}
