package booking

import (
	"context"
	"errors"
	"testing"

	"hively/models"
)

// Date ranges are closed intervals; sharing a boundary day overlaps.
func TestDatesOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"disjoint", "2024-01-10", "2024-01-12", "2024-01-13", "2024-01-15", false},
		{"shared boundary", "2024-01-10", "2024-01-12", "2024-01-12", "2024-01-14", true},
		{"nested", "2024-01-10", "2024-01-20", "2024-01-12", "2024-01-14", true},
		{"same range", "2024-01-10", "2024-01-12", "2024-01-10", "2024-01-12", true},
		{"adjacent before", "2024-01-05", "2024-01-09", "2024-01-10", "2024-01-12", false},
	}
	for _, tc := range cases {
		if got := datesOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
			t.Errorf("%s: datesOverlap = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// Time windows are half-open, so back-to-back slots do not collide.
func TestTimesOverlap(t *testing.T) {
	if timesOverlap(540, 600, 600, 660) {
		t.Error("back-to-back slots should not overlap")
	}
	if !timesOverlap(540, 600, 570, 630) {
		t.Error("intersecting slots should overlap")
	}
	if !timesOverlap(540, 600, 540, 600) {
		t.Error("identical slots should overlap")
	}
}

// Date overlap alone is not a conflict when both sides carry time windows.
func TestConflicts_SubDailySlots(t *testing.T) {
	existing := []models.Reservation{{
		ID:          "res-a",
		WorkspaceID: "ws-1",
		StartDate:   "2024-02-01",
		EndDate:     "2024-02-01",
		StartTime:   minutes(540),
		EndTime:     minutes(600),
		Status:      models.StatusConfirmed,
	}}

	morning := span{"2024-02-01", "2024-02-01", minutes(600), minutes(660)}
	if got := conflicts(morning, existing, ""); len(got) != 0 {
		t.Errorf("disjoint time slots on the same day should not conflict, got %v", got)
	}

	sameSlot := span{"2024-02-01", "2024-02-01", minutes(570), minutes(630)}
	got := conflicts(sameSlot, existing, "")
	if len(got) != 1 || got[0] != "res-a" {
		t.Errorf("overlapping time slots should conflict with res-a, got %v", got)
	}

	// A whole-day proposal against a timed reservation conflicts on date overlap.
	wholeDay := span{"2024-02-01", "2024-02-01", nil, nil}
	if got := conflicts(wholeDay, existing, ""); len(got) != 1 {
		t.Errorf("whole-day proposal should conflict with any timed reservation that day, got %v", got)
	}
}

// Terminal reservations never block, and exclusion skips the reservation itself.
func TestConflicts_ExclusionAndTerminal(t *testing.T) {
	existing := []models.Reservation{
		{ID: "res-cancelled", StartDate: "2024-02-01", EndDate: "2024-02-03", Status: models.StatusCancelled},
		{ID: "res-self", StartDate: "2024-02-01", EndDate: "2024-02-03", Status: models.StatusConfirmed},
	}
	proposal := span{"2024-02-02", "2024-02-04", nil, nil}

	if got := conflicts(proposal, existing, "res-self"); len(got) != 0 {
		t.Errorf("excluded and cancelled reservations should not block, got %v", got)
	}
	if got := conflicts(proposal, existing, ""); len(got) != 1 || got[0] != "res-self" {
		t.Errorf("active reservation should block, got %v", got)
	}
}

func TestCheckAvailability_Validation(t *testing.T) {
	svc, _ := newTestService(testWorkspace())
	ctx := context.Background()

	cases := []struct {
		name  string
		input models.ReservationInput
	}{
		{"start after end", models.ReservationInput{
			WorkspaceID: "ws-1", StartDate: "2024-01-15", EndDate: "2024-01-10", Guests: 2,
		}},
		{"past start date", models.ReservationInput{
			WorkspaceID: "ws-1", StartDate: "2023-12-20", EndDate: "2023-12-22", Guests: 2,
		}},
		{"zero guests", models.ReservationInput{
			WorkspaceID: "ws-1", StartDate: "2024-01-10", EndDate: "2024-01-12", Guests: 0,
		}},
		{"guests exceed capacity", models.ReservationInput{
			WorkspaceID: "ws-1", StartDate: "2024-01-10", EndDate: "2024-01-12", Guests: 11,
		}},
		{"lone start time", models.ReservationInput{
			WorkspaceID: "ws-1", StartDate: "2024-01-10", EndDate: "2024-01-10", StartTime: minutes(540), Guests: 2,
		}},
		{"inverted time window", models.ReservationInput{
			WorkspaceID: "ws-1", StartDate: "2024-01-10", EndDate: "2024-01-10", StartTime: minutes(600), EndTime: minutes(540), Guests: 2,
		}},
		{"malformed date", models.ReservationInput{
			WorkspaceID: "ws-1", StartDate: "Jan 10 2024", EndDate: "2024-01-12", Guests: 2,
		}},
	}
	for _, tc := range cases {
		_, err := svc.CheckAvailability(ctx, tc.input)
		if !errors.Is(err, ErrInvalidRange) {
			t.Errorf("%s: expected ErrInvalidRange, got %v", tc.name, err)
		}
	}
}

func TestCheckAvailability_UnknownWorkspace(t *testing.T) {
	svc, _ := newTestService(testWorkspace())
	_, err := svc.CheckAvailability(context.Background(), models.ReservationInput{
		WorkspaceID: "ws-missing", StartDate: "2024-01-10", EndDate: "2024-01-12", Guests: 2,
	})
	if !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("expected ErrWorkspaceNotFound, got %v", err)
	}
}

// Archived workspaces are invisible to new bookings.
func TestCheckAvailability_ArchivedWorkspace(t *testing.T) {
	ws := testWorkspace()
	ws.Archived = true
	svc, _ := newTestService(ws)

	_, err := svc.CheckAvailability(context.Background(), models.ReservationInput{
		WorkspaceID: "ws-1", StartDate: "2024-01-10", EndDate: "2024-01-12", Guests: 2,
	})
	if !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("expected ErrWorkspaceNotFound for archived workspace, got %v", err)
	}
}

// Hourly workspaces require a time window; daily ones do not.
func TestCheckAvailability_HourlyRequiresTimeWindow(t *testing.T) {
	ws := testWorkspace()
	ws.PriceUnit = models.PriceUnitHour
	svc, _ := newTestService(ws)
	ctx := context.Background()

	_, err := svc.CheckAvailability(ctx, models.ReservationInput{
		WorkspaceID: "ws-1", StartDate: "2024-01-10", EndDate: "2024-01-10", Guests: 2,
	})
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange without a time window, got %v", err)
	}

	result, err := svc.CheckAvailability(ctx, models.ReservationInput{
		WorkspaceID: "ws-1", StartDate: "2024-01-10", EndDate: "2024-01-10",
		StartTime: minutes(540), EndTime: minutes(600), Guests: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error with a time window: %v", err)
	}
	if !result.Available {
		t.Error("empty calendar should be available")
	}
}

// An unavailable verdict names the reservations blocking the range.
func TestCheckAvailability_ReportsBlockers(t *testing.T) {
	svc, _ := newTestService(testWorkspace())
	ctx := context.Background()
	actor := Actor{UserID: "user-1"}

	existing, err := svc.Create(ctx, actor, models.ReservationInput{
		WorkspaceID: "ws-1", StartDate: "2024-01-10", EndDate: "2024-01-12", Guests: 2,
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}

	// Boundary overlap at 2024-01-12.
	result, err := svc.CheckAvailability(ctx, models.ReservationInput{
		WorkspaceID: "ws-1", StartDate: "2024-01-12", EndDate: "2024-01-14", Guests: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Available {
		t.Error("boundary date overlap should not be available")
	}
	if len(result.BlockingIDs) != 1 || result.BlockingIDs[0] != existing.ID {
		t.Errorf("expected blocker %s, got %v", existing.ID, result.BlockingIDs)
	}

	// The next free window.
	result, err = svc.CheckAvailability(ctx, models.ReservationInput{
		WorkspaceID: "ws-1", StartDate: "2024-01-13", EndDate: "2024-01-15", Guests: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Available {
		t.Errorf("adjacent range should be available, blockers %v", result.BlockingIDs)
	}
}
