package booking

import (
	"context"
	"testing"
	"time"

	"hively/models"
)

func seedReservation(repo *fakeReservationRepo, id, userID, start, end, status string, createdAt time.Time) {
	repo.byID[id] = &models.Reservation{
		ID:          id,
		WorkspaceID: "ws-1",
		UserID:      userID,
		StartDate:   start,
		EndDate:     end,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		Version:     1,
	}
}

func TestList_OrderingAndTiebreak(t *testing.T) {
	svc, repo := newTestService(testWorkspace())
	base := fixedNow

	seedReservation(repo, "res-c", "user-1", "2024-02-05", "2024-02-06", models.StatusPending, base.Add(2*time.Hour))
	seedReservation(repo, "res-a", "user-1", "2024-02-01", "2024-02-02", models.StatusPending, base.Add(time.Hour))
	// Same start date as res-b but created later.
	seedReservation(repo, "res-b2", "user-1", "2024-02-03", "2024-02-04", models.StatusPending, base.Add(30*time.Minute))
	seedReservation(repo, "res-b1", "user-1", "2024-02-03", "2024-02-04", models.StatusPending, base)

	out, err := svc.List(context.Background(), Actor{UserID: "user-1"}, models.ReservationFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := []string{"res-a", "res-b1", "res-b2", "res-c"}
	if len(out) != len(want) {
		t.Fatalf("expected %d reservations, got %d", len(want), len(out))
	}
	for i, id := range want {
		if out[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, out[i].ID)
		}
	}
}

// Non-admin actors only see their own reservations.
func TestList_ScopedToActor(t *testing.T) {
	svc, repo := newTestService(testWorkspace())
	seedReservation(repo, "res-mine", "user-1", "2024-02-01", "2024-02-02", models.StatusPending, fixedNow)
	seedReservation(repo, "res-theirs", "user-2", "2024-02-03", "2024-02-04", models.StatusPending, fixedNow)
	ctx := context.Background()

	out, err := svc.List(ctx, Actor{UserID: "user-1"}, models.ReservationFilter{UserID: "user-2"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "res-mine" {
		t.Errorf("non-admin filter should be forced to own reservations, got %v", out)
	}

	out, err = svc.List(ctx, Actor{UserID: "admin-1", Admin: true}, models.ReservationFilter{UserID: "user-2"})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "res-theirs" {
		t.Errorf("admin should see the requested user's reservations, got %v", out)
	}
}

func TestList_Filters(t *testing.T) {
	svc, repo := newTestService(testWorkspace())
	seedReservation(repo, "res-1", "user-1", "2024-02-01", "2024-02-02", models.StatusPending, fixedNow)
	seedReservation(repo, "res-2", "user-1", "2024-02-10", "2024-02-11", models.StatusCancelled, fixedNow)
	seedReservation(repo, "res-3", "user-1", "2024-03-01", "2024-03-02", models.StatusConfirmed, fixedNow)
	actor := Actor{UserID: "user-1"}
	ctx := context.Background()

	out, err := svc.List(ctx, actor, models.ReservationFilter{Statuses: []string{models.StatusCancelled}})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "res-2" {
		t.Errorf("status filter failed, got %v", out)
	}

	out, err = svc.List(ctx, actor, models.ReservationFilter{FromDate: "2024-02-05", ToDate: "2024-02-28"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "res-2" {
		t.Errorf("date window filter failed, got %v", out)
	}
}

func TestRecommend_PrefersSharedTags(t *testing.T) {
	booked := testWorkspace() // tags: quiet, wifi
	match := &models.Workspace{ID: "ws-2", Title: "Quiet Nook", Location: "Nairobi", Capacity: 4, PriceUnit: models.PriceUnitDay, Tags: []string{"quiet"}}
	other := &models.Workspace{ID: "ws-3", Title: "Open Floor", Location: "Nairobi", Capacity: 40, PriceUnit: models.PriceUnitDay, Tags: []string{"events"}}

	svc, repo := newTestService(booked, match, other)
	seedReservation(repo, "res-1", "user-1", "2024-01-02", "2024-01-03", models.StatusCompleted, fixedNow)

	out, err := svc.Recommend(context.Background(), Actor{UserID: "user-1"}, 5)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 recommendations (own booking excluded), got %d", len(out))
	}
	if out[0].ID != "ws-2" {
		t.Errorf("workspace sharing tags should rank first, got %s", out[0].ID)
	}
}
