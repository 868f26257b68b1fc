package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	reservationRepo "hively/database/repository/reservation"
	workspaceRepo "hively/database/repository/workspace"
	"hively/models"
)

// fakeReservationRepo is an in-memory ReservationRepository. The mutex spans
// check+write in CreateIfFree and UpdateRangeIfFree, mirroring the store's
// transaction boundary.
type fakeReservationRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Reservation

	// failWith, when set, makes every guarded write fail with this error.
	failWith error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{byID: make(map[string]*models.Reservation)}
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (f *fakeReservationRepo) activeByWorkspaceLocked(workspaceID string) []models.Reservation {
	var out []models.Reservation
	for _, r := range f.byID {
		if r.WorkspaceID == workspaceID && r.Active() {
			out = append(out, *r)
		}
	}
	return out
}

func (f *fakeReservationRepo) ActiveByWorkspace(_ context.Context, workspaceID string) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeByWorkspaceLocked(workspaceID), nil
}

func (f *fakeReservationRepo) CreateIfFree(_ context.Context, res *models.Reservation, conflicts reservationRepo.ConflictFn) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if blockers := conflicts(f.activeByWorkspaceLocked(res.WorkspaceID)); len(blockers) > 0 {
		return blockers, nil
	}
	cp := *res
	f.byID[res.ID] = &cp
	return nil, nil
}

func (f *fakeReservationRepo) UpdateRangeIfFree(_ context.Context, res *models.Reservation, expectedVersion int64, conflicts reservationRepo.ConflictFn) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	stored, ok := f.byID[res.ID]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return nil, reservationRepo.ErrStaleVersion
	}
	if blockers := conflicts(f.activeByWorkspaceLocked(res.WorkspaceID)); len(blockers) > 0 {
		return blockers, nil
	}
	cp := *res
	cp.Version = stored.Version + 1
	f.byID[res.ID] = &cp
	*res = cp
	return nil, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id string, expectedVersion int64, status, cancelReason string, at time.Time) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return nil, reservationRepo.ErrStaleVersion
	}
	stored.Status = status
	if cancelReason != "" {
		stored.CancelReason = cancelReason
	}
	stored.UpdatedAt = at
	stored.Version++
	cp := *stored
	return &cp, nil
}

func (f *fakeReservationRepo) List(_ context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	match := func(r *models.Reservation) bool {
		if filter.UserID != "" && r.UserID != filter.UserID {
			return false
		}
		if filter.WorkspaceID != "" && r.WorkspaceID != filter.WorkspaceID {
			return false
		}
		if len(filter.Statuses) > 0 {
			found := false
			for _, s := range filter.Statuses {
				if r.Status == s {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		if filter.FromDate != "" && r.StartDate < filter.FromDate {
			return false
		}
		if filter.ToDate != "" && r.StartDate > filter.ToDate {
			return false
		}
		return true
	}

	var out []models.Reservation
	for _, r := range f.byID {
		if match(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate != out[j].StartDate {
			return out[i].StartDate < out[j].StartDate
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeReservationRepo) CompleteExpired(_ context.Context, today string, at time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.byID {
		if r.Status == models.StatusConfirmed && r.EndDate < today {
			r.Status = models.StatusCompleted
			r.UpdatedAt = at
			r.Version++
			n++
		}
	}
	return n, nil
}

// fakeWorkspaceRepo is an in-memory WorkspaceRepository.
type fakeWorkspaceRepo struct {
	byID map[string]*models.Workspace
}

func newFakeWorkspaceRepo(workspaces ...*models.Workspace) *fakeWorkspaceRepo {
	f := &fakeWorkspaceRepo{byID: make(map[string]*models.Workspace)}
	for _, ws := range workspaces {
		f.byID[ws.ID] = ws
	}
	return f
}

func (f *fakeWorkspaceRepo) Create(_ context.Context, ws *models.Workspace) error {
	cp := *ws
	f.byID[ws.ID] = &cp
	return nil
}

func (f *fakeWorkspaceRepo) GetByID(_ context.Context, id string) (*models.Workspace, error) {
	ws, ok := f.byID[id]
	if !ok {
		return nil, workspaceRepo.ErrNotFound
	}
	cp := *ws
	return &cp, nil
}

func (f *fakeWorkspaceRepo) Update(_ context.Context, ws *models.Workspace) error {
	if _, ok := f.byID[ws.ID]; !ok {
		return workspaceRepo.ErrNotFound
	}
	cp := *ws
	f.byID[ws.ID] = &cp
	return nil
}

func (f *fakeWorkspaceRepo) Archive(_ context.Context, id string) error {
	ws, ok := f.byID[id]
	if !ok {
		return workspaceRepo.ErrNotFound
	}
	ws.Archived = true
	return nil
}

func (f *fakeWorkspaceRepo) List(_ context.Context, filter models.WorkspaceFilter) ([]models.Workspace, error) {
	var out []models.Workspace
	for _, ws := range f.byID {
		if ws.Archived {
			continue
		}
		if filter.Location != "" && ws.Location != filter.Location {
			continue
		}
		if filter.MinCapacity > 0 && ws.Capacity < filter.MinCapacity {
			continue
		}
		if len(filter.Tags) > 0 {
			found := false
			for _, want := range filter.Tags {
				for _, tag := range ws.Tags {
					if tag == want {
						found = true
						break
					}
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, *ws)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// fixedNow pins the engine clock for deterministic validation.
var fixedNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newTestService(workspaces ...*models.Workspace) (*DefaultBookingService, *fakeReservationRepo) {
	resRepo := newFakeReservationRepo()
	svc := &DefaultBookingService{
		Reservations: resRepo,
		Workspaces:   newFakeWorkspaceRepo(workspaces...),
		Now:          func() time.Time { return fixedNow },
	}
	return svc, resRepo
}

func minutes(v int) *int { return &v }

func testWorkspace() *models.Workspace {
	return &models.Workspace{
		ID:        "ws-1",
		OwnerID:   "admin-1",
		Title:     "Corner Loft",
		Location:  "Nairobi",
		Capacity:  10,
		Price:     25,
		PriceUnit: models.PriceUnitDay,
		Currency:  "USD",
		Tags:      []string{"quiet", "wifi"},
	}
}
