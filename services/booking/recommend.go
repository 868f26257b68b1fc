package booking

import (
	"context"
	"sort"

	"hively/models"
)

// Recommend suggests workspaces for the actor based on the tags of workspaces
// they booked before. With no history it falls back to the largest listings.
func (s *DefaultBookingService) Recommend(ctx context.Context, actor Actor, limit int) ([]models.Workspace, error) {
	if limit <= 0 {
		limit = 5
	}

	history, err := s.Reservations.List(ctx, models.ReservationFilter{UserID: actor.UserID})
	if err != nil {
		return nil, storeErr(err)
	}

	booked := make(map[string]bool, len(history))
	for i := range history {
		booked[history[i].WorkspaceID] = true
	}

	tagWeight := make(map[string]int)
	for wsID := range booked {
		ws, err := s.Workspaces.GetByID(ctx, wsID)
		if err != nil {
			continue
		}
		for _, tag := range ws.Tags {
			tagWeight[tag]++
		}
	}

	candidates, err := s.Workspaces.List(ctx, models.WorkspaceFilter{})
	if err != nil {
		return nil, storeErr(err)
	}

	score := func(ws *models.Workspace) int {
		total := 0
		for _, tag := range ws.Tags {
			total += tagWeight[tag]
		}
		return total
	}

	// Skip what the actor already booked, then rank by shared tags with
	// capacity as a stable fallback ordering.
	var out []models.Workspace
	for i := range candidates {
		if !booked[candidates[i].ID] {
			out = append(out, candidates[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := score(&out[i]), score(&out[j])
		if si != sj {
			return si > sj
		}
		return out[i].Capacity > out[j].Capacity
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
