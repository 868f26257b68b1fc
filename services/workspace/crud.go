package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	workspaceRepo "hively/database/repository/workspace"
	"hively/models"
	"hively/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the workspace does not exist.
var ErrNotFound = errors.New("workspace not found")

// ErrBadPriceUnit is returned for a price unit outside {hour, day}.
var ErrBadPriceUnit = errors.New("price unit must be hour or day")

func validateInput(input models.WorkspaceInput) error {
	if input.PriceUnit != models.PriceUnitHour && input.PriceUnit != models.PriceUnitDay {
		return ErrBadPriceUnit
	}
	if input.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1")
	}
	return nil
}

// Create registers a new workspace listing owned by the given administrator.
func (s *DefaultWorkspaceService) Create(ctx context.Context, ownerID string, input models.WorkspaceInput) (*models.Workspace, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ws := &models.Workspace{
		ID:                    uuid.New().String(),
		OwnerID:               ownerID,
		Title:                 input.Title,
		Location:              input.Location,
		Capacity:              input.Capacity,
		Price:                 input.Price,
		PriceUnit:             input.PriceUnit,
		Currency:              input.Currency,
		Tags:                  input.Tags,
		InstantConfirm:        input.InstantConfirm,
		ReconfirmOnReschedule: input.ReconfirmOnReschedule,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := s.Repo.Create(ctx, ws); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("workspace created",
		zap.String("workspaceID", ws.ID),
		zap.String("ownerID", ownerID))
	return ws, nil
}

// Get fetches a workspace, serving hot documents from the cache.
func (s *DefaultWorkspaceService) Get(ctx context.Context, id string) (*models.Workspace, error) {
	if s.Cache != nil {
		key := utils.WorkspaceCachePrefix + id
		if raw, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var ws models.Workspace
			if json.Unmarshal([]byte(raw), &ws) == nil {
				return &ws, nil
			}
		} else if err != redis.Nil {
			utils.GetLogger().Warn("workspace cache read failed", zap.Error(err))
		}
	}

	ws, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, workspaceRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(ws); err == nil {
			_ = s.Cache.Set(ctx, utils.WorkspaceCachePrefix+id, raw, utils.WorkspaceCacheTTL).Err()
		}
	}
	return ws, nil
}

// Update replaces the listing's mutable fields and drops the cached copy.
func (s *DefaultWorkspaceService) Update(ctx context.Context, id string, input models.WorkspaceInput) (*models.Workspace, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	ws, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, workspaceRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ws.Title = input.Title
	ws.Location = input.Location
	ws.Capacity = input.Capacity
	ws.Price = input.Price
	ws.PriceUnit = input.PriceUnit
	ws.Currency = input.Currency
	ws.Tags = input.Tags
	ws.InstantConfirm = input.InstantConfirm
	ws.ReconfirmOnReschedule = input.ReconfirmOnReschedule
	ws.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, ws); err != nil {
		if errors.Is(err, workspaceRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, id)
	return ws, nil
}

// Archive soft-deletes a listing. Existing reservations keep their reference;
// new bookings no longer see it.
func (s *DefaultWorkspaceService) Archive(ctx context.Context, id string) error {
	if err := s.Repo.Archive(ctx, id); err != nil {
		if errors.Is(err, workspaceRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// List returns non-archived listings matching the filter.
func (s *DefaultWorkspaceService) List(ctx context.Context, filter models.WorkspaceFilter) ([]models.Workspace, error) {
	return s.Repo.List(ctx, filter)
}

func (s *DefaultWorkspaceService) invalidate(ctx context.Context, id string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, utils.WorkspaceCachePrefix+id).Err(); err != nil {
		utils.GetLogger().Warn("workspace cache invalidation failed",
			zap.String("workspaceID", id), zap.Error(err))
	}
}
