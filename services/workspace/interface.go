package workspace

import (
	"context"

	workspaceRepo "hively/database/repository/workspace"
	"hively/models"

	"github.com/go-redis/redis/v8"
)

// WorkspaceService is the resource catalog: listings the booking engine reads
// and administrators maintain.
type WorkspaceService interface {
	Create(ctx context.Context, ownerID string, input models.WorkspaceInput) (*models.Workspace, error)
	Get(ctx context.Context, id string) (*models.Workspace, error)
	Update(ctx context.Context, id string, input models.WorkspaceInput) (*models.Workspace, error)
	Archive(ctx context.Context, id string) error
	List(ctx context.Context, filter models.WorkspaceFilter) ([]models.Workspace, error)
}

// DefaultWorkspaceService is the production catalog service. Cache is
// optional; when present, hot workspace documents are served from Redis.
type DefaultWorkspaceService struct {
	Repo  workspaceRepo.WorkspaceRepository
	Cache *redis.Client
}
