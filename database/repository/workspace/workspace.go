package workspaceRepo

import (
	"context"
	"errors"

	"hively/models"
)

// ErrNotFound is returned when no workspace matches the given ID.
var ErrNotFound = errors.New("workspace not found")

// WorkspaceRepository defines persistence operations for workspaces.
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *models.Workspace) error
	GetByID(ctx context.Context, id string) (*models.Workspace, error)
	Update(ctx context.Context, ws *models.Workspace) error
	Archive(ctx context.Context, id string) error
	List(ctx context.Context, filter models.WorkspaceFilter) ([]models.Workspace, error)
}
