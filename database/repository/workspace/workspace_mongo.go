package workspaceRepo

import (
	"context"
	"fmt"
	"time"

	"hively/config"
	"hively/database"
	"hively/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWorkspaceRepo implements WorkspaceRepository using MongoDB.
type MongoWorkspaceRepo struct {
	coll *mongo.Collection
}

// NewMongoWorkspaceRepo creates a new instance of WorkspaceRepository using MongoDB.
func NewMongoWorkspaceRepo() WorkspaceRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("workspaces")
	repo := &MongoWorkspaceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create workspace indexes: %v\n", err)
	}
	return repo
}

// newContext derives a bounded context from the caller's.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// Create inserts a new workspace document.
func (r *MongoWorkspaceRepo) Create(ctx context.Context, ws *models.Workspace) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, ws); err != nil {
		return fmt.Errorf("error creating workspace: %w", err)
	}
	return nil
}

// GetByID retrieves a workspace document by ID.
func (r *MongoWorkspaceRepo) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var ws models.Workspace
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&ws); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching workspace %s: %w", id, err)
	}
	return &ws, nil
}

// Update replaces the mutable fields of a workspace document.
func (r *MongoWorkspaceRepo) Update(ctx context.Context, ws *models.Workspace) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": ws.ID}
	update := bson.M{"$set": ws}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating workspace %s: %w", ws.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Archive soft-deletes a workspace so existing reservations keep a valid
// reference.
func (r *MongoWorkspaceRepo) Archive(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"archived": true, "updated_at": time.Now().UTC()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error archiving workspace %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns non-archived workspaces matching the filter.
func (r *MongoWorkspaceRepo) List(ctx context.Context, filter models.WorkspaceFilter) ([]models.Workspace, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{"archived": false}
	if filter.Location != "" {
		query["location"] = filter.Location
	}
	if len(filter.Tags) > 0 {
		query["tags"] = bson.M{"$in": filter.Tags}
	}
	if filter.MinCapacity > 0 {
		query["capacity"] = bson.M{"$gte": filter.MinCapacity}
	}

	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing workspaces: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Workspace
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding workspaces: %w", err)
	}
	return out, nil
}
