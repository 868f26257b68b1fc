package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hively/config"
	"hively/database"
	"hively/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReservationRepo implements ReservationRepository using MongoDB.
type MongoReservationRepo struct {
	client *mongo.Client
	coll   *mongo.Collection

	// txnMu serializes guarded writes when the deployment cannot run
	// multi-document transactions. See runGuarded.
	txnMu sync.Mutex
}

// NewMongoReservationRepo creates a new instance of ReservationRepository using MongoDB.
func NewMongoReservationRepo() ReservationRepository {
	client := database.MongoClient
	coll := client.Database(config.AppConfig.DatabaseName).Collection("reservations")
	repo := &MongoReservationRepo{client: client, coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create reservation indexes: %v\n", err)
	}
	return repo
}

// newContext derives a bounded context from the caller's, so store I/O honors
// both the caller deadline and the repository's own ceiling.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// GetByID fetches a reservation by its unique ID.
func (r *MongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var res models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching reservation %s: %w", id, err)
	}
	return &res, nil
}

// ActiveByWorkspace returns all pending or confirmed reservations for a workspace.
func (r *MongoReservationRepo) ActiveByWorkspace(ctx context.Context, workspaceID string) ([]models.Reservation, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	return r.activeByWorkspace(ctx, workspaceID)
}

func (r *MongoReservationRepo) activeByWorkspace(ctx context.Context, workspaceID string) ([]models.Reservation, error) {
	filter := bson.M{
		"workspace_id": workspaceID,
		"status":       bson.M{"$in": []string{models.StatusPending, models.StatusConfirmed}},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching active reservations for workspace %s: %w", workspaceID, err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding active reservations: %w", err)
	}
	return out, nil
}

// runGuarded executes fn so the conflict check and the write inside it form
// one logical operation. It runs fn in a server transaction when the
// deployment supports one; on deployments that cannot run transactions at
// all (a standalone mongod) it serializes fn under txnMu instead, which
// closes the check-and-write window for a single server process. Any other
// session or transaction failure is returned, never silently downgraded.
func (r *MongoReservationRepo) runGuarded(ctx context.Context, fn func(sc context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		if transactionsUnsupported(err) {
			return r.runSerialized(ctx, fn)
		}
		return fmt.Errorf("error starting store session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && transactionsUnsupported(err) {
		return r.runSerialized(ctx, fn)
	}
	return err
}

func (r *MongoReservationRepo) runSerialized(ctx context.Context, fn func(sc context.Context) error) error {
	r.txnMu.Lock()
	defer r.txnMu.Unlock()
	return fn(ctx)
}

// transactionsUnsupported reports whether the error means the deployment
// cannot run sessions or multi-document transactions at all, as opposed to a
// transient failure of this particular transaction.
func transactionsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// IllegalOperation from a mongod outside a replica set.
		return cmdErr.Code == 20 && strings.Contains(cmdErr.Message, "Transaction")
	}
	return strings.Contains(err.Error(), "does not support sessions")
}

// CreateIfFree runs the conflict check and the insert as one logical write.
func (r *MongoReservationRepo) CreateIfFree(ctx context.Context, res *models.Reservation, conflicts ConflictFn) ([]string, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	var blockers []string
	err := r.runGuarded(ctx, func(sc context.Context) error {
		existing, err := r.activeByWorkspace(sc, res.WorkspaceID)
		if err != nil {
			return err
		}
		if blockers = conflicts(existing); len(blockers) > 0 {
			return nil
		}
		if _, err := r.coll.InsertOne(sc, res); err != nil {
			return fmt.Errorf("error inserting reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blockers, nil
}

// UpdateRangeIfFree re-checks conflicts against the new range and swaps the
// range in under a version guard.
func (r *MongoReservationRepo) UpdateRangeIfFree(ctx context.Context, res *models.Reservation, expectedVersion int64, conflicts ConflictFn) ([]string, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	var blockers []string
	err := r.runGuarded(ctx, func(sc context.Context) error {
		existing, err := r.activeByWorkspace(sc, res.WorkspaceID)
		if err != nil {
			return err
		}
		if blockers = conflicts(existing); len(blockers) > 0 {
			return nil
		}

		set := bson.M{
			"start_date": res.StartDate,
			"end_date":   res.EndDate,
			"status":     res.Status,
			"updated_at": res.UpdatedAt,
		}
		unset := bson.M{}
		if res.Timed() {
			set["start_time"] = *res.StartTime
			set["end_time"] = *res.EndTime
		} else {
			unset["start_time"] = ""
			unset["end_time"] = ""
		}
		update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}
		if len(unset) > 0 {
			update["$unset"] = unset
		}

		filter := bson.M{"id": res.ID, "version": expectedVersion}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		if err := r.coll.FindOneAndUpdate(sc, filter, update, opts).Decode(res); err != nil {
			if err == mongo.ErrNoDocuments {
				return r.staleOrMissing(sc, res.ID)
			}
			return fmt.Errorf("error updating reservation %s: %w", res.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blockers, nil
}

// UpdateStatus transitions a reservation's status under a version guard.
func (r *MongoReservationRepo) UpdateStatus(ctx context.Context, id string, expectedVersion int64, status, cancelReason string, at time.Time) (*models.Reservation, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": status, "updated_at": at}
	if cancelReason != "" {
		set["cancel_reason"] = cancelReason
	}
	update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}

	filter := bson.M{"id": id, "version": expectedVersion}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var res models.Reservation
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&res); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, r.staleOrMissing(ctx, id)
		}
		return nil, fmt.Errorf("error updating reservation %s status: %w", id, err)
	}
	return &res, nil
}

// staleOrMissing distinguishes a lost version race from a genuinely absent
// document after a guarded update matched nothing.
func (r *MongoReservationRepo) staleOrMissing(ctx context.Context, id string) error {
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error checking reservation %s: %w", id, err)
	}
	return ErrStaleVersion
}
