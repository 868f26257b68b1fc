package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"hively/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// List returns reservations matching the filter, ordered by start date
// ascending with creation time as tiebreak.
func (r *MongoReservationRepo) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.WorkspaceID != "" {
		query["workspace_id"] = filter.WorkspaceID
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}
	if filter.FromDate != "" || filter.ToDate != "" {
		dateRange := bson.M{}
		if filter.FromDate != "" {
			dateRange["$gte"] = filter.FromDate
		}
		if filter.ToDate != "" {
			dateRange["$lte"] = filter.ToDate
		}
		query["start_date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "start_date", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Reservation
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return out, nil
}

// CompleteExpired marks confirmed reservations whose end date has passed as
// completed. Each update bumps the version so concurrent guarded writers lose
// cleanly.
func (r *MongoReservationRepo) CompleteExpired(ctx context.Context, today string, at time.Time) (int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":   models.StatusConfirmed,
		"end_date": bson.M{"$lt": today},
	}
	update := bson.M{
		"$set": bson.M{"status": models.StatusCompleted, "updated_at": at},
		"$inc": bson.M{"version": 1},
	}
	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error completing expired reservations: %w", err)
	}
	return result.ModifiedCount, nil
}
