package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("training run not found")

var _ i.RunRepo = &RunRepo{}

// RunRepo handles the persistence of training runs.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts or updates a run in the repository.
func (r *RunRepo) Save(run *dmn.TrainingRun) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	filter := bson.M{"_id": run.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, run, opts); err != nil {
		return fmt.Errorf("unexpected error: %w", err)
	}

	return nil
}

// ByID retrieves a run by its ID.
// Returns ErrRunNotFound if no such run was saved.
func (r *RunRepo) ByID(id uuid.UUID) (*dmn.TrainingRun, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var run dmn.TrainingRun
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&run); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return &run, nil
}

// Latest returns up to limit runs ordered by start time, newest first.
func (r *RunRepo) Latest(limit int) ([]*dmn.TrainingRun, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}

	runs := make([]*dmn.TrainingRun, 0)
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return runs, nil
}
