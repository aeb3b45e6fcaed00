package store

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	tableCollection    = "qtable"
	trainingCollection = "training"
	trainingDocID      = "metadata"
)

var _ i.QTableStore = &Mongo{}

// entry is one Q-table document.
type entry struct {
	Key   int64 `bson:"_id"`
	Value int64 `bson:"value"`
}

// Mongo stores one document per Q-table key and a single metadata document.
type Mongo struct {
	table    *mongo.Collection
	training *mongo.Collection
}

// NewMongo creates a Mongo store in the given database.
func NewMongo(client *mongo.Client, dbName string) *Mongo {
	db := client.Database(dbName)
	return &Mongo{
		table:    db.Collection(tableCollection),
		training: db.Collection(trainingCollection),
	}
}

// Value implements i.QTableStore.
func (m *Mongo) Value(ctx context.Context, key uint64) (int64, error) {
	var e entry
	err := m.table.FindOne(ctx, bson.M{"_id": int64(key)}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("unexpected error: %w", err)
	}
	return e.Value, nil
}

// Entries implements i.QTableStore.
func (m *Mongo) Entries(ctx context.Context) (map[uint64]int64, error) {
	cursor, err := m.table.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make(map[uint64]int64)
	for cursor.Next(ctx) {
		var e entry
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("unexpected error: %w", err)
		}
		if e.Key < 0 {
			continue
		}
		entries[uint64(e.Key)] = e.Value
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("unexpected error: %w", err)
	}
	return entries, nil
}

// SetValues implements i.QTableStore with one unordered bulk upsert.
func (m *Mongo) SetValues(ctx context.Context, values map[uint64]int64) error {
	if len(values) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(values))
	for k, v := range values {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": int64(k)}).
			SetUpdate(bson.M{"$set": bson.M{"value": v}}).
			SetUpsert(true))
	}

	if _, err := m.table.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("unexpected error: %w", err)
	}
	return nil
}

// TrainingInfo implements i.QTableStore.
func (m *Mongo) TrainingInfo(ctx context.Context) (dmn.TrainingInfo, error) {
	var info dmn.TrainingInfo
	err := m.training.FindOne(ctx, bson.M{"_id": trainingDocID}).Decode(&info)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dmn.TrainingInfo{}, nil
	}
	if err != nil {
		return dmn.TrainingInfo{}, fmt.Errorf("unexpected error: %w", err)
	}
	return info, nil
}

// SetTrainingInfo implements i.QTableStore.
func (m *Mongo) SetTrainingInfo(ctx context.Context, info dmn.TrainingInfo) error {
	filter := bson.M{"_id": trainingDocID}
	update := bson.M{
		"$set": bson.M{
			"trained":           info.Trained,
			"episodesCompleted": info.EpisodesCompleted,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := m.training.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("unexpected error: %w", err)
	}
	return nil
}
