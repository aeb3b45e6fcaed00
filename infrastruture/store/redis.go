package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	dmn "github.com/beka-birhanu/vinom-qlearn/domain"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "qlearn"

	tableKeyFmt    = "%s:qtable"
	trainingKeyFmt = "%s:training"

	trainedField  = "trained"
	episodesField = "episodes"
)

var _ i.QTableStore = &Redis{}

// Redis stores the Q-table as one hash (field = key, value = scaled integer)
// and the training metadata as a second hash.
type Redis struct {
	client      *redis.Client
	tableKey    string
	trainingKey string
}

// NewRedis creates a Redis store whose keys start with prefix.
func NewRedis(client *redis.Client, prefix string) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Redis{
		client:      client,
		tableKey:    fmt.Sprintf(tableKeyFmt, prefix),
		trainingKey: fmt.Sprintf(trainingKeyFmt, prefix),
	}, nil
}

// Value implements i.QTableStore. A field that does not hold an int64 reads as 0.
func (r *Redis) Value(ctx context.Context, key uint64) (int64, error) {
	raw, err := r.client.HGet(ctx, r.tableKey, strconv.FormatUint(key, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return parseValue(raw), nil
}

// Entries implements i.QTableStore. Fields that are not valid keys are skipped.
func (r *Redis) Entries(ctx context.Context) (map[uint64]int64, error) {
	raw, err := r.client.HGetAll(ctx, r.tableKey).Result()
	if err != nil {
		return nil, err
	}

	entries := make(map[uint64]int64, len(raw))
	for field, value := range raw {
		key, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		entries[key] = parseValue(value)
	}
	return entries, nil
}

// SetValues implements i.QTableStore with a single HSET.
func (r *Redis) SetValues(ctx context.Context, values map[uint64]int64) error {
	if len(values) == 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(values))
	for k, v := range values {
		fields[strconv.FormatUint(k, 10)] = strconv.FormatInt(v, 10)
	}
	return r.client.HSet(ctx, r.tableKey, fields).Err()
}

// TrainingInfo implements i.QTableStore.
func (r *Redis) TrainingInfo(ctx context.Context) (dmn.TrainingInfo, error) {
	raw, err := r.client.HGetAll(ctx, r.trainingKey).Result()
	if err != nil {
		return dmn.TrainingInfo{}, err
	}

	var info dmn.TrainingInfo
	info.Trained = raw[trainedField] == "1"
	if episodes, err := strconv.ParseUint(raw[episodesField], 10, 32); err == nil {
		info.EpisodesCompleted = uint32(episodes)
	}
	return info, nil
}

// SetTrainingInfo implements i.QTableStore.
func (r *Redis) SetTrainingInfo(ctx context.Context, info dmn.TrainingInfo) error {
	trained := "0"
	if info.Trained {
		trained = "1"
	}
	return r.client.HSet(ctx, r.trainingKey, trainedField, trained, episodesField, strconv.FormatUint(uint64(info.EpisodesCompleted), 10)).Err()
}

// parseValue reads a stored value, falling back to 0 when it is not an int64.
func parseValue(raw string) int64 {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
