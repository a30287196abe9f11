package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/minithello/internal/othello"
	"github.com/lk16/minithello/internal/solver"
	"github.com/redis/go-redis/v9"
)

const (
	ValuesKey        = "minithello:values"
	RunKey           = "minithello:run"
	saveLockKey      = "minithello:save_lock"
	saveLockTTL      = 5 * time.Minute
	redisBatchSize   = 10000
	redisScanCount   = 10000
	stagingKeyTTL    = 10 * time.Minute
	stagingKeyPrefix = "minithello:staging:"
)

var ErrSaveInProgress = errors.New("another save is in progress")

// RedisStore keeps the latest table in a hash of key -> value, with the run metadata in a second hash.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// releaseLock deletes the save lock, even when ctx was canceled during the save.
func (s *RedisStore) releaseLock(ctx context.Context) {
	s.client.Del(context.WithoutCancel(ctx), saveLockKey)
}

// Save writes the values into a staging hash in pipelined batches, then swaps it in with the run metadata.
func (s *RedisStore) Save(ctx context.Context, run Run) error {
	lockAcquired, err := s.client.SetNX(ctx, saveLockKey, run.ID.String(), saveLockTTL).Result()
	if err != nil {
		return fmt.Errorf("error acquiring save lock: %w", err)
	}

	if !lockAcquired {
		return ErrSaveInProgress
	}

	// Ensure lock is released
	defer s.releaseLock(ctx)

	staging := stagingKeyPrefix + run.ID.String()

	keys := run.Values.Keys()
	for start := 0; start < len(keys); start += redisBatchSize {
		batch := keys[start:min(start+redisBatchSize, len(keys))]

		fields := make(map[string]interface{}, len(batch))
		for _, key := range batch {
			fields[strconv.Itoa(int(key))] = formatValue(run.Values[key])
		}

		pipe := s.client.Pipeline()
		pipe.HSet(ctx, staging, fields)
		pipe.Expire(ctx, staging, stagingKeyTTL)
		if _, err = pipe.Exec(ctx); err != nil {
			return fmt.Errorf("error storing state values: %w", err)
		}
	}

	pipe := s.client.TxPipeline()
	if len(keys) > 0 {
		pipe.Persist(ctx, staging)
		pipe.Rename(ctx, staging, ValuesKey)
	} else {
		pipe.Del(ctx, ValuesKey)
	}
	pipe.Del(ctx, RunKey)
	pipe.HSet(ctx, RunKey, map[string]interface{}{
		"id":         run.ID.String(),
		"created_at": run.CreatedAt.Format(time.RFC3339Nano),
		"discount":   formatValue(run.Discount),
		"tolerance":  formatValue(run.Tolerance),
		"sweeps":     run.Sweeps,
		"max_delta":  formatValue(run.MaxDelta),
	})
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error storing solve run: %w", err)
	}

	return nil
}

// Load reads the run metadata and scans all values.
func (s *RedisStore) Load(ctx context.Context) (Run, error) {
	fields, err := s.client.HGetAll(ctx, RunKey).Result()
	if err != nil {
		return Run{}, fmt.Errorf("error loading solve run: %w", err)
	}

	if len(fields) == 0 {
		return Run{}, ErrNoRun
	}

	run, err := parseRunFields(fields)
	if err != nil {
		return Run{}, err
	}

	run.Values = make(solver.ValueTable)

	// HScan returns fields and values alternately
	iter := s.client.HScan(ctx, ValuesKey, 0, "", redisScanCount).Iterator()
	for iter.Next(ctx) {
		field := iter.Val()
		if !iter.Next(ctx) {
			return Run{}, fmt.Errorf("missing value for state %s", field)
		}

		key, err := strconv.Atoi(field)
		if err != nil {
			return Run{}, fmt.Errorf("error parsing state key: %w", err)
		}

		value, err := parseValue(iter.Val())
		if err != nil {
			return Run{}, fmt.Errorf("error parsing state value: %w", err)
		}

		run.Values[othello.Key(key)] = value
	}

	if err = iter.Err(); err != nil {
		return Run{}, fmt.Errorf("error scanning state values: %w", err)
	}

	return run, nil
}

func parseRunFields(fields map[string]string) (Run, error) {
	var run Run
	var err error

	if run.ID, err = uuid.Parse(fields["id"]); err != nil {
		return Run{}, fmt.Errorf("error parsing run id: %w", err)
	}

	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, fields["created_at"]); err != nil {
		return Run{}, fmt.Errorf("error parsing run time: %w", err)
	}

	if run.Discount, err = parseValue(fields["discount"]); err != nil {
		return Run{}, fmt.Errorf("error parsing discount: %w", err)
	}

	if run.Tolerance, err = parseValue(fields["tolerance"]); err != nil {
		return Run{}, fmt.Errorf("error parsing tolerance: %w", err)
	}

	if run.Sweeps, err = strconv.Atoi(fields["sweeps"]); err != nil {
		return Run{}, fmt.Errorf("error parsing sweeps: %w", err)
	}

	if run.MaxDelta, err = parseValue(fields["max_delta"]); err != nil {
		return Run{}, fmt.Errorf("error parsing max delta: %w", err)
	}

	return run, nil
}

// formatValue returns the shortest text that parses back to the same float32.
func formatValue(value float32) string {
	return strconv.FormatFloat(float64(value), 'g', -1, 32)
}

func parseValue(s string) (float32, error) {
	value, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(value), nil
}
