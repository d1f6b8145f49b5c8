package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fhuszti/propshot-ms-go/internal/logger"
	"github.com/fhuszti/propshot-ms-go/internal/port"
)

// progressTTL keeps finished runs readable for a while, then lets Redis
// clean up after the UI stopped polling.
const progressTTL = 30 * time.Minute

type RedisReporter struct {
	client *redis.Client
}

// compile-time check: *RedisReporter must satisfy port.ProgressReporter
var _ port.ProgressReporter = (*RedisReporter)(nil)

func NewRedisReporter(addr, password string) *RedisReporter {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &RedisReporter{client: rdb}
}

// Publish overwrites the run's progress entry. Progress is a side channel:
// a failed write is logged, never surfaced to the job.
func (r *RedisReporter) Publish(ctx context.Context, taskID string, p port.Progress) {
	data, err := json.Marshal(p)
	if err != nil {
		logger.Warnf(ctx, "failed to marshal progress for task %s: %v", taskID, err)
		return
	}
	if err := r.client.Set(ctx, progressKey(taskID), data, progressTTL).Err(); err != nil {
		logger.Warnf(ctx, "failed to publish progress for task %s: %v", taskID, err)
	}
}

// Get returns the run's latest progress, or nil when none was published.
func (r *RedisReporter) Get(ctx context.Context, taskID string) (*port.Progress, error) {
	val, err := r.client.Get(ctx, progressKey(taskID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	var p port.Progress
	if err := json.Unmarshal(val, &p); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}
	return &p, nil
}

func progressKey(taskID string) string {
	return "task_progress:" + taskID
}
