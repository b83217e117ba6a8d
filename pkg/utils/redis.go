package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobcrawl/internal/config"
	"jobcrawl/pkg/models"
)

// RedisClient wraps the Redis client with an extracted-job cache. One job
// detail page rarely changes within a day, so extracted records are kept with
// a TTL and looked up before re-fetching the page.
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config) *RedisClient {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = cfg.Redis.Timeout
	opts.WriteTimeout = cfg.Redis.Timeout
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}

	return &RedisClient{
		client: redis.NewClient(opts),
		ttl:    cfg.Redis.CacheTTL,
	}
}

// Ping tests the Redis connection
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// CacheJob stores an extracted job record keyed by its job id.
func (r *RedisClient) CacheJob(ctx context.Context, job *models.Job) error {
	if job.JobID == "" {
		return fmt.Errorf("cannot cache job without an id")
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := r.client.Set(ctx, r.jobKey(job.JobID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache job %s: %w", job.JobID, err)
	}
	return nil
}

// GetCachedJob retrieves a cached job record by job id. The second result is
// false on a cache miss.
func (r *RedisClient) GetCachedJob(ctx context.Context, jobID string) (*models.Job, bool, error) {
	data, err := r.client.Get(ctx, r.jobKey(jobID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached job %s: %w", jobID, err)
	}

	var job models.Job
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached job %s: %w", jobID, err)
	}
	return &job, true, nil
}

// InvalidateJob removes a cached job record.
func (r *RedisClient) InvalidateJob(ctx context.Context, jobID string) error {
	return r.client.Del(ctx, r.jobKey(jobID)).Err()
}

func (r *RedisClient) jobKey(jobID string) string {
	return fmt.Sprintf("jobcrawl:job:%s", jobID)
}

// IsHealthy checks if Redis is connected and healthy
func (r *RedisClient) IsHealthy(ctx context.Context) error {
	return r.Ping(ctx)
}
