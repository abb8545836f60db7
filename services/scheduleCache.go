package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SalahTracker/models"
	"github.com/redis/go-redis/v9"
)

// ScheduleCache keeps built schedules so a failing source can fall back to
// the last known good one.
type ScheduleCache interface {
	Get(ctx context.Context, key string) (models.Schedule, bool, error)
	Set(ctx context.Context, key string, schedule models.Schedule, ttl time.Duration) error
}

func scheduleKey(coords models.Coordinates, date string) string {
	return fmt.Sprintf("schedule:%.4f:%.4f:%s", coords.Latitude, coords.Longitude, date)
}

func latestScheduleKey(coords models.Coordinates) string {
	return fmt.Sprintf("schedule:%.4f:%.4f:latest", coords.Latitude, coords.Longitude)
}

type RedisScheduleCache struct {
	client *redis.Client
}

func NewRedisScheduleCache(client *redis.Client) *RedisScheduleCache {
	return &RedisScheduleCache{client: client}
}

func (c *RedisScheduleCache) Get(ctx context.Context, key string) (models.Schedule, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Schedule{}, false, nil
	}
	if err != nil {
		return models.Schedule{}, false, err
	}

	var schedule models.Schedule
	if err := json.Unmarshal(raw, &schedule); err != nil {
		return models.Schedule{}, false, fmt.Errorf("decode cached schedule %s: %w", key, err)
	}
	return schedule, true, nil
}

func (c *RedisScheduleCache) Set(ctx context.Context, key string, schedule models.Schedule, ttl time.Duration) error {
	raw, err := json.Marshal(schedule)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

type memoryEntry struct {
	schedule models.Schedule
	expires  time.Time
}

// MemoryScheduleCache is used when no redis is configured.
type MemoryScheduleCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryScheduleCache() *MemoryScheduleCache {
	return &MemoryScheduleCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryScheduleCache) Get(ctx context.Context, key string) (models.Schedule, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || (!e.expires.IsZero() && c.now().After(e.expires)) {
		return models.Schedule{}, false, nil
	}
	return e.schedule, true, nil
}

func (c *MemoryScheduleCache) Set(ctx context.Context, key string, schedule models.Schedule, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := memoryEntry{schedule: schedule}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}
