// Package cache keeps recently computed analytics reports in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/request-analytics/internal/analytics"
)

const keyPrefix = "analytics:report:"

// Entry is a cached report together with the ID it was first issued under.
type Entry struct {
	ID     string           `json:"id"`
	Report analytics.Report `json:"report"`
}

// ReportCache stores reports by query key.
type ReportCache interface {
	Get(ctx context.Context, key string) (*Entry, bool, error)
	Set(ctx context.Context, key string, entry Entry) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache returns a Redis-backed cache, or a no-op cache when client
// is nil or ttl is not positive.
func NewReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	if client == nil || ttl <= 0 {
		return noopCache{}
	}
	return &redisReportCache{client: client, ttl: ttl}
}

func (c *redisReportCache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached report: %w", err)
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("decode cached report: %w", err)
	}
	return &entry, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, key string, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache report: %w", err)
	}
	return nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*Entry, bool, error) {
	return nil, false, nil
}

func (noopCache) Set(context.Context, string, Entry) error {
	return nil
}

// Key identifies a report by its query and the minute it was computed in.
// Reports computed within the same minute for the same query are shared.
func Key(q analytics.Query, now time.Time, loc *time.Location) string {
	from, to := q.Bounds(loc)
	status := "*"
	if q.Status != nil {
		status = string(*q.Status)
	}
	department := "*"
	if q.Department != nil {
		department = fmt.Sprintf("%q", *q.Department)
	}
	parts := []string{
		boundKey(from),
		boundKey(to),
		"d=" + department,
		"s=" + status,
		fmt.Sprintf("seed=%d", q.Seed),
		"tz=" + loc.String(),
		"at=" + now.UTC().Truncate(time.Minute).Format("200601021504"),
	}
	return strings.Join(parts, "|")
}

func boundKey(t time.Time) string {
	if t.IsZero() {
		return "*"
	}
	return t.Format("2006-01-02")
}
