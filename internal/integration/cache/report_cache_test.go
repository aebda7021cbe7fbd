package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/paytrack/backend/internal/application/adapter"
)

func newTestCache(t *testing.T, ttl time.Duration) (adapter.ReportCache, *miniredis.Miniredis) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewReportCache(client, ttl), mini
}

func TestReportCache_SetAndGet(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	key := adapter.ReportCacheKey(uuid.New(), 6, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	payload := []byte(`{"total_overspent":"70"}`)

	if err := cache.Set(ctx, key, payload); err != nil {
		t.Fatalf("unexpected error on set: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error on get: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("expected payload %s, got %s", payload, got)
	}
}

func TestReportCache_GetMissingKey(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)

	got, err := cache.Get(context.Background(), "overspending:missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil payload for missing key, got %s", got)
	}
}

func TestReportCache_EntriesExpire(t *testing.T) {
	cache, mini := newTestCache(t, time.Minute)
	ctx := context.Background()

	key := adapter.ReportCacheKey(uuid.New(), 3, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	if err := cache.Set(ctx, key, []byte("payload")); err != nil {
		t.Fatalf("unexpected error on set: %v", err)
	}

	if ttl := mini.TTL(key); ttl != time.Minute {
		t.Errorf("expected TTL %v, got %v", time.Minute, ttl)
	}

	mini.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error after expiry: %v", err)
	}
	if got != nil {
		t.Errorf("expected expired entry to be a miss, got %s", got)
	}
}

func TestReportCache_InvalidateUser(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()
	asOf := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	userKeys := []string{
		adapter.ReportCacheKey(userID, 3, asOf),
		adapter.ReportCacheKey(userID, 6, asOf),
		adapter.ReportCacheKey(userID, 6, asOf.AddDate(0, 0, 1)),
	}
	otherKey := adapter.ReportCacheKey(otherID, 6, asOf)

	for _, key := range userKeys {
		if err := cache.Set(ctx, key, []byte("payload")); err != nil {
			t.Fatalf("unexpected error on set: %v", err)
		}
	}
	if err := cache.Set(ctx, otherKey, []byte("other")); err != nil {
		t.Fatalf("unexpected error on set: %v", err)
	}

	if err := cache.InvalidateUser(ctx, userID); err != nil {
		t.Fatalf("unexpected error on invalidate: %v", err)
	}

	for _, key := range userKeys {
		got, err := cache.Get(ctx, key)
		if err != nil {
			t.Fatalf("unexpected error on get: %v", err)
		}
		if got != nil {
			t.Errorf("expected key %s to be invalidated, got %s", key, got)
		}
	}

	got, err := cache.Get(ctx, otherKey)
	if err != nil {
		t.Fatalf("unexpected error on get: %v", err)
	}
	if string(got) != "other" {
		t.Errorf("expected other user's entry to survive, got %s", got)
	}
}

func TestReportCache_InvalidateUserWithNoEntries(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)

	if err := cache.InvalidateUser(context.Background(), uuid.New()); err != nil {
		t.Errorf("expected no error invalidating empty keyspace, got %v", err)
	}
}
