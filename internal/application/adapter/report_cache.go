// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReportCache caches serialized overspending reports. The cache is an
// optimization only: implementations must never be load-bearing for
// correctness, and callers treat every error as a miss.
type ReportCache interface {
	// Get returns the cached payload for the key, or nil when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the payload under the key. The implementation owns the TTL.
	Set(ctx context.Context, key string, payload []byte) error

	// InvalidateUser removes every cached report belonging to the user.
	// Called after any mutation that can change analysis results.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}

// ReportCacheKey builds the cache key for one (user, periods, asOf) run.
func ReportCacheKey(userID uuid.UUID, periods int, asOf time.Time) string {
	return fmt.Sprintf("overspending:%s:%d:%s", userID, periods, asOf.Format("2006-01-02"))
}

// ReportCacheUserPattern matches every cached report key for the user.
func ReportCacheUserPattern(userID uuid.UUID) string {
	return fmt.Sprintf("overspending:%s:*", userID)
}
