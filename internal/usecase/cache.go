package usecase

import (
	"context"
	"fmt"
	"time"
)

// SearchCache is the read-through cache in front of the listings store.
// Implementations must degrade gracefully: a cache outage returns misses,
// never errors that abort the request.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

func searchCacheKey(title, country string, page, perPage int) string {
	return fmt.Sprintf("jobs:search:%s|%s|%d|%d", title, country, page, perPage)
}

func insightCacheKey(title, country string) string {
	return fmt.Sprintf("jobs:insight:%s|%s", title, country)
}

const (
	trendsCacheKey = "jobs:trends"
	trendsLockKey  = "jobs:trends:lock"
)
