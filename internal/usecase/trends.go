package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"catalitium/internal/repository"
)

const (
	trendWeeks       = 8
	trendSampleLimit = 20000
)

// TrendBucket is one Monday-aligned week of posting counts, total plus the
// tracked category slices.
type TrendBucket struct {
	WeekStart time.Time `json:"week_start"`
	Total     int       `json:"total"`
	AI        int       `json:"ai"`
	Dev       int       `json:"dev"`
	Senior    int       `json:"senior"`
	Remote    int       `json:"remote"`
}

type TrendsUsecase interface {
	WeeklyTrends(ctx context.Context) ([]TrendBucket, error)
}

type trendsUsecase struct {
	jobs     repository.JobRepository
	cache    SearchCache
	cacheTTL time.Duration
	logger   *log.Logger
	now      func() time.Time
}

func NewTrendsUsecase(jobs repository.JobRepository, cache SearchCache, cacheTTL time.Duration, logger *log.Logger) TrendsUsecase {
	return &trendsUsecase{
		jobs:     jobs,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WeeklyTrends returns the last trendWeeks Monday-aligned buckets, oldest
// first. Every week in the window appears even when it counted nothing, so
// chart consumers never have to infer gaps.
func (u *trendsUsecase) WeeklyTrends(ctx context.Context) ([]TrendBucket, error) {
	if u.cache != nil {
		var cached []TrendBucket
		if hit, err := u.cache.GetJSON(ctx, trendsCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
		// Best-effort stampede guard: a concurrent miss re-checks the cache
		// once instead of scanning the store in parallel. Losing the lock
		// race and still computing is acceptable.
		if ok, _ := u.cache.SetIfNotExists(ctx, trendsLockKey, "1", 10*time.Second); !ok {
			if hit, err := u.cache.GetJSON(ctx, trendsCacheKey, &cached); err == nil && hit {
				return cached, nil
			}
		}
	}

	now := u.now()
	windowStart := weekStart(now).AddDate(0, 0, -7*(trendWeeks-1))

	rows, err := u.jobs.ListDatedSince(ctx, windowStart, trendSampleLimit)
	if err != nil {
		u.logger.Printf("[Trends] listing scan failed err=%v", err)
		return nil, ErrStoreUnavailable
	}

	buckets := make([]TrendBucket, trendWeeks)
	for i := range buckets {
		buckets[i].WeekStart = windowStart.AddDate(0, 0, 7*i)
	}

	for _, row := range rows {
		ws := weekStart(row.PostedAt)
		idx := int(ws.Sub(windowStart).Hours()) / (24 * 7)
		if idx < 0 || idx >= trendWeeks {
			continue
		}
		b := &buckets[idx]
		b.Total++
		title := strings.ToLower(row.Title)
		if strings.Contains(title, "ai") || strings.Contains(title, "machine learning") || strings.Contains(title, "ml engineer") {
			b.AI++
		}
		if strings.Contains(title, "developer") || strings.Contains(title, "engineer") {
			b.Dev++
		}
		if strings.Contains(title, "senior") {
			b.Senior++
		}
		if isRemoteLocation(row.Location) {
			b.Remote++
		}
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, trendsCacheKey, buckets, u.cacheTTL); err != nil {
			u.logger.Printf("[Trends] cache store failed err=%v", err)
		}
	}
	return buckets, nil
}

// weekStart truncates to the Monday of t's week, in UTC at midnight.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
