package usecase

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"catalitium/internal/normalize"
	"catalitium/internal/repository"
)

const insightSampleLimit = 1000

// minMedianSamples is the cutoff below which no median is reported; tiny
// samples produce misleading figures.
const minMedianSamples = 3

// SalaryInsight summarizes salary and remote statistics for one canonical
// query. Median and Currency are nil/empty when too few listings carry
// salary data.
type SalaryInsight struct {
	Count       int     `json:"count"`
	Median      *int    `json:"median"`
	Currency    string  `json:"currency,omitempty"`
	RemoteShare float64 `json:"remote_share"`
}

type InsightUsecase interface {
	SalaryInsight(ctx context.Context, rawTitle, rawCountry string) (*SalaryInsight, error)
}

type insightUsecase struct {
	jobs     repository.JobRepository
	cache    SearchCache
	cacheTTL time.Duration
	logger   *log.Logger
}

func NewInsightUsecase(jobs repository.JobRepository, cache SearchCache, cacheTTL time.Duration, logger *log.Logger) InsightUsecase {
	return &insightUsecase{jobs: jobs, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (u *insightUsecase) SalaryInsight(ctx context.Context, rawTitle, rawCountry string) (*SalaryInsight, error) {
	q := normalize.Query(rawTitle, rawCountry)
	filter := repository.JobFilter{Title: q.Title, CountryCode: q.CountryCode}

	cacheKey := ""
	if u.cache != nil {
		cacheKey = insightCacheKey(filter.Title, filter.CountryCode)
		var cached SalaryInsight
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	total, err := u.jobs.Count(ctx, filter)
	if err != nil {
		u.logger.Printf("[Insight] count failed title=%q country=%q err=%v", filter.Title, filter.CountryCode, err)
		return nil, ErrStoreUnavailable
	}

	rows, err := u.jobs.Search(ctx, filter, insightSampleLimit, 0)
	if err != nil {
		u.logger.Printf("[Insight] sample failed title=%q country=%q err=%v", filter.Title, filter.CountryCode, err)
		return nil, ErrStoreUnavailable
	}

	samples := make([]float64, 0, len(rows))
	currencies := make(map[string]int)
	remote := 0
	for _, row := range rows {
		if isRemoteLocation(row.Location) {
			remote++
		}
		if row.SalaryMin == nil || row.SalaryMax == nil {
			continue
		}
		samples = append(samples, (*row.SalaryMin+*row.SalaryMax)/2)
		if c := strings.ToUpper(strings.TrimSpace(row.Currency)); c != "" {
			currencies[c]++
		}
	}

	out := &SalaryInsight{Count: total}
	if len(rows) > 0 {
		out.RemoteShare = math.Round(float64(remote)/float64(len(rows))*100) / 100
	}
	if len(samples) >= minMedianSamples {
		m := int(median(samples))
		out.Median = &m
		out.Currency = pluralityCurrency(currencies)
	}

	if cacheKey != "" {
		if err := u.cache.SetJSON(ctx, cacheKey, out, u.cacheTTL); err != nil {
			u.logger.Printf("[Insight] cache store failed key=%s err=%v", cacheKey, err)
		}
	}
	return out, nil
}

// median computes the standard midpoint: even-sized samples average the two
// central values. The input slice is sorted in place.
func median(vals []float64) float64 {
	sort.Float64s(vals)
	n := len(vals)
	if n == 0 {
		return 0
	}
	if n%2 == 0 {
		return (vals[n/2-1] + vals[n/2]) / 2
	}
	return vals[n/2]
}

// pluralityCurrency picks the most frequent currency code; ties break
// lexicographically so the result is deterministic.
func pluralityCurrency(counts map[string]int) string {
	best := ""
	bestCount := 0
	codes := make([]string, 0, len(counts))
	for c := range counts {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	for _, c := range codes {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best
}

func isRemoteLocation(loc string) bool {
	return strings.Contains(strings.ToLower(loc), "remote")
}
