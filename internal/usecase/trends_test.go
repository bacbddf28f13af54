package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalitium/internal/repository"
)

func newTrendsUsecase(repo *mockJobRepository) *trendsUsecase {
	u := NewTrendsUsecase(repo, nil, time.Minute, testLogger()).(*trendsUsecase)
	u.now = func() time.Time { return fixedNow }
	return u
}

func datedRow(id int64, title, location string, postedAt time.Time) repository.JobRow {
	return repository.JobRow{ID: id, Title: title, Location: location, PostedAt: &postedAt}
}

func TestWeeklyTrends_BucketsAreMondayAlignedAndZeroFilled(t *testing.T) {
	// fixedNow is Tuesday 2026-03-10; its week starts Monday 2026-03-09.
	thisMonday := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	repo := &mockJobRepository{rows: []repository.JobRow{
		datedRow(1, "ai engineer", "Remote", thisMonday.Add(10*time.Hour)),
		datedRow(2, "senior developer", "Berlin", thisMonday.AddDate(0, 0, -14)),
		datedRow(3, "accountant", "Paris", thisMonday.AddDate(0, 0, -14).Add(72*time.Hour)),
	}}
	u := newTrendsUsecase(repo)

	buckets, err := u.WeeklyTrends(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(buckets) != trendWeeks {
		t.Fatalf("want %d contiguous buckets, got %d", trendWeeks, len(buckets))
	}
	for i, b := range buckets {
		if b.WeekStart.Weekday() != time.Monday {
			t.Fatalf("bucket %d starts on %s", i, b.WeekStart.Weekday())
		}
		if i > 0 {
			if got := b.WeekStart.Sub(buckets[i-1].WeekStart); got != 7*24*time.Hour {
				t.Fatalf("buckets not contiguous at %d: %v", i, got)
			}
		}
	}
	if last := buckets[len(buckets)-1]; !last.WeekStart.Equal(thisMonday) {
		t.Fatalf("last bucket = %v, want %v", last.WeekStart, thisMonday)
	}

	var totals int
	for _, b := range buckets {
		totals += b.Total
	}
	if totals != 3 {
		t.Fatalf("all dated rows in window must be counted once, got %d", totals)
	}

	// Weeks without postings still appear, zero-valued.
	zeroes := 0
	for _, b := range buckets {
		if b.Total == 0 {
			zeroes++
		}
	}
	if zeroes != trendWeeks-2 {
		t.Fatalf("expected %d empty buckets, got %d", trendWeeks-2, zeroes)
	}
}

func TestWeeklyTrends_CategoryCounts(t *testing.T) {
	thisMonday := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	repo := &mockJobRepository{rows: []repository.JobRow{
		datedRow(1, "machine learning engineer", "Remote", thisMonday),
		datedRow(2, "senior backend developer", "Berlin", thisMonday.Add(time.Hour)),
		datedRow(3, "gardener", "Lyon", thisMonday.Add(2*time.Hour)),
	}}
	u := newTrendsUsecase(repo)

	buckets, err := u.WeeklyTrends(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	last := buckets[len(buckets)-1]
	if last.Total != 3 {
		t.Fatalf("total = %d", last.Total)
	}
	if last.AI != 1 {
		t.Fatalf("ai = %d", last.AI)
	}
	// Both the ML engineer and the backend developer count toward dev.
	if last.Dev != 2 {
		t.Fatalf("dev = %d", last.Dev)
	}
	if last.Senior != 1 {
		t.Fatalf("senior = %d", last.Senior)
	}
	if last.Remote != 1 {
		t.Fatalf("remote = %d", last.Remote)
	}
}

func TestWeeklyTrends_StoreFailure(t *testing.T) {
	u := newTrendsUsecase(&mockJobRepository{fail: true})
	_, err := u.WeeklyTrends(context.Background())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
}
