package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"catalitium/internal/config"
	"catalitium/internal/repository"
)

var fixedNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func searchConfig() config.SearchConfig {
	return config.SearchConfig{
		PerPageMax:     100,
		DefaultPerPage: 12,
		LinkDenylist:   []string{"https://spam.example/job"},
		DemoFallback:   true,
	}
}

func newSearchUsecase(repo *mockJobRepository, cache SearchCache, sink EventSink) *jobSearchUsecase {
	u := NewJobSearchUsecase(repo, cache, sink, searchConfig(), time.Minute, testLogger()).(*jobSearchUsecase)
	u.now = func() time.Time { return fixedNow }
	return u
}

func engineerRows(n int) []repository.JobRow {
	rows := make([]repository.JobRow, 0, n)
	for i := 1; i <= n; i++ {
		posted := fixedNow.AddDate(0, 0, -i)
		rows = append(rows, repository.JobRow{
			ID:       int64(i),
			Title:    fmt.Sprintf("software engineer %d", i),
			Company:  "Acme",
			Location: "Berlin, DE",
			Country:  "de",
			Link:     fmt.Sprintf("https://jobs.example/%d", i),
			PostedAt: &posted,
		})
	}
	return rows
}

func TestSearch_PagesAreContiguousSlices(t *testing.T) {
	repo := &mockJobRepository{rows: engineerRows(25)}
	u := newSearchUsecase(repo, nil, nil)

	perPage := 10
	var paged []int64
	for page := 1; page <= 2; page++ {
		res, err := u.Search(context.Background(), SearchInput{RawTitle: "engineer", Page: page, PerPage: perPage})
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if len(res.Items) > perPage {
			t.Fatalf("page %d: %d items exceeds per_page %d", page, len(res.Items), perPage)
		}
		for _, it := range res.Items {
			paged = append(paged, it.ID)
		}
	}

	full, err := u.Search(context.Background(), SearchInput{RawTitle: "engineer", Page: 1, PerPage: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(paged) != len(full.Items) {
		t.Fatalf("two pages of 10 should equal first 20: %d vs %d", len(paged), len(full.Items))
	}
	for i, it := range full.Items {
		if paged[i] != it.ID {
			t.Fatalf("order diverges at %d: %d vs %d", i, paged[i], it.ID)
		}
	}
}

func TestSearch_PaginationClamping(t *testing.T) {
	repo := &mockJobRepository{rows: engineerRows(5)}
	u := newSearchUsecase(repo, nil, nil)

	res, err := u.Search(context.Background(), SearchInput{RawTitle: "engineer", Page: -3, PerPage: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if res.Meta.Page != 1 {
		t.Fatalf("page not floored: %d", res.Meta.Page)
	}
	if res.Meta.PerPage != 100 {
		t.Fatalf("per_page not clamped to max: %d", res.Meta.PerPage)
	}
}

func TestSearch_DisplayPerPageFloor(t *testing.T) {
	repo := &mockJobRepository{rows: engineerRows(30)}
	u := newSearchUsecase(repo, nil, nil)

	// Sizes >= 5 are floored to 10 in metadata only.
	res, err := u.Search(context.Background(), SearchInput{RawTitle: "engineer", PerPage: 7})
	if err != nil {
		t.Fatal(err)
	}
	if res.Meta.PerPage != 10 {
		t.Fatalf("display floor not applied: %d", res.Meta.PerPage)
	}
	if len(res.Items) != 7 {
		t.Fatalf("row limit must stay at 7, got %d rows", len(res.Items))
	}

	// Tiny sizes pass through untouched.
	res, err = u.Search(context.Background(), SearchInput{RawTitle: "engineer", PerPage: 3})
	if err != nil {
		t.Fatal(err)
	}
	if res.Meta.PerPage != 3 {
		t.Fatalf("small per_page must pass through, got %d", res.Meta.PerPage)
	}
}

func TestSearch_DenylistSuppressesLinkOnly(t *testing.T) {
	posted := fixedNow.AddDate(0, 0, -5)
	repo := &mockJobRepository{rows: []repository.JobRow{
		{ID: 1, Title: "engineer", Link: "https://spam.example/job", PostedAt: &posted},
		{ID: 2, Title: "engineer", Link: "https://jobs.example/2", PostedAt: &posted},
	}}
	u := newSearchUsecase(repo, nil, nil)

	res, err := u.Search(context.Background(), SearchInput{RawTitle: "engineer"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Meta.Total != 2 || len(res.Items) != 2 {
		t.Fatalf("suppression must not filter rows: total=%d items=%d", res.Meta.Total, len(res.Items))
	}
	if res.Items[0].Link != nil {
		t.Fatalf("denylisted link not suppressed: %v", *res.Items[0].Link)
	}
	if res.Items[1].Link == nil || *res.Items[1].Link != "https://jobs.example/2" {
		t.Fatalf("clean link must survive")
	}
}

func TestSearch_FreshnessFlags(t *testing.T) {
	cases := []struct {
		name    string
		posted  *time.Time
		isNew   bool
		isGhost bool
	}{
		{"posted today", timePtr(fixedNow.Add(-2 * time.Hour)), true, false},
		{"exactly two days", timePtr(fixedNow.Add(-48 * time.Hour)), true, false},
		{"five days old", timePtr(fixedNow.AddDate(0, 0, -5)), false, false},
		{"exactly thirty days", timePtr(fixedNow.AddDate(0, 0, -30)), false, false},
		{"over thirty days", timePtr(fixedNow.AddDate(0, 0, -31)), false, true},
		{"undated", nil, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockJobRepository{rows: []repository.JobRow{
				{ID: 1, Title: "engineer", PostedAt: tc.posted},
			}}
			u := newSearchUsecase(repo, nil, nil)
			res, err := u.Search(context.Background(), SearchInput{RawTitle: "engineer"})
			if err != nil {
				t.Fatal(err)
			}
			it := res.Items[0]
			if it.IsNew != tc.isNew || it.IsGhost != tc.isGhost {
				t.Fatalf("got is_new=%v is_ghost=%v, want %v/%v", it.IsNew, it.IsGhost, tc.isNew, tc.isGhost)
			}
			if it.IsNew && it.IsGhost {
				t.Fatal("is_new and is_ghost must be mutually exclusive")
			}
		})
	}
}

func TestSearch_DemoFallbackOnlyWhenUnfiltered(t *testing.T) {
	repo := &mockJobRepository{}
	u := newSearchUsecase(repo, nil, nil)

	res, err := u.Search(context.Background(), SearchInput{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsDemo || len(res.Items) == 0 {
		t.Fatalf("unfiltered empty search must fall back to demo set")
	}
	for _, it := range res.Items {
		if !it.IsDemo {
			t.Fatalf("demo item %d not flagged", it.ID)
		}
		if it.ID >= 0 {
			t.Fatalf("demo ids must stay out of the real id space: %d", it.ID)
		}
	}
	if res.Meta.Page != 1 || res.Meta.Total != len(res.Items) {
		t.Fatalf("demo metadata not rewritten: %+v", res.Meta)
	}
}

func TestSearch_FilteredZeroResultStaysEmpty(t *testing.T) {
	repo := &mockJobRepository{rows: engineerRows(3)}
	u := newSearchUsecase(repo, nil, nil)

	res, err := u.Search(context.Background(), SearchInput{RawTitle: "underwater basket weaver"})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsDemo || len(res.Items) != 0 || res.Meta.Total != 0 {
		t.Fatalf("filtered zero result must stay empty and non-demo: %+v", res)
	}
}

func TestSearch_StoreFailureIsNotDemo(t *testing.T) {
	repo := &mockJobRepository{fail: true}
	u := newSearchUsecase(repo, nil, nil)

	_, err := u.Search(context.Background(), SearchInput{})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("store failure must surface as ErrStoreUnavailable, got %v", err)
	}
}

func TestSearch_HighPayRewrite(t *testing.T) {
	repo := &mockJobRepository{}
	sink := &mockEventSink{}
	u := newSearchUsecase(repo, nil, sink)

	res, err := u.Search(context.Background(), SearchInput{RawTitle: "engineer >100k"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Query.CountryCode != "HIGH_PAY" {
		t.Fatalf("six-figure floor with no country must search hub cities, got %q", res.Query.CountryCode)
	}
	if res.Query.DisplayCountry != "High-pay hubs" {
		t.Fatalf("display country not rewritten: %q", res.Query.DisplayCountry)
	}
	if res.IsDemo {
		t.Fatal("rewritten search is filtered; demo must not trigger")
	}
	ev, ok := sink.last()
	if !ok || ev.NormCountry != "HIGH_PAY" || ev.SalaryFloor == nil || *ev.SalaryFloor != 100000 {
		t.Fatalf("analytics event missing rewrite: %+v", ev)
	}

	// A country filter disables the rewrite.
	res, err = u.Search(context.Background(), SearchInput{RawTitle: "engineer >100k", RawCountry: "germany"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Query.CountryCode != "DE" {
		t.Fatalf("rewrite must not fire with a country filter, got %q", res.Query.CountryCode)
	}
}

func TestSearch_CachedResultSkipsStore(t *testing.T) {
	repo := &mockJobRepository{rows: engineerRows(4)}
	cache := newMockCache()
	u := newSearchUsecase(repo, cache, nil)

	in := SearchInput{RawTitle: "engineer", Page: 1, PerPage: 10}
	first, err := u.Search(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	calls := repo.searchCalls

	second, err := u.Search(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if repo.searchCalls != calls {
		t.Fatalf("second identical search must be served from cache")
	}
	if second.Meta.Total != first.Meta.Total || len(second.Items) != len(first.Items) {
		t.Fatalf("cached result diverges: %+v vs %+v", second.Meta, first.Meta)
	}
}

func TestSearch_NormalizationExamples(t *testing.T) {
	repo := &mockJobRepository{rows: engineerRows(2)}
	u := newSearchUsecase(repo, nil, nil)

	res, err := u.Search(context.Background(), SearchInput{RawTitle: "SWE", RawCountry: "Germany"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Query.Title != "software engineer" || res.Query.CountryCode != "DE" {
		t.Fatalf("canonical query wrong: %+v", res.Query)
	}

	sink := &mockEventSink{}
	u2 := newSearchUsecase(repo, nil, sink)
	if _, err := u2.Search(context.Background(), SearchInput{RawTitle: "backend 80k-100k"}); err != nil {
		t.Fatal(err)
	}
	ev, _ := sink.last()
	if ev.SalaryFloor == nil || *ev.SalaryFloor != 80000 || ev.SalaryCeil == nil || *ev.SalaryCeil != 100000 {
		t.Fatalf("salary hint not recorded: %+v", ev)
	}
	if ev.NormTitle != "back end" {
		t.Fatalf("salary range must be stripped from the canonical title: %q", ev.NormTitle)
	}
}
