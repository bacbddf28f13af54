package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"catalitium/internal/repository"
)

var errStoreDown = errors.New("store down")

// mockJobRepository serves a fixed in-memory dataset, honoring limit/offset
// over the stored order the way the real store does.
type mockJobRepository struct {
	rows []repository.JobRow
	fail bool

	searchCalls int
}

func (m *mockJobRepository) match(f repository.JobFilter) []repository.JobRow {
	out := make([]repository.JobRow, 0, len(m.rows))
	for _, r := range m.rows {
		if f.Title != "" && !strings.Contains(strings.ToLower(r.Title), strings.ToLower(f.Title)) {
			continue
		}
		if f.CountryCode != "" && !strings.EqualFold(r.Country, f.CountryCode) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (m *mockJobRepository) Search(_ context.Context, f repository.JobFilter, limit, offset int) ([]repository.JobRow, error) {
	if m.fail {
		return nil, errStoreDown
	}
	m.searchCalls++
	matched := m.match(f)
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (m *mockJobRepository) Count(_ context.Context, f repository.JobFilter) (int, error) {
	if m.fail {
		return 0, errStoreDown
	}
	return len(m.match(f)), nil
}

func (m *mockJobRepository) GetByID(_ context.Context, id int64) (*repository.JobRow, error) {
	if m.fail {
		return nil, errStoreDown
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			row := m.rows[i]
			return &row, nil
		}
	}
	return nil, repository.ErrJobNotFound
}

func (m *mockJobRepository) GetLink(_ context.Context, id int64) (string, error) {
	row, err := m.GetByID(context.Background(), id)
	if err != nil {
		return "", err
	}
	return row.Link, nil
}

func (m *mockJobRepository) TitleCounts(_ context.Context, _ int) ([]repository.TitleCount, error) {
	if m.fail {
		return nil, errStoreDown
	}
	counts := make(map[string]int)
	for _, r := range m.rows {
		counts[r.Title]++
	}
	out := make([]repository.TitleCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, repository.TitleCount{Title: t, Count: c})
	}
	return out, nil
}

func (m *mockJobRepository) ListDatedSince(_ context.Context, since time.Time, _ int) ([]repository.TrendRow, error) {
	if m.fail {
		return nil, errStoreDown
	}
	out := make([]repository.TrendRow, 0)
	for _, r := range m.rows {
		if r.PostedAt == nil || r.PostedAt.Before(since) {
			continue
		}
		out = append(out, repository.TrendRow{Title: r.Title, Location: r.Location, PostedAt: *r.PostedAt})
	}
	return out, nil
}

func (m *mockJobRepository) InsertMany(_ context.Context, rows []repository.JobInsert) (int64, error) {
	if m.fail {
		return 0, errStoreDown
	}
	seen := make(map[string]bool)
	for _, r := range m.rows {
		seen[r.Link] = true
	}
	var n int64
	for _, r := range rows {
		if seen[r.Link] {
			continue
		}
		seen[r.Link] = true
		n++
	}
	return n, nil
}

type mockCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (c *mockCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = raw
	return nil
}

func (c *mockCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.store[key]; ok {
		return false, nil
	}
	c.store[key] = []byte(value)
	return true, nil
}

type mockEventSink struct {
	mu     sync.Mutex
	events []repository.SearchEvent
}

func (s *mockEventSink) EmitSearch(ev repository.SearchEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *mockEventSink) last() (repository.SearchEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return repository.SearchEvent{}, false
	}
	return s.events[len(s.events)-1], true
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func f64Ptr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }
