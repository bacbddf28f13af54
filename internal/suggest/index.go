// Package suggest holds the in-memory title autocomplete index. The
// vocabulary is read-only between rebuilds; a rebuild constructs a fresh
// snapshot and swaps it in atomically so in-flight lookups never block.
package suggest

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync/atomic"

	"catalitium/internal/repository"
)

type entry struct {
	title   string
	lowered string
	count   int
}

type snapshot struct {
	entries []entry
}

// TitleSource yields the distinct-title vocabulary with frequencies.
type TitleSource interface {
	TitleCounts(ctx context.Context, limit int) ([]repository.TitleCount, error)
}

type Index struct {
	titles TitleSource
	logger *log.Logger

	limit     int
	minPrefix int
	vocabCap  int

	current atomic.Pointer[snapshot]
}

func NewIndex(titles TitleSource, limit, minPrefix int, logger *log.Logger) *Index {
	if limit <= 0 {
		limit = 8
	}
	if minPrefix <= 0 {
		minPrefix = 2
	}
	idx := &Index{
		titles:    titles,
		logger:    logger,
		limit:     limit,
		minPrefix: minPrefix,
		vocabCap:  5000,
	}
	idx.current.Store(&snapshot{})
	return idx
}

// Rebuild loads the distinct-title vocabulary and swaps it in. The previous
// snapshot keeps serving until the swap, so a failed rebuild leaves the old
// vocabulary intact.
func (i *Index) Rebuild(ctx context.Context) error {
	counts, err := i.titles.TitleCounts(ctx, i.vocabCap)
	if err != nil {
		i.logger.Printf("[Suggest] vocabulary rebuild failed err=%v", err)
		return err
	}

	entries := make([]entry, 0, len(counts))
	for _, tc := range counts {
		title := strings.TrimSpace(tc.Title)
		if title == "" {
			continue
		}
		entries = append(entries, entry{
			title:   title,
			lowered: strings.ToLower(title),
			count:   tc.Count,
		})
	}
	// Pre-rank by frequency so lookups only scan and cut.
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].count != entries[b].count {
			return entries[a].count > entries[b].count
		}
		return entries[a].title < entries[b].title
	})

	i.current.Store(&snapshot{entries: entries})
	i.logger.Printf("[Suggest] vocabulary rebuilt titles=%d", len(entries))
	return nil
}

// Suggest returns ranked title suggestions for a partial query. Inputs
// shorter than the minimum prefix yield an empty list, not an error.
func (i *Index) Suggest(prefix string) []string {
	q := strings.ToLower(strings.TrimSpace(prefix))
	if len(q) < i.minPrefix {
		return nil
	}

	snap := i.current.Load()
	out := make([]string, 0, i.limit)
	for _, e := range snap.entries {
		if !strings.Contains(e.lowered, q) {
			continue
		}
		out = append(out, e.title)
		if len(out) == i.limit {
			break
		}
	}
	return out
}
