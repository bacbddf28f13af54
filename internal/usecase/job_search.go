package usecase

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"catalitium/internal/config"
	"catalitium/internal/normalize"
	"catalitium/internal/repository"
)

const (
	newWindow   = 2 * 24 * time.Hour
	ghostWindow = 30 * 24 * time.Hour
)

// EventSink receives analytics events about executed searches. Implementations
// must never block the request path.
type EventSink interface {
	EmitSearch(ev repository.SearchEvent)
}

type SearchInput struct {
	RawTitle   string
	RawCountry string
	Page       int
	PerPage    int
	SessionID  string
}

// JobItem is one listing as served. Link is nil either because the source row
// had none or because the denylist suppressed it.
type JobItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Link        *string    `json:"link"`
	PostedAt    *time.Time `json:"posted_at"`
	IsNew       bool       `json:"is_new"`
	IsGhost     bool       `json:"is_ghost"`
	IsDemo      bool       `json:"is_demo,omitempty"`
}

type PageMeta struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Pages   int  `json:"pages"`
	Total   int  `json:"total"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// QueryEcho reports what the request was normalized into. DisplayCountry may
// differ from CountryCode when a pseudo-region rewrite fired.
type QueryEcho struct {
	Title          string `json:"title"`
	CountryCode    string `json:"country"`
	DisplayCountry string `json:"display_country"`
}

type SearchResult struct {
	Items  []JobItem `json:"items"`
	Meta   PageMeta  `json:"meta"`
	Query  QueryEcho `json:"query"`
	IsDemo bool      `json:"is_demo"`
}

type JobSearchUsecase interface {
	Search(ctx context.Context, in SearchInput) (*SearchResult, error)
}

type jobSearchUsecase struct {
	jobs     repository.JobRepository
	cache    SearchCache
	events   EventSink
	cfg      config.SearchConfig
	cacheTTL time.Duration
	logger   *log.Logger
	denied   map[string]struct{}
	now      func() time.Time
}

func NewJobSearchUsecase(
	jobs repository.JobRepository,
	cache SearchCache,
	events EventSink,
	cfg config.SearchConfig,
	cacheTTL time.Duration,
	logger *log.Logger,
) JobSearchUsecase {
	denied := make(map[string]struct{}, len(cfg.LinkDenylist))
	for _, l := range cfg.LinkDenylist {
		denied[strings.TrimSpace(l)] = struct{}{}
	}
	return &jobSearchUsecase{
		jobs:     jobs,
		cache:    cache,
		events:   events,
		cfg:      cfg,
		cacheTTL: cacheTTL,
		logger:   logger,
		denied:   denied,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *jobSearchUsecase) Search(ctx context.Context, in SearchInput) (*SearchResult, error) {
	page, perPage := u.clampPagination(in.Page, in.PerPage)

	q := normalize.Query(in.RawTitle, in.RawCountry)

	searchCountry := q.CountryCode
	displayCountry := q.CountryCode
	if displayCountry == "" {
		displayCountry = strings.TrimSpace(in.RawCountry)
	}
	// A six-figure floor typed into the title with no country filter searches
	// the high-pay hub cities instead of everywhere.
	if q.SalaryHint.Floor != nil && *q.SalaryHint.Floor >= 100000 &&
		strings.Contains(strings.ToLower(in.RawTitle), "100k") &&
		strings.TrimSpace(in.RawCountry) == "" {
		searchCountry = "HIGH_PAY"
		displayCountry = "High-pay hubs"
	}

	filter := repository.JobFilter{Title: q.Title, CountryCode: searchCountry}

	cacheKey := ""
	if u.cache != nil && !filter.IsEmpty() {
		cacheKey = searchCacheKey(filter.Title, filter.CountryCode, page, perPage)
		var cached SearchResult
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			u.emit(in, q, searchCountry, cached.Meta.Total, page, perPage)
			return &cached, nil
		}
	}

	total, err := u.jobs.Count(ctx, filter)
	if err != nil {
		u.logger.Printf("[JobSearch] count failed title=%q country=%q err=%v", filter.Title, filter.CountryCode, err)
		return nil, ErrStoreUnavailable
	}

	rows, err := u.jobs.Search(ctx, filter, perPage, (page-1)*perPage)
	if err != nil {
		u.logger.Printf("[JobSearch] search failed title=%q country=%q err=%v", filter.Title, filter.CountryCode, err)
		return nil, ErrStoreUnavailable
	}

	now := u.now()
	items := make([]JobItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, u.toItem(row, now))
	}

	isDemo := false
	// The placeholder set substitutes only an unfiltered zero result on a
	// successful store call. A filter that matched nothing stays empty.
	if total == 0 && filter.IsEmpty() && u.cfg.DemoFallback {
		items = demoListings()
		total = len(items)
		page = 1
		perPage = len(items)
		isDemo = true
	}

	res := &SearchResult{
		Items:  items,
		Meta:   buildPageMeta(page, perPage, total),
		Query:  QueryEcho{Title: q.Title, CountryCode: searchCountry, DisplayCountry: displayCountry},
		IsDemo: isDemo,
	}

	if cacheKey != "" && !isDemo {
		if err := u.cache.SetJSON(ctx, cacheKey, res, u.cacheTTL); err != nil {
			u.logger.Printf("[JobSearch] cache store failed key=%s err=%v", cacheKey, err)
		}
	}

	u.emit(in, q, searchCountry, total, page, perPage)
	return res, nil
}

func (u *jobSearchUsecase) clampPagination(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = u.cfg.DefaultPerPage
	}
	if perPage > u.cfg.PerPageMax {
		perPage = u.cfg.PerPageMax
	}
	return page, perPage
}

func (u *jobSearchUsecase) toItem(row repository.JobRow, now time.Time) JobItem {
	item := JobItem{
		ID:          row.ID,
		Title:       cleanTitle(row.Title),
		Company:     strings.TrimSpace(row.Company),
		Location:    defaultLocation(row.Location),
		Description: strings.TrimSpace(row.Description),
		PostedAt:    row.PostedAt,
		IsNew:       isNew(row.PostedAt, now),
		IsGhost:     isGhost(row.PostedAt, now),
	}
	if link := strings.TrimSpace(row.Link); link != "" {
		if _, suppressed := u.denied[link]; !suppressed {
			item.Link = &link
		}
	}
	return item
}

func (u *jobSearchUsecase) emit(in SearchInput, q normalize.CanonicalQuery, searchCountry string, total, page, perPage int) {
	if u.events == nil {
		return
	}
	u.events.EmitSearch(repository.SearchEvent{
		RawTitle:    in.RawTitle,
		RawCountry:  in.RawCountry,
		NormTitle:   q.Title,
		NormCountry: searchCountry,
		SalaryFloor: q.SalaryHint.Floor,
		SalaryCeil:  q.SalaryHint.Ceiling,
		ResultCount: total,
		Page:        page,
		PerPage:     perPage,
		SessionID:   in.SessionID,
	})
}

// buildPageMeta computes the surfaced pagination block. The metadata page
// size gets a display floor of 10 (sizes below 5 pass through untouched) so
// the UI never reports an implausibly tiny page; the actual row limit is
// never widened.
func buildPageMeta(page, perPage, total int) PageMeta {
	display := displayPerPage(perPage)
	pages := 1
	if total > 0 && display > 0 {
		pages = (total + display - 1) / display
		if pages < 1 {
			pages = 1
		}
	}
	return PageMeta{
		Page:    page,
		PerPage: display,
		Pages:   pages,
		Total:   total,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
}

func displayPerPage(perPage int) int {
	if perPage < 5 {
		return perPage
	}
	if perPage < 10 {
		return 10
	}
	return perPage
}

func isNew(postedAt *time.Time, now time.Time) bool {
	if postedAt == nil {
		return false
	}
	return now.Sub(postedAt.UTC()) <= newWindow
}

func isGhost(postedAt *time.Time, now time.Time) bool {
	if postedAt == nil {
		return false
	}
	return now.Sub(postedAt.UTC()) > ghostWindow
}

var repeatedWhitespace = regexp.MustCompile(`\s+`)

func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "(Untitled)"
	}
	return repeatedWhitespace.ReplaceAllString(title, " ")
}

func defaultLocation(loc string) string {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return "Remote / Anywhere"
	}
	return loc
}
