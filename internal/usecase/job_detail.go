package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"catalitium/internal/config"
	"catalitium/internal/normalize"
	"catalitium/internal/repository"
)

const maxRelated = 3

// RelatedJob is the short projection shown alongside a detail page.
type RelatedJob struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Company  string     `json:"company"`
	Location string     `json:"location"`
	PostedAt *time.Time `json:"posted_at"`
}

type JobDetail struct {
	Job     JobItem      `json:"job"`
	Related []RelatedJob `json:"related"`
}

type JobDetailUsecase interface {
	GetDetail(ctx context.Context, id int64) (*JobDetail, error)
	ResolveLink(ctx context.Context, id int64) (string, error)
}

type jobDetailUsecase struct {
	jobs   repository.JobRepository
	logger *log.Logger
	denied map[string]struct{}
	now    func() time.Time
}

func NewJobDetailUsecase(jobs repository.JobRepository, cfg config.SearchConfig, logger *log.Logger) JobDetailUsecase {
	denied := make(map[string]struct{}, len(cfg.LinkDenylist))
	for _, l := range cfg.LinkDenylist {
		denied[strings.TrimSpace(l)] = struct{}{}
	}
	return &jobDetailUsecase{
		jobs:   jobs,
		logger: logger,
		denied: denied,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (u *jobDetailUsecase) GetDetail(ctx context.Context, id int64) (*JobDetail, error) {
	row, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrNotFound
		}
		u.logger.Printf("[JobDetail] lookup failed id=%d err=%v", id, err)
		return nil, ErrStoreUnavailable
	}

	now := u.now()
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

	return &JobDetail{
		Job:     item,
		Related: u.related(ctx, item),
	}, nil
}

// related looks up listings sharing the detail page's leading keyword, self
// excluded. Failures degrade to an empty list; the detail page still renders.
func (u *jobDetailUsecase) related(ctx context.Context, item JobItem) []RelatedJob {
	first := normalize.FirstWord(normalize.Title(item.Title))
	if first == "" {
		return nil
	}

	rows, err := u.jobs.Search(ctx, repository.JobFilter{Title: first}, maxRelated+2, 0)
	if err != nil {
		u.logger.Printf("[JobDetail] related lookup failed id=%d err=%v", item.ID, err)
		return nil
	}

	out := make([]RelatedJob, 0, maxRelated)
	for _, r := range rows {
		if r.ID == item.ID || len(out) >= maxRelated {
			continue
		}
		out = append(out, RelatedJob{
			ID:       r.ID,
			Title:    cleanTitle(r.Title),
			Company:  strings.TrimSpace(r.Company),
			Location: defaultLocation(r.Location),
			PostedAt: r.PostedAt,
		})
	}
	return out
}

// ResolveLink returns the outbound link for a listing, used by the subscribe
// flow's post-signup redirect. Suppressed links resolve to empty.
func (u *jobDetailUsecase) ResolveLink(ctx context.Context, id int64) (string, error) {
	link, err := u.jobs.GetLink(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return "", ErrNotFound
		}
		return "", ErrStoreUnavailable
	}
	if _, suppressed := u.denied[link]; suppressed {
		return "", nil
	}
	return link, nil
}
