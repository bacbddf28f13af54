package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"catalitium/internal/repository"
)

// IngestResult reports a bulk load: Accepted rows passed validation and were
// offered to the store, Inserted is how many the store actually took after
// link dedupe.
type IngestResult struct {
	Received int   `json:"received"`
	Accepted int   `json:"accepted"`
	Inserted int64 `json:"inserted"`
}

type IngestUsecase interface {
	IngestListings(ctx context.Context, rows []repository.JobInsert) (*IngestResult, error)
}

type ingestUsecase struct {
	jobs   repository.JobRepository
	logger *log.Logger
}

func NewIngestUsecase(jobs repository.JobRepository, logger *log.Logger) IngestUsecase {
	return &ingestUsecase{jobs: jobs, logger: logger}
}

func (u *ingestUsecase) IngestListings(ctx context.Context, rows []repository.JobInsert) (*IngestResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidInput)
	}

	accepted := make([]repository.JobInsert, 0, len(rows))
	for _, r := range rows {
		r.Title = strings.TrimSpace(r.Title)
		r.Link = strings.TrimSpace(r.Link)
		// The link is the dedupe key; rows without one can never be
		// deduplicated and are refused outright.
		if r.Title == "" || r.Link == "" {
			continue
		}
		accepted = append(accepted, r)
	}

	inserted, err := u.jobs.InsertMany(ctx, accepted)
	if err != nil {
		u.logger.Printf("[Ingest] bulk insert failed accepted=%d err=%v", len(accepted), err)
		return nil, ErrStoreUnavailable
	}

	u.logger.Printf("[Ingest] listings loaded received=%d accepted=%d inserted=%d", len(rows), len(accepted), inserted)
	return &IngestResult{
		Received: len(rows),
		Accepted: len(accepted),
		Inserted: inserted,
	}, nil
}
