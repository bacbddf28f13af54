package repository

import (
	"context"
	"time"

	"catalitium/internal/database"
)

// SearchEvent is one analytics record: what the user asked for, what the
// normalizer made of it, and how many rows came back.
type SearchEvent struct {
	CreatedAt   time.Time
	RawTitle    string
	RawCountry  string
	NormTitle   string
	NormCountry string
	SalaryFloor *int
	SalaryCeil  *int
	ResultCount int
	Page        int
	PerPage     int
	SessionID   string
	Source      string
}

type EventRepository interface {
	InsertSearchEvent(ctx context.Context, ev SearchEvent) error
}

type PostgresEventRepository struct {
	db database.DB
}

func NewPostgresEventRepository(db database.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

func (r *PostgresEventRepository) InsertSearchEvent(ctx context.Context, ev SearchEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if ev.Source == "" {
		ev.Source = "server"
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO log_events (
			created_at, raw_title, raw_country, norm_title, norm_country,
			sal_floor, sal_ceiling, result_count, page, per_page, session_id, source
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		ev.CreatedAt, clip(ev.RawTitle, 300), clip(ev.RawCountry, 200),
		clip(ev.NormTitle, 300), clip(ev.NormCountry, 200),
		ev.SalaryFloor, ev.SalaryCeil, ev.ResultCount, ev.Page, ev.PerPage,
		clip(ev.SessionID, 64), clip(ev.Source, 50),
	)
	return err
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
