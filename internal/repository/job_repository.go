package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalitium/internal/database"

	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

// JobRow is one listing as read from the store. PostedAt and the salary
// bounds are nil when the source never provided them.
type JobRow struct {
	ID          int64
	Title       string
	Company     string
	Location    string
	City        string
	Region      string
	Country     string
	Description string
	Link        string
	SalaryMin   *float64
	SalaryMax   *float64
	Currency    string
	PostedAt    *time.Time
}

// JobInsert is the shape accepted by bulk ingestion.
type JobInsert struct {
	Title       string
	Company     string
	Location    string
	City        string
	Region      string
	Country     string
	Description string
	Link        string
	SalaryMin   *float64
	SalaryMax   *float64
	Currency    string
	PostedAt    *time.Time
}

// TitleCount is one distinct title with its listing frequency, consumed by
// the autocomplete index builder.
type TitleCount struct {
	Title string
	Count int
}

// TrendRow is the minimal projection the trend aggregator needs. Rows with
// no posting date are never returned.
type TrendRow struct {
	Title    string
	Location string
	PostedAt time.Time
}

type JobRepository interface {
	Search(ctx context.Context, f JobFilter, limit, offset int) ([]JobRow, error)
	Count(ctx context.Context, f JobFilter) (int, error)
	GetByID(ctx context.Context, id int64) (*JobRow, error)
	GetLink(ctx context.Context, id int64) (string, error)
	TitleCounts(ctx context.Context, limit int) ([]TitleCount, error)
	ListDatedSince(ctx context.Context, since time.Time, limit int) ([]TrendRow, error)
	InsertMany(ctx context.Context, rows []JobInsert) (int64, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id,
	COALESCE(job_title, ''),
	COALESCE(company_name, ''),
	COALESCE(location, ''),
	COALESCE(city, ''),
	COALESCE(region, ''),
	COALESCE(country, ''),
	COALESCE(job_description, ''),
	COALESCE(link, ''),
	salary_min,
	salary_max,
	COALESCE(currency, ''),
	date`

func (r *PostgresJobRepository) Search(ctx context.Context, f JobFilter, limit, offset int) ([]JobRow, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where, args := buildWhere(f)
	sql := fmt.Sprintf(`SELECT %s
		 FROM jobs %s
		 %s
		 LIMIT $%d OFFSET $%d`,
		jobColumns, where, orderBy(f.CountryCode), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobRow, 0)
	for rows.Next() {
		var j JobRow
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Company, &j.Location, &j.City, &j.Region,
			&j.Country, &j.Description, &j.Link, &j.SalaryMin, &j.SalaryMax,
			&j.Currency, &j.PostedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Count(ctx context.Context, f JobFilter) (int, error) {
	where, args := buildWhere(f)
	row := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(1) FROM jobs %s`, where), args...)
	var c int
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id int64) (*JobRow, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1`, jobColumns), id)
	var j JobRow
	if err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Location, &j.City, &j.Region,
		&j.Country, &j.Description, &j.Link, &j.SalaryMin, &j.SalaryMax,
		&j.Currency, &j.PostedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *PostgresJobRepository) GetLink(ctx context.Context, id int64) (string, error) {
	row := r.db.QueryRow(ctx, `SELECT COALESCE(link, '') FROM jobs WHERE id = $1`, id)
	var link string
	if err := row.Scan(&link); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrJobNotFound
		}
		return "", err
	}
	return strings.TrimSpace(link), nil
}

func (r *PostgresJobRepository) TitleCounts(ctx context.Context, limit int) ([]TitleCount, error) {
	if limit <= 0 {
		limit = 2000
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_title, COUNT(1)
		 FROM jobs
		 WHERE COALESCE(job_title, '') <> ''
		 GROUP BY job_title
		 ORDER BY COUNT(1) DESC, job_title ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TitleCount, 0)
	for rows.Next() {
		var tc TitleCount
		if err := rows.Scan(&tc.Title, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) ListDatedSince(ctx context.Context, since time.Time, limit int) ([]TrendRow, error) {
	if limit <= 0 {
		limit = 10000
	}

	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(job_title, ''), COALESCE(location, ''), date
		 FROM jobs
		 WHERE date IS NOT NULL AND date >= $1
		 ORDER BY date ASC
		 LIMIT $2`,
		since, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TrendRow, 0)
	for rows.Next() {
		var tr TrendRow
		if err := rows.Scan(&tr.Title, &tr.Location, &tr.PostedAt); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) InsertMany(ctx context.Context, ins []JobInsert) (int64, error) {
	if len(ins) == 0 {
		return 0, nil
	}

	var total int64
	for _, j := range ins {
		n, err := r.db.Exec(ctx,
			`INSERT INTO jobs (
				job_title, company_name, location, city, region, country,
				job_description, link, salary_min, salary_max, currency, date
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (link) DO NOTHING`,
			j.Title, j.Company, j.Location, j.City, j.Region, j.Country,
			j.Description, j.Link, j.SalaryMin, j.SalaryMax, j.Currency, j.PostedAt,
		)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// orderBy keeps dated listings first (most recent leading) with undated ones
// trailing in stable id order. EU and HIGH_PAY views front-load their hub
// cities before the recency sort.
func orderBy(countryCode string) string {
	switch strings.ToUpper(strings.TrimSpace(countryCode)) {
	case "EU":
		return `ORDER BY CASE
			WHEN LOWER(COALESCE(location, '')) LIKE '%madrid%' THEN 0
			WHEN LOWER(COALESCE(location, '')) LIKE '%paris%' THEN 1
			WHEN LOWER(COALESCE(location, '')) LIKE '%berlin%' THEN 2
			WHEN LOWER(COALESCE(location, '')) LIKE '%barcelona%' THEN 3
			WHEN LOWER(COALESCE(location, '')) LIKE '%milan%' THEN 4
			ELSE 5 END,
			(date IS NULL) ASC, date DESC, id DESC`
	case "HIGH_PAY":
		return `ORDER BY CASE
			WHEN LOWER(COALESCE(location, '')) LIKE '%san francisco%' THEN 0
			WHEN LOWER(COALESCE(location, '')) LIKE '%new york%' THEN 1
			WHEN LOWER(COALESCE(location, '')) LIKE '%zurich%' THEN 2
			WHEN LOWER(COALESCE(location, '')) LIKE '%berlin%' THEN 3
			WHEN LOWER(COALESCE(location, '')) LIKE '%paris%' THEN 4
			WHEN LOWER(COALESCE(location, '')) LIKE '%madrid%' THEN 5
			WHEN LOWER(COALESCE(location, '')) LIKE '%london%' THEN 6
			ELSE 7 END,
			(date IS NULL) ASC, date DESC, id DESC`
	default:
		return `ORDER BY (date IS NULL) ASC, date DESC, id DESC`
	}
}
