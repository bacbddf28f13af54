package repository

import (
	"context"
	"time"

	"catalitium/internal/database"
)

type ContactMessage struct {
	Email       string
	NameCompany string
	Message     string
}

type JobPosting struct {
	ContactEmail string
	Title        string
	Company      string
	Description  string
	SalaryRange  string
}

type ContactRepository interface {
	InsertContact(ctx context.Context, m ContactMessage) error
	InsertJobPosting(ctx context.Context, p JobPosting) error
}

type PostgresContactRepository struct {
	db database.DB
}

func NewPostgresContactRepository(db database.DB) *PostgresContactRepository {
	return &PostgresContactRepository{db: db}
}

func (r *PostgresContactRepository) InsertContact(ctx context.Context, m ContactMessage) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO contacts (email, name_company, message, created_at)
		 VALUES ($1, $2, $3, $4)`,
		m.Email, m.NameCompany, m.Message, time.Now().UTC(),
	)
	return err
}

func (r *PostgresContactRepository) InsertJobPosting(ctx context.Context, p JobPosting) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_postings (contact_email, job_title, company, description, salary_range, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ContactEmail, p.Title, p.Company, p.Description, p.SalaryRange, time.Now().UTC(),
	)
	return err
}
