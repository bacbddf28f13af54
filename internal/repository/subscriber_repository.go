package repository

import (
	"context"
	"errors"
	"time"

	"catalitium/internal/database"

	"github.com/jackc/pgx/v5/pgconn"
)

var ErrDuplicateSubscriber = errors.New("subscriber already exists")

type SubscriberRepository interface {
	Insert(ctx context.Context, email string) error
}

type PostgresSubscriberRepository struct {
	db database.DB
}

func NewPostgresSubscriberRepository(db database.DB) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{db: db}
}

func (r *PostgresSubscriberRepository) Insert(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO subscribers (email, created_at) VALUES ($1, $2)`,
		email, time.Now().UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSubscriber
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
