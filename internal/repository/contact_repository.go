package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/request-analytics/internal/domain"
)

// ContactRepository reads contact-form messages.
type ContactRepository interface {
	ListAll(ctx context.Context) ([]domain.ContactMessage, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) ListAll(ctx context.Context) ([]domain.ContactMessage, error) {
	const query = `
        SELECT id, status, submission_date, subject, message
        FROM contact_messages
        ORDER BY submission_date`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.ContactMessage{}
	for rows.Next() {
		var msg domain.ContactMessage
		if err := rows.Scan(&msg.ID, &msg.Status, &msg.SubmissionDate, &msg.Subject, &msg.Message); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
