package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/request-analytics/internal/domain"
)

// RequestRepository reads citizen requests.
type RequestRepository interface {
	ListAll(ctx context.Context) ([]domain.Request, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

func (r *requestRepository) ListAll(ctx context.Context) ([]domain.Request, error) {
	const query = `
        SELECT id, status, department, submission_date, started_at, answered_at, closed_at
        FROM requests
        ORDER BY submission_date`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]domain.Request, error) {
	result := []domain.Request{}
	for rows.Next() {
		var req domain.Request
		if err := rows.Scan(
			&req.ID,
			&req.Status,
			&req.Department,
			&req.SubmissionDate,
			&req.StartedAt,
			&req.AnsweredAt,
			&req.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}
