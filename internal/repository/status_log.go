package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/imthegoodboy/veristamp/internal/domain"
)

type StatusLogRepository struct {
	pool PgxPool
}

func NewStatusLogRepository(pool PgxPool) *StatusLogRepository {
	return &StatusLogRepository{pool: pool}
}

// Create appends a recording-progress entry for a content record
func (r *StatusLogRepository) Create(ctx context.Context, entry *domain.StatusLogEntry) error {
	query := `
		INSERT INTO verification_status_log (id, content_id, status, progress_percentage, message, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.ContentID,
		entry.Status,
		entry.Progress,
		entry.Message,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("create status log entry: %w", err)
	}

	return nil
}
