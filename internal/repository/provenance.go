package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/imthegoodboy/veristamp/internal/domain"
)

type ProvenanceRepository struct {
	pool PgxPool
}

func NewProvenanceRepository(pool PgxPool) *ProvenanceRepository {
	return &ProvenanceRepository{pool: pool}
}

// Create appends a provenance event. Events are never updated or deleted.
func (r *ProvenanceRepository) Create(ctx context.Context, event *domain.ProvenanceEvent) error {
	query := `
		INSERT INTO content_provenance (id, content_id, event_type, actor_wallet, details, ledger_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		event.ID,
		event.ContentID,
		event.EventType,
		event.ActorWallet,
		event.Details,
		event.LedgerRef,
	).Scan(&event.CreatedAt)

	if err != nil {
		return fmt.Errorf("create provenance event: %w", err)
	}

	return nil
}
