package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/imthegoodboy/veristamp/internal/domain"
)

type ContentRepository struct {
	pool PgxPool
}

func NewContentRepository(pool PgxPool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// Create inserts a new verified content record. The unique index on
// content_hash makes this an insert-if-absent: a duplicate fingerprint
// yields domain.ErrContentExists, never an overwrite.
func (r *ContentRepository) Create(ctx context.Context, content *domain.VerifiedContent) error {
	query := `
		INSERT INTO verified_content (
			id, content_hash, content_type, storage_cid, wallet_address,
			creator_name, title, description, ledger_tx_hash, ledger_synthetic,
			ai_score, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING created_at
	`

	if content.ID == uuid.Nil {
		content.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		content.ID,
		content.ContentHash,
		content.ContentType,
		content.StorageCID,
		content.WalletAddress,
		content.CreatorName,
		content.Title,
		content.Description,
		content.LedgerTxHash,
		content.LedgerSynthetic,
		content.AIScore,
		content.Status,
	).Scan(&content.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrContentExists
		}
		return fmt.Errorf("create verified content: %w", err)
	}

	return nil
}

// GetByHash fetches the single record for a fingerprint, if any
func (r *ContentRepository) GetByHash(ctx context.Context, contentHash string) (*domain.VerifiedContent, error) {
	query := `
		SELECT id, content_hash, content_type, storage_cid, wallet_address,
		       creator_name, title, description, ledger_tx_hash, ledger_synthetic,
		       ai_score, status, created_at
		FROM verified_content
		WHERE content_hash = $1
	`

	var content domain.VerifiedContent
	err := r.pool.QueryRow(ctx, query, contentHash).Scan(
		&content.ID,
		&content.ContentHash,
		&content.ContentType,
		&content.StorageCID,
		&content.WalletAddress,
		&content.CreatorName,
		&content.Title,
		&content.Description,
		&content.LedgerTxHash,
		&content.LedgerSynthetic,
		&content.AIScore,
		&content.Status,
		&content.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrContentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content by hash: %w", err)
	}

	return &content, nil
}

// Count returns the total number of verified content records
func (r *ContentRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM verified_content`

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count verified content: %w", err)
	}

	return count, nil
}
