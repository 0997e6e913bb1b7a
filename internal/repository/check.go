package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/imthegoodboy/veristamp/internal/domain"
)

type CheckRepository struct {
	pool PgxPool
}

func NewCheckRepository(pool PgxPool) *CheckRepository {
	return &CheckRepository{pool: pool}
}

// Create appends a verification check log row. One row is written per
// resolution request, regardless of outcome.
func (r *CheckRepository) Create(ctx context.Context, check *domain.VerificationCheck) error {
	query := `
		INSERT INTO verification_checks (id, checked_hash, matched_content_id, check_result, checker_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	if check.ID == uuid.Nil {
		check.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		check.ID,
		check.CheckedHash,
		check.MatchedContentID,
		check.Result,
		check.CheckerIP,
	).Scan(&check.CreatedAt)

	if err != nil {
		return fmt.Errorf("create verification check: %w", err)
	}

	return nil
}
