package repository

import (
	"context"

	"github.com/imthegoodboy/veristamp/internal/domain"
)

// ContentRepositoryInterface defines operations for verified content records.
// The store is append-only: no update or delete is ever issued.
type ContentRepositoryInterface interface {
	Create(ctx context.Context, content *domain.VerifiedContent) error
	GetByHash(ctx context.Context, contentHash string) (*domain.VerifiedContent, error)
	Count(ctx context.Context) (int64, error)
}

// ProvenanceRepositoryInterface defines the append-only provenance trail
type ProvenanceRepositoryInterface interface {
	Create(ctx context.Context, event *domain.ProvenanceEvent) error
}

// CheckRepositoryInterface defines the append-only verification check log
type CheckRepositoryInterface interface {
	Create(ctx context.Context, check *domain.VerificationCheck) error
}

// StatusLogRepositoryInterface defines the append-only status log
type StatusLogRepositoryInterface interface {
	Create(ctx context.Context, entry *domain.StatusLogEntry) error
}
