package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/imthegoodboy/veristamp/internal/audit"
	"github.com/imthegoodboy/veristamp/internal/domain"
	"github.com/imthegoodboy/veristamp/internal/fingerprint"
	"github.com/imthegoodboy/veristamp/internal/ledger"
)

type CheckRepositoryInterface interface {
	Create(ctx context.Context, check *domain.VerificationCheck) error
}

type AttestationInterface interface {
	Verified(ctx context.Context, contentHash [32]byte) (*ledger.Attestation, error)
}

// Resolution is the outcome of a single fingerprint lookup
type Resolution struct {
	Result  domain.CheckResult
	Content *domain.VerifiedContent
}

// BatchItem is one entry of a batch verification request. Content is
// consumed exactly once, when the item is processed.
type BatchItem struct {
	Name    string
	Content io.Reader
}

// BatchResult is the outcome for one batch item, emitted in input order
type BatchResult struct {
	Name        string
	ContentHash string
	Resolution  *Resolution
	Err         error
}

type VerifyService struct {
	contentRepo ContentRepositoryInterface
	checkRepo   CheckRepositoryInterface
	attestor    AttestationInterface
	auditLogger audit.Logger
}

func NewVerifyService(contentRepo ContentRepositoryInterface, checkRepo CheckRepositoryInterface) *VerifyService {
	return &VerifyService{
		contentRepo: contentRepo,
		checkRepo:   checkRepo,
		auditLogger: &audit.NoOpLogger{},
	}
}

func (s *VerifyService) WithAudit(logger audit.Logger) *VerifyService {
	s.auditLogger = logger
	return s
}

func (s *VerifyService) WithAttestor(attestor AttestationInterface) *VerifyService {
	s.attestor = attestor
	return s
}

// Resolve classifies a fingerprint against the record store. A missing
// record resolves to unverified, a flagged record to suspicious, anything
// else to verified. Exactly one check row is appended per call, whatever
// the outcome. The matched record is never mutated.
func (s *VerifyService) Resolve(ctx context.Context, contentHash, checkerIP string) (*Resolution, error) {
	if len(contentHash) != fingerprint.Size {
		return nil, domain.ErrInvalidFingerprint
	}
	if _, err := fingerprint.Decode(contentHash); err != nil {
		return nil, domain.ErrInvalidFingerprint
	}

	resolution, matchedID, err := s.classify(ctx, contentHash)
	if err != nil {
		return nil, err
	}

	check := &domain.VerificationCheck{
		CheckedHash:      contentHash,
		MatchedContentID: matchedID,
		Result:           resolution.Result,
		CheckerIP:        checkerIP,
	}
	if err := s.checkRepo.Create(ctx, check); err != nil {
		return nil, fmt.Errorf("record verification check: %w", err)
	}

	_ = s.auditLogger.Log(ctx, audit.Event{
		EventType:   audit.EventContentResolved,
		ContentHash: contentHash,
		IPAddress:   checkerIP,
		Success:     true,
		Metadata:    map[string]string{"result": string(resolution.Result)},
	})

	return resolution, nil
}

// ResolveContent fingerprints raw content and resolves it
func (s *VerifyService) ResolveContent(ctx context.Context, content []byte, checkerIP string) (*Resolution, error) {
	if len(content) == 0 {
		return nil, domain.ErrEmptyContent
	}
	return s.Resolve(ctx, fingerprint.Bytes(content), checkerIP)
}

// ResolveBatch processes the items strictly in input order, one at a
// time, and emits one BatchResult per item on the returned channel. A
// failing item yields an error result and the batch moves on. The
// channel is closed when all items are done or the context is cancelled.
func (s *VerifyService) ResolveBatch(ctx context.Context, items []BatchItem, checkerIP string) <-chan BatchResult {
	results := make(chan BatchResult)

	go func() {
		defer close(results)

		for _, item := range items {
			result := s.resolveItem(ctx, item, checkerIP)

			select {
			case results <- result:
			case <-ctx.Done():
				return
			}
		}

		_ = s.auditLogger.Log(ctx, audit.Event{
			EventType: audit.EventBatchResolved,
			IPAddress: checkerIP,
			Success:   true,
			Metadata:  map[string]string{"items": fmt.Sprintf("%d", len(items))},
		})
	}()

	return results
}

func (s *VerifyService) resolveItem(ctx context.Context, item BatchItem, checkerIP string) BatchResult {
	if err := ctx.Err(); err != nil {
		return BatchResult{Name: item.Name, Err: err}
	}
	if item.Content == nil {
		return BatchResult{Name: item.Name, Err: domain.ErrEmptyContent}
	}

	contentHash, err := fingerprint.Reader(item.Content)
	if err != nil {
		return BatchResult{Name: item.Name, Err: fmt.Errorf("read content: %w", err)}
	}

	resolution, err := s.Resolve(ctx, contentHash, checkerIP)
	if err != nil {
		return BatchResult{Name: item.Name, ContentHash: contentHash, Err: err}
	}

	return BatchResult{Name: item.Name, ContentHash: contentHash, Resolution: resolution}
}

// Attestation queries the ledger for the on-chain record of a
// fingerprint. The lookup is best-effort: a missing or unreachable
// ledger yields an unverified attestation, not an error.
func (s *VerifyService) Attestation(ctx context.Context, contentHash string) (*ledger.Attestation, error) {
	digest, err := fingerprint.Decode(contentHash)
	if err != nil {
		return nil, domain.ErrInvalidFingerprint
	}

	if s.attestor == nil {
		return &ledger.Attestation{Verified: false}, nil
	}

	attestation, err := s.attestor.Verified(ctx, digest)
	if err != nil || attestation == nil {
		return &ledger.Attestation{Verified: false}, nil
	}

	return attestation, nil
}

func (s *VerifyService) classify(ctx context.Context, contentHash string) (*Resolution, *uuid.UUID, error) {
	content, err := s.contentRepo.GetByHash(ctx, contentHash)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return &Resolution{Result: domain.ResultUnverified}, nil, nil
		}
		return nil, nil, err
	}

	result := domain.ResultVerified
	if content.Status == domain.StatusFlagged {
		result = domain.ResultSuspicious
	}

	return &Resolution{Result: result, Content: content}, &content.ID, nil
}
