package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imthegoodboy/veristamp/internal/analysis"
	"github.com/imthegoodboy/veristamp/internal/audit"
	"github.com/imthegoodboy/veristamp/internal/domain"
	"github.com/imthegoodboy/veristamp/internal/fingerprint"
	"github.com/imthegoodboy/veristamp/internal/ledger"
)

type ContentRepositoryInterface interface {
	Create(ctx context.Context, content *domain.VerifiedContent) error
	GetByHash(ctx context.Context, contentHash string) (*domain.VerifiedContent, error)
}

type ProvenanceRepositoryInterface interface {
	Create(ctx context.Context, event *domain.ProvenanceEvent) error
}

type StatusLogRepositoryInterface interface {
	Create(ctx context.Context, entry *domain.StatusLogEntry) error
}

type LedgerInterface interface {
	Submit(ctx context.Context, contentHash [32]byte, storageCID string, kind string) (string, error)
}

type LocatorInterface interface {
	Store(ctx context.Context, data []byte) (string, error)
}

const (
	// DefaultFlagThreshold is the score below which a record is stored
	// as flagged instead of verified
	DefaultFlagThreshold = 60

	defaultAssessTimeout = 15 * time.Second
	defaultLedgerTimeout = 45 * time.Second
)

// RecordInput carries a submission to be fingerprinted, scored and recorded
type RecordInput struct {
	Content       []byte
	Kind          domain.ContentKind
	Title         string
	Description   string
	CreatorName   string
	WalletAddress string
}

// RecordResult is the outcome of a recording attempt. AlreadyRecorded is
// set when the fingerprint was recorded before; the existing record is
// returned untouched.
type RecordResult struct {
	Content         *domain.VerifiedContent
	Assessment      *domain.Assessment
	AlreadyRecorded bool
}

type ContentService struct {
	contentRepo    ContentRepositoryInterface
	provenanceRepo ProvenanceRepositoryInterface
	statusLogRepo  StatusLogRepositoryInterface
	assessor       analysis.Assessor
	ledger         LedgerInterface
	locator        LocatorInterface
	auditLogger    audit.Logger
	flagThreshold  int
	assessTimeout  time.Duration
	ledgerTimeout  time.Duration
}

func NewContentService(
	contentRepo ContentRepositoryInterface,
	provenanceRepo ProvenanceRepositoryInterface,
	statusLogRepo StatusLogRepositoryInterface,
	assessor analysis.Assessor,
	ledgerClient LedgerInterface,
	locator LocatorInterface,
) *ContentService {
	return &ContentService{
		contentRepo:    contentRepo,
		provenanceRepo: provenanceRepo,
		statusLogRepo:  statusLogRepo,
		assessor:       assessor,
		ledger:         ledgerClient,
		locator:        locator,
		auditLogger:    &audit.NoOpLogger{},
		flagThreshold:  DefaultFlagThreshold,
		assessTimeout:  defaultAssessTimeout,
		ledgerTimeout:  defaultLedgerTimeout,
	}
}

func (s *ContentService) WithFlagThreshold(threshold int) *ContentService {
	s.flagThreshold = threshold
	return s
}

func (s *ContentService) WithAudit(logger audit.Logger) *ContentService {
	s.auditLogger = logger
	return s
}

func (s *ContentService) WithTimeouts(assess, ledgerSubmit time.Duration) *ContentService {
	if assess > 0 {
		s.assessTimeout = assess
	}
	if ledgerSubmit > 0 {
		s.ledgerTimeout = ledgerSubmit
	}
	return s
}

// Record runs the full recording pipeline: fingerprint, score, store,
// anchor on the ledger and persist. Input errors fail synchronously;
// a duplicate fingerprint returns the existing record with
// AlreadyRecorded set. Scoring and ledger failures never fail the
// request, they degrade to the documented fallbacks.
func (s *ContentService) Record(ctx context.Context, input RecordInput) (*RecordResult, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	contentHash := fingerprint.Bytes(input.Content)

	assessment := s.assess(ctx, input.Content, input.Kind)
	score := assessment.Score

	storageCID, err := s.locator.Store(ctx, input.Content)
	if err != nil {
		return nil, fmt.Errorf("store content: %w", err)
	}

	txHash, synthetic := s.anchor(ctx, contentHash, storageCID, input)

	status := domain.StatusVerified
	if score < s.flagThreshold {
		status = domain.StatusFlagged
	}

	content := &domain.VerifiedContent{
		ContentHash:     contentHash,
		ContentType:     input.Kind,
		StorageCID:      storageCID,
		WalletAddress:   input.WalletAddress,
		CreatorName:     input.CreatorName,
		Title:           input.Title,
		Description:     input.Description,
		LedgerTxHash:    txHash,
		LedgerSynthetic: synthetic,
		AIScore:         &score,
		Status:          status,
	}

	if err := s.contentRepo.Create(ctx, content); err != nil {
		if errors.Is(err, domain.ErrContentExists) {
			existing, getErr := s.contentRepo.GetByHash(ctx, contentHash)
			if getErr != nil {
				return nil, fmt.Errorf("reload existing content: %w", getErr)
			}
			return &RecordResult{
				Content:         existing,
				Assessment:      assessment,
				AlreadyRecorded: true,
			}, nil
		}
		return nil, err
	}

	event := &domain.ProvenanceEvent{
		ContentID:   content.ID,
		EventType:   domain.EventCreated,
		ActorWallet: input.WalletAddress,
		Details: map[string]interface{}{
			"score":  score,
			"status": string(status),
		},
		LedgerRef: txHash,
	}
	if err := s.provenanceRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("record provenance: %w", err)
	}

	// Progress trail is informational only
	_ = s.statusLogRepo.Create(ctx, &domain.StatusLogEntry{
		ContentID: content.ID,
		Status:    string(status),
		Progress:  100,
		Message:   "recording complete",
	})

	_ = s.auditLogger.Log(ctx, audit.Event{
		EventType:   audit.EventContentRecorded,
		ContentHash: contentHash,
		ContentID:   content.ID.String(),
		Wallet:      input.WalletAddress,
		Success:     true,
		Metadata: map[string]string{
			"score":     fmt.Sprintf("%d", score),
			"status":    string(status),
			"synthetic": fmt.Sprintf("%t", synthetic),
		},
	})

	return &RecordResult{Content: content, Assessment: assessment}, nil
}

func (s *ContentService) validate(input RecordInput) error {
	if len(input.Content) == 0 {
		return domain.ErrEmptyContent
	}
	if input.Title == "" {
		return domain.ErrMissingTitle
	}
	if input.WalletAddress == "" {
		return domain.ErrMissingWallet
	}
	if !input.Kind.Valid() {
		return domain.ErrInvalidContentKind
	}
	return nil
}

// assess scores the content under a bounded timeout. Any scoring failure
// degrades to the moderate default assessment.
func (s *ContentService) assess(ctx context.Context, content []byte, kind domain.ContentKind) *domain.Assessment {
	assessCtx, cancel := context.WithTimeout(ctx, s.assessTimeout)
	defer cancel()

	assessment, err := s.assessor.Assess(assessCtx, content, kind)
	if err != nil || assessment == nil {
		return analysis.DefaultAssessment()
	}
	return assessment
}

// anchor submits the fingerprint to the ledger. On any failure, including
// a missing signing key, it synthesizes a reference so the record still
// carries a ledger-shaped anchor, and flags the record as synthetic.
func (s *ContentService) anchor(ctx context.Context, contentHash, storageCID string, input RecordInput) (string, bool) {
	digest, err := fingerprint.Decode(contentHash)
	if err == nil {
		submitCtx, cancel := context.WithTimeout(ctx, s.ledgerTimeout)
		defer cancel()

		txHash, submitErr := s.ledger.Submit(submitCtx, digest, storageCID, string(input.Kind))
		if submitErr == nil {
			return txHash, false
		}
		err = submitErr
	}

	ref := ledger.SyntheticRef()

	_ = s.auditLogger.Log(ctx, audit.Event{
		EventType:   audit.EventLedgerFallback,
		ContentHash: contentHash,
		Wallet:      input.WalletAddress,
		Success:     false,
		Error:       err.Error(),
		Metadata:    map[string]string{"synthetic_ref": ref},
	})

	return ref, true
}
