package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imthegoodboy/veristamp/internal/analysis"
	"github.com/imthegoodboy/veristamp/internal/domain"
	"github.com/imthegoodboy/veristamp/internal/fingerprint"
	"github.com/imthegoodboy/veristamp/internal/ledger"
)

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) Create(ctx context.Context, content *domain.VerifiedContent) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

func (m *MockContentRepository) GetByHash(ctx context.Context, contentHash string) (*domain.VerifiedContent, error) {
	args := m.Called(ctx, contentHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerifiedContent), args.Error(1)
}

func (m *MockContentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockProvenanceRepository struct {
	mock.Mock
}

func (m *MockProvenanceRepository) Create(ctx context.Context, event *domain.ProvenanceEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockStatusLogRepository struct {
	mock.Mock
}

func (m *MockStatusLogRepository) Create(ctx context.Context, entry *domain.StatusLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockCheckRepository struct {
	mock.Mock
}

func (m *MockCheckRepository) Create(ctx context.Context, check *domain.VerificationCheck) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Submit(ctx context.Context, contentHash [32]byte, storageCID string, kind string) (string, error) {
	args := m.Called(ctx, contentHash, storageCID, kind)
	return args.String(0), args.Error(1)
}

func (m *MockLedger) EstimateFee(ctx context.Context) (*ledger.Fee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Fee), args.Error(1)
}

func (m *MockLedger) TotalVerified(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockLedger) Verified(ctx context.Context, contentHash [32]byte) (*ledger.Attestation, error) {
	args := m.Called(ctx, contentHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Attestation), args.Error(1)
}

type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) Store(ctx context.Context, data []byte) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

type MockAssessor struct {
	mock.Mock
}

func (m *MockAssessor) Assess(ctx context.Context, data []byte, kind domain.ContentKind) (*domain.Assessment, error) {
	args := m.Called(ctx, data, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assessment), args.Error(1)
}

func newTestContentService(
	contentRepo *MockContentRepository,
	provenanceRepo *MockProvenanceRepository,
	statusLogRepo *MockStatusLogRepository,
	assessor analysis.Assessor,
	ledgerClient *MockLedger,
	locator *MockLocator,
) *ContentService {
	return NewContentService(contentRepo, provenanceRepo, statusLogRepo, assessor, ledgerClient, locator)
}

func validInput() RecordInput {
	return RecordInput{
		Content:       []byte("hello world"),
		Kind:          domain.KindText,
		Title:         "Greeting",
		CreatorName:   "alice",
		WalletAddress: "0xAbC123",
	}
}

func TestContentService_Record_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RecordInput)
		wantErr error
	}{
		{
			name:    "empty content",
			mutate:  func(in *RecordInput) { in.Content = nil },
			wantErr: domain.ErrEmptyContent,
		},
		{
			name:    "missing title",
			mutate:  func(in *RecordInput) { in.Title = "" },
			wantErr: domain.ErrMissingTitle,
		},
		{
			name:    "missing wallet",
			mutate:  func(in *RecordInput) { in.WalletAddress = "" },
			wantErr: domain.ErrMissingWallet,
		},
		{
			name:    "invalid kind",
			mutate:  func(in *RecordInput) { in.Kind = "audio" },
			wantErr: domain.ErrInvalidContentKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestContentService(
				&MockContentRepository{}, &MockProvenanceRepository{}, &MockStatusLogRepository{},
				&MockAssessor{}, &MockLedger{}, &MockLocator{},
			)

			input := validInput()
			tt.mutate(&input)

			result, err := svc.Record(context.Background(), input)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestContentService_Record_TextRoundTrip(t *testing.T) {
	contentRepo := &MockContentRepository{}
	provenanceRepo := &MockProvenanceRepository{}
	statusLogRepo := &MockStatusLogRepository{}
	ledgerClient := &MockLedger{}
	locator := &MockLocator{}
	checkRepo := &MockCheckRepository{}

	wantHash := fingerprint.Text("hello world")

	locator.On("Store", mock.Anything, []byte("hello world")).Return("QmTestCID", nil)
	ledgerClient.On("Submit", mock.Anything, mock.Anything, "QmTestCID", "text").
		Return("0xreal", nil)
	contentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.VerifiedContent) bool {
		return c.ContentHash == wantHash && c.Status == domain.StatusVerified
	})).Return(nil)
	provenanceRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.ProvenanceEvent) bool {
		return e.EventType == domain.EventCreated && e.ActorWallet == "0xAbC123"
	})).Return(nil)
	statusLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestContentService(
		contentRepo, provenanceRepo, statusLogRepo,
		analysis.NewAnalyzer(7), ledgerClient, locator,
	)

	result, err := svc.Record(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.AlreadyRecorded)
	assert.Equal(t, wantHash, result.Content.ContentHash)
	assert.Equal(t, "QmTestCID", result.Content.StorageCID)
	assert.Equal(t, "0xreal", result.Content.LedgerTxHash)
	assert.False(t, result.Content.LedgerSynthetic)
	require.NotNil(t, result.Content.AIScore)
	assert.Equal(t, result.Assessment.Score, *result.Content.AIScore)

	// The recorded fingerprint resolves back to the same record
	contentRepo.On("GetByHash", mock.Anything, wantHash).Return(result.Content, nil)
	checkRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.VerificationCheck) bool {
		return c.CheckedHash == wantHash && c.Result == domain.ResultVerified
	})).Return(nil)

	verifySvc := NewVerifyService(contentRepo, checkRepo)
	resolution, err := verifySvc.Resolve(context.Background(), wantHash, "203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultVerified, resolution.Result)
	require.NotNil(t, resolution.Content)
	assert.Equal(t, wantHash, resolution.Content.ContentHash)

	contentRepo.AssertExpectations(t)
	provenanceRepo.AssertExpectations(t)
	ledgerClient.AssertExpectations(t)
	locator.AssertExpectations(t)
	checkRepo.AssertExpectations(t)
}

func TestContentService_Record_LedgerFailureSynthesizesRef(t *testing.T) {
	tests := []struct {
		name      string
		submitErr error
	}{
		{name: "rpc failure", submitErr: errors.New("rpc timeout")},
		{name: "no signing key", submitErr: ledger.ErrNoSigner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentRepo := &MockContentRepository{}
			provenanceRepo := &MockProvenanceRepository{}
			statusLogRepo := &MockStatusLogRepository{}
			ledgerClient := &MockLedger{}
			locator := &MockLocator{}

			locator.On("Store", mock.Anything, mock.Anything).Return("QmTestCID", nil)
			ledgerClient.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return("", tt.submitErr)

			var created *domain.VerifiedContent
			contentRepo.On("Create", mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) {
					created = args.Get(1).(*domain.VerifiedContent)
				}).
				Return(nil)
			provenanceRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			statusLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

			svc := newTestContentService(
				contentRepo, provenanceRepo, statusLogRepo,
				analysis.NewAnalyzer(7), ledgerClient, locator,
			)

			result, err := svc.Record(context.Background(), validInput())
			require.NoError(t, err)
			require.NotNil(t, created)

			assert.True(t, result.Content.LedgerSynthetic)
			assert.Len(t, created.LedgerTxHash, ledger.RefLength)
			assert.True(t, strings.HasPrefix(created.LedgerTxHash, ledger.RefPrefix))

			contentRepo.AssertExpectations(t)
		})
	}
}

func TestContentService_Record_DuplicateReturnsExisting(t *testing.T) {
	contentRepo := &MockContentRepository{}
	provenanceRepo := &MockProvenanceRepository{}
	statusLogRepo := &MockStatusLogRepository{}
	ledgerClient := &MockLedger{}
	locator := &MockLocator{}

	wantHash := fingerprint.Text("hello world")
	existing := &domain.VerifiedContent{
		ID:          uuid.New(),
		ContentHash: wantHash,
		Title:       "Greeting",
		Status:      domain.StatusVerified,
		CreatedAt:   time.Now().Add(-time.Hour),
	}

	locator.On("Store", mock.Anything, mock.Anything).Return("QmTestCID", nil)
	ledgerClient.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("0xreal", nil)
	contentRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrContentExists)
	contentRepo.On("GetByHash", mock.Anything, wantHash).Return(existing, nil)

	svc := newTestContentService(
		contentRepo, provenanceRepo, statusLogRepo,
		analysis.NewAnalyzer(7), ledgerClient, locator,
	)

	result, err := svc.Record(context.Background(), validInput())
	require.NoError(t, err)
	assert.True(t, result.AlreadyRecorded)
	assert.Equal(t, existing.ID, result.Content.ID)

	// No provenance event for a re-submission
	provenanceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	statusLogRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestContentService_Record_AssessorFailureUsesDefault(t *testing.T) {
	contentRepo := &MockContentRepository{}
	provenanceRepo := &MockProvenanceRepository{}
	statusLogRepo := &MockStatusLogRepository{}
	ledgerClient := &MockLedger{}
	locator := &MockLocator{}
	assessor := &MockAssessor{}

	assessor.On("Assess", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("detector unavailable"))
	locator.On("Store", mock.Anything, mock.Anything).Return("QmTestCID", nil)
	ledgerClient.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("0xreal", nil)
	contentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	provenanceRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	statusLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestContentService(
		contentRepo, provenanceRepo, statusLogRepo,
		assessor, ledgerClient, locator,
	)

	result, err := svc.Record(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, analysis.DefaultScore, result.Assessment.Score)
	assert.Equal(t, domain.StatusVerified, result.Content.Status)
}

func TestContentService_Record_LowScoreIsFlagged(t *testing.T) {
	contentRepo := &MockContentRepository{}
	provenanceRepo := &MockProvenanceRepository{}
	statusLogRepo := &MockStatusLogRepository{}
	ledgerClient := &MockLedger{}
	locator := &MockLocator{}
	assessor := &MockAssessor{}

	assessor.On("Assess", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Assessment{Score: 42, Confidence: domain.ConfidenceHigh}, nil)
	locator.On("Store", mock.Anything, mock.Anything).Return("QmTestCID", nil)
	ledgerClient.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("0xreal", nil)
	contentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.VerifiedContent) bool {
		return c.Status == domain.StatusFlagged
	})).Return(nil)
	provenanceRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	statusLogRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestContentService(
		contentRepo, provenanceRepo, statusLogRepo,
		assessor, ledgerClient, locator,
	)

	result, err := svc.Record(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFlagged, result.Content.Status)

	contentRepo.AssertExpectations(t)
}

func TestContentService_Record_ProvenanceFailureIsFatal(t *testing.T) {
	contentRepo := &MockContentRepository{}
	provenanceRepo := &MockProvenanceRepository{}
	statusLogRepo := &MockStatusLogRepository{}
	ledgerClient := &MockLedger{}
	locator := &MockLocator{}

	locator.On("Store", mock.Anything, mock.Anything).Return("QmTestCID", nil)
	ledgerClient.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("0xreal", nil)
	contentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	provenanceRepo.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("database unavailable"))

	svc := newTestContentService(
		contentRepo, provenanceRepo, statusLogRepo,
		analysis.NewAnalyzer(7), ledgerClient, locator,
	)

	result, err := svc.Record(context.Background(), validInput())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "record provenance")
}

func TestContentService_Record_StatusLogFailureIsSwallowed(t *testing.T) {
	contentRepo := &MockContentRepository{}
	provenanceRepo := &MockProvenanceRepository{}
	statusLogRepo := &MockStatusLogRepository{}
	ledgerClient := &MockLedger{}
	locator := &MockLocator{}

	locator.On("Store", mock.Anything, mock.Anything).Return("QmTestCID", nil)
	ledgerClient.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("0xreal", nil)
	contentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	provenanceRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	statusLogRepo.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("database unavailable"))

	svc := newTestContentService(
		contentRepo, provenanceRepo, statusLogRepo,
		analysis.NewAnalyzer(7), ledgerClient, locator,
	)

	result, err := svc.Record(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, result)
}

func TestContentService_Record_StoreFailureIsFatal(t *testing.T) {
	contentRepo := &MockContentRepository{}
	locator := &MockLocator{}

	locator.On("Store", mock.Anything, mock.Anything).
		Return("", errors.New("pin service down"))

	svc := newTestContentService(
		contentRepo, &MockProvenanceRepository{}, &MockStatusLogRepository{},
		analysis.NewAnalyzer(7), &MockLedger{}, locator,
	)

	result, err := svc.Record(context.Background(), validInput())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "store content")
	contentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
