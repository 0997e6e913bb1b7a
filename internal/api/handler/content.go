package handler

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/imthegoodboy/veristamp/internal/api/middleware"
	"github.com/imthegoodboy/veristamp/internal/domain"
	"github.com/imthegoodboy/veristamp/internal/ledger"
	"github.com/imthegoodboy/veristamp/internal/service"
)

const (
	maxContentSize = 50 * 1024 * 1024 // 50MB
)

// ContentService interface for the recording service
type ContentService interface {
	Record(ctx context.Context, input service.RecordInput) (*service.RecordResult, error)
}

// Resolver interface for fingerprint lookups
type Resolver interface {
	Resolve(ctx context.Context, contentHash, checkerIP string) (*service.Resolution, error)
	Attestation(ctx context.Context, contentHash string) (*ledger.Attestation, error)
}

// ContentHandler handles content recording and lookup requests
type ContentHandler struct {
	service  ContentService
	resolver Resolver
	logger   *slog.Logger
}

func NewContentHandler(svc ContentService, resolver Resolver, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		service:  svc,
		resolver: resolver,
		logger:   logger,
	}
}

// RecordResponse response for the record endpoint
type RecordResponse struct {
	ID              string             `json:"id"`
	ContentHash     string             `json:"content_hash"`
	ContentType     string             `json:"content_type"`
	StorageCID      string             `json:"storage_cid"`
	LedgerTxHash    string             `json:"ledger_tx_hash"`
	LedgerSynthetic bool               `json:"ledger_synthetic"`
	AIScore         *int               `json:"ai_score"`
	Status          string             `json:"status"`
	AlreadyRecorded bool               `json:"already_recorded"`
	CreatedAt       string             `json:"created_at"`
	Assessment      *domain.Assessment `json:"assessment,omitempty"`
}

// ResolveResponse response for lookup endpoints
type ResolveResponse struct {
	Result  string           `json:"result"`
	Content *ContentResponse `json:"content,omitempty"`
}

// ContentResponse is the public view of a verified record
type ContentResponse struct {
	ID           string `json:"id"`
	ContentHash  string `json:"content_hash"`
	ContentType  string `json:"content_type"`
	StorageCID   string `json:"storage_cid"`
	CreatorName  string `json:"creator_name,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	LedgerTxHash string `json:"ledger_tx_hash"`
	AIScore      *int   `json:"ai_score"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

func contentResponse(c *domain.VerifiedContent) *ContentResponse {
	return &ContentResponse{
		ID:           c.ID.String(),
		ContentHash:  c.ContentHash,
		ContentType:  string(c.ContentType),
		StorageCID:   c.StorageCID,
		CreatorName:  c.CreatorName,
		Title:        c.Title,
		Description:  c.Description,
		LedgerTxHash: c.LedgerTxHash,
		AIScore:      c.AIScore,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}

// Record POST /v1/contents - fingerprint, score and record content
func (h *ContentHandler) Record(c *fiber.Ctx) error {
	wallet, err := middleware.GetWallet(c)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return domain.ErrMissingTitle
	}

	content, kind, err := extractContent(c)
	if err != nil {
		return err
	}

	result, err := h.service.Record(c.Context(), service.RecordInput{
		Content:       content,
		Kind:          kind,
		Title:         title,
		Description:   strings.TrimSpace(c.FormValue("description")),
		CreatorName:   strings.TrimSpace(c.FormValue("creator_name")),
		WalletAddress: wallet,
	})
	if err != nil {
		return err
	}

	status := fiber.StatusCreated
	if result.AlreadyRecorded {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(RecordResponse{
		ID:              result.Content.ID.String(),
		ContentHash:     result.Content.ContentHash,
		ContentType:     string(result.Content.ContentType),
		StorageCID:      result.Content.StorageCID,
		LedgerTxHash:    result.Content.LedgerTxHash,
		LedgerSynthetic: result.Content.LedgerSynthetic,
		AIScore:         result.Content.AIScore,
		Status:          string(result.Content.Status),
		AlreadyRecorded: result.AlreadyRecorded,
		CreatedAt:       result.Content.CreatedAt.Format(time.RFC3339),
		Assessment:      result.Assessment,
	})
}

// Get GET /v1/contents/:hash - resolve a fingerprint
func (h *ContentHandler) Get(c *fiber.Ctx) error {
	hash := strings.ToLower(strings.TrimSpace(c.Params("hash")))

	resolution, err := h.resolver.Resolve(c.Context(), hash, c.IP())
	if err != nil {
		return err
	}

	resp := ResolveResponse{Result: string(resolution.Result)}
	if resolution.Content != nil {
		resp.Content = contentResponse(resolution.Content)
	}

	return c.JSON(resp)
}

// Ledger GET /v1/contents/:hash/ledger - on-chain attestation for a fingerprint
func (h *ContentHandler) Ledger(c *fiber.Ctx) error {
	hash := strings.ToLower(strings.TrimSpace(c.Params("hash")))

	attestation, err := h.resolver.Attestation(c.Context(), hash)
	if err != nil {
		return err
	}

	return c.JSON(attestation)
}

// extractContent pulls the submission payload out of the form: either an
// uploaded file or a raw text field. Text submissions are always kind
// text; file submissions take the declared content_type, falling back to
// the file's MIME type.
func extractContent(c *fiber.Ctx) ([]byte, domain.ContentKind, error) {
	if text := c.FormValue("text"); text != "" {
		return []byte(text), domain.KindText, nil
	}

	file, err := c.FormFile("file")
	if err != nil {
		return nil, "", domain.ErrEmptyContent
	}

	if file.Size == 0 {
		return nil, "", domain.ErrEmptyContent
	}
	if file.Size > maxContentSize {
		return nil, "", domain.ErrContentTooLarge
	}

	kind, err := contentKind(c.FormValue("content_type"), file)
	if err != nil {
		return nil, "", err
	}

	f, err := file.Open()
	if err != nil {
		return nil, "", domain.ErrEmptyContent.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, "", domain.ErrEmptyContent.WithError(err)
	}

	return content, kind, nil
}

func contentKind(declared string, file *multipart.FileHeader) (domain.ContentKind, error) {
	if declared != "" {
		kind := domain.ContentKind(declared)
		if !kind.Valid() {
			return "", domain.ErrInvalidContentKind
		}
		return kind, nil
	}

	mimeType := file.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return domain.KindImage, nil
	case strings.HasPrefix(mimeType, "video/"):
		return domain.KindVideo, nil
	case strings.HasPrefix(mimeType, "text/"):
		return domain.KindText, nil
	}
	return "", domain.ErrInvalidContentKind
}
