package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/imthegoodboy/veristamp/internal/domain"
	"github.com/imthegoodboy/veristamp/internal/service"
)

// VerifyService interface for verification requests
type VerifyService interface {
	ResolveContent(ctx context.Context, content []byte, checkerIP string) (*service.Resolution, error)
	ResolveBatch(ctx context.Context, items []service.BatchItem, checkerIP string) <-chan service.BatchResult
}

// VerifyHandler handles verification requests
type VerifyHandler struct {
	service VerifyService
	logger  *slog.Logger
}

func NewVerifyHandler(svc VerifyService, logger *slog.Logger) *VerifyHandler {
	return &VerifyHandler{
		service: svc,
		logger:  logger,
	}
}

// BatchItemResponse is the outcome for one file in a batch request
type BatchItemResponse struct {
	Name        string           `json:"name"`
	ContentHash string           `json:"content_hash,omitempty"`
	Result      string           `json:"result,omitempty"`
	Content     *ContentResponse `json:"content,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// BatchResponse response for the batch verify endpoint
type BatchResponse struct {
	Items []BatchItemResponse `json:"items"`
}

// Verify POST /v1/verify - fingerprint submitted content and resolve it
func (h *VerifyHandler) Verify(c *fiber.Ctx) error {
	content, _, err := extractContent(c)
	if err != nil {
		return err
	}

	resolution, err := h.service.ResolveContent(c.Context(), content, c.IP())
	if err != nil {
		return err
	}

	resp := ResolveResponse{Result: string(resolution.Result)}
	if resolution.Content != nil {
		resp.Content = contentResponse(resolution.Content)
	}

	return c.JSON(resp)
}

// VerifyBatch POST /v1/verify/batch - resolve multiple files in order
func (h *VerifyHandler) VerifyBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	files := form.File["files"]
	if len(files) == 0 {
		return domain.ErrEmptyContent
	}

	items := make([]service.BatchItem, 0, len(files))
	closers := make([]func(), 0, len(files))
	defer func() {
		for _, close := range closers {
			close()
		}
	}()

	for _, file := range files {
		if file.Size > maxContentSize {
			items = append(items, service.BatchItem{Name: file.Filename})
			continue
		}

		f, openErr := file.Open()
		if openErr != nil {
			items = append(items, service.BatchItem{Name: file.Filename})
			continue
		}
		closers = append(closers, func() { _ = f.Close() })
		items = append(items, service.BatchItem{Name: file.Filename, Content: f})
	}

	resp := BatchResponse{Items: make([]BatchItemResponse, 0, len(items))}
	for result := range h.service.ResolveBatch(c.Context(), items, c.IP()) {
		item := BatchItemResponse{
			Name:        result.Name,
			ContentHash: result.ContentHash,
		}
		if result.Err != nil {
			item.Error = result.Err.Error()
		} else {
			item.Result = string(result.Resolution.Result)
			if result.Resolution.Content != nil {
				item.Content = contentResponse(result.Resolution.Content)
			}
		}
		resp.Items = append(resp.Items, item)
	}

	return c.JSON(resp)
}
