// Package remote is an HTTP client for an external deepfake-detection
// service. The service accepts raw content bytes and a declared kind and
// returns a full authenticity assessment; callers treat any failure here as
// "capability unavailable" and fall back to the default moderate score.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/imthegoodboy/veristamp/internal/analysis"
	"github.com/imthegoodboy/veristamp/internal/domain"
)

const analyzePath = "/v1/analyze"

// Config holds the configuration for the detection client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:8600",
		Timeout:    20 * time.Second,
		RetryCount: 2,
	}
}

// Client is the HTTP client for the detection service
type Client struct {
	httpClient *http.Client
	config     Config
}

var _ analysis.Assessor = (*Client)(nil)

// NewClient creates a new detection client
func NewClient(config Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// analyzeResponse mirrors the detection service's JSON payload
type analyzeResponse struct {
	Success    bool                  `json:"success"`
	Score      int                   `json:"ai_verification_score"`
	Confidence domain.Confidence     `json:"confidence_level"`
	Analysis   string                `json:"analysis"`
	Methods    []domain.MethodResult `json:"detection_methods"`
	Threats    []string              `json:"threat_indicators"`
	Error      string                `json:"error"`
}

// Assess posts the content to the detection service and returns its
// assessment
func (c *Client) Assess(ctx context.Context, data []byte, kind domain.ContentKind) (*domain.Assessment, error) {
	var resp analyzeResponse
	if err := c.doRequestWithRetry(ctx, data, kind, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, fmt.Errorf("detection service rejected content: %s", resp.Error)
	}

	return &domain.Assessment{
		Score:      resp.Score,
		Confidence: resp.Confidence,
		Narrative:  resp.Analysis,
		Methods:    resp.Methods,
		Threats:    resp.Threats,
	}, nil
}

// maxBackoff is the maximum backoff duration for retries
const maxBackoff = 10 * time.Second

// calculateBackoff returns 1s, 2s, 4s, ... capped at maxBackoff
func calculateBackoff(attempt int) time.Duration {
	if attempt <= 0 {
		return time.Second
	}
	seconds := 1
	for i := 1; i < attempt && i < 4; i++ {
		seconds *= 2
	}
	return time.Duration(seconds) * time.Second
}

func (c *Client) doRequestWithRetry(ctx context.Context, data []byte, kind domain.ContentKind, result *analyzeResponse) error {
	var lastErr error

	for attempt := 0; attempt <= c.config.RetryCount; attempt++ {
		if attempt > 0 {
			backoff := calculateBackoff(attempt)
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		lastErr = c.doRequest(ctx, data, kind, result)
		if lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("detection request failed after %d attempts: %w", c.config.RetryCount+1, lastErr)
}

func (c *Client) doRequest(ctx context.Context, data []byte, kind domain.ContentKind, result *analyzeResponse) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "content")
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := writer.WriteField("content_type", string(kind)); err != nil {
		return fmt.Errorf("write kind field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+analyzePath, &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("detection request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read detection response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("detection service returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("decode detection response: %w", err)
	}

	return nil
}
