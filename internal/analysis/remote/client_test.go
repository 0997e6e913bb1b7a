package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imthegoodboy/veristamp/internal/domain"
)

func testConfig(url string) Config {
	return Config{
		BaseURL:    url,
		Timeout:    2 * time.Second,
		RetryCount: 0,
	}
}

func TestClient_Assess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, analyzePath, r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "image", r.FormValue("content_type"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":               true,
			"ai_verification_score": 72,
			"confidence_level":      "high",
			"analysis":              "mostly authentic",
			"detection_methods": []map[string]interface{}{
				{"name": "Metadata Analysis", "score": 75},
				{"name": "Entropy Analysis", "score": 69},
			},
			"threat_indicators": []string{},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	got, err := client.Assess(context.Background(), []byte("content"), domain.KindImage)
	require.NoError(t, err)

	assert.Equal(t, 72, got.Score)
	assert.Equal(t, domain.ConfidenceHigh, got.Confidence)
	assert.Len(t, got.Methods, 2)
}

func TestClient_Assess_ServiceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Assess(context.Background(), []byte("content"), domain.KindImage)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_Assess_RejectedContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "no file provided",
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Assess(context.Background(), []byte("content"), domain.KindVideo)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file provided")
}

func TestClient_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "transient", http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":               true,
			"ai_verification_score": 85,
			"confidence_level":      "high",
		})
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.RetryCount = 1

	client := NewClient(cfg)
	got, err := client.Assess(context.Background(), []byte("content"), domain.KindImage)

	require.NoError(t, err)
	assert.Equal(t, 85, got.Score)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.RetryCount = 3

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	client := NewClient(cfg)
	_, err := client.Assess(ctx, []byte("content"), domain.KindImage)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCalculateBackoff(t *testing.T) {
	assert.Equal(t, time.Second, calculateBackoff(0))
	assert.Equal(t, time.Second, calculateBackoff(1))
	assert.Equal(t, 2*time.Second, calculateBackoff(2))
	assert.Equal(t, 4*time.Second, calculateBackoff(3))
}
