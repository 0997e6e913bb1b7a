package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// RecordContentResponse represents the response for a successful content recording
type RecordContentResponse struct {
	ID              string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ContentHash     string `json:"content_hash" example:"b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"`
	ContentType     string `json:"content_type" example:"image"`
	StorageCID      string `json:"storage_cid" example:"QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"`
	LedgerTxHash    string `json:"ledger_tx_hash" example:"0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"`
	LedgerSynthetic bool   `json:"ledger_synthetic" example:"false"`
	AIScore         int    `json:"ai_score" example:"88"`
	Status          string `json:"status" example:"verified"`
	AlreadyRecorded bool   `json:"already_recorded" example:"false"`
	CreatedAt       string `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// ResolveContentResponse represents the response for a fingerprint lookup
type ResolveContentResponse struct {
	Result  string `json:"result" example:"verified"`
	Content any    `json:"content,omitempty"`
}

// BatchVerifyResponse represents the response for a batch verification
type BatchVerifyResponse struct {
	Items []BatchVerifyItem `json:"items"`
}

// BatchVerifyItem represents one item outcome in a batch verification
type BatchVerifyItem struct {
	Name        string `json:"name" example:"photo.jpg"`
	ContentHash string `json:"content_hash,omitempty" example:"b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"`
	Result      string `json:"result,omitempty" example:"unverified"`
	Error       string `json:"error,omitempty"`
}

// AttestationResponse represents the on-chain view of a fingerprint
type AttestationResponse struct {
	Verified    bool   `json:"is_verified" example:"true"`
	Creator     string `json:"creator,omitempty" example:"0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb1"`
	Timestamp   string `json:"timestamp,omitempty" example:"2024-01-01T00:00:00Z"`
	StorageCID  string `json:"storage_cid,omitempty" example:"QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"`
	ContentType string `json:"content_type,omitempty" example:"image"`
}

// FeeResponse represents the current ledger submission cost
type FeeResponse struct {
	GasFee    string `json:"gas_fee" example:"0.001000"`
	GasFeeUSD string `json:"gas_fee_usd" example:"0.0007"`
}

// StatsResponse represents dashboard totals
type StatsResponse struct {
	RecordedTotal    int64  `json:"recorded_total" example:"1500"`
	OnChainTotal     uint64 `json:"on_chain_total" example:"1450"`
	OnChainAvailable bool   `json:"on_chain_available" example:"true"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "VeriStamp Content Authenticity API",
		Version:     "v1.0.0",
		Description: "Content authenticity verification: fingerprint, score, anchor on a public ledger and resolve",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/contents - Record content
		endpoint.New(
			endpoint.POST,
			"/contents",
			endpoint.WithTags("Contents"),
			endpoint.WithSummary("Record content"),
			endpoint.WithDescription("Fingerprints the submitted content, scores it, anchors it on the ledger and persists the record. A duplicate fingerprint returns the existing record."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RecordContentResponse{}, "201", "Content recorded"),
				response.New(RecordContentResponse{AlreadyRecorded: true}, "200", "Fingerprint already recorded"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "MISSING_WALLET", Message: "A submitter wallet address is required"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "CONTENT_TOO_LARGE", Message: "Content exceeds the maximum accepted size"}, "413", "Payload Too Large"),
				response.New(ErrorResponse{Code: "MISSING_TITLE", Message: "A title is required to record content"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "EMPTY_CONTENT", Message: "Content is empty or unreadable"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/verify - Verify content
		endpoint.New(
			endpoint.POST,
			"/verify",
			endpoint.WithTags("Verify"),
			endpoint.WithSummary("Verify content"),
			endpoint.WithDescription("Fingerprints the submitted content and resolves it against the record store. Every call appends one check row."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ResolveContentResponse{}, "200", "Resolution completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "EMPTY_CONTENT", Message: "Content is empty or unreadable"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/verify/batch - Batch verify
		endpoint.New(
			endpoint.POST,
			"/verify/batch",
			endpoint.WithTags("Verify"),
			endpoint.WithSummary("Verify multiple files"),
			endpoint.WithDescription("Resolves each uploaded file in order. A failing item yields an error entry, the rest of the batch continues."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(BatchVerifyResponse{}, "200", "Batch completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "EMPTY_CONTENT", Message: "Content is empty or unreadable"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/contents/{hash} - Resolve fingerprint
		endpoint.New(
			endpoint.GET,
			"/contents/{hash}",
			endpoint.WithTags("Contents"),
			endpoint.WithSummary("Resolve a fingerprint"),
			endpoint.WithDescription("Looks up a fingerprint in the record store and classifies it as verified, suspicious or unverified"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("hash", parameter.Path, parameter.WithDescription("64-character hex content fingerprint")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ResolveContentResponse{}, "200", "Resolution completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_FINGERPRINT", Message: "Fingerprint must be a 64-character hex digest"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/contents/{hash}/ledger - On-chain attestation
		endpoint.New(
			endpoint.GET,
			"/contents/{hash}/ledger",
			endpoint.WithTags("Contents"),
			endpoint.WithSummary("On-chain attestation"),
			endpoint.WithDescription("Queries the ledger for the on-chain record of a fingerprint. Best-effort: an unreachable ledger yields an unverified attestation."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("hash", parameter.Path, parameter.WithDescription("64-character hex content fingerprint")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AttestationResponse{}, "200", "Attestation returned"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_FINGERPRINT", Message: "Fingerprint must be a 64-character hex digest"}, "422", "Unprocessable Entity"),
			}),
		),

		// GET /v1/fees/estimate - Fee estimate
		endpoint.New(
			endpoint.GET,
			"/fees/estimate",
			endpoint.WithTags("Fees"),
			endpoint.WithSummary("Estimate the ledger submission cost"),
			endpoint.WithDescription("Returns the current gas cost of anchoring a record, cached briefly. Falls back to a documented default when the ledger is unreachable."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(FeeResponse{}, "200", "Estimate returned"),
			}),
		),

		// GET /v1/stats - Dashboard totals
		endpoint.New(
			endpoint.GET,
			"/stats",
			endpoint.WithTags("Stats"),
			endpoint.WithSummary("Dashboard totals"),
			endpoint.WithDescription("Returns the persisted record count and the best-effort on-chain verified total"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(StatsResponse{}, "200", "Totals returned"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
