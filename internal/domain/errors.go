package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	ErrContentNotFound = &AppError{
		Code:       "CONTENT_NOT_FOUND",
		Message:    "No verified record exists for this fingerprint",
		StatusCode: 404,
	}

	ErrContentExists = &AppError{
		Code:       "CONTENT_ALREADY_RECORDED",
		Message:    "A record already exists for this fingerprint",
		StatusCode: 409,
	}

	ErrEmptyContent = &AppError{
		Code:       "EMPTY_CONTENT",
		Message:    "Content is empty or unreadable",
		StatusCode: 422,
	}

	ErrContentTooLarge = &AppError{
		Code:       "CONTENT_TOO_LARGE",
		Message:    "Content exceeds the maximum accepted size",
		StatusCode: 413,
	}

	ErrInvalidContentKind = &AppError{
		Code:       "INVALID_CONTENT_KIND",
		Message:    "Content type must be image, video or text",
		StatusCode: 422,
	}

	ErrMissingTitle = &AppError{
		Code:       "MISSING_TITLE",
		Message:    "A title is required to record content",
		StatusCode: 422,
	}

	ErrMissingWallet = &AppError{
		Code:       "MISSING_WALLET",
		Message:    "A submitter wallet address is required",
		StatusCode: 401,
	}

	ErrInvalidFingerprint = &AppError{
		Code:       "INVALID_FINGERPRINT",
		Message:    "Fingerprint must be a 64-character hex digest",
		StatusCode: 422,
	}

	ErrRateLimited = &AppError{
		Code:       "RATE_LIMITED",
		Message:    "Too many requests, slow down",
		StatusCode: 429,
	}
)
