// Package errors provides standardized error handling for the generation handlers.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeRequestParseFailed ErrorCode = "REQUEST_PARSE_FAILED"

	ErrCodeGenerationFailed ErrorCode = "GENERATION_FAILED"

	ErrCodeArtifactUploadFailed ErrorCode = "ARTIFACT_UPLOAD_FAILED"
	ErrCodePresignFailed        ErrorCode = "PRESIGN_FAILED"

	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// IsClientError reports whether the error was caused by the caller's input.
func (e *StandardError) IsClientError() bool {
	return e.Code == ErrCodeRequestParseFailed
}

// ==========================
// 2. Error Constructors
// ==========================

// NewRequestParseFailedError creates a non-retryable input parse error.
func NewRequestParseFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestParseFailed,
		Message:   "Invalid JSON in request body",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationFailedError wraps a failure from the retrieval-and-generation call.
func NewGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Message:   "Knowledge base query failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewArtifactUploadFailedError wraps a failure from the object store upload.
func NewArtifactUploadFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArtifactUploadFailed,
		Message:   "Artifact upload failed",
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"objectKey": key},
		Timestamp: time.Now().UTC(),
	}
}

// NewPresignFailedError wraps a failure while minting a pre-signed link.
func NewPresignFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePresignFailed,
		Message:   "Pre-signed URL generation failed",
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"objectKey": key},
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigInvalidError creates a non-retryable configuration error.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Normalization
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
