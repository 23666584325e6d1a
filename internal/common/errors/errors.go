// Package errors provides standardized error handling for the trip pipeline
// and its BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeIntentExtractionFailed ErrorCode = "INTENT_EXTRACTION_FAILED"
	ErrCodeIntentMalformed        ErrorCode = "INTENT_MALFORMED"

	ErrCodeFlightAuthFailed   ErrorCode = "FLIGHT_AUTH_FAILED"
	ErrCodeFlightSearchFailed ErrorCode = "FLIGHT_SEARCH_FAILED"
	ErrCodeFlightAPITimeout   ErrorCode = "FLIGHT_API_TIMEOUT"

	ErrCodeInventoryUnavailable ErrorCode = "INVENTORY_UNAVAILABLE"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"
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

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntentExtractionFailedError is returned when no model produced a usable intent.
func NewIntentExtractionFailedError(err error) *StandardError {
	return newError(ErrCodeIntentExtractionFailed, "Intent extraction failed", err.Error(), true)
}

// NewIntentMalformedError is returned when an intent does not match the expected shape.
func NewIntentMalformedError(details string) *StandardError {
	return newError(ErrCodeIntentMalformed, "Intent is malformed", details, false)
}

func NewFlightAuthFailedError(err error) *StandardError {
	return newError(ErrCodeFlightAuthFailed, "Flight API authentication failed", err.Error(), true)
}

func NewFlightSearchFailedError(err error) *StandardError {
	return newError(ErrCodeFlightSearchFailed, "Flight search failed", err.Error(), true)
}

func NewFlightAPITimeoutError() *StandardError {
	return newError(ErrCodeFlightAPITimeout, "Flight API timeout", "", true)
}

// NewInventoryUnavailableError wraps a failure to load hotels, activities or fallback flights.
func NewInventoryUnavailableError(backend string, err error) *StandardError {
	return newError(ErrCodeInventoryUnavailable, "Inventory unavailable",
		fmt.Sprintf("backend: %s, error: %s", backend, err.Error()), true)
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Search query execution error",
		fmt.Sprintf("index: %s, error: %s", index, err.Error()), true)
}

func NewIndexNotFoundError(indexName string) *StandardError {
	return newError(ErrCodeIndexNotFound, "Search index not found",
		fmt.Sprintf("index: %s", indexName), false)
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return newError("EXTERNAL_SERVICE_ERROR", fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError("TIMEOUT_ERROR", fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError("RESOURCE_NOT_FOUND", fmt.Sprintf("Resource not found in %s", service), details, false)
}

func NewAuthenticationError(details string) *StandardError {
	return newError("AUTHENTICATION_ERROR", "Authentication failed", details, false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the BPMN error codes caught by
// boundary events in the trip-search process.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeIntentExtractionFailed:   "INTENT_EXTRACTION_FAILED",
	ErrCodeIntentMalformed:          "INTENT_MALFORMED",
	ErrCodeFlightAuthFailed:         "FLIGHT_AUTH_FAILED",
	ErrCodeFlightSearchFailed:       "FLIGHT_SEARCH_FAILED",
	ErrCodeFlightAPITimeout:         "FLIGHT_API_TIMEOUT",
	ErrCodeInventoryUnavailable:     "INVENTORY_UNAVAILABLE",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:     "QUERY_EXECUTION_FAILED",
	ErrCodeSearchQueryFailed:        "SEARCH_QUERY_FAILED",
	ErrCodeIndexNotFound:            "INDEX_NOT_FOUND",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeInventoryUnavailable,
		ErrCodeFlightSearchFailed,
		ErrCodeIntentExtractionFailed,
		"EXTERNAL_SERVICE_ERROR":
		return 3

	case ErrCodeFlightAPITimeout,
		ErrCodeFlightAuthFailed,
		"TIMEOUT_ERROR":
		return 2

	default:
		return 0 // business errors
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "INTENT"):
		return "INTENT"
	case strings.HasPrefix(codeStr, "FLIGHT"):
		return "FLIGHT"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY_EXECUTION"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "INVENTORY"):
		return "INVENTORY"
	default:
		return "OTHER"
	}
}
