package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the custom error type for the application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying error for errors.Is/As chains
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrAlreadyExists(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_EXISTS,
		Message:  fmt.Sprintf("%s already exists", resource),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Pipeline Errors

// ErrTransient marks a failure that was retried with backoff and exhausted
// its attempts. Callers may resubmit later.
func ErrTransient(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_TRANSIENT,
		Message:  fmt.Sprintf("Transient failure: %s", operation),
	}
}

func ErrValidation(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_VALIDATION,
		Message:  message,
	}
}

func ErrUnknownMeetingType(tag string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_UNKNOWN_MEETING_TYPE,
		Message:  "Unknown meeting type",
	}.WithDetail("type_tag", tag)
}

func ErrSummarizationFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_SUMMARIZATION_FAILED,
		Message:  "Failed to generate summary",
	}
}

func ErrSummarizationInFlight(meetingID, typeTag string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_SUMMARIZATION_LOCKED,
		Message:  "Summarization already in progress for this meeting and type",
	}.WithDetail("meeting_id", meetingID).WithDetail("type_tag", typeTag)
}

func ErrIndexingFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INDEXING_FAILED,
		Message:  "Failed to index transcript",
	}
}

func ErrDimensionMismatch(want, got int) AppError {
	return AppError{
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DIMENSION_MISMATCH,
		Message:  "Embedding dimension mismatch",
	}.WithDetail("want", fmt.Sprintf("%d", want)).
		WithDetail("got", fmt.Sprintf("%d", got))
}

func ErrMissingProjectMapping(clientID string) AppError {
	return AppError{
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_MISSING_PROJECT_MAP,
		Message:  "Client has no task tracker project mapping",
	}.WithDetail("client_id", clientID)
}

func ErrPartialFailure(operation string, failed, total int) AppError {
	return AppError{
		HTTPCode: http.StatusMultiStatus,
		Code:     ErrorCode_PARTIAL_FAILURE,
		Message:  fmt.Sprintf("%s partially failed", operation),
	}.WithDetail("failed", fmt.Sprintf("%d", failed)).
		WithDetail("total", fmt.Sprintf("%d", total))
}

func ErrTranscriptFetchFailed(externalID string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_TRANSCRIPT_FETCH_FAIL,
		Message:  "Failed to fetch transcript from provider",
	}.WithDetail("external_id", externalID)
}

// Provider Errors
func ErrProviderUnavailable(provider string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_PROVIDER_UNAVAILABLE,
		Message:  "Provider temporarily unavailable",
	}.WithDetail("provider", provider)
}

func ErrProviderRejected(provider string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_PROVIDER_REJECTED,
		Message:  "Provider rejected the request",
	}.WithDetail("provider", provider)
}

// Database Errors
func ErrDBQueryFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("operation", operation)
}
