package dto

import "time"

// ErrorCode is the stable, client-facing identifier of a failure
type ErrorCode string

const (
	ErrorCodeInvalidToken ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken ErrorCode = "AUTH_006"
	ErrorCodeUnauthorized ErrorCode = "AUTH_008"

	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeConflict         ErrorCode = "RES_004"

	ErrorCodeAlreadyRegistered ErrorCode = "EVT_001"
	ErrorCodeEventClosed       ErrorCode = "EVT_002"
	ErrorCodeEventFull         ErrorCode = "EVT_003"

	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeEmptyComment     ErrorCode = "VAL_002"
	ErrorCodeInvalidRequest   ErrorCode = "VAL_003"

	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorDetail is the error member of the response envelope
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"VAL_002"`
	Message string      `json:"message" example:"Comment content must not be empty"`
	Field   string      `json:"field,omitempty" example:"content"`
	Details interface{} `json:"details,omitempty"`
}

// NewErrorDetail builds a detail without field or details
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{Code: code, Message: message}
}

// WithField names the request field the error is about
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails attaches per-field errors or a raw binding message
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// ErrorResponse is the envelope of every failed request
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-06-01T12:00:00Z"`
}

// NewErrorResponse wraps detail in the envelope
func NewErrorResponse(detail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{Error: detail, Timestamp: time.Now()}
}

// ValidationErrors collects one detail per invalid field
type ValidationErrors struct {
	Errors []ErrorDetail `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Errors: make([]ErrorDetail, 0)}
}

// AddError records a failed field
func (v *ValidationErrors) AddError(field, message string) *ValidationErrors {
	v.Errors = append(v.Errors, ErrorDetail{
		Code:    ErrorCodeValidationFailed,
		Message: message,
		Field:   field,
	})
	return v
}
