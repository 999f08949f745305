package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes used across the checkout and issuance workflows.
const (
	CodeInvalidInput          = "INVALID_INPUT"
	CodePaymentProvider       = "PAYMENT_PROVIDER_ERROR"
	CodeSessionNotFound       = "SESSION_NOT_FOUND"
	CodeMissingBuyerEmail     = "MISSING_BUYER_EMAIL"
	CodeRenderError           = "RENDER_ERROR"
	CodeDeliveryError         = "DELIVERY_ERROR"
	CodeIssuanceFailed        = "ISSUANCE_FAILED"
	CodeInternalError         = "INTERNAL_ERROR"
	CodeDependencyUnavailable = "DEPENDENCY_UNAVAILABLE"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewInvalidInput(message string, details map[string]any) error {
	return NewDomainError(CodeInvalidInput, message, http.StatusBadRequest, details)
}

func NewPaymentProviderError(err error) error {
	return &DomainError{
		Code:       CodePaymentProvider,
		Message:    "payment provider request failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewSessionNotFound(sessionID string, err error) error {
	return &DomainError{
		Code:       CodeSessionNotFound,
		Message:    "payment session not found",
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"session_id": sessionID},
		Err:        err,
	}
}

func NewMissingBuyerEmail(sessionID string) error {
	return &DomainError{
		Code:       CodeMissingBuyerEmail,
		Message:    "payment session has no customer email",
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"session_id": sessionID},
	}
}

func NewRenderError(err error) error {
	return &DomainError{
		Code:       CodeRenderError,
		Message:    "ticket rendering failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewDeliveryError(err error) error {
	return &DomainError{
		Code:       CodeDeliveryError,
		Message:    "ticket delivery failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// CodeOf returns the DomainError code carried by err, or INTERNAL_ERROR.
func CodeOf(err error) string {
	if de := ToDomainError(err); de != nil {
		return de.Code
	}
	return ""
}

// IsClientError reports whether err maps to a 4xx response.
func IsClientError(err error) bool {
	de := ToDomainError(err)
	return de != nil && de.HTTPStatus >= 400 && de.HTTPStatus < 500
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
