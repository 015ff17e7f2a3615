package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the error type services hand to the HTTP layer.
// MessageKey names a localized string; Message is the English fallback.
type AppError struct {
	Code       ErrorCode   `json:"code"`
	Domain     string      `json:"domain"`
	Message    string      `json:"message"`
	MessageKey string      `json:"message_key,omitempty"`
	Details    interface{} `json:"details,omitempty"`
	Err        error       `json:"-"`
	HTTPCode   int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on code and domain so that a wrapped copy of a predefined
// error still satisfies errors.Is against the original.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Domain == t.Domain && e.MessageKey == t.MessageKey
}

func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) clone() *AppError {
	c := *e
	return &c
}

// WithDetails returns a copy carrying details; predefined errors stay untouched.
func (e *AppError) WithDetails(details interface{}) *AppError {
	c := e.clone()
	c.Details = details
	return c
}

// WithError returns a copy wrapping err.
func (e *AppError) WithError(err error) *AppError {
	c := e.clone()
	c.Err = err
	return c
}

// WithKey returns a copy bound to a localized message key.
func (e *AppError) WithKey(key string) *AppError {
	c := e.clone()
	c.MessageKey = key
	return c
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code       ErrorCode   `json:"code"`
		Domain     string      `json:"domain"`
		Message    string      `json:"message"`
		MessageKey string      `json:"message_key,omitempty"`
		Details    interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:       e.Code,
		Domain:     e.Domain,
		Message:    e.Message,
		MessageKey: e.MessageKey,
		Details:    e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// InternalError wraps an unexpected failure. The message never carries err.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError).
		WithKey("error_server")
}

// ValidationError is a 400 with per-field details.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).
		WithKey("error_validation").
		WithDetails(details)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized).WithKey("error_unauthorized")
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}
