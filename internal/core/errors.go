// internal/core/errors.go
package core

import (
	"fmt"
	"strings"
)

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Engine errors
	ErrStrategyUnknown = &Error{Code: "STRATEGY_UNKNOWN", Message: "strategy not registered"}
	ErrNoStrategies    = &Error{Code: "NO_STRATEGIES", Message: "no strategies enabled"}

	// Storage errors
	ErrReportNotFound = &Error{Code: "REPORT_NOT_FOUND", Message: "report not found"}
	ErrBuyerNotFound  = &Error{Code: "BUYER_NOT_FOUND", Message: "buyer not found"}
	ErrJobNotFound    = &Error{Code: "JOB_NOT_FOUND", Message: "job not found"}
	ErrStorageFailed  = &Error{Code: "STORAGE_FAILED", Message: "storage operation failed"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// API errors
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "missing or invalid API key"}
)

// Field validation codes used by the normalizer.
const (
	CodeInvalidGeometry = "INVALID_GEOMETRY"
	CodeInvalidPrice    = "INVALID_PRICE"
	CodeInvalidEnum     = "INVALID_ENUM"
	CodeInvalidYear     = "INVALID_YEAR"
)

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError aggregates every offending field of a PropertyInput.
// Validation is total: the normalizer checks all fields before failing.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Code)
	}
	return "invalid property input: " + strings.Join(parts, "; ")
}

// Warning codes surfaced in AnalysisReport.Warnings.
const (
	WarnMarketFallbackUsed = "MARKET_FALLBACK_USED"
	WarnBuyerInvertedRange = "BUYER_PRICE_RANGE_INVERTED"
	WarnOverrideUsed       = "OVERRIDE_CONFIDENCE_REDUCED"
)

// Warning is a non-fatal anomaly surfaced alongside results.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
