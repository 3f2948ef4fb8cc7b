// Package domainerrors defines the closed set of typed failures the decision
// core can surface, plus helpers for wrapping and HTTP translation. Services
// return these; the transport boundary turns them into status codes and
// response envelopes. Anything outside this set is an internal fault and must
// be reported generically.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a category of failure.
type Code string

const (
	// Business-rule rejections produced by the decision engine.
	CodeInvalidPersonalCode Code = "invalid_personal_code"
	CodeInvalidLoanAmount   Code = "invalid_loan_amount"
	CodeInvalidLoanPeriod   Code = "invalid_loan_period"
	CodeIneligibleAge       Code = "ineligible_age"
	CodeNoValidLoan         Code = "no_valid_loan"

	// Transport-level categories.
	CodeBadRequest Code = "bad_request"
	CodeInternal   Code = "internal_error"
)

// Error is a typed domain error. Message is safe to show to callers for all
// codes except CodeInternal.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a domain error with the given code and caller-facing message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause. The cause is kept
// for logs; only code and message cross the transport boundary.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// HasCode reports whether err is (or wraps) a domain error with the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the domain code from err, or CodeInternal if err is not a
// domain error. Unknown failures never leak their own classification.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the caller-facing message for err. Non-domain errors and
// internal errors collapse to a generic message so diagnostics stay inside.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Code != CodeInternal {
		return de.Message
	}
	return "An unexpected error occurred"
}

// ToHTTPStatus maps a domain code to its transport status. Input and
// business-rule rejections are 400, an unfillable loan is 404, everything
// else is 500.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidPersonalCode, CodeInvalidLoanAmount, CodeInvalidLoanPeriod, CodeIneligibleAge, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNoValidLoan:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
