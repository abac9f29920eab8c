package folio

import (
	"errors"
	"net/http"
)

// ErrNotFound is returned by the store when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrCode pairs a machine-readable code with the HTTP status it maps to.
type ErrCode struct {
	Code   string `json:"code"`
	Status int    `json:"status"`
}

var (
	ErrCodeInvalidRequest  = ErrCode{"invalid_request", http.StatusBadRequest}
	ErrCodeUnauthorized    = ErrCode{"unauthorized", http.StatusUnauthorized}
	ErrCodeForbidden       = ErrCode{"forbidden", http.StatusForbidden}
	ErrCodeNotFound        = ErrCode{"not_found", http.StatusNotFound}
	ErrCodeTooManyRequests = ErrCode{"too_many_requests", http.StatusTooManyRequests}
	ErrCodeInternal        = ErrCode{"internal_server_error", http.StatusInternalServerError}
)

// messageInternal is the only text a client ever sees for a 5xx.
const messageInternal = "Internal server error"

// Error is a client-facing failure. Message is safe to return to the
// caller; Err is the underlying cause and is only logged.
type Error struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status for the error.
func (e *Error) Status() int { return e.Code.Status }

func newError(code ErrCode, msg string, err error) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// ErrInvalid reports a request the server refuses to process as sent.
func ErrInvalid(msg string) error {
	return newError(ErrCodeInvalidRequest, msg, nil)
}

// ErrUnauthorized reports a write attempted without an admin session.
func ErrUnauthorized() error {
	return newError(ErrCodeUnauthorized, "Unauthorized", nil)
}

// ErrMissing reports a referenced row that does not exist.
func ErrMissing(msg string) error {
	return newError(ErrCodeNotFound, msg, ErrNotFound)
}

// asError maps any error to a client-facing Error. Unknown errors become a
// 500 carrying the cause for logging.
func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, ErrNotFound) {
		return newError(ErrCodeNotFound, "Not found", err)
	}
	return newError(ErrCodeInternal, messageInternal, err)
}
