package paypal

import "fmt"

type ErrorReason string

const (
	REASON_AUTH_FAILED       ErrorReason = "AUTH_FAILED"
	REASON_UPSTREAM_FAILED   ErrorReason = "UPSTREAM_FAILED"
	REASON_INVALID_AMOUNT    ErrorReason = "INVALID_AMOUNT"
	REASON_TOKEN_CACHE_ERROR ErrorReason = "TOKEN_CACHE_ERROR"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error
	// Raw response body from PayPal, if there was one.
	Body []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newPaypalError(reason ErrorReason, message string, cause error, body []byte) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
		Body:    body,
	}
}

func NewAuthError(message string, cause error, body []byte) *Error {
	return newPaypalError(REASON_AUTH_FAILED, message, cause, body)
}

func NewUpstreamError(message string, cause error, body []byte) *Error {
	return newPaypalError(REASON_UPSTREAM_FAILED, message, cause, body)
}

func NewInvalidAmountError(message string) *Error {
	return newPaypalError(REASON_INVALID_AMOUNT, message, nil, nil)
}

func NewTokenCacheError(message string, cause error) *Error {
	return newPaypalError(REASON_TOKEN_CACHE_ERROR, message, cause, nil)
}
