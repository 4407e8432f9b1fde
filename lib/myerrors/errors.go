package myerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type errorKind string

const (
	kindInvalidInput     errorKind = "invalid_input"
	kindNotFound         errorKind = "not_found"
	kindAuthentication   errorKind = "authentication"
	kindCollaborator     errorKind = "collaborator"
	kindUnavailable      errorKind = "unavailable"
	kindPaymentCancelled errorKind = "payment_cancelled"
	kindVerification     errorKind = "verification_failed"
	kindInternal         errorKind = "internal"
	kindNotImplemented   errorKind = "not_implemented"
)

type domainError struct {
	httpCode int
	kind     errorKind
	err      error
}

func (e domainError) Error() string {
	return fmt.Sprintf("status: %d, err: %s", e.httpCode, e.err.Error())
}

func (e domainError) Unwrap() error {
	return e.err
}

func (e domainError) GetHTTPErrorCode() int {
	return e.httpCode
}

func newError(httpCode int, kind errorKind, err error) *domainError {
	return &domainError{
		httpCode: httpCode,
		kind:     kind,
		err:      err,
	}
}

// NewInvalidInputError marks a local pre-network validation failure.
func NewInvalidInputError(err error) *domainError {
	return newError(http.StatusBadRequest, kindInvalidInput, err)
}

func NewInvalidInputErrorf(format string, args ...any) *domainError {
	return NewInvalidInputError(fmt.Errorf(format, args...))
}

func NewNotFoundError(err error) *domainError {
	return newError(http.StatusNotFound, kindNotFound, err)
}

func NewAuthenticationError(err error) *domainError {
	return newError(http.StatusForbidden, kindAuthentication, err)
}

// NewCollaboratorError marks a retryable failure of an external service:
// user input and selections must survive it.
func NewCollaboratorError(err error) *domainError {
	return newError(http.StatusBadGateway, kindCollaborator, err)
}

func NewUnavailableError(err error) *domainError {
	return newError(http.StatusServiceUnavailable, kindUnavailable, err)
}

// NewPaymentCancelledError marks a gateway handshake the shopper dismissed.
// No order has been created.
func NewPaymentCancelledError(err error) *domainError {
	return newError(http.StatusConflict, kindPaymentCancelled, err)
}

// NewVerificationError marks a payment the gateway confirmed but the order
// side could not verify: money may have moved without a confirmed order.
func NewVerificationError(err error) *domainError {
	return newError(http.StatusBadGateway, kindVerification, err)
}

func NewInternalError(err error) *domainError {
	return newError(http.StatusInternalServerError, kindInternal, err)
}

func NewNotImplementedError(err error) *domainError {
	return newError(http.StatusNotImplemented, kindNotImplemented, err)
}

type httpErrorCoder interface {
	error
	GetHTTPErrorCode() int
}

func GetHTTPStatus(err error) int {
	var coder httpErrorCoder
	if errors.As(err, &coder) {
		return coder.GetHTTPErrorCode()
	}

	return http.StatusInternalServerError
}

func isKind(err error, kind errorKind) bool {
	var de *domainError
	if errors.As(err, &de) {
		return de.kind == kind
	}

	return false
}

func IsInvalidInput(err error) bool {
	return isKind(err, kindInvalidInput)
}

func IsNotFound(err error) bool {
	return isKind(err, kindNotFound)
}

func IsCollaborator(err error) bool {
	return isKind(err, kindCollaborator) || isKind(err, kindUnavailable)
}

func IsPaymentCancelled(err error) bool {
	return isKind(err, kindPaymentCancelled)
}

func IsVerificationFailed(err error) bool {
	return isKind(err, kindVerification)
}
