package myerrors

import (
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	myErr := fmt.Errorf("my error")

	testCases := []struct {
		name       string
		in         error
		httpStatus int
		errorText  string
	}{
		{
			name:       "No http error",
			in:         myErr,
			httpStatus: 500,
			errorText:  "my error",
		},
		{
			name:       "Invalid input error",
			in:         NewInvalidInputError(myErr),
			httpStatus: 400,
			errorText:  "status: 400, err: my error",
		},
		{
			name:       "Invalid input errorf",
			in:         NewInvalidInputErrorf("%s: %d", myErr.Error(), 123),
			httpStatus: 400,
			errorText:  "status: 400, err: my error: 123",
		},
		{
			name:       "Authentication error",
			in:         NewAuthenticationError(myErr),
			httpStatus: 403,
			errorText:  "status: 403, err: my error",
		},
		{
			name:       "Not found error",
			in:         NewNotFoundError(myErr),
			httpStatus: 404,
			errorText:  "status: 404, err: my error",
		},
		{
			name:       "Collaborator error",
			in:         NewCollaboratorError(myErr),
			httpStatus: 502,
			errorText:  "status: 502, err: my error",
		},
		{
			name:       "Payment cancelled error",
			in:         NewPaymentCancelledError(myErr),
			httpStatus: 409,
			errorText:  "status: 409, err: my error",
		},
		{
			name:       "Verification error",
			in:         NewVerificationError(myErr),
			httpStatus: 502,
			errorText:  "status: 502, err: my error",
		},
		{
			name:       "Internal error",
			in:         NewInternalError(myErr),
			httpStatus: 500,
			errorText:  "status: 500, err: my error",
		},
		{
			name:       "Not available error",
			in:         NewUnavailableError(myErr),
			httpStatus: 503,
			errorText:  "status: 503, err: my error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpStatus := GetHTTPStatus(tc.in)
			if httpStatus != tc.httpStatus {
				t.Errorf("HttpStatus: got %v, want %v", httpStatus, tc.httpStatus)
			}
			if tc.errorText != tc.in.Error() {
				t.Errorf("%s: ErrorText: got %v, want %v", tc.name, tc.in.Error(), tc.errorText)
			}
		})
	}
}

func TestKindPredicates(t *testing.T) {
	base := fmt.Errorf("collaborator down")

	if !IsCollaborator(NewCollaboratorError(base)) {
		t.Error("expected collaborator kind")
	}
	if !IsCollaborator(NewUnavailableError(base)) {
		t.Error("expected unavailable to count as collaborator failure")
	}
	if !IsPaymentCancelled(NewPaymentCancelledError(base)) {
		t.Error("expected payment-cancelled kind")
	}
	if !IsVerificationFailed(NewVerificationError(base)) {
		t.Error("expected verification kind")
	}
	if !IsInvalidInput(NewInvalidInputErrorf("missing field")) {
		t.Error("expected invalid-input kind")
	}
	if IsPaymentCancelled(base) {
		t.Error("plain error must not match a kind")
	}
	if !IsNotFound(fmt.Errorf("wrapped: %w", NewNotFoundError(base))) {
		t.Error("expected kind to survive wrapping")
	}
}
