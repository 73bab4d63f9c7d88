package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{Unauthenticated("bad token"), http.StatusUnauthorized, "unauthenticated"},
		{Forbidden("wrong role"), http.StatusForbidden, "forbidden"},
		{PendingApproval(), http.StatusForbidden, "pending_approval"},
		{NotFound("service"), http.StatusNotFound, "not_found"},
		{Validation("proofUrl", "required"), http.StatusUnprocessableEntity, "validation_error"},
		{Duplicate("transaction id"), http.StatusConflict, "duplicate"},
		{RateLimited(), http.StatusTooManyRequests, "rate_limited"},
		{Unavailable("media storage"), http.StatusBadGateway, "dependency_unavailable"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		status, code := StatusOf(tc.err)
		if status != tc.status || code != tc.code {
			t.Fatalf("%v: got %d/%s want %d/%s", tc.err, status, code, tc.status, tc.code)
		}
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("intake failed: %w", Duplicate("transaction id"))
	if !errors.Is(wrapped, ErrDuplicate) {
		t.Fatalf("wrapped duplicate lost its sentinel")
	}
	status, code := StatusOf(wrapped)
	if status != http.StatusConflict || code != "duplicate" {
		t.Fatalf("wrapped duplicate mapped to %d/%s", status, code)
	}
}
