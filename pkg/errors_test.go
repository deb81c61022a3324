package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("boom")
	e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
	if !errors.Is(e, cause) {
		t.Fatalf("expected wrapped cause")
	}
	if e.Error() != "INTERNAL_ERROR: boom" {
		t.Fatalf("unexpected error string: %s", e.Error())
	}

	simple := NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	if simple.Error() != "INVALID_REQUEST: Invalid request" {
		t.Fatalf("unexpected error string: %s", simple.Error())
	}

	detailed := simple.WithDetails("gateway down", []string{"a", "b"})
	if simple.Details != "" || simple.Logs != nil {
		t.Fatalf("WithDetails must not mutate the receiver")
	}
	body := detailed.ToHTTPError()
	if body.Error != "INVALID_REQUEST" || body.Message != "Invalid request" || body.Details != "gateway down" || len(body.Logs) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}
