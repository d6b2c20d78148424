package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation error", Validation("empty name"), KindValidation},
		{"not ready with reasons", NotReady("cannot send", "no_signers"), KindNotReady},
		{"wrapped error", fmt.Errorf("send document: %w", OutOfSequence("not your turn")), KindOutOfSequence},
		{"plain error", errors.New("boom"), Kind("")},
		{"nil error", nil, Kind("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad email"), http.StatusBadRequest},
		{"invalid state", InvalidState("document is not draft"), http.StatusConflict},
		{"not ready", NotReady("fields incomplete", "fields_incomplete"), http.StatusUnprocessableEntity},
		{"out of sequence", OutOfSequence("not eligible"), http.StatusConflict},
		{"forbidden", Forbidden("field not assigned to signer"), http.StatusForbidden},
		{"not found", NotFound("document not found"), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := NotReady("cannot send document", "no_fields", "unassigned_fields")

	want := "not_ready: cannot send document [no_fields unassigned_fields]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
