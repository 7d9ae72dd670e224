package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := NotFound("pages with id %v not found", []int{3})
	if err.Error() != "pages with id [3] not found" {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{BadRequest("x"), http.StatusBadRequest},
		{Forbidden("x"), http.StatusForbidden},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("x")), http.StatusNotFound},
		{nil, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.err); got != tt.want {
			t.Errorf("StatusOf(%v): got %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(NotFound("gone")) {
		t.Error("expected IsNotFound for NotFound error")
	}
	if IsNotFound(Forbidden("no")) {
		t.Error("did not expect IsNotFound for Forbidden error")
	}
}
