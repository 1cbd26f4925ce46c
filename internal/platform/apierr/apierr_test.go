package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsFollowsWrapping(t *testing.T) {
	err := fmt.Errorf("load section: %w", NotFound("section"))
	if !Is(err, CodeNotFound) {
		t.Fatalf("expected wrapped not_found to match")
	}
	if Is(err, CodeAccessDenied) {
		t.Fatalf("did not expect access_denied to match")
	}
	if Is(errors.New("plain"), CodeNotFound) {
		t.Fatalf("plain error must not match")
	}
}

func TestGenerationFailedCarriesOperation(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := GenerationFailed("generate_outline", cause)
	if err.Status != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", err.Status)
	}
	if got := err.Error(); got != "generate_outline failed: quota exceeded" {
		t.Fatalf("unexpected message: %q", got)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
}

func TestFromMapsUnknownErrorsToInternal(t *testing.T) {
	e := From(errors.New("boom"))
	if e.Status != http.StatusInternalServerError || e.Code != CodeInternal {
		t.Fatalf("unexpected mapping: %+v", e)
	}
	if From(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
	v := Validation("bad %s", "input")
	if From(v) != v {
		t.Fatalf("expected typed error to pass through")
	}
}
