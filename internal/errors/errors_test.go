package errors

import (
	"fmt"
	"testing"
)

func TestBlendError_Error(t *testing.T) {
	err := &BlendError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "profile not found",
	}

	expected := "NOT_FOUND: profile not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInsufficientSample(t *testing.T) {
	err := NewInsufficientSample("startups", 9, 10)

	if err.Code != ErrInsufficientSample {
		t.Errorf("Code = %q, want %q", err.Code, ErrInsufficientSample)
	}
	if err.Status != 422 {
		t.Errorf("Status = %d, want 422", err.Status)
	}
	if err.Details["sample_size"] != 9 {
		t.Errorf("Details[sample_size] = %v, want 9", err.Details["sample_size"])
	}
	if err.Details["min_sample_size"] != 10 {
		t.Errorf("Details[min_sample_size] = %v, want 10", err.Details["min_sample_size"])
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("community is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "community is required" {
		t.Errorf("Message = %q, want %q", err.Message, "community is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("profile", "startups")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["identifier"] != "startups" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "startups")
	}
}

func TestNewPatternImmutable(t *testing.T) {
	err := NewPatternImmutable("saas", "use code")

	if err.Code != ErrPatternImmutable {
		t.Errorf("Code = %q, want %q", err.Code, ErrPatternImmutable)
	}
	if err.Status != 409 {
		t.Errorf("Status = %d, want 409", err.Status)
	}
	if err.Details["pattern"] != "use code" {
		t.Errorf("Details[pattern] = %v, want %q", err.Details["pattern"], "use code")
	}
}

func TestNewGenerationUnavailable(t *testing.T) {
	t.Run("with underlying error", func(t *testing.T) {
		err := NewGenerationUnavailable(fmt.Errorf("connection refused"))
		if err.Code != ErrGenerationUnavailable {
			t.Errorf("Code = %q, want %q", err.Code, ErrGenerationUnavailable)
		}
		if err.Status != 502 {
			t.Errorf("Status = %d, want 502", err.Status)
		}
		if err.Message != "connection refused" {
			t.Errorf("Message = %q, want %q", err.Message, "connection refused")
		}
	})

	t.Run("nil error", func(t *testing.T) {
		err := NewGenerationUnavailable(nil)
		if err.Message != "generation engine returned no output" {
			t.Errorf("Message = %q", err.Message)
		}
	})
}

func TestNewInternal(t *testing.T) {
	err := NewInternal(fmt.Errorf("database is locked"))

	if err.Code != ErrInternal {
		t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
	}
	if err.Status != 500 {
		t.Errorf("Status = %d, want 500", err.Status)
	}
	if err.Message != "database is locked" {
		t.Errorf("Message = %q, want %q", err.Message, "database is locked")
	}
}

func TestIs(t *testing.T) {
	notFound := NewNotFound("profile", "x")

	if !Is(notFound, ErrNotFound) {
		t.Error("Is(notFound, ErrNotFound) = false, want true")
	}
	if Is(notFound, ErrInternal) {
		t.Error("Is(notFound, ErrInternal) = true, want false")
	}
	if Is(fmt.Errorf("plain error"), ErrNotFound) {
		t.Error("Is(plain error, ErrNotFound) = true, want false")
	}
	if Is(nil, ErrNotFound) {
		t.Error("Is(nil, ErrNotFound) = true, want false")
	}
}
