package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrModelUnavailable is returned when no model binding is configured or
	// the model call failed. Recoverable; triggers fallback generation.
	ErrModelUnavailable = errors.New("generative model unavailable")
	// ErrValidationFailed indicates parsed content violates a lesson invariant.
	ErrValidationFailed = errors.New("generated content failed validation")
	// ErrRecommendationUnavailable indicates video search produced nothing usable.
	ErrRecommendationUnavailable = errors.New("video recommendations unavailable")
	// ErrNotFound is returned for entity lookup misses at the persistence boundary.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned for missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user acts on another user's resources.
	ErrForbidden = errors.New("forbidden")
	// ErrEmailTaken is returned when registering with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login with a wrong email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrRendererUnavailable indicates the PDF toolchain is not installed.
	ErrRendererUnavailable = errors.New("pdf renderer unavailable")
)

// ExtractionError reports that structured content could not be recovered from
// raw model output. The raw text is retained for diagnostics. Callers treat
// this as a recoverable condition and fall back to deterministic generation.
type ExtractionError struct {
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract structured content: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
