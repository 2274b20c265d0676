package domain

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidPhone rejects submissions whose recipient phone fails
	// Bangladesh mobile validation after normalization. Normalization is
	// best-effort; it is never applied silently past this check.
	ErrInvalidPhone = errors.New("invalid bangladesh phone number format")
	// ErrMissingCredentials signals that no Steadfast credentials are stored
	// for an operation that requires them.
	ErrMissingCredentials = errors.New("api credentials are required")
	ErrConflict           = errors.New("conflict")
	// ErrTokenExpired distinguishes an expired, unrefreshable Google token
	// from a generic backup failure so the caller can re-authenticate.
	ErrTokenExpired = errors.New("google authentication expired")
	// ErrTokenMissing is returned when a Drive operation runs before the
	// OAuth flow has been completed.
	ErrTokenMissing = errors.New("google drive tokens are required")
	// ErrExtractorUnavailable is returned when the AI extraction backend is
	// not configured.
	ErrExtractorUnavailable  = errors.New("extraction backend not configured")
	ErrDependencyUnavailable = errors.New("upstream dependency unavailable")
)
