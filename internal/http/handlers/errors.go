// Package handlers defines the HTTP-layer error codes used across the API.
//
// Codes are lowercase snake_case and stable: clients branch on them for
// programmatic error handling, while the message field stays free to change.
// Generic codes mirror common HTTP status semantics; domain-specific codes
// cover cases a status alone cannot convey (a confirm with nothing pending is
// a 404, but "no_pending_location" tells the client which resource is absent).
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeNoPending        = "no_pending_location"
	ErrCodeSaveFailed       = "save_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
