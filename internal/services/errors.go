// Package services defines the business logic for the location store and the
// confirmation workflow. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrLocationNotFound indicates that the requested location does not exist
	// or does not belong to the current owner. A malformed identifier resolves
	// here as well rather than as a distinct failure.
	ErrLocationNotFound = errors.New("location not found")

	// ErrNoPendingLocation is returned when an owner confirms or cancels
	// without a live pending candidate (never proposed, already resolved, or
	// expired). It is a user-facing "nothing to confirm", not a system fault.
	ErrNoPendingLocation = errors.New("no pending location")

	// ErrMissingWorld is returned when a candidate carries an empty world name.
	ErrMissingWorld = errors.New("world must not be empty")

	// ErrMissingBiome is returned when a candidate carries an empty biome name.
	ErrMissingBiome = errors.New("biome must not be empty")
)
