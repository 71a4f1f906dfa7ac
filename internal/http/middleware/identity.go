// Package middleware contains the Gin middleware shared by the HTTP layer.
//
// This file resolves the calling owner's identity. The API is consumed by a
// trusted game-server integration, which forwards the player's stable id and
// display name in headers; there is no end-user authentication here. The
// resolved identity is stored in the Gin context for handlers, the access
// logger, and the rate limiter.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ownerIDHeader carries the stable owner identifier.
	ownerIDHeader = "X-Owner-ID"
	// ownerNameHeader carries the display name used in notifications.
	ownerNameHeader = "X-Owner-Name"
	// ownerNameKey is the Gin context key holding the display name.
	ownerNameKey = "ownerName"
)

// OwnerIdentity copies the X-Owner-ID and X-Owner-Name headers into the Gin
// context. It never rejects a request; endpoints that require an owner check
// the context value themselves so they can answer with the right error shape.
func OwnerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(ownerIDHeader)); id != "" {
			c.Set(ownerIDKey, id)
		}
		if name := strings.TrimSpace(c.GetHeader(ownerNameHeader)); name != "" {
			c.Set(ownerNameKey, name)
		}
		c.Next()
	}
}

// OwnerFrom returns the resolved owner id and display name for the request.
// The id is empty when the caller supplied no identity.
func OwnerFrom(c *gin.Context) (id, name string) {
	if v, ok := c.Get(ownerIDKey); ok {
		id, _ = v.(string)
	}
	if v, ok := c.Get(ownerNameKey); ok {
		name, _ = v.(string)
	}
	return id, name
}
