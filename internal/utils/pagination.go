// Package utils provides small, generic helpers shared across layers. Nothing
// in here knows about locations or HTTP.
package utils

import "strconv"

// AtoiDefault parses s as an int, returning def when s is empty or not a
// plain integer. No trimming is applied.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ClampInt bounds v into [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TotalPages computes the page count for total items at pageSize per page.
// A non-positive pageSize yields zero.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
