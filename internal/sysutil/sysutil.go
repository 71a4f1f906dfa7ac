// Package sysutil holds process-level helpers used during boot.
package sysutil

import (
	"strings"

	"github.com/rs/zerolog"
)

// SetLogLevel sets the global zerolog level from a config string. Unknown or
// empty values fall back to info; "warning" is accepted as an alias.
func SetLogLevel(lvl string) {
	s := strings.ToLower(strings.TrimSpace(lvl))
	if s == "warning" {
		s = "warn"
	}
	if s == "" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return
	}
	parsed, err := zerolog.ParseLevel(s)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// FirstNonEmpty returns the first value whose trimmed form is non-empty, or
// "" when none qualifies.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
