// Package env reads one-off environment variables that sit outside the
// envconfig-managed configuration, such as knobs consulted before config
// loading has happened.
package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of key, or fallback when the variable is
// unset or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// GetBool interprets the variable as a boolean flag. Only "1", "t", "true",
// "y" and "yes" (any case) count as true; anything else yields fallback.
func GetBool(key string, fallback bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "":
		return fallback
	case "1", "t", "true", "y", "yes":
		return true
	default:
		return false
	}
}
