package env

import (
	"os"
	"strings"
)

// Get returns the value of the given environment variable, or fallback
// when the variable is unset or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
