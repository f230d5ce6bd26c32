// Package env holds the tiny pre-config environment reads (log format and
// friends) that happen before envconfig has parsed the full ECCLESIA_ set.
package env

import "os"

// Get returns the environment variable's value, or the fallback when unset
// or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
