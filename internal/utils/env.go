package utils

import "os"

// EnvOr returns the environment variable value for key, or fallback if
// unset or empty.
func EnvOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
