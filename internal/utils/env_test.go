package utils

import (
	"os"
	"testing"
)

func TestEnvOr(t *testing.T) {
	const key = "_GREENPRINT_TEST_ENVOR"
	os.Unsetenv(key)
	if got := EnvOr(key, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	os.Setenv(key, "value")
	defer os.Unsetenv(key)
	if got := EnvOr(key, "fallback"); got != "value" {
		t.Fatalf("expected 'value', got %q", got)
	}
}
