package logger

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	got := sanitizeKVs([]interface{}{"assistant_api_key", "sk-123", "district", "Mitte", "dangling"})
	want := []interface{}{"assistant_api_key", "[REDACTED]", "district", "Mitte", "dangling"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sanitizeKVs mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFallsBackToDevelopment(t *testing.T) {
	log, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.With("component", "test").Debug("hello", "k", "v")
}
