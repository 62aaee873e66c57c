package logging

import (
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug": log.DebugLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"":      log.InfoLevel,
		"loud":  log.InfoLevel,
	}
	for name, want := range tests {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNewUsesEnvLevel(t *testing.T) {
	t.Setenv(LevelEnv, "debug")
	if got := New("test").GetLevel(); got != log.DebugLevel {
		t.Fatalf("level = %v", got)
	}
}
