package logger

import (
	"path/filepath"
	"testing"
)

func TestSetup(t *testing.T) {
	t.Run("invalid level", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Level = "loud"
		if err := Setup(cfg); err == nil {
			t.Fatalf("expected error for invalid level")
		}
	})

	t.Run("json to file", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Format = "json"
		cfg.Output = filepath.Join(t.TempDir(), "billing.log")
		if err := Setup(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		l := WithComponent("test")
		l.Info().Msg("hello")
	})
}
