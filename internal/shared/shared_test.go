package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("test message")

		if !strings.Contains(buf.String(), "test message") {
			t.Errorf("expected log output to contain message, got %s", buf.String())
		}
	})

	t.Run("Nil Writer Defaults To Stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger to be created")
		}
	})

	t.Run("NewFileLogger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "cfx.log")

		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		if logger == nil {
			t.Fatal("expected logger to be created")
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		child := WithLogger(logger, "component", "session")

		child.Info("scoped")

		if !strings.Contains(buf.String(), "component") {
			t.Errorf("expected child logger output to contain key, got %s", buf.String())
		}
	})

	t.Run("SetLogLevel", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)

		logger.Info("suppressed")

		if strings.Contains(buf.String(), "suppressed") {
			t.Error("info message should be suppressed at error level")
		}
	})
}

func TestGenerateID(t *testing.T) {
	first := GenerateID()
	second := GenerateID()

	if first == "" {
		t.Fatal("expected non-empty ID")
	}

	if first == second {
		t.Error("expected generated IDs to be unique")
	}
}
