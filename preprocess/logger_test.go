package preprocess

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	t.Run("implements Logger interface", func(t *testing.T) {
		var _ Logger = NopLogger{}
	})

	t.Run("methods do nothing", func(t *testing.T) {
		l := NopLogger{}
		l.Debug("msg", "key", "value")
		l.Info("msg", "key", "value")
		l.Warn("msg", "key", "value")
		l.Error("msg", "key", "value")
	})

	t.Run("With returns a NopLogger", func(t *testing.T) {
		l := NopLogger{}
		if _, ok := l.With("key", "value").(NopLogger); !ok {
			t.Error("With should return NopLogger")
		}
	})
}

func TestSlogAdapter(t *testing.T) {
	t.Run("implements Logger interface", func(t *testing.T) {
		var _ Logger = (*SlogAdapter)(nil)
	})

	t.Run("NewSlogAdapter with nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		if adapter.logger == nil {
			t.Error("adapter.logger should not be nil")
		}
	})

	t.Run("Warn forwards message and attrs", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))

		adapter.Warn("unsupported scheme", "scheme", "digest")

		out := buf.String()
		if !strings.Contains(out, "unsupported scheme") {
			t.Errorf("output should contain message, got: %s", out)
		}
		if !strings.Contains(out, "scheme=digest") {
			t.Errorf("output should contain attr, got: %s", out)
		}
	})

	t.Run("With carries attrs into later logs", func(t *testing.T) {
		var buf bytes.Buffer
		adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))

		adapter.With("document", "petstore").Info("processed")

		if !strings.Contains(buf.String(), "document=petstore") {
			t.Errorf("output should contain With attr, got: %s", buf.String())
		}
	})
}
