package testutil

import (
	"log/slog"
	"testing"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		if got := handler.Count(); got != 2 {
			t.Errorf("Expected 2 records, got %d", got)
		}
		if !handler.ContainsMessage("test message") {
			t.Error("Expected to find 'test message'")
		}
		if !handler.ContainsAttr("key", "value") {
			t.Error("Expected to find attribute key=value")
		}
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")
		logger.Error("error msg")

		if got := len(handler.GetRecordsByLevel(slog.LevelInfo)); got != 1 {
			t.Errorf("Expected 1 info record, got %d", got)
		}
		if got := len(handler.GetRecordsByLevel(slog.LevelError)); got != 1 {
			t.Errorf("Expected 1 error record, got %d", got)
		}
	})

	t.Run("derived loggers share the store", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("component", "cache")).Info("hit")
		logger.WithGroup("req").Info("served", slog.String("path", "/api"))

		if got := handler.Count(); got != 2 {
			t.Fatalf("Expected 2 records, got %d", got)
		}
		if !handler.ContainsAttr("component", "cache") {
			t.Error("Expected With attributes on the record")
		}
		if !handler.ContainsAttr("req.path", "/api") {
			t.Error("Expected grouped key req.path")
		}
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.Info("one")
		handler.Clear()
		if handler.Count() != 0 {
			t.Errorf("Expected empty handler after Clear, got %d", handler.Count())
		}
	})
}

func TestAssertHelpers(t *testing.T) {
	logger, handler := NewTestLogger(t)
	logger.Warn("dataset reloaded", slog.String("source", "data.csv"))

	AssertLogContains(t, handler, slog.LevelWarn, "reloaded")
	AssertLogAttr(t, handler, "source", "data.csv")
	AssertNoErrors(t, handler)
}
