package texmat

import (
	"context"
	"log/slog"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	resetForTest()

	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is not silent")
	}
}

func TestSetLogger(t *testing.T) {
	resetForTest()

	rec := &recordingHandler{}
	SetLogger(slog.New(rec))
	Logger().Info("hello")
	if msgs := rec.messages(); len(msgs) != 1 || msgs[0] != "hello" {
		t.Fatalf("messages = %v, want [hello]", msgs)
	}

	// nil restores the silent default.
	SetLogger(nil)
	Logger().Info("dropped")
	if msgs := rec.messages(); len(msgs) != 1 {
		t.Fatalf("message reached replaced handler: %v", msgs)
	}
}
