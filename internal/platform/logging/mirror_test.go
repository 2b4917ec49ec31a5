package logging

import (
	"context"
	"testing"
)

func TestSetMirror_ReceivesEmittedLines(t *testing.T) {
	type record struct {
		level Level
		msg   string
		args  []any
	}

	var got []record
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, record{level: level, msg: msg, args: args})
	})
	defer SetMirror(nil)

	logger := NewNop()
	logger.InfoContext(context.Background(), "snapshot served", "season", 2024, "week", 3)
	logger.Warn("probe failed", "season", 2023)

	if len(got) != 2 {
		t.Fatalf("mirrored records=%d", len(got))
	}
	if got[0].msg != "snapshot served" || got[0].level != LevelInfo {
		t.Fatalf("first record=%+v", got[0])
	}
	if got[1].msg != "probe failed" || got[1].level != LevelWarn {
		t.Fatalf("second record=%+v", got[1])
	}
}

func TestSetMirror_NilRemovesMirror(t *testing.T) {
	calls := 0
	SetMirror(func(context.Context, Level, string, ...any) { calls++ })
	SetMirror(nil)

	NewNop().Info("after removal")
	if calls != 0 {
		t.Fatalf("mirror called %d times after removal", calls)
	}
}
