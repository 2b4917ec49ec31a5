package logging

import (
	"context"
	"sync/atomic"
)

// MirrorFunc receives a copy of every emitted log line. Used to fan log
// records out to an OTLP exporter without touching call sites.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

var mirror atomic.Pointer[MirrorFunc]

// SetMirror installs the process-wide log mirror. Passing nil removes it.
func SetMirror(m MirrorFunc) {
	if m == nil {
		mirror.Store(nil)
		return
	}
	mirror.Store(&m)
}

func mirrorEmit(ctx context.Context, level Level, msg string, args ...any) {
	p := mirror.Load()
	if p == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	(*p)(ctx, level, msg, args...)
}
