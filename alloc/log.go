package alloc

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Logger returns the package logger. It discards all output until SetLogger is called.
func Logger() *slog.Logger {
	return logger.Load()
}

// SetLogger replaces the package logger. A nil logger restores the discarding default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger()
	}
	logger.Store(l)
}
