// Package ttmlog wraps log/slog with the file+stderr fanout the driver
// uses for diagnostics: everything goes to the log file, and anything
// at warning level or above is echoed to stderr so a human running the
// CLI still sees it.
package ttmlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

type fanoutHandler struct {
	out   io.Writer
	inner slog.Handler
	mu    *sync.Mutex
	quiet bool
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &fanoutHandler{out: h.out, inner: h.inner.WithAttrs(attrs), mu: h.mu, quiet: h.quiet}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	return &fanoutHandler{out: h.out, inner: h.inner.WithGroup(name), mu: h.mu, quiet: h.quiet}
}

func (h *fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if !h.quiet && r.Level >= slog.LevelWarn {
		stderrHandler := slog.NewTextHandler(os.Stderr, nil)
		return stderrHandler.Handle(ctx, r)
	}
	return nil
}

// New returns a logger that writes to w and echoes warnings/errors to
// stderr unless quiet is set.
func New(w io.Writer, quiet bool) *slog.Logger {
	h := &fanoutHandler{
		out:   w,
		inner: slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		mu:    &sync.Mutex{},
		quiet: quiet,
	}
	return slog.New(h)
}

// Open opens (creating if necessary) the log file at path and returns a
// logger writing to it, plus the file so the caller can close it.
func Open(path string, quiet bool) (*slog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, quiet), f, nil
}
