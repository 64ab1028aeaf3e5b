package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	multierror "github.com/hashicorp/go-multierror"
	slogseq "github.com/sokkalf/slog-seq"
)

// multiHandler forwards log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes r to every enabled handler, even when an earlier one fails
func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs *multierror.Error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// Conf configures SetupLogger
type Conf struct {
	Level  int       // one of the level enums. Defaults to TraceLevel (the zero value), so set this explicitly.
	Output io.Writer // where console logs are written
	SeqURL string    // if set, logs are also shipped to a Seq server at this URL
}

// SetupLogger creates a logger writing text to conf.Output, and to Seq when configured.
// The returned function flushes and closes any remote sink.
func SetupLogger(conf *Conf) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{
		Level: ToSlogLevel(conf.Level),
	}
	consoleHandler := slog.NewTextHandler(conf.Output, opts)
	if len(conf.SeqURL) == 0 {
		return slog.New(consoleHandler), func() {}
	}

	_, seqHandler := slogseq.NewLogger(
		conf.SeqURL,
		slogseq.WithBatchSize(50),
		slogseq.WithFlushInterval(500*time.Millisecond),
		slogseq.WithHandlerOptions(opts),
	)
	if seqHandler == nil {
		return slog.New(consoleHandler), func() {}
	}

	multi := &multiHandler{
		handlers: []slog.Handler{consoleHandler, seqHandler},
	}
	return slog.New(multi), func() {
		seqHandler.Close()
	}
}

// Discard returns a logger which drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 8}))
}
