package logging

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseLevelRoundTrip(t *testing.T) {
	for level := TraceLevel; level <= FatalLevel; level++ {
		parsed, err := ParseLevel(LogLevelToString(level))
		require.Nil(t, err)
		require.Equal(t, level, parsed)
	}
	_, err := ParseLevel("loud")
	require.NotNil(t, err)
	parsed, err := ParseLevel("")
	require.Nil(t, err)
	require.Equal(t, InfoLevel, parsed)
}

func TestSlogLevelsAreOrdered(t *testing.T) {
	for level := TraceLevel; level < FatalLevel; level++ {
		require.Less(t, ToSlogLevel(level), ToSlogLevel(level+1))
	}
	require.Equal(t, slog.LevelInfo, ToSlogLevel(InfoLevel))
}

func TestSetupLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := SetupLogger(&Conf{Level: WarnLevel, Output: &buf})
	defer closeFn()
	logger.Info("hidden")
	logger.Warn("shown", "file", "a.csv")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "file=a.csv")
}

func TestMultiHandler(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}}
	logger := slog.New(h).With("component", "test")
	logger.Info("message")
	require.Contains(t, a.String(), "component=test")
	require.Empty(t, b.String())
}

// failingHandler accepts every record and fails to handle it
type failingHandler struct {
	slog.Handler
	name string
}

func (f *failingHandler) Handle(context.Context, slog.Record) error {
	return fmt.Errorf("%s is unavailable", f.name)
}

func TestMultiHandlerContinuesPastFailures(t *testing.T) {
	var buf bytes.Buffer
	text := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	h := &multiHandler{handlers: []slog.Handler{
		&failingHandler{Handler: text, name: "seq"},
		text,
		&failingHandler{Handler: text, name: "file"},
	}}
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "message", 0)
	err := h.Handle(context.Background(), r)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "seq is unavailable")
	require.Contains(t, err.Error(), "file is unavailable")
	require.Contains(t, buf.String(), "msg=message")
}
