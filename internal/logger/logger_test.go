package logger

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(cfg Config) (*filteringHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg.process()
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return newFilteringHandler(base, &cfg), &buf
}

func record(msg string, tag string) slog.Record {
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:])
	r := slog.NewRecord(time.Now(), slog.LevelDebug, msg, pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	return r
}

func TestFilteringHandlerTags(t *testing.T) {
	h, buf := newTestHandler(Config{LogLevel: "debug", EnabledTags: []string{"Engine"}})

	require.NoError(t, h.Handle(context.Background(), record("kept", "engine")))
	require.NoError(t, h.Handle(context.Background(), record("other tag", "session")))
	require.NoError(t, h.Handle(context.Background(), record("untagged", "")))

	out := buf.String()
	assert.Contains(t, out, "kept")
	assert.NotContains(t, out, "other tag")
	assert.NotContains(t, out, "untagged")
}

func TestFilteringHandlerDisabledWins(t *testing.T) {
	h, buf := newTestHandler(Config{
		LogLevel:     "debug",
		EnabledTags:  []string{"dispatch"},
		DisabledTags: []string{"dispatch"},
	})
	require.NoError(t, h.Handle(context.Background(), record("dropped", "dispatch")))
	assert.Empty(t, buf.String())
}

func TestFilteringHandlerPackagesAndFiles(t *testing.T) {
	h, buf := newTestHandler(Config{LogLevel: "debug", DisabledPackages: []string{"logger"}})
	require.NoError(t, h.Handle(context.Background(), record("from logger pkg", "")))
	assert.Empty(t, buf.String())

	h, buf = newTestHandler(Config{LogLevel: "debug", EnabledFiles: []string{"logger_test.go"}})
	require.NoError(t, h.Handle(context.Background(), record("from this file", "")))
	assert.Contains(t, buf.String(), "from this file")
}

func TestConfigProcess(t *testing.T) {
	cases := []struct {
		level  string
		format string
		want   slog.Level
		wantF  string
	}{
		{"debug", "json", slog.LevelDebug, FormatJSON},
		{"WARNING", "Pretty", slog.LevelWarn, FormatPretty},
		{"err", "", slog.LevelError, FormatText},
		{"bogus", "xml", slog.LevelInfo, FormatText},
	}
	for _, tc := range cases {
		cfg := Config{LogLevel: tc.level, Format: tc.format}
		cfg.process()
		assert.Equal(t, tc.want, cfg.level.Level(), tc.level)
		assert.Equal(t, tc.wantF, cfg.Format, tc.format)
	}
}

func TestSliceToSet(t *testing.T) {
	assert.Nil(t, sliceToSet(nil))
	assert.Nil(t, sliceToSet([]string{""}))
	set := sliceToSet([]string{"UI", "watch"})
	assert.Len(t, set, 2)
	assert.True(t, foundInSet(set, "ui"))
}

func TestNewBaseHandlerFormats(t *testing.T) {
	lv := new(slog.LevelVar)
	for _, format := range []string{FormatText, FormatJSON, FormatPretty} {
		var buf bytes.Buffer
		h := newBaseHandler(format, &buf, lv)
		r := slog.NewRecord(time.Now(), slog.LevelInfo, "hello "+format, 0)
		require.NoError(t, h.Handle(context.Background(), r))
		assert.Contains(t, buf.String(), "hello "+format)
	}
}
