package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler and drops records by tag, package or file.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

// Enabled checks if the level is enabled by the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

func foundInSet(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, found := set[key]
	return found
}

// allowed applies a disabled set then an enabled set to key.
// A disabled entry always wins; a non-nil enabled set acts as an allowlist.
func allowed(kind, key string, enabled, disabled map[string]struct{}) bool {
	key = strings.ToLower(key)
	if foundInSet(disabled, key) {
		traceFilter("FILTERED OUT: disabled %s '%s'", kind, key)
		return false
	}
	if enabled != nil && !foundInSet(enabled, key) {
		traceFilter("FILTERED OUT: %s '%s' not in enabled list", kind, key)
		return false
	}
	return true
}

func traceFilter(format string, args ...interface{}) {
	if debugFilter {
		fmt.Fprintf(os.Stderr, "[FILTER] "+format+"\n", args...)
	}
}

// recordSource resolves the package directory and file name a record was logged from.
func recordSource(r slog.Record) (pkg, file string) {
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != slog.SourceKey {
			return true
		}
		if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
			file = filepath.Base(source.File)
			pkg = filepath.Base(filepath.Dir(source.File))
		}
		return false
	})
	if file == "" && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			file = filepath.Base(frame.File)
			pkg = filepath.Base(filepath.Dir(frame.File))
		}
	}
	return pkg, file
}

func recordTag(r slog.Record) (string, bool) {
	var tag string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			found = true
			return false
		}
		return true
	})
	return tag, found
}

// Handle applies filtering logic before passing the record to the base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}
	traceFilter("Message: Level=%s, Msg=%s", r.Level, r.Message)

	pkg, file := recordSource(r)
	if pkg != "" && !allowed("package", pkg, h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet) {
		return nil
	}
	if file != "" && !allowed("file", file, h.cfg.enabledFilesSet, h.cfg.disabledFilesSet) {
		return nil
	}

	tag, tagged := recordTag(r)
	switch {
	case tagged:
		if !allowed("tag", tag, h.cfg.enabledTagsSet, h.cfg.disabledTagsSet) {
			return nil
		}
	case h.cfg.enabledTagsSet != nil:
		// Selecting tags hides untagged records.
		traceFilter("FILTERED OUT: untagged message while tags are selected")
		return nil
	}

	traceFilter("PASSED")
	return h.baseHandler.Handle(ctx, r)
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
