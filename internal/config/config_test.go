package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bethropolis/regextester/internal/dispatch"
	"github.com/bethropolis/regextester/internal/engine"
	"github.com/bethropolis/regextester/internal/offset"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
	assert.Equal(t, engine.DialectJava, cfg.Tester.Dialect())
	assert.Equal(t, offset.LF, cfg.Tester.Ending())
	assert.Equal(t, dispatch.Find, cfg.Tester.InitialStrategy())
	assert.Equal(t, engine.Flags(0), cfg.Tester.InitialFlags())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
[logger]
log_level = "debug"
format = "json"
disabled_tags = ["engine"]

[tester]
engine = "re2"
line_ending = "crlf"
strategy = "replace_all"
flags = "im"
match_timeout = "2s"
system_clipboard = false
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, []string{"engine"}, cfg.Logger.DisabledTags)
	assert.Equal(t, engine.DialectRE2, cfg.Tester.Dialect())
	assert.Equal(t, offset.CRLF, cfg.Tester.Ending())
	assert.Equal(t, dispatch.ReplaceAll, cfg.Tester.InitialStrategy())
	assert.Equal(t, engine.CaseInsensitive|engine.Multiline, cfg.Tester.InitialFlags())
	assert.Equal(t, 2*time.Second, cfg.Tester.MatchTimeout)
	assert.False(t, cfg.Tester.SystemClipboard)
	assert.Equal(t, StatusBarHeight, cfg.Tester.StatusBarHeight)
}

func TestLoadResetsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[tester]
engine = "perl"
line_ending = "cr"
strategy = "grep"
flags = "q"
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	def := NewDefaultConfig()
	assert.Equal(t, def.Tester.Engine, cfg.Tester.Engine)
	assert.Equal(t, def.Tester.LineEnding, cfg.Tester.LineEnding)
	assert.Equal(t, def.Tester.Strategy, cfg.Tester.Strategy)
	assert.Equal(t, def.Tester.Flags, cfg.Tester.Flags)
}

func TestLoadBadTOML(t *testing.T) {
	path := writeConfig(t, "[tester\nengine=")
	cfg, err := Load(path, nil)
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, NewDefaultConfig().Tester, cfg.Tester)
}

func TestFlagOverridesOnlyWhenSet(t *testing.T) {
	path := writeConfig(t, `
[tester]
engine = "re2"
strategy = "split"
`)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var f Flags
	f.Register(fs)
	require.NoError(t, fs.Parse([]string{
		"--strategy", "matches",
		"-f", "s",
		"--match-timeout", "150ms",
		"--log-tags", "session, engine,",
		"--no-watch",
	}))

	cfg, err := Load(path, &f)
	require.NoError(t, err)
	assert.Equal(t, engine.DialectRE2, cfg.Tester.Dialect(), "unset flag must not override the file")
	assert.Equal(t, dispatch.Matches, cfg.Tester.InitialStrategy())
	assert.Equal(t, engine.DotAll, cfg.Tester.InitialFlags())
	assert.Equal(t, 150*time.Millisecond, cfg.Tester.MatchTimeout)
	assert.Equal(t, []string{"session", "engine"}, cfg.Logger.EnabledTags)
	assert.False(t, cfg.Tester.WatchTarget)
}

func TestSplitCommaList(t *testing.T) {
	assert.Nil(t, splitCommaList(""))
	assert.Equal(t, []string{"a", "b"}, splitCommaList(" a ,, b "))
}
