// internal/config/flags.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/bethropolis/regextester/internal/logger"
	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags.
// Only flags the user actually set are applied over the configuration.
type Flags struct {
	fs *pflag.FlagSet

	ConfigFilePath  string
	LogLevel        string
	LogFilePath     string
	LogFormat       string
	Engine          string
	LineEnding      string
	Strategy        string
	RegexFlags      string
	MatchTimeout    time.Duration
	EnableTags      string
	DisableTags     string
	EnablePkgs      string
	DisablePkgs     string
	EnableFiles     string
	DisableFiles    string
	DebugLog        bool
	SystemClipboard bool
	NoWatch         bool
}

// Register defines the configuration flags on fs and remembers fs for ApplyOverrides.
func (f *Flags) Register(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr)")
	fs.StringVar(&f.LogFormat, "logformat", "", "Log format (text, json, pretty)")
	fs.StringVarP(&f.Engine, "engine", "e", "", "Regex engine (java, re2, pcre)")
	fs.StringVar(&f.LineEnding, "line-ending", "", "Line ending handed to the engine (lf, crlf)")
	fs.StringVarP(&f.Strategy, "strategy", "s", "", "Match strategy (find, looking-at, matches, split, split-with-limit, split-with-delimiters, replace-all, replace-first)")
	fs.StringVarP(&f.RegexFlags, "flags", "f", "", "Regex flag letters: i m s x l")
	fs.DurationVar(&f.MatchTimeout, "match-timeout", 0, "Bound on a single match for the java engine, e.g. 2s (0 = none)")
	fs.StringVar(&f.EnableTags, "log-tags", "", "Comma-separated list of tags to enable")
	fs.StringVar(&f.DisableTags, "log-disable-tags", "", "Comma-separated list of tags to disable")
	fs.StringVar(&f.EnablePkgs, "log-packages", "", "Comma-separated list of packages to enable")
	fs.StringVar(&f.DisablePkgs, "log-disable-packages", "", "Comma-separated list of packages to disable")
	fs.StringVar(&f.EnableFiles, "log-files", "", "Comma-separated list of files to enable")
	fs.StringVar(&f.DisableFiles, "log-disable-files", "", "Comma-separated list of files to disable")
	fs.BoolVar(&f.DebugLog, "debug-log", false, "Trace the logger filtering system on stderr")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", false, "Copy output to the system clipboard")
	fs.BoolVar(&f.NoWatch, "no-watch", false, "Do not reload the target file when it changes on disk")
}

// ApplyOverrides updates cfg with the values of flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *pflag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s=%s", fl.Name, fl.Value.String())
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "logformat":
			cfg.Logger.Format = f.LogFormat
		case "engine":
			cfg.Tester.Engine = f.Engine
		case "line-ending":
			cfg.Tester.LineEnding = f.LineEnding
		case "strategy":
			cfg.Tester.Strategy = f.Strategy
		case "flags":
			cfg.Tester.Flags = f.RegexFlags
		case "match-timeout":
			cfg.Tester.MatchTimeout = f.MatchTimeout
		case "system-clipboard":
			cfg.Tester.SystemClipboard = f.SystemClipboard
		case "no-watch":
			cfg.Tester.WatchTarget = !f.NoWatch
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(f.DisableFiles)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
