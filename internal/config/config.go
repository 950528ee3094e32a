// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/regextester/internal/dispatch"
	"github.com/bethropolis/regextester/internal/engine"
	"github.com/bethropolis/regextester/internal/logger"
	"github.com/bethropolis/regextester/internal/offset"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Tester TesterConfig  `toml:"tester"`
}

// TesterConfig holds the regex tester settings.
type TesterConfig struct {
	Engine          string        `toml:"engine"`
	LineEnding      string        `toml:"line_ending"`
	Strategy        string        `toml:"strategy"`
	Flags           string        `toml:"flags"`
	MatchTimeout    time.Duration `toml:"match_timeout"`
	SystemClipboard bool          `toml:"system_clipboard"`
	WatchTarget     bool          `toml:"watch_target"`
	Theme           string        `toml:"theme"`
	StatusBarHeight int           `toml:"status_bar_height"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel: "info",
			Format:   logger.FormatText,
		},
		Tester: TesterConfig{
			Engine:          string(engine.DialectJava),
			LineEnding:      offset.LF.String(),
			Strategy:        string(dispatch.Find),
			SystemClipboard: SystemClipboard,
			WatchTarget:     true,
			StatusBarHeight: StatusBarHeight,
		},
	}
}

// Dialect returns the configured engine dialect. Only valid after validate.
func (t TesterConfig) Dialect() engine.Dialect {
	d, _ := engine.ParseDialect(t.Engine)
	return d
}

// Ending returns the configured line ending. Only valid after validate.
func (t TesterConfig) Ending() offset.LineEnding {
	le, _ := offset.ParseLineEnding(t.LineEnding)
	return le
}

// InitialStrategy returns the configured strategy. Only valid after validate.
func (t TesterConfig) InitialStrategy() dispatch.Strategy {
	s, _ := dispatch.ParseStrategy(t.Strategy)
	return s
}

// InitialFlags returns the configured flags. Only valid after validate.
func (t TesterConfig) InitialFlags() engine.Flags {
	f, _ := engine.ParseFlags(t.Flags)
	return f
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
// It returns the names of the settings that were reset.
func (c *Config) validate() []string {
	defaults := NewDefaultConfig()
	var reset []string

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if _, err := engine.ParseDialect(c.Tester.Engine); err != nil {
		c.Tester.Engine = defaults.Tester.Engine
		reset = append(reset, "engine")
	}
	if _, err := offset.ParseLineEnding(c.Tester.LineEnding); err != nil {
		c.Tester.LineEnding = defaults.Tester.LineEnding
		reset = append(reset, "line_ending")
	}
	if _, err := dispatch.ParseStrategy(c.Tester.Strategy); err != nil {
		c.Tester.Strategy = defaults.Tester.Strategy
		reset = append(reset, "strategy")
	}
	if _, err := engine.ParseFlags(c.Tester.Flags); err != nil {
		c.Tester.Flags = defaults.Tester.Flags
		reset = append(reset, "flags")
	}
	if c.Tester.MatchTimeout < 0 {
		c.Tester.MatchTimeout = defaults.Tester.MatchTimeout
		reset = append(reset, "match_timeout")
	}
	if c.Tester.StatusBarHeight <= 0 {
		c.Tester.StatusBarHeight = defaults.Tester.StatusBarHeight
	}
	return reset
}

// DefaultPath returns ~/.config/regextester/config.toml, or "" when there is no user config dir.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// Load builds a configuration from defaults, the file at configFilePath (or the
// default location when empty) and any flags that were set.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var err error
	if effectivePath != "" {
		err = loadFromFile(effectivePath, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	if reset := cfg.validate(); len(reset) > 0 {
		logger.Warnf("Config: invalid values reset to defaults: %v", reset)
	}
	return cfg, err
}

// LoadConfig loads the configuration once and stores it for Get.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
