package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bethropolis/regextester/internal/app"
	"github.com/bethropolis/regextester/internal/config"
	"github.com/bethropolis/regextester/internal/logger"
)

// rootOptions are shared by every subcommand through persistent flags.
type rootOptions struct {
	flags   config.Flags
	pattern string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "regextester [target-file]",
		Short: "Interactive regular expression tester",
		Long: `Type a pattern and watch its matches, capture groups, splits and
replacements update over a target text as you edit.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts, args)
		},
	}
	opts.flags.Register(cmd.PersistentFlags())
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "", "Initial pattern")
	cmd.AddCommand(newEvalCmd(opts))
	return cmd
}

// setup loads the configuration and starts logging. The returned closer
// releases the log file.
func setup(opts *rootOptions) (*config.Config, func(), error) {
	cfg, err := config.Load(opts.flags.ConfigFilePath, &opts.flags)
	if err != nil {
		return nil, nil, err
	}
	output, closer, err := openLogOutput(cfg.Logger.LogFilePath)
	if err != nil {
		return nil, nil, err
	}
	logger.SetFilterDebug(opts.flags.DebugLog)
	logger.Init(cfg.Logger, output)
	logger.Debugf("Engine %s, line ending %s, strategy %s", cfg.Tester.Engine, cfg.Tester.LineEnding, cfg.Tester.Strategy)
	return cfg, closer, nil
}

// openLogOutput opens the log destination: "-" is stderr, empty is a file in
// the temp directory since the terminal belongs to the UI.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		path = filepath.Join(os.TempDir(), config.DefaultLogFileName)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file '%s': %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func runTUI(opts *rootOptions, args []string) error {
	cfg, closeLog, err := setup(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	appOpts := app.Options{Pattern: opts.pattern}
	if len(args) > 0 {
		appOpts.TargetPath = args[0]
	}
	logger.Infof("Starting %s...", config.AppName)
	tester, err := app.NewApp(cfg, appOpts)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		return err
	}
	if err := tester.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return err
	}
	return nil
}
