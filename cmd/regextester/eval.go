package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/bethropolis/regextester/internal/buffer"
	"github.com/bethropolis/regextester/internal/config"
	"github.com/bethropolis/regextester/internal/engine"
	"github.com/bethropolis/regextester/internal/highlight"
	"github.com/bethropolis/regextester/internal/logger"
	"github.com/bethropolis/regextester/internal/render"
	"github.com/bethropolis/regextester/internal/session"
)

type evalOptions struct {
	pattern   string
	text      string
	file      string
	secondary string
	group     int
	groupName string
	plain     bool
	color     string
}

func newEvalCmd(root *rootOptions) *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run one pattern over a text and print the painted result",
		Example: `  regextester eval -p 'a(n)' --text banana
  regextester eval -p ',' --file data.csv -s split
  regextester eval -p '(?<y>\d+)-(?<m>\d+)' --text 2024-06 --group-name m --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.text != "" && opts.file != "" {
				return errors.New("--text and --file are mutually exclusive")
			}
			cfg, closeLog, err := setup(root)
			if err != nil {
				return err
			}
			defer closeLog()
			return runEval(cmd.OutOrStdout(), cfg, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.pattern, "pattern", "p", "", "Pattern to test")
	f.StringVarP(&opts.text, "text", "t", "", "Target text")
	f.StringVarP(&opts.file, "file", "F", "", "Read the target text from a file")
	f.StringVar(&opts.secondary, "secondary", "", "Replacement template or split limit")
	f.IntVarP(&opts.group, "group", "g", 0, "Paint the matches of this capture group")
	f.StringVarP(&opts.groupName, "group-name", "n", "", "Paint the matches of this named group")
	f.BoolVar(&opts.plain, "plain", false, "Mark painted text with [match] {group} <<error>> instead of colors")
	f.StringVar(&opts.color, "color", "auto", "When to color the output (auto, always, never)")
	_ = cmd.MarkFlagRequired("pattern")
	return cmd
}

func runEval(out io.Writer, cfg *config.Config, opts *evalOptions) error {
	target := buffer.NewPane()
	if opts.file != "" {
		// Load treats a missing file as empty; eval wants to know.
		if _, err := os.Stat(opts.file); err != nil {
			return fmt.Errorf("reading target: %w", err)
		}
		if err := target.Load(opts.file); err != nil {
			return err
		}
	} else {
		target.SetText(opts.text)
	}

	eng, err := engine.New(cfg.Tester.Dialect(), engine.Options{MatchTimeout: cfg.Tester.MatchTimeout})
	if err != nil {
		return err
	}
	ending := cfg.Tester.Ending()
	rec := session.NewRecorder(utf8.RuneCountInString(opts.pattern), target.Len())
	sess := session.New(rec, eng, ending, nil)
	strategy := cfg.Tester.InitialStrategy()
	sess.SetInput(session.Input{
		Pattern:   opts.pattern,
		Target:    target.RawText(ending),
		Secondary: opts.secondary,
		Strategy:  strategy,
		Flags:     cfg.Tester.InitialFlags(),
	})

	res, err := sess.Recompute()
	if err != nil {
		logger.Debugf("eval: %v", err)
		return err
	}
	switch {
	case opts.groupName != "":
		err = sess.SelectNamedGroup(opts.groupName)
	case opts.group > 0:
		err = sess.SelectGroup(opts.group)
	}
	if err != nil {
		return err
	}

	styles := render.NewStyles(render.NewRenderer(out, render.ParseColorMode(opts.color)))
	paint := func(text string, canvas *highlight.Canvas) string {
		if opts.plain {
			return render.Marked(text, canvas)
		}
		return render.Text(text, canvas, styles)
	}

	fmt.Fprintln(out, paint(target.Text(), rec.Canvas(highlight.TargetSurface)))
	summary := fmt.Sprintf("%s, %s: %d match", cfg.Tester.Engine, strategy, res.MatchCount)
	if res.MatchCount != 1 {
		summary += "es"
	}
	if res.SecondaryInvalid {
		summary += ", invalid replacement"
	}
	if !opts.plain {
		summary = render.Heading(summary, styles)
	}
	fmt.Fprintln(out, summary)
	if rec.Auxiliary != "" {
		fmt.Fprint(out, rec.Auxiliary)
	}
	return nil
}
