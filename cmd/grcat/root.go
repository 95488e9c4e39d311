package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"grcat/config"
	"grcat/internal/filter"
	"grcat/internal/logger"
	"grcat/internal/metrics"
	"grcat/internal/rule"
	"grcat/internal/stats"
)

type options struct {
	settings        string
	logLevel        string
	colour          string
	replace         string
	metricsTextfile string
	stats           bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "grcat [flags] RULEFILE",
		Short: "Colorize standard input with regular expression rules",
		Long: `grcat reads lines from standard input and writes them to standard output
with ANSI colours added by the rules in RULEFILE.

RULEFILE is looked up in $XDG_CONFIG_HOME/grc, $XDG_DATA_HOME/grc, ~/.grc,
/usr/local/share/grc and /usr/share/grc. A path containing a slash is used
as given.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("you are not supposed to call grcat directly, but the usage is: grcat RULEFILE")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts, stdin, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.settings, "settings", "", "settings file (default $XDG_CONFIG_HOME/"+config.SettingsFile+")")
	flags.StringVar(&opts.logLevel, "log-level", "", "override log level: debug, info, warn, error")
	flags.StringVar(&opts.colour, "colour", "", "override colour mode: always, auto, never")
	flags.StringVar(&opts.replace, "replace", "", "override replace mode: positional, first-occurrence")
	flags.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "write prometheus metrics to this file at end of input")
	flags.BoolVar(&opts.stats, "stats", false, "print a JSON run summary to stderr at end of input")

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return cmd
}

func run(cmd *cobra.Command, ruleFile string, opts *options, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.LoadOrDefault(opts.settings)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyOverrides(opts.logLevel, opts.colour, opts.replace, opts.metricsTextfile); err != nil {
		return err
	}

	log, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	path, err := config.Locate(ruleFile, config.SearchDirs())
	if err != nil {
		return err
	}

	mode, err := rule.ParseReplaceMode(cfg.Output.Replace)
	if err != nil {
		return err
	}

	rules, err := rule.NewRulesLoader(log).LoadFromFile(path, mode)
	if err != nil {
		return fmt.Errorf("can not read %s: %w", path, err)
	}

	reg := prometheus.NewRegistry()
	metricsService, err := metrics.NewMetrics(reg)
	if err != nil {
		return err
	}
	metricsService.SetRulesLoaded(rules.Len())

	processor := rule.NewProcessor(rules, rule.ProcessorConfig{
		Colour: colourEnabled(cfg.Output.Colour, stdout),
	}, log, metricsService)

	collector := stats.NewStatsCollector()
	driver := filter.NewDriver(processor, log, collector)

	runErr := driver.Run(cmd.Context(), stdin, stdout)

	if opts.stats {
		if data, err := collector.GetStatsJSON(); err == nil {
			fmt.Fprintln(stderr, string(data))
		}
	}

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
			log.Error("failed to write metrics", "path", cfg.Metrics.Textfile, "error", err)
		}
	}

	return runErr
}

// colourEnabled resolves the colour mode against the output stream.
func colourEnabled(mode string, out io.Writer) bool {
	switch mode {
	case config.ColourNever:
		return false
	case config.ColourAuto:
		f, ok := out.(*os.File)
		if !ok {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	default:
		return true
	}
}
