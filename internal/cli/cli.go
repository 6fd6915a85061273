// Package cli implements the foldersync command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/philipp01105/foldersync/config"
	"github.com/philipp01105/foldersync/logger"
	"github.com/philipp01105/foldersync/metrics"
)

const name = "foldersync"

// overridden during build with ldflags
var version = "dev"

// Options controls where the command writes. Zero values mean os.Stdout
// and the package-level logging context.
type Options struct {
	Stdout  io.Writer
	Logging *logger.Context
}

// NewCommand builds the root command.
func NewCommand(opts Options) *cli.Command {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Logging == nil {
		opts.Logging = logger.Default()
	}

	return &cli.Command{
		Name:    name,
		Usage:   "keep a replica folder in sync with a source folder",
		Version: version,
		Writer:  opts.Stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (default: ./foldersync.yaml if present)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "log level (DEBUG, INFO, WARNING, ERROR, CRITICAL)",
				Sources: cli.EnvVars("FOLDERSYNC_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "also write logs to this file, creating parent directories",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log line template using {time} {name} {level} {message} {caller}",
			},
			&cli.StringFlag{
				Name:  "date-format",
				Usage: "Go time layout for {time}",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, opts)
		},
	}
}

// Run parses args and executes the command against the default logging
// context.
func Run(ctx context.Context, args []string) error {
	return NewCommand(Options{}).Run(ctx, args)
}

func run(_ context.Context, cmd *cli.Command, opts Options) error {
	lc, err := loadLogging(cmd)
	if err != nil {
		return err
	}

	cfg := lc.Logger()
	cfg.Console = opts.Stdout
	if _, err := opts.Logging.Configure(cfg); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer opts.Logging.Close()

	log := opts.Logging.Logger("main")
	if err := lc.Validate(); err != nil {
		log.Warning(err.Error())
	}

	log.Info("Folder Sync starting...")
	log.Debugf("version %s", version)
	log.Info("initialization complete")

	reportSinks(opts.Logging)
	return nil
}

// loadLogging merges the config file, environment and flags, in
// increasing precedence.
func loadLogging(cmd *cli.Command) (config.LoggingConfig, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := cmd.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return config.LoggingConfig{}, err
	}

	lc := cfg.Logging
	if cmd.IsSet("log-level") {
		lc.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-file") {
		lc.File = cmd.String("log-file")
	}
	if cmd.IsSet("log-format") {
		lc.MessageFormat = cmd.String("log-format")
	}
	if cmd.IsSet("date-format") {
		lc.DateFormat = cmd.String("date-format")
	}
	return lc, nil
}

// reportSinks logs per-sink counters at debug level
func reportSinks(ctx *logger.Context) {
	log := ctx.Logger("metrics")
	if !log.Enabled(logger.DebugLevel) {
		return
	}

	reg := prometheus.NewRegistry()
	if err := reg.Register(metrics.NewCollector(ctx)); err != nil {
		log.Errorf("register collector: %v", err)
		return
	}
	families, err := reg.Gather()
	if err != nil {
		log.Errorf("gather metrics: %v", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				log.Debugf("%s{%s=%q} %.0f", mf.GetName(), lp.GetName(), lp.GetValue(), m.GetCounter().GetValue())
			}
		}
	}
}
