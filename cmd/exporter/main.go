// Package main is the entry point for the Vitalis host exporter.
// It loads configuration, runs every collector once, writes a single
// Prometheus text response and exits.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/exporter/internal/config"
	"github.com/Guliveer/vitalis/exporter/internal/exporter"
	"github.com/Guliveer/vitalis/exporter/internal/kernel"
	"github.com/Guliveer/vitalis/exporter/internal/transport"
)

const name = "netbsd_exporter"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    name,
		Version: version,
		Usage:   "Write one Prometheus text report of host metrics and exit",
		Description: `Reads mounted filesystems, load averages, network interfaces,
memory and disk I/O counters from the kernel and writes them in the
Prometheus text exposition format.

The response goes to the socket passed by the service manager when
started through socket activation, otherwise to standard output.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (default: search standard locations)",
			},
			&cli.BoolFlag{
				Name:  "no-http-header",
				Usage: "Do not prefix the report with an HTTP response header",
			},
			&cli.BoolFlag{
				Name:  "no-syslog",
				Usage: "Log to stderr instead of the system log",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Metric name prefix",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "write-config",
				Usage: "Write the effective configuration to `FILE` and exit",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	overrides := config.CLIOverrides{
		NoHTTPHeader: cmd.Bool("no-http-header"),
		NoSyslog:     cmd.Bool("no-syslog"),
		Prefix:       cmd.String("prefix"),
		LogLevel:     cmd.String("log-level"),
	}

	var (
		cfg *config.Config
		err error
	)
	if cmd.IsSet("config") {
		cfg, err = config.LoadLayered(overrides, cmd.String("config"))
	} else {
		cfg, err = config.LoadLayered(overrides)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if path := cmd.String("write-config"); path != "" {
		if err := config.WriteConfig(cfg, path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Configuration written to %s\n", path)
		return nil
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	adapter := kernel.New()
	logger.Debug("Starting exporter",
		zap.String("version", version),
		zap.String("backend", adapter.Name()),
		zap.String("prefix", cfg.Exporter.Prefix))

	out, activated := transport.Output(logger)
	if activated {
		defer out.Close()
	}

	if err := exporter.New(adapter, cfg, logger).Run(ctx, out); err != nil {
		logger.Error("Failed to write response", zap.Error(err))
		return cli.Exit("", 1)
	}

	logger.Info("Program completed")
	return nil
}
