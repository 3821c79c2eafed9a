package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/matfile/internal/logger"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "path to config.yaml (default: <user config dir>/matfile/config.yaml)",
			Sources: cli.EnvVars("MATFILE_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars("MATFILE_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "log format (pretty, json, text)",
			Value:   "pretty",
			Sources: cli.EnvVars("MATFILE_LOG_FORMAT"),
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging (shorthand for --log-level=debug)",
		},
	}
}

// setup loads the config file and installs the logger in ctx.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}

	level := cmd.String("log-level")
	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		level = cfg.LogLevel
	}
	if cmd.Bool("debug") {
		level = "debug"
	}

	formatName := cmd.String("log-format")
	if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
		formatName = cfg.LogFormat
	}
	format, err := logger.ParseFormat(formatName)
	if err != nil {
		return ctx, fmt.Errorf("--log-format: %w", err)
	}

	log := logger.ForFormat(format, logger.ParseLevel(level), cmd.Root().ErrWriter)
	ctx = logger.WithContext(ctx, log)
	return withConfig(ctx, cfg), nil
}
