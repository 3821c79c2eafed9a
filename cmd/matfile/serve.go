package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/matfile/internal/logger"
	"github.com/samcharles93/matfile/internal/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a directory of matfiles over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address",
				Value:   "127.0.0.1:8080",
				Sources: cli.EnvVars("MATFILE_ADDR"),
			},
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "directory of matfiles to serve",
				Value:   ".",
				Sources: cli.EnvVars("MATFILE_DATA_DIR"),
			},
			&cli.DurationFlag{
				Name:  "read-timeout",
				Usage: "read header timeout",
				Value: 30 * time.Second,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			cfg := configFromContext(ctx)

			addr := cmd.String("addr")
			if cfg.ServerAddress != "" && !cmd.IsSet("addr") {
				addr = cfg.ServerAddress
			}
			dir := cmd.String("dir")
			if cfg.DataDir != "" && !cmd.IsSet("dir") {
				dir = cfg.DataDir
			}
			st, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			if !st.IsDir() {
				return fmt.Errorf("serve: %s is not a directory", dir)
			}

			srv := server.New(server.Config{Dir: dir, Logger: log})
			return srv.ListenAndServe(ctx, addr, cmd.Duration("read-timeout"))
		},
	}
}
