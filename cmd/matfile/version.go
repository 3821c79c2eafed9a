package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/matfile/internal/version"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit version information as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info := version.Resolve()
			w := stdout(cmd)
			if cmd.Bool("json") {
				return writeJSON(w, info)
			}
			fmt.Fprintf(w, "version:     %s\n", info.Version)
			if info.Commit != "" {
				fmt.Fprintf(w, "commit:      %s\n", info.Commit)
			}
			if info.BuildTime != "" {
				fmt.Fprintf(w, "build time:  %s\n", info.BuildTime)
			}
			fmt.Fprintf(w, "go:          %s\n", info.GoVersion)
			fmt.Fprintf(w, "file format: %s\n", info.FileFormat)
			return nil
		},
	}
}
