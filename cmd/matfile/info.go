package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/matfile/internal/logger"
	"github.com/samcharles93/matfile/internal/matstat"
	"github.com/samcharles93/matfile/internal/server"
	"github.com/samcharles93/matfile/pkg/matfile"
)

type fileInfo struct {
	// Index is the 1-based argument position of Path.
	Index int    `json:"index"`
	Path  string `json:"path"`
	server.HeaderInfo
	Histogram *matstat.ExponentHistogram `json:"histogram,omitempty"`
}

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Print the header of one or more matfiles",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit a JSON array instead of text",
			},
			&cli.BoolFlag{
				Name:  "histogram",
				Usage: "load each matrix and add an exponent histogram",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1, -1); err != nil {
				return err
			}
			log := logger.FromContext(ctx)
			withHist := cmd.Bool("histogram")

			var (
				infos []fileInfo
				errs  []error
			)
			for i, path := range cmd.Args().Slice() {
				info, err := describe(i+1, path, withHist)
				if err != nil {
					log.Error("info failed", "path", path, "error", err)
					errs = append(errs, err)
					continue
				}
				infos = append(infos, info)
			}

			w := stdout(cmd)
			if cmd.Bool("json") {
				if infos == nil {
					infos = []fileInfo{}
				}
				if err := writeJSON(w, infos); err != nil {
					return err
				}
			} else {
				for _, info := range infos {
					if err := printInfo(w, info); err != nil {
						return err
					}
				}
			}
			return errors.Join(errs...)
		},
	}
}

func describe(idx int, path string, withHist bool) (fileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return fileInfo{}, fmt.Errorf("matfile: %w", err)
	}
	h, err := matfile.LoadHeader(path)
	if err != nil {
		return fileInfo{}, err
	}
	info := fileInfo{Index: idx, Path: path, HeaderInfo: server.NewHeaderInfo(st.Name(), h, st.Size())}
	if !withHist {
		return info, nil
	}

	f, err := matfile.Open(path)
	if err != nil {
		return fileInfo{}, err
	}
	defer func() { _ = f.Close() }()
	vals, err := f.Float64s()
	if err != nil {
		return fileInfo{}, err
	}
	info.Histogram = matstat.NewExponentHistogram(vals)
	return info, nil
}

func printInfo(w io.Writer, info fileInfo) error {
	compat := "compatible"
	if !info.Compatible {
		compat = "incompatible"
	}
	if _, err := fmt.Fprintf(w,
		"## ---- [%d] path : %s ----\n"+
			"# size    : %d x %d\n"+
			"# dtype   : %s (%d bytes)\n"+
			"# version : %s (%s)\n"+
			"# type    : %s\n",
		info.Index, info.Path,
		info.M, info.N,
		info.DataType, info.DTypeSize,
		info.Version, compat,
		info.MatrixType,
	); err != nil {
		return err
	}
	if info.Histogram == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, "# exp histogram"); err != nil {
		return err
	}
	return info.Histogram.Fprint(w)
}
