package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/matfile/pkg/matfile"
)

func printCmd() *cli.Command {
	return &cli.Command{
		Name:      "print",
		Usage:     "Print a matfile as text, one row per line",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "precision",
				Aliases: []string{"p"},
				Usage:   "digits after the decimal point",
				Value:   matfile.DefaultPrecision,
			},
			&cli.BoolFlag{
				Name:    "transpose",
				Aliases: []string{"t"},
				Usage:   "print the transposed matrix",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "print a \"NAME = \" line before the matrix",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1, 1); err != nil {
				return err
			}
			precision := cmd.Int("precision")
			if cfg := configFromContext(ctx); cfg.Precision != nil && !cmd.IsSet("precision") {
				precision = *cfg.Precision
			}
			if precision < 0 {
				return fmt.Errorf("print: --precision must be >= 0")
			}

			f, err := matfile.Open(cmd.Args().First())
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			vals, err := f.Float64s()
			if err != nil {
				return err
			}

			m, n := f.Header.Dims()
			if cmd.Bool("transpose") {
				vals = transpose(m, n, vals)
				m, n = n, m
			}

			w := stdout(cmd)
			if name := cmd.String("name"); name != "" {
				if _, err := fmt.Fprintf(w, "%s = \n", name); err != nil {
					return err
				}
			}
			return matfile.Format(w, m, n, vals, m, precision)
		},
	}
}

// transpose returns the n x m column-major transpose of an m x n column-major matrix.
func transpose(m, n uint64, src []float64) []float64 {
	dst := make([]float64, len(src))
	for j := uint64(0); j < n; j++ {
		for i := uint64(0); i < m; i++ {
			dst[j+i*n] = src[i+j*m]
		}
	}
	return dst
}
