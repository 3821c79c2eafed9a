package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/samcharles93/matfile/internal/logger"
	"github.com/samcharles93/matfile/internal/matstat"
	"github.com/samcharles93/matfile/pkg/matfile"
)

var (
	errMatrixTypeMismatch = errors.New("the matrix types are mismatched")
	errShapeMismatch      = errors.New("the matrix sizes are mismatched")
)

func compCmd() *cli.Command {
	return &cli.Command{
		Name:      "comp",
		Usage:     "Compare matrix B against reference A",
		ArgsUsage: "A B",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit the result as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2, 2); err != nil {
				return err
			}
			pathA, pathB := cmd.Args().Get(0), cmd.Args().Get(1)

			res, err := compareFiles(ctx, pathA, pathB)
			if err != nil {
				return err
			}

			w := stdout(cmd)
			if cmd.Bool("json") {
				return writeJSON(w, res)
			}
			_, err = fmt.Fprintf(w, "relative residual = %e, max absolute error = %e\n", res.RelativeResidual, res.MaxAbsError)
			return err
		},
	}
}

// compareFiles checks that both headers describe the same kind of matrix,
// then loads both payloads concurrently and compares them.
func compareFiles(ctx context.Context, pathA, pathB string) (matstat.Comparison, error) {
	log := logger.FromContext(ctx)

	paths := [2]string{pathA, pathB}
	var headers [2]matfile.Header
	for i, p := range paths {
		h, err := matfile.LoadHeader(p)
		if err != nil {
			return matstat.Comparison{}, err
		}
		headers[i] = h
	}
	if headers[0].MatrixType != headers[1].MatrixType {
		return matstat.Comparison{}, fmt.Errorf("comp: %w (%v vs %v)", errMatrixTypeMismatch, headers[0].MatrixType, headers[1].MatrixType)
	}
	if headers[0].M != headers[1].M || headers[0].N != headers[1].N {
		return matstat.Comparison{}, fmt.Errorf("comp: %w (%dx%d vs %dx%d)", errShapeMismatch,
			headers[0].M, headers[0].N, headers[1].M, headers[1].N)
	}

	var vals [2][]float64
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := matfile.Open(p)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			v, err := f.Float64s()
			if err != nil {
				return err
			}
			vals[i] = v
			log.Debug("loaded operand", "path", p, "dtype", f.Header.DataType, "elements", len(v))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return matstat.Comparison{}, err
	}
	return matstat.Compare(vals[0], vals[1])
}
