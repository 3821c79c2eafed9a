package main

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/matfile/internal/logger"
	"github.com/samcharles93/matfile/pkg/matfile"
	"github.com/samcharles93/matfile/pkg/matrixmarket"
)

const defaultConvertDType = "fp64"

func convertCmd() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a Matrix Market file to a matfile",
		ArgsUsage: "IN.mtx OUT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dtype",
				Usage: "element kind to write (fp32, fp64, fp128, int8..uint64)",
				Value: defaultConvertDType,
			},
			&cli.BoolFlag{
				Name:  "transpose",
				Usage: "write the transposed matrix",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2, 2); err != nil {
				return err
			}
			log := logger.FromContext(ctx)
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)

			dtypeName := cmd.String("dtype")
			if cfg := configFromContext(ctx); cfg.DefaultDType != "" && !cmd.IsSet("dtype") {
				dtypeName = cfg.DefaultDType
			}
			dt, err := matfile.ParseDataType(dtypeName)
			if err != nil {
				return fmt.Errorf("convert: --dtype: %w", err)
			}

			m, n, err := convertFile(in, out, dt, cmd.Bool("transpose"))
			if err != nil {
				return err
			}
			log.Info("converted", "in", in, "out", out, "m", m, "n", n, "dtype", dt)
			return nil
		},
	}
}

// convertFile loads a Matrix Market file and saves it as a matfile. It
// returns the shape that was written.
func convertFile(in, out string, dt matfile.DataType, transpose bool) (m, n uint64, err error) {
	m, n, err = matrixmarket.LoadMatrixSize(in)
	if err != nil {
		return 0, 0, err
	}
	hi, count := bits.Mul64(m, n)
	if hi != 0 || count > uint64(int(^uint(0)>>1)) {
		return 0, 0, fmt.Errorf("convert: %dx%d: %w", m, n, matfile.ErrTooLarge)
	}

	buf := make([]float64, count)
	if err := matrixmarket.LoadMatrix(buf, m, in); err != nil {
		return 0, 0, err
	}

	if !transpose {
		return m, n, matfile.SaveDense(m, n, buf, m, out, matfile.WithElementType(dt))
	}
	// The column-major buffer of A read row-major is A^T.
	return n, m, matfile.SaveDense(n, m, buf, m, out, matfile.WithElementType(dt), matfile.Transposed())
}
