package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/samcharles93/matfile/pkg/matfile"
)

// run executes the CLI in-process with an isolated config file.
func run(t *testing.T, configYAML string, args ...string) (string, string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(configYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	argv := append([]string{"matfile", "--config", cfgPath, "--log-format", "text"}, args...)
	err := app.Run(context.Background(), argv)
	return out.String(), errOut.String(), err
}

func saveFixture[T matfile.Number](t *testing.T, dir, name string, m, n uint64, data []T) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := matfile.SaveDense(m, n, data, m, path); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
	return path
}

func TestInfo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := saveFixture(t, dir, "a.matrix", 2, 3, []float32{1, -2, 0.5, 4, 0, 8})

	out, _, err := run(t, "", "info", path)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{
		"## ---- [1] path : " + path + " ----",
		"# size    : 2 x 3",
		"# dtype   : fp32 (4 bytes)",
		"# version : 0.7 (compatible)",
		"# type    : dense",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "histogram") {
		t.Fatalf("histogram printed without --histogram:\n%s", out)
	}

	out, _, err = run(t, "", "info", "--histogram", path)
	if err != nil {
		t.Fatalf("info --histogram: %v", err)
	}
	if !strings.Contains(out, "# exp histogram") || !strings.Contains(out, "zero: 1, non-finite: 0, total: 6") {
		t.Fatalf("histogram output:\n%s", out)
	}
}

func TestInfoJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := saveFixture(t, dir, "a.matrix", 2, 2, []int8{1, 2, 3, 4})
	b := saveFixture(t, dir, "b.matrix", 1, 1, []float64{3})

	out, _, err := run(t, "", "info", "--json", a, b)
	if err != nil {
		t.Fatalf("info --json: %v", err)
	}
	var got []struct {
		Index int    `json:"index"`
		Path  string `json:"path"`
		DType string `json:"dtype"`
		M     uint64 `json:"m"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(got) != 2 || got[0].DType != "int8" || got[1].DType != "fp64" || got[0].M != 2 || got[1].Index != 2 {
		t.Fatalf("unexpected info: %+v", got)
	}
}

func TestInfoMissingFileReportsError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := saveFixture(t, dir, "good.matrix", 1, 1, []float64{1})
	out, _, err := run(t, "", "info", filepath.Join(dir, "missing.matrix"), good)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(out, "## ---- [2] path : "+good+" ----") {
		t.Fatalf("remaining files must keep their argument position:\n%s", out)
	}
}

func TestPrint(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := saveFixture(t, dir, "p.matrix", 2, 2, []float64{1, 2, 3, -4})

	out, _, err := run(t, "", "print", path)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if want := "+1.000e+00 +3.000e+00 \n+2.000e+00 -4.000e+00 \n"; out != want {
		t.Fatalf("print:\n%q\nwant\n%q", out, want)
	}

	out, _, err = run(t, "", "print", "--transpose", "--precision", "1", "--name", "A", path)
	if err != nil {
		t.Fatalf("print --transpose: %v", err)
	}
	if want := "A = \n+1.0e+00 +2.0e+00 \n+3.0e+00 -4.0e+00 \n"; out != want {
		t.Fatalf("print --transpose:\n%q\nwant\n%q", out, want)
	}
}

func TestPrintPrecisionFromConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := saveFixture(t, dir, "p.matrix", 1, 1, []float64{0.5})

	out, _, err := run(t, "precision: 0\n", "print", path)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if out != "+5e-01 \n" {
		t.Fatalf("config precision: got %q", out)
	}

	out, _, err = run(t, "precision: 0\n", "print", "-p", "2", path)
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if out != "+5.00e-01 \n" {
		t.Fatalf("flag overrides config: got %q", out)
	}
}

func TestComp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := saveFixture(t, dir, "a.matrix", 2, 2, []float64{3, 0, 4, 0})
	b := saveFixture(t, dir, "b.matrix", 2, 2, []float32{3, 0.5, 4, 0})

	out, _, err := run(t, "", "comp", a, b)
	if err != nil {
		t.Fatalf("comp: %v", err)
	}
	if want := "relative residual = 1.000000e-01, max absolute error = 5.000000e-01\n"; out != want {
		t.Fatalf("comp: got %q want %q", out, want)
	}

	out, _, err = run(t, "", "comp", "--json", a, a)
	if err != nil {
		t.Fatalf("comp --json: %v", err)
	}
	if !strings.Contains(out, `"relative_residual": 0`) {
		t.Fatalf("comp --json: %s", out)
	}
}

func TestCompRejectsMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := saveFixture(t, dir, "a.matrix", 2, 2, []float64{1, 2, 3, 4})
	b := saveFixture(t, dir, "b.matrix", 4, 1, []float64{1, 2, 3, 4})

	if _, _, err := run(t, "", "comp", a, b); !errors.Is(err, errShapeMismatch) {
		t.Fatalf("shape mismatch: got %v", err)
	}

	raw, err := os.ReadFile(b)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	raw[8] = 2 // matrix type
	c := filepath.Join(dir, "c.matrix")
	if err := os.WriteFile(c, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := run(t, "", "comp", a, c); !errors.Is(err, errMatrixTypeMismatch) {
		t.Fatalf("matrix type mismatch: got %v", err)
	}

	if _, _, err := run(t, "", "comp", a); err == nil {
		t.Fatal("expected usage error with one operand")
	}
}

const testMTX = `%%MatrixMarket matrix coordinate real general
2 3 3
1 1 1.5
2 2 -2
1 3 7
`

func TestConvert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.mtx")
	if err := os.WriteFile(in, []byte(testMTX), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := filepath.Join(dir, "out.matrix")
	if _, _, err := run(t, "", "convert", "--dtype", "fp32", in, out); err != nil {
		t.Fatalf("convert: %v", err)
	}
	h, err := matfile.LoadHeader(out)
	if err != nil {
		t.Fatalf("header: %v", err)
	}
	if h.DataType != matfile.FP32 || h.M != 2 || h.N != 3 {
		t.Fatalf("header: %+v", h)
	}
	got := make([]float64, 6)
	if err := matfile.LoadDense(got, 2, out); err != nil {
		t.Fatalf("load: %v", err)
	}
	for i, want := range []float64{1.5, 0, 0, -2, 7, 0} {
		if got[i] != want {
			t.Fatalf("got[%d] = %v want %v", i, got[i], want)
		}
	}

	tout := filepath.Join(dir, "t.matrix")
	if _, _, err := run(t, "default_dtype: int32\n", "convert", "--transpose", in, tout); err != nil {
		t.Fatalf("convert --transpose: %v", err)
	}
	th, err := matfile.LoadHeader(tout)
	if err != nil {
		t.Fatalf("header: %v", err)
	}
	if th.DataType != matfile.Int32 || th.M != 3 || th.N != 2 {
		t.Fatalf("transposed header: %+v", th)
	}
	tv := make([]int32, 6)
	if err := matfile.LoadDense(tv, 3, tout); err != nil {
		t.Fatalf("load: %v", err)
	}
	for i, want := range []int32{1, 0, 7, 0, -2, 0} {
		if tv[i] != want {
			t.Fatalf("tv[%d] = %v want %v", i, tv[i], want)
		}
	}

	if _, _, err := run(t, "", "convert", "--dtype", "complex", in, out); !errors.Is(err, matfile.ErrUnknownDataType) {
		t.Fatalf("bad dtype: got %v", err)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "file format: 0.7") {
		t.Fatalf("version output:\n%s", out)
	}
}

func TestDebugFlagEnablesDebugLogs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := saveFixture(t, dir, "a.matrix", 1, 1, []float64{1})
	_, logs, err := run(t, "", "--debug", "comp", a, a)
	if err != nil {
		t.Fatalf("comp: %v", err)
	}
	if !strings.Contains(logs, "loaded operand") {
		t.Fatalf("expected debug log, got: %s", logs)
	}
}

func TestBadConfigFails(t *testing.T) {
	t.Parallel()

	if _, _, err := run(t, "precision: [1, 2\n", "version"); err == nil {
		t.Fatal("expected error for malformed config")
	}
}
