package matstat

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
)

const histogramBarWidth = 40

// ExponentHistogram counts values by binary exponent, split by sign.
// A value v with 2^e <= |v| < 2^(e+1) is counted under e.
type ExponentHistogram struct {
	Positive  map[int]uint64 `json:"positive"`
	Negative  map[int]uint64 `json:"negative"`
	Zero      uint64         `json:"zero"`
	NonFinite uint64         `json:"non_finite"`
	Total     uint64         `json:"total"`
}

func NewExponentHistogram(vals []float64) *ExponentHistogram {
	h := &ExponentHistogram{
		Positive: make(map[int]uint64),
		Negative: make(map[int]uint64),
	}
	for _, v := range vals {
		h.Add(v)
	}
	return h
}

// Add counts one value.
func (h *ExponentHistogram) Add(v float64) {
	h.Total++
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		h.NonFinite++
	case v == 0:
		h.Zero++
	default:
		_, e := math.Frexp(v)
		if v > 0 {
			h.Positive[e-1]++
		} else {
			h.Negative[e-1]++
		}
	}
}

// Exponents returns every populated exponent in descending order.
func (h *ExponentHistogram) Exponents() []int {
	seen := make(map[int]struct{}, len(h.Positive)+len(h.Negative))
	for e := range h.Positive {
		seen[e] = struct{}{}
	}
	for e := range h.Negative {
		seen[e] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	slices.Sort(out)
	slices.Reverse(out)
	return out
}

// Fprint renders the histogram, one exponent per row, negative counts on the
// left and positive counts on the right.
func (h *ExponentHistogram) Fprint(w io.Writer) error {
	bw := bufio.NewWriter(w)

	var peak uint64
	for _, c := range h.Positive {
		peak = max(peak, c)
	}
	for _, c := range h.Negative {
		peak = max(peak, c)
	}
	bar := func(c uint64) int {
		if c == 0 || peak == 0 {
			return 0
		}
		return max(1, int(c*histogramBarWidth/peak))
	}

	fmt.Fprintf(bw, "%*s | %5s | %s\n", histogramBarWidth+10, "negative", "exp", "positive")
	for _, e := range h.Exponents() {
		neg, pos := h.Negative[e], h.Positive[e]
		fmt.Fprintf(bw, "%10d%*s | %5d | %-*s%d\n",
			neg, histogramBarWidth, strings.Repeat("*", bar(neg)),
			e,
			histogramBarWidth, strings.Repeat("*", bar(pos)), pos)
	}
	fmt.Fprintf(bw, "zero: %d, non-finite: %d, total: %d\n", h.Zero, h.NonFinite, h.Total)
	return bw.Flush()
}
