// Package aggregate groups rows by H3 cell and computes per-cell statistics.
package aggregate

import (
	"math"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
)

// Func is a per-column aggregation function.
type Func string

// Supported aggregation functions.
const (
	Sum    Func = "sum"
	Mean   Func = "mean"
	Median Func = "median"
	Max    Func = "max"
	Min    Func = "min"
	Count  Func = "count"
)

// ErrUnknownFunc is returned for an unsupported function name.
var ErrUnknownFunc = eris.New("aggregate: unknown aggregation function")

// Funcs returns every supported function in display order.
func Funcs() []Func {
	return []Func{Sum, Mean, Median, Max, Min, Count}
}

// ParseFunc resolves a function name, ignoring case and surrounding space.
func ParseFunc(name string) (Func, error) {
	f := Func(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(Funcs(), f) {
		return f, nil
	}
	return "", eris.Wrapf(ErrUnknownFunc, "%q (want one of sum, mean, median, max, min, count)", name)
}

// Apply evaluates f over values. NaN inputs propagate into sum, mean,
// median, max and min; count is the number of values regardless of content.
func (f Func) Apply(values []float64) float64 {
	switch f {
	case Sum:
		return sum(values)
	case Mean:
		return sum(values) / float64(len(values))
	case Median:
		return median(values)
	case Max:
		return extremum(values, math.Inf(-1), math.Max)
	case Min:
		return extremum(values, math.Inf(1), math.Min)
	case Count:
		return float64(len(values))
	}
	return math.NaN()
}

// sum accumulates left to right in slice order.
func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	slices.Sort(sorted)

	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// extremum folds values with pick, returning NaN as soon as one is seen.
func extremum(values []float64, start float64, pick func(a, b float64) float64) float64 {
	out := start
	for _, v := range values {
		if math.IsNaN(v) {
			return math.NaN()
		}
		out = pick(out, v)
	}
	return out
}
