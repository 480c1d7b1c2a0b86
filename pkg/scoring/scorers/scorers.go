// Package scorers holds the per-dimension calculators that turn a prop
// and its context into the individual sub-scores. Every calculator is
// total: when the data it needs is missing it falls back to a neutral
// default and reports that through Result rather than returning an
// error.
package scorers

// Result is the outcome of a single calculator: the score plus whether
// a neutral default substituted for missing input data.
type Result struct {
	Value       float64 `json:"value"`
	UsedDefault bool    `json:"used_default"`
}

// scored wraps a value computed from real inputs.
func scored(v float64) Result {
	return Result{Value: v}
}

// defaulted wraps a neutral fallback used because inputs were missing.
func defaulted(v float64) Result {
	return Result{Value: v, UsedDefault: true}
}
