package scorers

// Confidence blend weights. Trend carries the most signal; EV percent
// is rescaled so a 10% edge contributes one point.
const (
	confidenceWeightTrend   = 0.4
	confidenceWeightMatchup = 0.3
	confidenceWeightValue   = 0.3
	confidenceValueScale    = 10.0
)

// ConfidenceScorer blends trend, matchup and expected value into a
// single conviction number.
type ConfidenceScorer struct{}

// NewConfidenceScorer creates a new confidence scorer
func NewConfidenceScorer() *ConfidenceScorer {
	return &ConfidenceScorer{}
}

// Calculate returns the weighted blend rounded to 2 decimal places.
// It is a pure combination of already-computed scores, so default
// tracking stays with the inputs.
func (cs *ConfidenceScorer) Calculate(trend, matchup, expectedValue float64) float64 {
	blended := trend*confidenceWeightTrend +
		matchup*confidenceWeightMatchup +
		(expectedValue/confidenceValueScale)*confidenceWeightValue

	return round2(blended)
}
