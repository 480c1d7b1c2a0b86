package scorers

import (
	"math"

	"github.com/oddsmith/propscore/pkg/models"
)

// Line value breakpoints over the relative gap between the model's
// predicted line and the posted line.
const (
	lineValueHugeGap  = 0.15
	lineValueLargeGap = 0.10
	lineValueMidGap   = 0.05
	lineValueSmallGap = 0.02
	lineValueNeutral  = 3.0
)

// LineValueScorer grades how far the posted line sits from where the
// model thinks it should be. Bigger disagreement means more value if
// the model is right.
type LineValueScorer struct{}

// NewLineValueScorer creates a new line value scorer
func NewLineValueScorer() *LineValueScorer {
	return &LineValueScorer{}
}

// Calculate returns the line value score. The gap is normalized by the
// posted line so a 2-point gap on a 20.5 line outranks the same gap on
// a 220.5 total. Without a predicted line the score is neutral.
func (ls *LineValueScorer) Calculate(prop *models.Prop) Result {
	if prop.PredictedLine == nil {
		return defaulted(lineValueNeutral)
	}

	gap := math.Abs(*prop.PredictedLine-prop.Line) / math.Max(math.Abs(prop.Line), 1.0)

	switch {
	case gap >= lineValueHugeGap:
		return scored(5)
	case gap >= lineValueLargeGap:
		return scored(4)
	case gap >= lineValueMidGap:
		return scored(3)
	case gap >= lineValueSmallGap:
		return scored(2)
	default:
		return scored(1)
	}
}
