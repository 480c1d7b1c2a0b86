package scorers

import "github.com/oddsmith/propscore/pkg/models"

// Trend score breakpoints over the last-10 hit rate.
const (
	trendHotRate    = 0.70
	trendWarmRate   = 0.60
	trendEvenRate   = 0.50
	trendColdRate   = 0.40
	trendFloorScore = 1.0
)

// TrendScorer discretizes a player's recent hit rate into the 1-5
// trend score. A player hitting the prop line in 7 of the last 10
// games grades a 5; one below 4 of 10 grades a 1.
type TrendScorer struct{}

// NewTrendScorer creates a new trend scorer
func NewTrendScorer() *TrendScorer {
	return &TrendScorer{}
}

// Calculate returns the trend score for a prop. A missing hit rate
// scores the floor bucket because an unknown streak earns no credit.
func (ts *TrendScorer) Calculate(prop *models.Prop) Result {
	hist := prop.Context.HistoricalOrNil()
	if hist == nil || hist.L10HitRate == nil {
		return defaulted(trendFloorScore)
	}

	rate := *hist.L10HitRate
	switch {
	case rate >= trendHotRate:
		return scored(5)
	case rate >= trendWarmRate:
		return scored(4)
	case rate >= trendEvenRate:
		return scored(3)
	case rate >= trendColdRate:
		return scored(2)
	default:
		return scored(trendFloorScore)
	}
}
