package scorers

import (
	"math"

	"github.com/oddsmith/propscore/pkg/models"
	"github.com/oddsmith/propscore/pkg/oddsmath"
)

// defaultOdds is standard juice, assumed when a prop arrives unpriced.
const defaultOdds = -110

// ValueScorer estimates the expected value of a prop as a percentage
// of stake. Positive EV means the estimated win probability beats the
// offered price.
type ValueScorer struct{}

// NewValueScorer creates a new expected value scorer
func NewValueScorer() *ValueScorer {
	return &ValueScorer{}
}

// Calculate returns EV per 100 units staked, rounded to the nearest
// whole percent. Win probability comes from the last-10 hit rate when
// available, otherwise from the probability implied by the odds, in
// which case the price is taken at face value and the EV is zero.
func (vs *ValueScorer) Calculate(prop *models.Prop) Result {
	usedDefault := false

	odds := prop.Odds
	if odds == 0 {
		odds = defaultOdds
		usedDefault = true
	}

	payout, _ := oddsmath.PayoutMultiplier(odds) // odds is non-zero here

	var winProb float64
	hist := prop.Context.HistoricalOrNil()
	if hist != nil && hist.L10HitRate != nil {
		winProb = clamp01(*hist.L10HitRate)
	} else {
		implied, _ := oddsmath.AmericanToImpliedProbability(odds)
		winProb = implied
		usedDefault = true
	}

	ev := winProb*payout - (1.0 - winProb)

	return Result{Value: math.Round(ev * 100.0), UsedDefault: usedDefault}
}
