package scorers

import (
	"math"

	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/models"
)

// moneylineMargin is the pseudo-margin assigned to settled moneyline
// bets, which have no line to clear by a measurable distance. A win
// counts as a comfortable cover, a loss as the mirror image.
const moneylineMargin = 10.0

// MarginScorer converts the distance between the actual result and the
// line into a signed adjustment: linear while the margin is ordinary,
// tapering once it turns into a blowout.
type MarginScorer struct{}

// NewMarginScorer creates a new margin scorer
func NewMarginScorer() *MarginScorer {
	return &MarginScorer{}
}

// Calculate returns the margin adjustment for a settled prop. Unsettled
// props and markets without usable result data adjust by zero.
func (ms *MarginScorer) Calculate(prop *models.Prop, params config.MarginParams) Result {
	margin, ok := signedMargin(prop)
	if !ok {
		return defaulted(0)
	}

	adjustment := marginCurve(math.Abs(margin), params)
	if margin < 0 {
		adjustment = -adjustment
	}

	return scored(clamp(adjustment, -params.MaxAdjustment, params.MaxAdjustment))
}

// signedMargin extracts how far the result beat the line, oriented so
// positive always means the pick's side won the distance.
func signedMargin(prop *models.Prop) (float64, bool) {
	switch prop.Market {
	case models.MarketOver:
		if prop.ActualResult == nil || prop.Line <= 0 {
			return 0, false
		}
		return *prop.ActualResult - prop.Line, true
	case models.MarketUnder:
		if prop.ActualResult == nil || prop.Line <= 0 {
			return 0, false
		}
		return prop.Line - *prop.ActualResult, true
	case models.MarketSpread:
		// Line on a spread is the differential the pick must beat:
		// laying 6.5 stores 6.5, taking +4.5 stores -4.5. ActualResult
		// is the picked side's final point differential.
		if prop.ActualResult == nil {
			return 0, false
		}
		return *prop.ActualResult - prop.Line, true
	case models.MarketMoneyline:
		if prop.Outcome == nil {
			return 0, false
		}
		switch *prop.Outcome {
		case models.OutcomeWin:
			return moneylineMargin, true
		case models.OutcomeLoss:
			return -moneylineMargin, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

// marginCurve maps an absolute margin into [0, MaxAdjustment). The
// linear region covers LinearShare of the headroom; past the threshold
// a sigmoid eats the remainder so a 30-point blowout is worth barely
// more than a 15-point one.
func marginCurve(abs float64, params config.MarginParams) float64 {
	linearMax := params.LinearShare * params.MaxAdjustment
	if abs <= params.LinearThreshold {
		return (abs / params.LinearThreshold) * linearMax
	}

	excess := abs - params.LinearThreshold

	return linearMax + sigmoid(excess*params.SigmoidFactor)*(params.MaxAdjustment-linearMax)
}

// sigmoid maps x >= 0 into [0, 1) with the slope tapering toward zero
func sigmoid(x float64) float64 {
	return 2.0/(1.0+math.Exp(-x)) - 1.0
}
