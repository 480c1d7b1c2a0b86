package bonuses

import (
	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/models"
)

// Context bonus weights. Counter-trend calls are worth the most: being
// right against the grain is the strongest signal a capper has real
// information.
const (
	bonusRoadUnderdog     = 1.5
	bonusAdverseWeather   = 1.0
	bonusInjuriesOvercome = 1.0
	bonusHighLeverage     = 1.5
	bonusCounterTrend     = 2.0
)

// ContextCalculator awards bonuses for winning predictions that
// overcame difficult circumstances. Losses earn nothing here: the
// layer rewards demonstrated judgment, not degree of difficulty.
type ContextCalculator struct{}

// NewContextCalculator creates a new context bonus calculator
func NewContextCalculator() *ContextCalculator {
	return &ContextCalculator{}
}

// Calculate sums the context bonuses for a winning prop, capped at
// params.MaxBonus.
func (cc *ContextCalculator) Calculate(prop *models.Prop, params config.BonusParams) Adjustment {
	adj := Adjustment{}
	if !prop.IsWin() {
		return adj
	}

	situation := prop.Context.SituationOrNil()
	if situation != nil {
		if situation.RoadGame && situation.Underdog {
			adj.add(bonusRoadUnderdog, "road_underdog")
		}
		if situation.HighLeverage {
			adj.add(bonusHighLeverage, "high_leverage")
		}
		if situation.CounterTrend {
			adj.add(bonusCounterTrend, "counter_trend")
		}
	}

	if prop.Context.WeatherOrNil().Adverse() {
		adj.add(bonusAdverseWeather, "adverse_weather")
	}

	injuries := prop.Context.InjuriesOrNil()
	if injuries != nil && injuries.KeyInjuriesOvercome {
		adj.add(bonusInjuriesOvercome, "injuries_overcome")
	}

	if adj.Total > params.MaxBonus {
		adj.Total = params.MaxBonus
	}

	return adj
}
