// Package volatility implements the multiplicative uncertainty model.
// Six components multiply into one factor: sport base, bet type,
// market, posted-total environment, historical variance, and
// situational flags. The factor then compresses the raw composite
// through an asymmetric square root so high-variance settings shrink
// conviction without flipping signs.
package volatility

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/models"
	"github.com/oddsmith/propscore/pkg/sportrules"
)

// Component names in Factor.Components.
const (
	ComponentSportBase   = "sport_base"
	ComponentBetType     = "bet_type"
	ComponentMarket      = "market"
	ComponentTotalRatio  = "total_ratio"
	ComponentVariance    = "variance"
	ComponentSituational = "situational"
)

// Situational multipliers.
const (
	situationalBackupGoalie   = 1.20
	situationalBackToBack     = 1.10
	situationalPlayoff        = 1.10
	situationalExtremeWeather = 1.15
)

// minVarianceSamples is how many recent stat samples the variance
// component needs before a coefficient of variation is meaningful.
const minVarianceSamples = 3

// Factor is the combined volatility factor with its components, each
// already a multiplier (1.0 means neutral).
type Factor struct {
	Value      float64            `json:"value"`
	Components map[string]float64 `json:"components"`
}

// Model computes volatility factors from the static tables in the
// scoring config plus per-prop context.
type Model struct{}

// NewModel creates a new volatility model
func NewModel() *Model {
	return &Model{}
}

// Calculate combines the six components and clamps the product into
// [MinFactor, MaxFactor].
func (m *Model) Calculate(prop *models.Prop, params config.VolatilityParams) Factor {
	components := map[string]float64{
		ComponentSportBase:   m.sportBase(prop.Sport, params),
		ComponentBetType:     lookupOrNeutral(params.BetType, prop.BetType),
		ComponentMarket:      lookupOrNeutral(params.Market, prop.Market),
		ComponentTotalRatio:  m.totalRatio(prop),
		ComponentVariance:    m.variance(prop),
		ComponentSituational: m.situational(prop),
	}

	combined := 1.0
	for _, c := range components {
		combined *= c
	}

	if combined < params.MinFactor {
		combined = params.MinFactor
	}
	if combined > params.MaxFactor {
		combined = params.MaxFactor
	}

	return Factor{Value: combined, Components: components}
}

// Apply compresses a raw composite score by the volatility factor.
// Positive scores divide by sqrt(factor): high volatility shrinks
// earned confidence. Negative scores multiply by sqrt(factor): in a
// noisy setting a miss says less about the pick, and the sqrt keeps
// either correction gentle.
func Apply(raw, factor float64) float64 {
	if factor <= 0 {
		return raw
	}

	root := math.Sqrt(factor)
	if raw >= 0 {
		return raw / root
	}

	return raw * root
}

func (m *Model) sportBase(sport models.Sport, params config.VolatilityParams) float64 {
	if base, ok := params.SportBase[sport]; ok {
		return base
	}
	return params.UnknownSport
}

// totalRatio grades the scoring environment for totals markets: the
// lower the posted total relative to a typical game, the fewer scoring
// events, and the more each one swings the outcome.
func (m *Model) totalRatio(prop *models.Prop) float64 {
	if !prop.Market.IsTotal() {
		return 1.0
	}

	posted := 0.0
	if situation := prop.Context.SituationOrNil(); situation != nil && situation.TotalLine != nil {
		posted = *situation.TotalLine
	} else if prop.StatCategory == "" {
		// A totals prop without a stat category is the game total.
		posted = prop.Line
	}
	if posted <= 0 {
		return 1.0
	}

	reference, ok := sportrules.ReferenceTotal(prop.Sport)
	if !ok {
		return 1.0
	}

	ratio := reference / posted
	switch {
	case ratio >= 1.25:
		return 1.20
	case ratio >= 1.10:
		return 1.10
	case ratio >= 0.90:
		return 1.00
	case ratio >= 0.75:
		return 0.95
	default:
		return 0.90
	}
}

// variance grades the player's recent production spread. A high
// coefficient of variation means boom-or-bust box scores.
func (m *Model) variance(prop *models.Prop) float64 {
	hist := prop.Context.HistoricalOrNil()
	if hist == nil || len(hist.RecentValues) < minVarianceSamples {
		return 1.0
	}

	mean := stat.Mean(hist.RecentValues, nil)
	if mean <= 0 {
		return 1.0
	}

	cov := stat.StdDev(hist.RecentValues, nil) / mean
	switch {
	case cov >= 0.60:
		return 1.25
	case cov >= 0.40:
		return 1.15
	case cov >= 0.25:
		return 1.05
	case cov >= 0.15:
		return 1.00
	default:
		return 0.95
	}
}

func (m *Model) situational(prop *models.Prop) float64 {
	multiplier := 1.0

	if situation := prop.Context.SituationOrNil(); situation != nil {
		if prop.Sport == models.SportNHL && situation.BackupGoalie {
			multiplier *= situationalBackupGoalie
		}
		if prop.Sport == models.SportNBA && situation.BackToBack {
			multiplier *= situationalBackToBack
		}
		if situation.PlayoffImplications {
			multiplier *= situationalPlayoff
		}
	}

	if prop.Context.WeatherOrNil().Adverse() {
		multiplier *= situationalExtremeWeather
	}

	return multiplier
}

// lookupOrNeutral reads a multiplier table, returning neutral 1.0 for
// keys the table does not carry.
func lookupOrNeutral[K comparable](table map[K]float64, key K) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return 1.0
}
