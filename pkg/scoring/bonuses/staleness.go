package bonuses

import (
	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/models"
)

// StalenessCalculator penalizes predictions made long before the game
// and never revisited. Lines move and lineups change; a stale pick was
// graded against a different world than the one the game was played
// in.
type StalenessCalculator struct{}

// NewStalenessCalculator creates a new staleness calculator
func NewStalenessCalculator() *StalenessCalculator {
	return &StalenessCalculator{}
}

// Calculate returns the staleness penalty. An update after the
// original prediction resets the clock, and missing timestamps mean
// no penalty.
func (sc *StalenessCalculator) Calculate(prop *models.Prop, params config.PenaltyParams) Adjustment {
	adj := Adjustment{}

	if prop.GameTime.IsZero() || prop.PredictedAt.IsZero() {
		return adj
	}

	effective := prop.PredictedAt
	if prop.UpdatedAt.After(effective) {
		effective = prop.UpdatedAt
	}

	lead := prop.GameTime.Sub(effective).Hours()
	switch {
	case lead > params.VeryStaleHours:
		adj.add(-params.VeryStalePenalty, "very_stale_prediction")
	case lead > params.StaleHours:
		adj.add(-params.StalePenalty, "stale_prediction")
	}

	return adj
}
