package bonuses

import (
	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/models"
)

// Quality penalty weights, all negative. Statistical errors weigh the
// heaviest because they poison every downstream conclusion.
const (
	penaltyPoorReasoning = -2.0
	penaltyStatErrors    = -2.5
	penaltyIgnoredKey    = -1.5
	penaltyLuckyWin      = -2.0
	penaltyInconsistent  = -1.0
)

// QualityCalculator penalizes flaws in the reasoning that produced the
// prediction. Unlike bonuses these apply to every outcome: a lost pick
// with bad analysis and a won pick with bad analysis are both bad
// analysis.
type QualityCalculator struct{}

// NewQualityCalculator creates a new analysis quality calculator
func NewQualityCalculator() *QualityCalculator {
	return &QualityCalculator{}
}

// Calculate sums the quality penalties for a prop, floored at
// params.Floor. The lucky-win check only fires on wins: it marks a
// pick that cashed for reasons its analysis never identified.
func (qc *QualityCalculator) Calculate(prop *models.Prop, params config.PenaltyParams) Adjustment {
	adj := Adjustment{}

	analysis := prop.Analysis
	if analysis == nil {
		return adj
	}

	if analysis.PoorReasoning {
		adj.add(penaltyPoorReasoning, "poor_reasoning")
	}
	if analysis.StatErrors {
		adj.add(penaltyStatErrors, "stat_errors")
	}
	if analysis.IgnoredKeyFactors {
		adj.add(penaltyIgnoredKey, "ignored_key_factors")
	}
	if analysis.LuckyWin && prop.IsWin() {
		adj.add(penaltyLuckyWin, "lucky_win")
	}
	if analysis.InconsistentReasoning {
		adj.add(penaltyInconsistent, "inconsistent_reasoning")
	}

	if adj.Total < params.Floor {
		adj.Total = params.Floor
	}

	return adj
}
