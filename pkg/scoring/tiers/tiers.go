// Package tiers classifies composite scores into the ordered quality
// tiers by walking a configured threshold table.
package tiers

import (
	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/models"
)

// Classifier assigns tiers from a threshold table. The table is
// ordered best tier first with strictly descending minimums, which
// config validation already guarantees.
type Classifier struct{}

// NewClassifier creates a new tier classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the first tier whose minimum the score meets, or
// the table's fallback when none do.
func (c *Classifier) Classify(score float64, params config.TierParams) models.Tier {
	for _, threshold := range params.Thresholds {
		if score >= threshold.Min {
			return threshold.Tier
		}
	}

	if params.Fallback != "" {
		return params.Fallback
	}

	return models.TierC
}

// RecordKeepingTable returns the alternate table that grades weak
// picks down to D. Promotion decisions never use it; it exists so the
// books can distinguish a mediocre miss from a terrible one.
func RecordKeepingTable() config.TierParams {
	return config.TierParams{
		Thresholds: []config.TierThreshold{
			{Tier: models.TierS, Min: 20},
			{Tier: models.TierA, Min: 15},
			{Tier: models.TierB, Min: 10},
			{Tier: models.TierC, Min: 5},
		},
		Fallback: models.TierD,
	}
}
