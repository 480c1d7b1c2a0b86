package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/models"
)

// cleanEdgeProp passes all five edge checks with default parameters.
func cleanEdgeProp() *models.Prop {
	return &models.Prop{
		ID:           "prop-1",
		Sport:        models.SportNBA,
		StatCategory: "points",
		Position:     "PG",
		Odds:         -110,
		Context: &models.PropContext{
			Historical: &models.HistoricalStats{DvPRank: ip(3)},
		},
	}
}

func TestEdgeScorerAllChecksPass(t *testing.T) {
	scorer := NewEdgeScorer()
	params := config.Default().Edge

	result := scorer.Calculate(cleanEdgeProp(), params)

	assert.Equal(t, 5, result.Score)
	assert.ElementsMatch(t, []string{
		EdgeCheckOddsBand,
		EdgeCheckCoreStat,
		EdgeCheckMatchupRank,
		EdgeCheckSynergy,
		EdgeCheckCleanContext,
	}, result.Passed)
}

func TestEdgeScorerIndividualChecks(t *testing.T) {
	params := config.Default().Edge

	tests := []struct {
		name    string
		mutate  func(p *models.Prop)
		missing string
		want    int
	}{
		{
			name:    "longshot odds fall outside the band",
			mutate:  func(p *models.Prop) { p.Odds = 250 },
			missing: EdgeCheckOddsBand,
			want:    4,
		},
		{
			name:    "heavy favorite falls outside the band",
			mutate:  func(p *models.Prop) { p.Odds = -200 },
			missing: EdgeCheckOddsBand,
			want:    4,
		},
		{
			name:    "missing odds earn no band point",
			mutate:  func(p *models.Prop) { p.Odds = 0 },
			missing: EdgeCheckOddsBand,
			want:    4,
		},
		{
			// A stat off the core list also has no synergy entry, so the
			// fringe market drops two points.
			name:    "fringe market",
			mutate:  func(p *models.Prop) { p.StatCategory = "dunks" },
			missing: EdgeCheckCoreStat,
			want:    3,
		},
		{
			name:    "tough defensive matchup",
			mutate:  func(p *models.Prop) { p.Context.Historical.DvPRank = ip(22) },
			missing: EdgeCheckMatchupRank,
			want:    4,
		},
		{
			name:    "missing matchup rank",
			mutate:  func(p *models.Prop) { p.Context.Historical.DvPRank = nil },
			missing: EdgeCheckMatchupRank,
			want:    4,
		},
		{
			name:    "position without stat synergy",
			mutate:  func(p *models.Prop) { p.Position = "C"; p.StatCategory = "threes" },
			missing: EdgeCheckSynergy,
			want:    4,
		},
		{
			name: "negative analysis flag",
			mutate: func(p *models.Prop) {
				p.Analysis = &models.AnalysisQualityContext{NegativeFlag: true}
			},
			missing: EdgeCheckCleanContext,
			want:    4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := NewEdgeScorer()
			prop := cleanEdgeProp()
			tt.mutate(prop)

			result := scorer.Calculate(prop, params)

			assert.NotContains(t, result.Passed, tt.missing)
			assert.Equal(t, tt.want, result.Score)
		})
	}
}

func TestEdgeScorerBareProp(t *testing.T) {
	scorer := NewEdgeScorer()
	params := config.Default().Edge

	result := scorer.Calculate(&models.Prop{ID: "prop-1"}, params)

	// No odds, no sport tables, no matchup data. Only the clean-context
	// check passes, because no analysis means no negative flag.
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, []string{EdgeCheckCleanContext}, result.Passed)
}

func TestEdgeScorerBandBoundaries(t *testing.T) {
	scorer := NewEdgeScorer()
	params := config.Default().Edge

	low := cleanEdgeProp()
	low.Odds = params.OddsBandLow
	assert.Contains(t, scorer.Calculate(low, params).Passed, EdgeCheckOddsBand,
		"band is inclusive at the low end")

	high := cleanEdgeProp()
	high.Odds = params.OddsBandHigh
	assert.Contains(t, scorer.Calculate(high, params).Passed, EdgeCheckOddsBand,
		"band is inclusive at the high end")
}
