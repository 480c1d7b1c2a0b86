package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/models"
)

func TestApplyScoringWithBreakdownSingle(t *testing.T) {
	engine := newTestEngine()

	graded, breakdown := engine.ApplyScoringWithBreakdown(hotHandProp(), config.DefaultSnapshot())
	require.NotNil(t, graded)
	require.NotNil(t, breakdown)

	assert.InDelta(t, 5.0, breakdown.Components[models.ComponentTrend], 1e-9)
	assert.InDelta(t, 5.0, breakdown.Components[models.ComponentMatchup], 1e-9)
	assert.InDelta(t, 4.79, breakdown.Components[models.ComponentConfidence], 0.001)
	assert.InDelta(t, 3.0, breakdown.Components[models.ComponentLineValue], 1e-9)
	assert.InDelta(t, 3.0, breakdown.Components[models.ComponentRoleStability], 1e-9)
	assert.Zero(t, breakdown.Components[models.ComponentMargin])
	assert.Zero(t, breakdown.Components[models.ComponentBonus])
	assert.Zero(t, breakdown.Components[models.ComponentPenalties])

	assert.InDelta(t, 24.05, breakdown.Percent[models.ComponentTrend], 0.01)
	assert.InDelta(t, 23.04, breakdown.Percent[models.ComponentConfidence], 0.01)
	assert.InDelta(t, 14.43, breakdown.Percent[models.ComponentLineValue], 0.01)

	total := 0.0
	for _, share := range breakdown.Percent {
		total += share
	}
	assert.InDelta(t, 100.0, total, 0.1, "shares explain the whole score")
}

func TestApplyScoringWithBreakdownSignedStages(t *testing.T) {
	engine := newTestEngine()

	outcome := models.OutcomeLoss
	prop := &models.Prop{
		ID:           "prop-mis",
		Sport:        models.SportNBA,
		BetType:      models.BetSingle,
		Market:       models.MarketOver,
		StatCategory: "points",
		Line:         25.5,
		Odds:         -110,
		ActualResult: fp(22.0),
		Outcome:      &outcome,
		Analysis:     &models.AnalysisQualityContext{PoorReasoning: true},
		Context: &models.PropContext{
			Historical: &models.HistoricalStats{L10HitRate: fp(0.45), DvPRank: ip(25)},
		},
	}

	_, breakdown := engine.ApplyScoringWithBreakdown(prop, config.DefaultSnapshot())
	require.NotNil(t, breakdown)

	assert.InDelta(t, -1.5, breakdown.Components[models.ComponentMargin], 0.001,
		"negative stages keep their sign in the component map")
	assert.InDelta(t, -2.0, breakdown.Components[models.ComponentPenalties], 1e-9)
	assert.Greater(t, breakdown.Percent[models.ComponentMargin], 0.0,
		"shares are absolute weight, not direction")
}

func TestApplyScoringWithBreakdownTicket(t *testing.T) {
	engine := newTestEngine()

	ticket := &models.Prop{
		ID:      "tk-1",
		Sport:   models.SportNBA,
		BetType: models.BetParlay,
		Legs:    []models.Leg{hotHandLeg(), hotHandLeg()},
	}

	graded, breakdown := engine.ApplyScoringWithBreakdown(ticket, config.DefaultSnapshot())
	require.NotNil(t, graded)
	require.NotNil(t, breakdown)

	require.Len(t, breakdown.Components, 2)
	assert.InDelta(t, 17.79, breakdown.Components["leg_1"], 0.001)
	assert.InDelta(t, 17.79, breakdown.Components["leg_2"], 0.001)
	assert.InDelta(t, 50.0, breakdown.Percent["leg_1"], 0.01)
	assert.InDelta(t, 50.0, breakdown.Percent["leg_2"], 0.01)
}

func TestApplyScoringWithBreakdownNilProp(t *testing.T) {
	engine := newTestEngine()

	graded, breakdown := engine.ApplyScoringWithBreakdown(nil, config.DefaultSnapshot())
	assert.Nil(t, graded)
	assert.Nil(t, breakdown)
}

func TestNewBreakdownAllZero(t *testing.T) {
	breakdown := newBreakdown(map[string]float64{"a": 0, "b": 0})

	assert.Zero(t, breakdown.Percent["a"])
	assert.Zero(t, breakdown.Percent["b"])
}
