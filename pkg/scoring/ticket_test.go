package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/models"
)

func hotHandLeg() models.Leg {
	return models.Leg{
		Sport:        models.SportNBA,
		Player:       "J. Tatum",
		StatCategory: "points",
		Market:       models.MarketOver,
		Position:     "SF",
		Line:         27.5,
		Odds:         -110,
		Context: &models.PropContext{
			Historical: &models.HistoricalStats{
				L10HitRate: fp(0.75),
				DvPRank:    ip(3),
			},
		},
	}
}

func coldLeg() models.Leg {
	leg := hotHandLeg()
	leg.Context.Historical.L10HitRate = fp(0.30)
	leg.Context.Historical.DvPRank = nil
	return leg
}

func TestGradeTicketParlay(t *testing.T) {
	engine := newTestEngine()

	ticket := &models.Prop{
		ID:      "tk-1",
		Sport:   models.SportNBA,
		BetType: models.BetParlay,
		Legs:    []models.Leg{hotHandLeg(), hotHandLeg()},
	}

	graded := engine.ApplyScoringLogic(ticket, config.DefaultSnapshot())
	require.NotNil(t, graded)
	require.Len(t, graded.LegGrades, 2)

	// Each leg grades as a standalone prop but priced as parlay risk:
	// NBA 1.00 x parlay 1.30 x over 1.05.
	for _, leg := range graded.LegGrades {
		assert.InDelta(t, 1.365, leg.VolatilityFactor, 1e-9)
		assert.InDelta(t, 20.79, leg.RawCompositeScore, 0.001)
		assert.InDelta(t, 17.79, leg.CompositeScore, 0.001)
		assert.Equal(t, models.TierA, leg.Tier)
	}
	assert.Equal(t, "tk-1/leg-1", graded.LegGrades[0].ID)
	assert.Equal(t, "tk-1/leg-2", graded.LegGrades[1].ID)

	require.NotNil(t, graded.TicketScore)
	assert.InDelta(t, 17.79, *graded.TicketScore, 0.001)
	assert.InDelta(t, 17.79, graded.CompositeScore, 0.001)
	assert.Equal(t, models.TierA, graded.Tier)
	assert.True(t, graded.PromotionEligible(), "two A legs promote")
}

func TestGradeTicketWeakLegSinksPromotion(t *testing.T) {
	engine := newTestEngine()

	ticket := &models.Prop{
		ID:      "tk-2",
		Sport:   models.SportNBA,
		BetType: models.BetParlay,
		Legs:    []models.Leg{hotHandLeg(), coldLeg()},
	}

	graded := engine.ApplyScoringLogic(ticket, config.DefaultSnapshot())
	require.NotNil(t, graded)
	require.Len(t, graded.LegGrades, 2)

	assert.Equal(t, models.TierA, graded.LegGrades[0].Tier)
	assert.Equal(t, models.TierC, graded.LegGrades[1].Tier)

	// Mean of 17.79 and 8.57.
	assert.InDelta(t, 13.18, graded.CompositeScore, 0.001)
	assert.Equal(t, models.TierB, graded.Tier)
	assert.False(t, graded.PromotionEligible(), "one cold leg sinks the ticket")
}

func TestGradeTicketLegInheritsSport(t *testing.T) {
	engine := newTestEngine()

	nhlLeg := hotHandLeg()
	nhlLeg.Sport = models.SportNHL
	nhlLeg.StatCategory = "shots_on_goal"
	nhlLeg.Position = ""

	inherited := hotHandLeg()
	inherited.Sport = ""

	ticket := &models.Prop{
		ID:      "tk-3",
		Sport:   models.SportNBA,
		BetType: models.BetParlay,
		Legs:    []models.Leg{inherited, nhlLeg},
	}

	graded := engine.ApplyScoringLogic(ticket, config.DefaultSnapshot())
	require.NotNil(t, graded)
	require.Len(t, graded.LegGrades, 2)

	assert.Equal(t, models.SportNBA, graded.LegGrades[0].Sport,
		"sportless legs take the ticket's sport")
	assert.Equal(t, models.SportNHL, graded.LegGrades[1].Sport)

	// NHL 1.25 x parlay 1.30 x over 1.05.
	assert.InDelta(t, 1.70625, graded.LegGrades[1].VolatilityFactor, 1e-9)
}

func TestGradeTicketSingleLeg(t *testing.T) {
	engine := newTestEngine()

	ticket := &models.Prop{
		ID:      "tk-4",
		Sport:   models.SportNBA,
		BetType: models.BetSGP,
		Legs:    []models.Leg{hotHandLeg()},
	}

	graded := engine.ApplyScoringLogic(ticket, config.DefaultSnapshot())
	require.NotNil(t, graded)
	require.Len(t, graded.LegGrades, 1)

	// A one-leg ticket's mean is the leg itself: NBA 1.00 x sgp 1.25 x over 1.05.
	assert.InDelta(t, graded.LegGrades[0].CompositeScore, graded.CompositeScore, 1e-9)
	assert.InDelta(t, 1.3125, graded.LegGrades[0].VolatilityFactor, 1e-9)
}
