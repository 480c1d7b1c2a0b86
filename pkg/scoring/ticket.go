package scoring

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/models"
)

// gradeTicket grades a multi-leg ticket: each leg goes through the
// single-prop pipeline independently, and the ticket's composite is
// the mean of the leg composites. Tier comes from that mean, but
// promotion additionally requires every leg to clear the bar, which
// GradedProp.PromotionEligible enforces.
func (e *Engine) gradeTicket(ticket *models.Prop, snapshot *config.Snapshot, version string, overrides map[string]float64) *models.GradedProp {
	graded := &models.GradedProp{
		Prop:             *ticket,
		ScoringVersion:   version,
		VolatilityFactor: 1.0,
	}

	legScores := make([]float64, 0, len(ticket.Legs))
	for i := range ticket.Legs {
		legGrade := e.gradeSingle(legProp(ticket, i), snapshot, version, overrides)
		graded.LegGrades = append(graded.LegGrades, *legGrade)
		legScores = append(legScores, legGrade.CompositeScore)
	}

	mean := round2(stat.Mean(legScores, nil))
	graded.TicketScore = &mean
	graded.RawCompositeScore = mean
	graded.CompositeScore = mean
	graded.Tier = e.classifier.Classify(mean, snapshot.Scoring.Tiers)

	return graded
}

// legProp expands one leg into a standalone prop for grading. The leg
// keeps the ticket's bet type so the volatility model prices parlay
// legs as parlay risk, and inherits the ticket's sport and timestamps
// where it has none of its own.
func legProp(ticket *models.Prop, index int) *models.Prop {
	leg := ticket.Legs[index]

	sport := leg.Sport
	if sport == "" {
		sport = ticket.Sport
	}

	return &models.Prop{
		ID:            fmt.Sprintf("%s/leg-%d", ticket.ID, index+1),
		Sport:         sport,
		BetType:       ticket.BetType,
		Player:        leg.Player,
		Team:          leg.Team,
		Opponent:      leg.Opponent,
		StatCategory:  leg.StatCategory,
		Market:        leg.Market,
		Position:      leg.Position,
		Line:          leg.Line,
		PredictedLine: leg.PredictedLine,
		Odds:          leg.Odds,
		ActualResult:  leg.ActualResult,
		Outcome:       leg.Outcome,
		PredictedAt:   ticket.PredictedAt,
		UpdatedAt:     ticket.UpdatedAt,
		GameTime:      ticket.GameTime,
		Analysis:      leg.Analysis,
		Context:       leg.Context,
	}
}
