// Package models defines the data records exchanged with the scoring
// pipeline: the Prop under evaluation, its typed context records, and the
// fully graded result.
package models

import "time"

// Component names shared by weight maps, breakdown reports and the
// UsedDefaults audit list.
const (
	ComponentTrend         = "trend"
	ComponentMatchup       = "matchup"
	ComponentExpectedValue = "expected_value"
	ComponentConfidence    = "confidence"
	ComponentLineValue     = "line_value"
	ComponentRoleStability = "role_stability"
	ComponentMargin        = "margin"
	ComponentBonus         = "bonus"
	ComponentPenalties     = "penalties"
	ComponentEdge          = "edge"
	ComponentVolatility    = "volatility"
)

// Sport identifies the league a prop belongs to
type Sport string

const (
	SportNBA    Sport = "NBA"
	SportNFL    Sport = "NFL"
	SportMLB    Sport = "MLB"
	SportNHL    Sport = "NHL"
	SportSoccer Sport = "SOCCER"
)

// Known checks whether the sport is one of the supported leagues
func (s Sport) Known() bool {
	switch s {
	case SportNBA, SportNFL, SportMLB, SportNHL, SportSoccer:
		return true
	}
	return false
}

// BetType represents the structure of the wager
type BetType string

const (
	BetSingle     BetType = "single"
	BetParlay     BetType = "parlay"
	BetTeaser     BetType = "teaser"
	BetRoundRobin BetType = "roundrobin"
	BetSGP        BetType = "sgp"
)

// IsMultiLeg checks whether this bet type carries multiple legs
func (b BetType) IsMultiLeg() bool {
	switch b {
	case BetParlay, BetTeaser, BetRoundRobin, BetSGP:
		return true
	}
	return false
}

// Market represents the market a single bet is placed on
type Market string

const (
	MarketOver      Market = "over"
	MarketUnder     Market = "under"
	MarketSpread    Market = "spread"
	MarketMoneyline Market = "moneyline"
)

// IsTotal checks whether the market is an over/under total
func (m Market) IsTotal() bool {
	return m == MarketOver || m == MarketUnder
}

// Outcome represents the settled result of a prediction
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomePush Outcome = "push"
)

// IsWin checks if the prediction settled as a win
func (o Outcome) IsWin() bool {
	return o == OutcomeWin
}

// IsLoss checks if the prediction settled as a loss
func (o Outcome) IsLoss() bool {
	return o == OutcomeLoss
}

// Tier is the ordered quality classification derived from the composite
// score. S is highest; D exists for lower-confidence record-keeping and is
// never promotion-eligible.
type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// Rank returns the ordering of a tier (higher is better, 0 for unknown)
func (t Tier) Rank() int {
	switch t {
	case TierS:
		return 5
	case TierA:
		return 4
	case TierB:
		return 3
	case TierC:
		return 2
	case TierD:
		return 1
	}
	return 0
}

// AtLeast checks whether this tier ranks at or above another tier
func (t Tier) AtLeast(other Tier) bool {
	return t.Rank() >= other.Rank()
}

// Promotable checks whether the tier qualifies for promotion (S or A)
func (t Tier) Promotable() bool {
	return t == TierS || t == TierA
}

// Leg is one component bet inside a multi-leg ticket, structurally a
// single-bet prop without ticket-level fields.
type Leg struct {
	Player        string                  `json:"player,omitempty"`
	Team          string                  `json:"team,omitempty"`
	Opponent      string                  `json:"opponent,omitempty"`
	Sport         Sport                   `json:"sport" validate:"omitempty,oneof=NBA NFL MLB NHL SOCCER"`
	StatCategory  string                  `json:"stat_category,omitempty"`
	Market        Market                  `json:"market" validate:"omitempty,oneof=over under spread moneyline"`
	Position      string                  `json:"position,omitempty"`
	Line          float64                 `json:"line"`
	PredictedLine *float64                `json:"predicted_line,omitempty"`
	Odds          int                     `json:"odds"`
	ActualResult  *float64                `json:"actual_result,omitempty"`
	Outcome       *Outcome                `json:"outcome,omitempty"`
	Analysis      *AnalysisQualityContext `json:"analysis,omitempty"`
	Context       *PropContext            `json:"context,omitempty"`
}

// Prop is the unit of work: a single wagering proposition, or a multi-leg
// ticket whose legs are graded independently.
type Prop struct {
	ID            string                  `json:"id" validate:"required"`
	Sport         Sport                   `json:"sport" validate:"omitempty,oneof=NBA NFL MLB NHL SOCCER"`
	BetType       BetType                 `json:"bet_type" validate:"omitempty,oneof=single parlay teaser roundrobin sgp"`
	Player        string                  `json:"player,omitempty"`
	Team          string                  `json:"team,omitempty"`
	Opponent      string                  `json:"opponent,omitempty"`
	StatCategory  string                  `json:"stat_category,omitempty"`
	Market        Market                  `json:"market" validate:"omitempty,oneof=over under spread moneyline"`
	Position      string                  `json:"position,omitempty"`
	Line          float64                 `json:"line"`
	PredictedLine *float64                `json:"predicted_line,omitempty"`
	Odds          int                     `json:"odds"` // American odds, 0 when unknown
	Legs          []Leg                   `json:"legs,omitempty" validate:"omitempty,min=2,dive"`
	ActualResult  *float64                `json:"actual_result,omitempty"`
	Outcome       *Outcome                `json:"outcome,omitempty"`
	PredictedAt   time.Time               `json:"predicted_at,omitempty"`
	UpdatedAt     time.Time               `json:"updated_at,omitempty"`
	GameTime      time.Time               `json:"game_time,omitempty"`
	Analysis      *AnalysisQualityContext `json:"analysis,omitempty"`
	Context       *PropContext            `json:"context,omitempty"`
}

// IsWin checks the settled outcome, treating unsettled props as non-wins
func (p *Prop) IsWin() bool {
	return p.Outcome != nil && p.Outcome.IsWin()
}

// GradedProp is a Prop plus every field the pipeline computes. All score
// fields are always populated; components that fell back to a neutral
// default are listed in UsedDefaults.
type GradedProp struct {
	Prop

	TrendScore         float64 `json:"trend_score"`
	MatchupScore       float64 `json:"matchup_score"`
	ExpectedValue      float64 `json:"expected_value"`
	ConfidenceScore    float64 `json:"confidence_score"`
	LineValueScore     float64 `json:"line_value_score"`
	RoleStabilityScore float64 `json:"role_stability_score"`
	EdgeScore          int     `json:"edge_score"`

	MarginAdjustment float64 `json:"margin_adjustment"`
	ContextBonus     float64 `json:"context_bonus"`
	SportBonus       float64 `json:"sport_bonus"`
	QualityPenalty   float64 `json:"quality_penalty"`
	SportPenalty     float64 `json:"sport_penalty"`
	TimePenalty      float64 `json:"time_penalty"`
	TotalBonus       float64 `json:"total_bonus"`
	TotalPenalties   float64 `json:"total_penalties"`

	RawCompositeScore float64 `json:"raw_composite_score"`
	VolatilityFactor  float64 `json:"volatility_factor"`
	CompositeScore    float64 `json:"composite_score"`
	Tier              Tier    `json:"tier"`

	ScoringVersion string   `json:"scoring_version"`
	UsedDefaults   []string `json:"used_defaults,omitempty"`

	// Multi-leg tickets only
	LegGrades   []GradedProp `json:"leg_grades,omitempty"`
	TicketScore *float64     `json:"ticket_score,omitempty"`
}

// PromotionEligible reports whether the grade clears the promotion bar.
// Single bets qualify on tier alone; a ticket additionally requires
// every leg to qualify, so one weak leg sinks the whole ticket.
func (g *GradedProp) PromotionEligible() bool {
	if !g.Tier.Promotable() {
		return false
	}
	for i := range g.LegGrades {
		if !g.LegGrades[i].Tier.Promotable() {
			return false
		}
	}
	return true
}

// BatchAverages holds the aggregate means for a batch run
type BatchAverages struct {
	Composite float64 `json:"composite"`
}

// ItemFailure reports a single prop that could not be graded in a batch
type ItemFailure struct {
	Index  int    `json:"index"`
	PropID string `json:"prop_id"`
	Err    string `json:"error"`
}

// BatchResult summarizes one batch run. It is used for cross-batch
// consistency verification and is never persisted as authoritative state.
type BatchResult struct {
	RunID            string        `json:"run_id"`
	Total            int           `json:"total"`
	Graded           int           `json:"graded"`
	Failed           int           `json:"failed"`
	Averages         BatchAverages `json:"averages"`
	TierDistribution map[Tier]int  `json:"tier_distribution"`
	Failures         []ItemFailure `json:"failures,omitempty"`
}
