// Package scoring orchestrates the grading pipeline: sub-scores, edge
// count, margin adjustment, bonus and penalty layers, volatility
// compression, and tier classification. The pipeline is total by
// construction: every calculator substitutes neutral defaults for
// missing data and reports the substitution, so a prop that enters the
// engine always leaves with a grade.
package scoring

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/metrics"
	"github.com/oddsmith/propscore/pkg/models"
	"github.com/oddsmith/propscore/pkg/scoring/bonuses"
	"github.com/oddsmith/propscore/pkg/scoring/scorers"
	"github.com/oddsmith/propscore/pkg/scoring/tiers"
	"github.com/oddsmith/propscore/pkg/scoring/volatility"
)

// Scoring strategy versions. Simple stops at the five sub-scores; full
// adds the margin, bonus/penalty and volatility stages. Each graded
// prop records the version that produced it so historical grades stay
// comparable after the strategy evolves.
const (
	VersionSimple = "simple"
	VersionFull   = "full"
)

// Engine wires the calculators together. It is stateless apart from
// its logger and metrics recorder; all tunable parameters arrive with
// the config snapshot on every call.
type Engine struct {
	log     zerolog.Logger
	metrics *metrics.Recorder

	trend      *scorers.TrendScorer
	matchup    *scorers.MatchupScorer
	value      *scorers.ValueScorer
	confidence *scorers.ConfidenceScorer
	lineValue  *scorers.LineValueScorer
	role       *scorers.RoleScorer
	edge       *scorers.EdgeScorer
	margin     *scorers.MarginScorer

	contextBonus *bonuses.ContextCalculator
	quality      *bonuses.QualityCalculator
	sport        *bonuses.SportCalculator
	staleness    *bonuses.StalenessCalculator

	volatility *volatility.Model
	classifier *tiers.Classifier
}

// NewEngine creates a scoring engine. The recorder may be nil when
// metrics are not wanted.
func NewEngine(log zerolog.Logger, recorder *metrics.Recorder) *Engine {
	return &Engine{
		log:     log.With().Str("component", "scoring_engine").Logger(),
		metrics: recorder,

		trend:      scorers.NewTrendScorer(),
		matchup:    scorers.NewMatchupScorer(),
		value:      scorers.NewValueScorer(),
		confidence: scorers.NewConfidenceScorer(),
		lineValue:  scorers.NewLineValueScorer(),
		role:       scorers.NewRoleScorer(),
		edge:       scorers.NewEdgeScorer(),
		margin:     scorers.NewMarginScorer(),

		contextBonus: bonuses.NewContextCalculator(),
		quality:      bonuses.NewQualityCalculator(),
		sport:        bonuses.NewSportCalculator(),
		staleness:    bonuses.NewStalenessCalculator(),

		volatility: volatility.NewModel(),
		classifier: tiers.NewClassifier(),
	}
}

// ApplyScoringLogic grades a prop with the full strategy and the
// snapshot's configured weights. This is the entry point everything
// else specializes.
func (e *Engine) ApplyScoringLogic(prop *models.Prop, snapshot *config.Snapshot) *models.GradedProp {
	return e.grade(prop, snapshot, VersionFull, nil)
}

// ApplyScoringVersion grades a prop with an explicit strategy version.
// Unrecognized versions grade as full.
func (e *Engine) ApplyScoringVersion(prop *models.Prop, snapshot *config.Snapshot, version string) *models.GradedProp {
	if version != VersionSimple {
		version = VersionFull
	}
	return e.grade(prop, snapshot, version, nil)
}

// ApplyWeightedScoring grades a prop with caller-supplied weight
// overrides layered over the snapshot's per-sport weights. Components
// absent from both default to weight 1.0.
func (e *Engine) ApplyWeightedScoring(prop *models.Prop, snapshot *config.Snapshot, overrides map[string]float64) *models.GradedProp {
	return e.grade(prop, snapshot, VersionFull, overrides)
}

func (e *Engine) grade(prop *models.Prop, snapshot *config.Snapshot, version string, overrides map[string]float64) *models.GradedProp {
	if prop == nil {
		return nil
	}
	if snapshot == nil || snapshot.Scoring == nil {
		snapshot = config.DefaultSnapshot()
	}

	start := time.Now()

	var graded *models.GradedProp
	if prop.BetType.IsMultiLeg() && len(prop.Legs) > 0 {
		graded = e.gradeTicket(prop, snapshot, version, overrides)
	} else {
		graded = e.gradeSingle(prop, snapshot, version, overrides)
	}

	e.log.Debug().
		Str("prop_id", prop.ID).
		Str("version", version).
		Float64("composite", graded.CompositeScore).
		Str("tier", string(graded.Tier)).
		Int("legs", len(graded.LegGrades)).
		Msg("prop graded")

	e.metrics.PropScored(string(prop.Sport), string(graded.Tier), time.Since(start).Seconds(), version)

	return graded
}

// gradeSingle runs the per-prop pipeline. Stage order matters only at
// the end: volatility compresses the finished raw composite, and the
// tier reads the compressed score.
func (e *Engine) gradeSingle(prop *models.Prop, snapshot *config.Snapshot, version string, overrides map[string]float64) *models.GradedProp {
	cfg := snapshot.Scoring

	graded := &models.GradedProp{
		Prop:             *prop,
		ScoringVersion:   version,
		VolatilityFactor: 1.0,
	}

	trend := e.trend.Calculate(prop)
	matchup := e.matchup.Calculate(prop)
	value := e.value.Calculate(prop)
	lineValue := e.lineValue.Calculate(prop)
	role := e.role.Calculate(prop)
	confidence := e.confidence.Calculate(trend.Value, matchup.Value, value.Value)

	graded.TrendScore = trend.Value
	graded.MatchupScore = matchup.Value
	graded.ExpectedValue = value.Value
	graded.ConfidenceScore = confidence
	graded.LineValueScore = lineValue.Value
	graded.RoleStabilityScore = role.Value
	graded.EdgeScore = e.edge.Calculate(prop, cfg.Edge).Score

	trackDefault(graded, models.ComponentTrend, trend)
	trackDefault(graded, models.ComponentMatchup, matchup)
	trackDefault(graded, models.ComponentExpectedValue, value)
	trackDefault(graded, models.ComponentLineValue, lineValue)
	trackDefault(graded, models.ComponentRoleStability, role)
	if trend.UsedDefault || matchup.UsedDefault || value.UsedDefault {
		graded.UsedDefaults = append(graded.UsedDefaults, models.ComponentConfidence)
	}

	weights := effectiveWeights(cfg, prop.Sport, overrides)
	raw := trend.Value*weightOr(weights, models.ComponentTrend) +
		matchup.Value*weightOr(weights, models.ComponentMatchup) +
		lineValue.Value*weightOr(weights, models.ComponentLineValue) +
		role.Value*weightOr(weights, models.ComponentRoleStability) +
		confidence*weightOr(weights, models.ComponentConfidence)

	if version != VersionSimple {
		margin := e.margin.Calculate(prop, cfg.Margin)
		graded.MarginAdjustment = margin.Value
		trackDefault(graded, models.ComponentMargin, margin)

		contextBonus := e.contextBonus.Calculate(prop, cfg.Bonus)
		sportBonus := e.sport.Bonus(prop)
		quality := e.quality.Calculate(prop, cfg.Penalty)
		sportPenalty := e.sport.Penalty(prop)
		staleness := e.staleness.Calculate(prop, cfg.Penalty)

		graded.ContextBonus = contextBonus.Total
		graded.SportBonus = sportBonus.Total
		graded.QualityPenalty = quality.Total
		graded.SportPenalty = sportPenalty.Total
		graded.TimePenalty = staleness.Total
		graded.TotalBonus = contextBonus.Total + sportBonus.Total
		graded.TotalPenalties = quality.Total + sportPenalty.Total + staleness.Total

		raw += margin.Value + graded.TotalBonus + graded.TotalPenalties
	}

	graded.RawCompositeScore = round2(raw)

	composite := raw
	if version != VersionSimple {
		factor := e.volatility.Calculate(prop, cfg.Volatility)
		graded.VolatilityFactor = factor.Value
		composite = volatility.Apply(raw, factor.Value)
	}

	graded.CompositeScore = round2(composite)
	graded.Tier = e.classifier.Classify(graded.CompositeScore, cfg.Tiers)

	return graded
}

// effectiveWeights merges caller overrides over the sport's configured
// weights. The snapshot map is copied by WeightsFor, so layering the
// overrides never mutates shared config.
func effectiveWeights(cfg *config.ScoringConfig, sport models.Sport, overrides map[string]float64) map[string]float64 {
	weights := cfg.WeightsFor(sport)
	for component, w := range overrides {
		weights[component] = w
	}
	return weights
}

func weightOr(weights map[string]float64, component string) float64 {
	if w, ok := weights[component]; ok {
		return w
	}
	return 1.0
}

func trackDefault(graded *models.GradedProp, component string, result scorers.Result) {
	if result.UsedDefault {
		graded.UsedDefaults = append(graded.UsedDefaults, component)
	}
}

// round2 rounds to 2 decimal places
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
