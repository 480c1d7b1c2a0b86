// Package config defines the scoring configuration document, its loading
// and validation, and the manager that keeps an immutable snapshot of it
// refreshed from an external store.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/oddsmith/propscore/pkg/models"
)

var validate = validator.New()

// TierThreshold is one entry of the ordered tier table
type TierThreshold struct {
	Tier models.Tier `yaml:"tier" validate:"required,oneof=S A B C D"`
	Min  float64     `yaml:"min"`
}

// TierParams holds the classifier table: thresholds evaluated highest
// first, and the tier used when no threshold matches.
type TierParams struct {
	Thresholds []TierThreshold `yaml:"thresholds" validate:"omitempty,dive"`
	Fallback   models.Tier     `yaml:"fallback" default:"C" validate:"omitempty,oneof=S A B C D"`
}

// WeightParams holds the sub-score weights: defaults plus optional
// per-sport overrides merged on top.
type WeightParams struct {
	Defaults       map[string]float64                  `yaml:"defaults"`
	SportOverrides map[models.Sport]map[string]float64 `yaml:"sport_overrides"`
}

// MarginParams controls the margin adjustment curve
type MarginParams struct {
	MaxAdjustment   float64 `yaml:"max_adjustment" default:"5.0" validate:"gt=0"`
	LinearThreshold float64 `yaml:"linear_threshold" default:"7.0" validate:"gt=0"`
	SigmoidFactor   float64 `yaml:"sigmoid_factor" default:"0.5" validate:"gt=0"`
	LinearShare     float64 `yaml:"linear_share" default:"0.6" validate:"gt=0,lte=1"`
}

// BonusParams caps the contextual bonus layer
type BonusParams struct {
	MaxBonus float64 `yaml:"max_bonus" default:"5.0" validate:"gte=0"`
}

// PenaltyParams floors the penalty layer and sets the staleness windows
type PenaltyParams struct {
	Floor            float64 `yaml:"floor" default:"-8.0" validate:"lt=0"`
	StaleHours       float64 `yaml:"stale_hours" default:"24" validate:"gt=0"`
	VeryStaleHours   float64 `yaml:"very_stale_hours" default:"48" validate:"gt=0"`
	StalePenalty     float64 `yaml:"stale_penalty" default:"0.75" validate:"gte=0"`
	VeryStalePenalty float64 `yaml:"very_stale_penalty" default:"1.5" validate:"gte=0"`
}

// EdgeParams controls the coarse 0-5 edge score checks
type EdgeParams struct {
	OddsBandLow  int `yaml:"odds_band_low" default:"-130"`
	OddsBandHigh int `yaml:"odds_band_high" default:"120"`
	MaxDvPRank   int `yaml:"max_dvp_rank" default:"10" validate:"gt=0"`
}

// VolatilityParams holds the multiplicative volatility tables
type VolatilityParams struct {
	SportBase    map[models.Sport]float64   `yaml:"sport_base"`
	UnknownSport float64                    `yaml:"unknown_sport" default:"1.1" validate:"gt=0"`
	BetType      map[models.BetType]float64 `yaml:"bet_type"`
	Market       map[models.Market]float64  `yaml:"market"`
	MinFactor    float64                    `yaml:"min_factor" default:"0.5" validate:"gt=0"`
	MaxFactor    float64                    `yaml:"max_factor" default:"3.0" validate:"gt=0"`
}

// ScoringConfig is the full scoring parameter document. Loaded once at
// startup, refreshed by the Manager, and always handed to the pipeline as
// part of an immutable Snapshot.
type ScoringConfig struct {
	Tiers      TierParams       `yaml:"tiers"`
	Weights    WeightParams     `yaml:"weights"`
	Margin     MarginParams     `yaml:"margin"`
	Bonus      BonusParams      `yaml:"bonus"`
	Penalty    PenaltyParams    `yaml:"penalty"`
	Edge       EdgeParams       `yaml:"edge"`
	Volatility VolatilityParams `yaml:"volatility"`
}

// Default returns the built-in scoring configuration: promotion thresholds
// S>=20 / A>=15 / B>=10 with fallback C, unit sub-score weights, and the
// volatility tables for the supported sports.
func Default() *ScoringConfig {
	return &ScoringConfig{
		Tiers: TierParams{
			Thresholds: []TierThreshold{
				{Tier: models.TierS, Min: 20},
				{Tier: models.TierA, Min: 15},
				{Tier: models.TierB, Min: 10},
			},
			Fallback: models.TierC,
		},
		Weights: WeightParams{
			Defaults: map[string]float64{
				models.ComponentTrend:         1.0,
				models.ComponentMatchup:       1.0,
				models.ComponentConfidence:    1.0,
				models.ComponentLineValue:     1.0,
				models.ComponentRoleStability: 1.0,
			},
		},
		Margin: MarginParams{
			MaxAdjustment:   5.0,
			LinearThreshold: 7.0,
			SigmoidFactor:   0.5,
			LinearShare:     0.6,
		},
		Bonus: BonusParams{MaxBonus: 5.0},
		Penalty: PenaltyParams{
			Floor:            -8.0,
			StaleHours:       24,
			VeryStaleHours:   48,
			StalePenalty:     0.75,
			VeryStalePenalty: 1.5,
		},
		Edge: EdgeParams{
			OddsBandLow:  -130,
			OddsBandHigh: 120,
			MaxDvPRank:   10,
		},
		Volatility: VolatilityParams{
			SportBase: map[models.Sport]float64{
				models.SportNBA:    1.00,
				models.SportNFL:    1.15,
				models.SportMLB:    1.20,
				models.SportNHL:    1.25,
				models.SportSoccer: 1.30,
			},
			UnknownSport: 1.10,
			BetType: map[models.BetType]float64{
				models.BetSingle:     1.00,
				models.BetTeaser:     1.15,
				models.BetSGP:        1.25,
				models.BetParlay:     1.30,
				models.BetRoundRobin: 1.35,
			},
			Market: map[models.Market]float64{
				models.MarketMoneyline: 0.90,
				models.MarketSpread:    1.00,
				models.MarketOver:      1.05,
				models.MarketUnder:     1.05,
			},
			MinFactor: 0.5,
			MaxFactor: 3.0,
		},
	}
}

// Parse builds a ScoringConfig from a YAML document: unmarshal over the
// defaults, hydrate any remaining zero fields, then validate.
func Parse(raw []byte) (*ScoringConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse scoring config: %w", err)
	}

	// Set default values for fields the document zeroed out entirely
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	cfg.fillTables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate scoring config: %w", err)
	}

	return cfg, nil
}

// Load reads and parses a YAML scoring configuration file
func Load(path string) (*ScoringConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring config: %w", err)
	}
	return Parse(raw)
}

// fillTables substitutes the default lookup tables for any the document
// left out; partial tables are kept as-is and fall back per-key at read
// time.
func (c *ScoringConfig) fillTables() {
	def := Default()
	if len(c.Tiers.Thresholds) == 0 {
		c.Tiers.Thresholds = def.Tiers.Thresholds
	}
	if len(c.Weights.Defaults) == 0 {
		c.Weights.Defaults = def.Weights.Defaults
	}
	if len(c.Volatility.SportBase) == 0 {
		c.Volatility.SportBase = def.Volatility.SportBase
	}
	if len(c.Volatility.BetType) == 0 {
		c.Volatility.BetType = def.Volatility.BetType
	}
	if len(c.Volatility.Market) == 0 {
		c.Volatility.Market = def.Volatility.Market
	}
}

// Validate checks tag-level constraints plus the cross-field invariants
// the classifier depends on.
func (c *ScoringConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	// Threshold table must be ordered highest tier first with strictly
	// descending minimums, or the highest-first walk misclassifies.
	for i := 1; i < len(c.Tiers.Thresholds); i++ {
		prev, cur := c.Tiers.Thresholds[i-1], c.Tiers.Thresholds[i]
		if cur.Min >= prev.Min {
			return fmt.Errorf("tier thresholds must be strictly descending: %s(%.1f) then %s(%.1f)",
				prev.Tier, prev.Min, cur.Tier, cur.Min)
		}
		if cur.Tier.Rank() >= prev.Tier.Rank() {
			return fmt.Errorf("tier thresholds must be ordered highest tier first: %s after %s", cur.Tier, prev.Tier)
		}
	}

	if c.Volatility.MaxFactor <= c.Volatility.MinFactor {
		return fmt.Errorf("volatility max_factor (%.2f) must exceed min_factor (%.2f)",
			c.Volatility.MaxFactor, c.Volatility.MinFactor)
	}
	if c.Penalty.VeryStaleHours <= c.Penalty.StaleHours {
		return fmt.Errorf("very_stale_hours (%.0f) must exceed stale_hours (%.0f)",
			c.Penalty.VeryStaleHours, c.Penalty.StaleHours)
	}
	if c.Edge.OddsBandHigh <= c.Edge.OddsBandLow {
		return fmt.Errorf("edge odds band is empty: low %d, high %d", c.Edge.OddsBandLow, c.Edge.OddsBandHigh)
	}

	for name, w := range c.Weights.Defaults {
		if w < 0 {
			return fmt.Errorf("weight for %q must be non-negative, got %.2f", name, w)
		}
	}

	return nil
}

// WeightsFor merges the default weights with the sport's overrides
func (c *ScoringConfig) WeightsFor(sport models.Sport) map[string]float64 {
	merged := make(map[string]float64, len(c.Weights.Defaults))
	for name, w := range c.Weights.Defaults {
		merged[name] = w
	}
	for name, w := range c.Weights.SportOverrides[sport] {
		merged[name] = w
	}
	return merged
}

// Snapshot is one immutable, fully-hydrated configuration the pipeline
// scores against. The Manager replaces the whole value on refresh; readers
// never observe a partial update and must not mutate it.
type Snapshot struct {
	Scoring  *ScoringConfig
	LoadedAt time.Time
	Source   string // "store", "file", "cache" or "default"
}

// NewSnapshot wraps a scoring config in a snapshot
func NewSnapshot(cfg *ScoringConfig, source string) *Snapshot {
	return &Snapshot{Scoring: cfg, LoadedAt: time.Now().UTC(), Source: source}
}

// DefaultSnapshot returns a snapshot of the built-in configuration, for
// callers that score without a Manager.
func DefaultSnapshot() *Snapshot {
	return NewSnapshot(Default(), "default")
}
