package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddsmith/propscore/pkg/models"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate(), "the built-in configuration must always validate")

	assert.Equal(t, models.TierS, cfg.Tiers.Thresholds[0].Tier, "thresholds are ordered highest tier first")
	assert.Equal(t, 20.0, cfg.Tiers.Thresholds[0].Min)
	assert.Equal(t, models.TierC, cfg.Tiers.Fallback)
	assert.Equal(t, 5.0, cfg.Margin.MaxAdjustment)
	assert.Equal(t, -8.0, cfg.Penalty.Floor)
	assert.Equal(t, 1.0, cfg.Volatility.SportBase[models.SportNBA], "NBA is the volatility baseline")
}

func TestParseMergesOverDefaults(t *testing.T) {
	doc := []byte(`
tiers:
  thresholds:
    - {tier: S, min: 22}
    - {tier: A, min: 16}
    - {tier: B, min: 11}
margin:
  max_adjustment: 6.0
volatility:
  sport_base:
    NBA: 1.05
`)
	cfg, err := Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, 22.0, cfg.Tiers.Thresholds[0].Min, "document thresholds replace the default table")
	assert.Equal(t, 6.0, cfg.Margin.MaxAdjustment, "document scalars override defaults")
	assert.Equal(t, 7.0, cfg.Margin.LinearThreshold, "untouched scalars keep their defaults")
	assert.Equal(t, 1.05, cfg.Volatility.SportBase[models.SportNBA], "document map entries override per key")
	assert.Equal(t, 1.25, cfg.Volatility.SportBase[models.SportNHL], "unlisted map entries keep their defaults")
	assert.Equal(t, 1.30, cfg.Volatility.BetType[models.BetParlay], "untouched tables keep their defaults")
}

func TestParseRejectsBadDocuments(t *testing.T) {
	_, err := Parse([]byte("tiers:\n  thresholds:\n    - {tier: A, min: 15}\n    - {tier: S, min: 20}\n"))
	assert.Error(t, err, "ascending thresholds must be rejected")

	_, err = Parse([]byte("tiers:\n  thresholds:\n    - {tier: S, min: 20}\n    - {tier: A, min: 20}\n"))
	assert.Error(t, err, "equal minimums must be rejected")

	_, err = Parse([]byte("margin:\n  max_adjustment: -1\n"))
	assert.Error(t, err, "non-positive margin bound must be rejected")

	_, err = Parse([]byte("penalty:\n  floor: 3.0\n"))
	assert.Error(t, err, "a positive penalty floor must be rejected")

	_, err = Parse([]byte("edge:\n  odds_band_low: 200\n  odds_band_high: -200\n"))
	assert.Error(t, err, "an empty odds band must be rejected")

	_, err = Parse([]byte("weights:\n  defaults:\n    trend: -0.5\n"))
	assert.Error(t, err, "negative weights must be rejected")

	_, err = Parse([]byte(":\tnot yaml"))
	assert.Error(t, err, "malformed YAML must be rejected")
}

func TestWeightsForMergesSportOverrides(t *testing.T) {
	cfg := Default()
	cfg.Weights.SportOverrides = map[models.Sport]map[string]float64{
		models.SportNFL: {models.ComponentTrend: 0.8, models.ComponentMatchup: 1.2},
	}

	nfl := cfg.WeightsFor(models.SportNFL)
	assert.Equal(t, 0.8, nfl[models.ComponentTrend], "sport override wins")
	assert.Equal(t, 1.2, nfl[models.ComponentMatchup])
	assert.Equal(t, 1.0, nfl[models.ComponentConfidence], "unoverridden components keep defaults")

	nba := cfg.WeightsFor(models.SportNBA)
	assert.Equal(t, 1.0, nba[models.ComponentTrend], "other sports are unaffected")

	nfl[models.ComponentTrend] = 99
	assert.Equal(t, 0.8, cfg.WeightsFor(models.SportNFL)[models.ComponentTrend], "WeightsFor returns a copy")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bonus:\n  max_bonus: 4.0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Bonus.MaxBonus)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "a missing file is a load error")
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scoring.cache")

	cfg := Default()
	cfg.Bonus.MaxBonus = 4.5
	require.NoError(t, SaveCache(path, cfg, "store"))

	loaded, savedAt, err := LoadCache(path)
	require.NoError(t, err)
	assert.Equal(t, 4.5, loaded.Bonus.MaxBonus, "cache preserves the stored document")
	assert.WithinDuration(t, time.Now().UTC(), savedAt, 5*time.Second)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	_, _, err = LoadCache(path)
	assert.Error(t, err, "a corrupt cache must be rejected")
}

func TestEnvRefreshInterval(t *testing.T) {
	e := &Env{RefreshSpec: "@every 90s"}
	assert.Equal(t, 90*time.Second, e.RefreshInterval())

	e = &Env{RefreshSpec: "0 */5 * * * *"}
	assert.Equal(t, 5*time.Minute, e.RefreshInterval(), "non-@every specs fall back to the default")
}

func TestSnapshotSource(t *testing.T) {
	snap := DefaultSnapshot()
	assert.Equal(t, "default", snap.Source)
	assert.NotNil(t, snap.Scoring)
	assert.WithinDuration(t, time.Now().UTC(), snap.LoadedAt, 5*time.Second)
}
