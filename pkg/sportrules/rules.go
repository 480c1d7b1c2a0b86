// Package sportrules holds the static per-sport rule tables: core
// statistical categories, position-to-stat synergy maps, and reference
// game totals. Pure data with lookup helpers; edge scoring and the
// volatility model consume it.
package sportrules

import (
	"strings"

	"github.com/oddsmith/propscore/pkg/models"
)

// coreStats lists the statistical categories considered core markets for
// each sport. Props outside the core list are fringe markets and give up
// an edge point.
var coreStats = map[models.Sport][]string{
	models.SportNBA: {"points", "rebounds", "assists", "threes", "pra", "steals", "blocks"},
	models.SportNFL: {"passing_yards", "rushing_yards", "receiving_yards", "receptions", "touchdowns", "completions"},
	models.SportMLB: {"hits", "home_runs", "rbis", "total_bases", "strikeouts", "runs"},
	models.SportNHL: {"goals", "assists", "points", "shots_on_goal", "saves"},
}

// synergy maps positions to the stat categories they naturally produce.
// A prop aligned with its player's positional strengths earns an edge
// point; nothing here is exhaustive, only the pairings with a real
// statistical basis.
var synergy = map[models.Sport]map[string][]string{
	models.SportNBA: {
		"PG": {"assists", "points", "threes"},
		"SG": {"points", "threes"},
		"SF": {"points", "rebounds"},
		"PF": {"rebounds", "points", "blocks"},
		"C":  {"rebounds", "blocks", "points"},
	},
	models.SportNFL: {
		"QB": {"passing_yards", "touchdowns", "completions"},
		"RB": {"rushing_yards", "receptions", "touchdowns"},
		"WR": {"receiving_yards", "receptions", "touchdowns"},
		"TE": {"receiving_yards", "receptions"},
	},
	models.SportMLB: {
		"SP": {"strikeouts", "outs_recorded"},
		"RP": {"strikeouts"},
		"C":  {"hits", "rbis"},
		"1B": {"home_runs", "rbis", "total_bases"},
		"OF": {"hits", "home_runs", "total_bases", "runs"},
		"DH": {"home_runs", "rbis", "total_bases"},
	},
	models.SportNHL: {
		"C":  {"points", "goals", "assists"},
		"LW": {"goals", "shots_on_goal"},
		"RW": {"goals", "shots_on_goal"},
		"D":  {"assists", "shots_on_goal"},
		"G":  {"saves"},
	},
}

// referenceTotals are typical posted game totals per sport, used to judge
// whether an over/under sits in a low-total (higher variance) environment.
var referenceTotals = map[models.Sport]float64{
	models.SportNBA:    225.0,
	models.SportNFL:    45.0,
	models.SportMLB:    8.5,
	models.SportNHL:    6.0,
	models.SportSoccer: 2.5,
}

// CoreStats returns the core stat categories for a sport, nil when the
// sport has no rule table.
func CoreStats(sport models.Sport) []string {
	return coreStats[sport]
}

// IsCoreStat checks whether a stat category is a core market for the
// sport. Matching is case-insensitive.
func IsCoreStat(sport models.Sport, stat string) bool {
	return contains(coreStats[sport], normalize(stat))
}

// SynergyStats returns the stat categories synergistic with a position,
// nil when the sport or position has no mapping.
func SynergyStats(sport models.Sport, position string) []string {
	bySport, ok := synergy[sport]
	if !ok {
		return nil
	}
	return bySport[strings.ToUpper(strings.TrimSpace(position))]
}

// HasSynergy checks whether a position/stat pairing is synergistic for
// the sport.
func HasSynergy(sport models.Sport, position, stat string) bool {
	return contains(SynergyStats(sport, position), normalize(stat))
}

// ReferenceTotal returns the typical posted total for a sport and whether
// one is known.
func ReferenceTotal(sport models.Sport) (float64, bool) {
	total, ok := referenceTotals[sport]
	return total, ok
}

func normalize(stat string) string {
	return strings.ToLower(strings.TrimSpace(stat))
}

// contains checks if a string slice contains a value
func contains(slice []string, value string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
