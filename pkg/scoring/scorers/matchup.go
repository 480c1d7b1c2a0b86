package scorers

import "github.com/oddsmith/propscore/pkg/models"

// Matchup score breakpoints over the defense-vs-position rank, where
// rank 1 is the most permissive defense in the league.
const (
	matchupEliteRank   = 5
	matchupStrongRank  = 10
	matchupAverageRank = 20
	matchupToughRank   = 25
	matchupNeutral     = 3.0
)

// MatchupScorer grades how exploitable the opposing defense is for the
// prop's stat category.
type MatchupScorer struct{}

// NewMatchupScorer creates a new matchup scorer
func NewMatchupScorer() *MatchupScorer {
	return &MatchupScorer{}
}

// Calculate returns the matchup score for a prop. An unknown or
// senseless rank scores neutral, not the floor: no matchup data is
// not the same as a hostile matchup.
func (ms *MatchupScorer) Calculate(prop *models.Prop) Result {
	hist := prop.Context.HistoricalOrNil()
	if hist == nil || hist.DvPRank == nil || *hist.DvPRank < 1 {
		return defaulted(matchupNeutral)
	}

	rank := *hist.DvPRank
	switch {
	case rank <= matchupEliteRank:
		return scored(5)
	case rank <= matchupStrongRank:
		return scored(4)
	case rank <= matchupAverageRank:
		return scored(3)
	case rank <= matchupToughRank:
		return scored(2)
	default:
		return scored(1)
	}
}
