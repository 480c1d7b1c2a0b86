package scorers

import (
	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/models"
	"github.com/oddsmith/propscore/pkg/oddsmath"
	"github.com/oddsmith/propscore/pkg/sportrules"
)

// Edge check names reported in EdgeResult.Passed.
const (
	EdgeCheckOddsBand     = "odds_band"
	EdgeCheckCoreStat     = "core_stat"
	EdgeCheckMatchupRank  = "matchup_rank"
	EdgeCheckSynergy      = "synergy"
	EdgeCheckCleanContext = "clean_context"
)

// EdgeResult is the coarse edge count plus the names of the checks
// that passed, for audit output.
type EdgeResult struct {
	Score  int      `json:"score"`
	Passed []string `json:"passed,omitempty"`
}

// EdgeScorer counts the binary quality checks a prop satisfies. Unlike
// the graded sub-scores there is no neutral fallback: a check with
// missing inputs simply does not earn its point.
type EdgeScorer struct{}

// NewEdgeScorer creates a new edge scorer
func NewEdgeScorer() *EdgeScorer {
	return &EdgeScorer{}
}

// Calculate counts how many of the five checks pass: odds inside the
// sweet-spot band, a core stat for the sport, a permissive defensive
// matchup, position/stat synergy, and no negative analysis flag.
func (es *EdgeScorer) Calculate(prop *models.Prop, params config.EdgeParams) EdgeResult {
	result := EdgeResult{}

	if oddsmath.InBand(prop.Odds, params.OddsBandLow, params.OddsBandHigh) {
		result.pass(EdgeCheckOddsBand)
	}

	if sportrules.IsCoreStat(prop.Sport, prop.StatCategory) {
		result.pass(EdgeCheckCoreStat)
	}

	hist := prop.Context.HistoricalOrNil()
	if hist != nil && hist.DvPRank != nil && *hist.DvPRank >= 1 && *hist.DvPRank <= params.MaxDvPRank {
		result.pass(EdgeCheckMatchupRank)
	}

	if sportrules.HasSynergy(prop.Sport, prop.Position, prop.StatCategory) {
		result.pass(EdgeCheckSynergy)
	}

	if prop.Analysis == nil || !prop.Analysis.NegativeFlag {
		result.pass(EdgeCheckCleanContext)
	}

	return result
}

func (er *EdgeResult) pass(check string) {
	er.Score++
	er.Passed = append(er.Passed, check)
}
