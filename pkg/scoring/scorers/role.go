package scorers

import (
	"math"

	"github.com/oddsmith/propscore/pkg/models"
)

// Role stability breakpoints over the deviation of the recent usage
// share from the season-long share.
const (
	roleTightBand  = 0.05
	roleNormalBand = 0.10
	roleLooseBand  = 0.20
	roleShakyBand  = 0.30
	roleNeutral    = 3.0
	roleChangedCap = 2.0
)

// RoleScorer grades how stable the player's usage is. A player whose
// recent minutes or snap share drifts far from their season norm is a
// riskier prop regardless of the matchup.
type RoleScorer struct{}

// NewRoleScorer creates a new role stability scorer
func NewRoleScorer() *RoleScorer {
	return &RoleScorer{}
}

// Calculate returns the role stability score. An explicit role change
// caps the score even when the usage ratio still looks steady, because
// the season share no longer describes the player's current job.
func (rs *RoleScorer) Calculate(prop *models.Prop) Result {
	role := prop.Context.RoleOrNil()
	if role == nil || role.RecentShare == nil || role.SeasonShare == nil || *role.SeasonShare <= 0 {
		return defaulted(roleNeutral)
	}

	deviation := math.Abs(*role.RecentShare / *role.SeasonShare - 1.0)

	var score float64
	switch {
	case deviation <= roleTightBand:
		score = 5
	case deviation <= roleNormalBand:
		score = 4
	case deviation <= roleLooseBand:
		score = 3
	case deviation <= roleShakyBand:
		score = 2
	default:
		score = 1
	}

	if role.RoleChanged && score > roleChangedCap {
		score = roleChangedCap
	}

	return scored(score)
}
