package scoring

import (
	"fmt"
	"math"

	"github.com/oddsmith/propscore/pkg/config"
	"github.com/oddsmith/propscore/pkg/models"
)

// Breakdown explains a grade: each component's signed contribution to
// the raw composite, and its share of the total absolute contribution.
// Shares are percentages that sum to 100 whenever any component is
// non-zero.
type Breakdown struct {
	Components map[string]float64 `json:"components"`
	Percent    map[string]float64 `json:"percent"`
}

// ApplyScoringWithBreakdown grades a prop with the full strategy and
// explains where the score came from. For single props the breakdown
// covers the weighted sub-scores plus the margin, bonus and penalty
// stages; for tickets it covers the per-leg composites.
func (e *Engine) ApplyScoringWithBreakdown(prop *models.Prop, snapshot *config.Snapshot) (*models.GradedProp, *Breakdown) {
	graded := e.grade(prop, snapshot, VersionFull, nil)
	if graded == nil {
		return nil, nil
	}

	if snapshot == nil || snapshot.Scoring == nil {
		snapshot = config.DefaultSnapshot()
	}

	if len(graded.LegGrades) > 0 {
		return graded, legBreakdown(graded)
	}

	weights := effectiveWeights(snapshot.Scoring, prop.Sport, nil)
	components := map[string]float64{
		models.ComponentTrend:         graded.TrendScore * weightOr(weights, models.ComponentTrend),
		models.ComponentMatchup:       graded.MatchupScore * weightOr(weights, models.ComponentMatchup),
		models.ComponentLineValue:     graded.LineValueScore * weightOr(weights, models.ComponentLineValue),
		models.ComponentRoleStability: graded.RoleStabilityScore * weightOr(weights, models.ComponentRoleStability),
		models.ComponentConfidence:    graded.ConfidenceScore * weightOr(weights, models.ComponentConfidence),
		models.ComponentMargin:        graded.MarginAdjustment,
		models.ComponentBonus:         graded.TotalBonus,
		models.ComponentPenalties:     graded.TotalPenalties,
	}

	return graded, newBreakdown(components)
}

func legBreakdown(graded *models.GradedProp) *Breakdown {
	components := make(map[string]float64, len(graded.LegGrades))
	for i := range graded.LegGrades {
		components[fmt.Sprintf("leg_%d", i+1)] = graded.LegGrades[i].CompositeScore
	}
	return newBreakdown(components)
}

func newBreakdown(components map[string]float64) *Breakdown {
	breakdown := &Breakdown{
		Components: components,
		Percent:    make(map[string]float64, len(components)),
	}

	totalAbs := 0.0
	for _, c := range components {
		totalAbs += math.Abs(c)
	}
	if totalAbs == 0 {
		for name := range components {
			breakdown.Percent[name] = 0
		}
		return breakdown
	}

	for name, c := range components {
		breakdown.Percent[name] = round2(math.Abs(c) / totalAbs * 100)
	}

	return breakdown
}
