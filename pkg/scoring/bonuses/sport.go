package bonuses

import (
	"math"

	"github.com/oddsmith/propscore/pkg/models"
)

// Sport extension weights. These sit on top of the base layers and
// stay small: situational color, not the main signal.
const (
	nflDivisionWin        = 0.5
	nflPlayoffWin         = 0.5
	nbaOpponentBackToBack = 0.5
	nbaRoadBackToBackWin  = 0.75
	mlbParkFactorWin      = 0.5
	mlbDayAfterNightWin   = 0.25
	nhlBackupGoalieWin    = 0.5
	nhlEliteGoalieBeaten  = 0.75

	nbaIgnoredBackToBack = -0.5
	nflIgnoredDivision   = -0.5
	mlbIgnoredPark       = -0.5
	nhlIgnoredGoalie     = -0.75
)

// parkFactorBand is how far a park factor must sit from neutral 1.0
// before the venue counts as meaningfully skewed.
const parkFactorBand = 0.05

// eliteGoalieTier marks the top goaltending bracket.
const eliteGoalieTier = 1

// SportCalculator applies the per-sport extensions of the bonus and
// penalty layers. Unknown sports get no extensions in either
// direction.
type SportCalculator struct{}

// NewSportCalculator creates a new sport extension calculator
func NewSportCalculator() *SportCalculator {
	return &SportCalculator{}
}

// Bonus returns the sport-specific bonus for a winning prop.
func (sc *SportCalculator) Bonus(prop *models.Prop) Adjustment {
	adj := Adjustment{}
	if !prop.IsWin() {
		return adj
	}

	situation := prop.Context.SituationOrNil()
	if situation == nil {
		return adj
	}

	switch prop.Sport {
	case models.SportNFL:
		if situation.DivisionGame {
			adj.add(nflDivisionWin, "nfl_division_win")
		}
		if situation.PlayoffImplications {
			adj.add(nflPlayoffWin, "nfl_playoff_win")
		}
	case models.SportNBA:
		if situation.OpponentBackToBack {
			adj.add(nbaOpponentBackToBack, "nba_opponent_back_to_back")
		}
		if situation.BackToBack && situation.RoadGame {
			adj.add(nbaRoadBackToBackWin, "nba_road_back_to_back_win")
		}
	case models.SportMLB:
		if situation.ParkFactor != nil && math.Abs(*situation.ParkFactor-1.0) >= parkFactorBand {
			adj.add(mlbParkFactorWin, "mlb_park_factor_win")
		}
		if situation.DayAfterNight {
			adj.add(mlbDayAfterNightWin, "mlb_day_after_night_win")
		}
	case models.SportNHL:
		if situation.BackupGoalie {
			adj.add(nhlBackupGoalieWin, "nhl_backup_goalie_win")
		}
		if situation.GoalieTier == eliteGoalieTier {
			adj.add(nhlEliteGoalieBeaten, "nhl_elite_goalie_beaten")
		}
	}

	return adj
}

// Penalty returns the sport-specific penalty for a prop. The ignored-*
// flags come from analysis review and already assert the factor was
// present, so they are not re-checked against the situation record.
func (sc *SportCalculator) Penalty(prop *models.Prop) Adjustment {
	adj := Adjustment{}

	analysis := prop.Analysis
	if analysis == nil {
		return adj
	}

	switch prop.Sport {
	case models.SportNBA:
		if analysis.IgnoredBackToBack {
			adj.add(nbaIgnoredBackToBack, "nba_ignored_back_to_back")
		}
	case models.SportNFL:
		if analysis.IgnoredDivisionGame {
			adj.add(nflIgnoredDivision, "nfl_ignored_division_game")
		}
	case models.SportMLB:
		if analysis.IgnoredParkFactor {
			adj.add(mlbIgnoredPark, "mlb_ignored_park_factor")
		}
	case models.SportNHL:
		if analysis.IgnoredGoalieTier {
			adj.add(nhlIgnoredGoalie, "nhl_ignored_goalie_tier")
		}
	}

	return adj
}
