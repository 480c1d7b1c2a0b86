package models

// Typed context records replace the free-form context/analysis bags the
// engine historically probed. Each checker declares exactly the fields it
// reads; a nil record means every flag in it is absent.

// WeatherContext describes game-time weather for outdoor venues
type WeatherContext struct {
	WindMPH       float64 `json:"wind_mph,omitempty"`
	TemperatureF  float64 `json:"temperature_f,omitempty"`
	Precipitation bool    `json:"precipitation,omitempty"`
	Outdoor       bool    `json:"outdoor,omitempty"`
}

// Adverse checks whether conditions were bad enough to matter for an
// outdoor game: strong wind, freezing temperatures, or precipitation.
func (w *WeatherContext) Adverse() bool {
	if w == nil || !w.Outdoor {
		return false
	}
	return w.WindMPH >= 15 || w.TemperatureF <= 25 || w.Precipitation
}

// InjuryContext describes injury circumstances around the prediction
type InjuryContext struct {
	KeyInjuriesOvercome bool `json:"key_injuries_overcome,omitempty"`
	PlayerQuestionable  bool `json:"player_questionable,omitempty"`
	OpponentKeyOut      bool `json:"opponent_key_out,omitempty"`
}

// GameSituationContext describes situational flags around the game
type GameSituationContext struct {
	RoadGame            bool     `json:"road_game,omitempty"`
	Underdog            bool     `json:"underdog,omitempty"`
	HighLeverage        bool     `json:"high_leverage,omitempty"`
	CounterTrend        bool     `json:"counter_trend,omitempty"`
	PlayoffImplications bool     `json:"playoff_implications,omitempty"`
	DivisionGame        bool     `json:"division_game,omitempty"`
	BackToBack          bool     `json:"back_to_back,omitempty"`
	OpponentBackToBack  bool     `json:"opponent_back_to_back,omitempty"`
	BackupGoalie        bool     `json:"backup_goalie,omitempty"`
	GoalieTier          int      `json:"goalie_tier,omitempty"` // 1 = elite, 3 = backup quality
	ParkFactor          *float64 `json:"park_factor,omitempty"` // >1 hitter-friendly, <1 pitcher-friendly
	DayAfterNight       bool     `json:"day_after_night,omitempty"`
	TotalLine           *float64 `json:"total_line,omitempty"`  // posted game total for O/U context
}

// RoleContext describes how stable the player's usage has been
type RoleContext struct {
	RecentShare *float64 `json:"recent_share,omitempty"` // minutes/snap/usage share, last 5
	SeasonShare *float64 `json:"season_share,omitempty"` // same share over the season
	RoleChanged bool     `json:"role_changed,omitempty"`
}

// HistoricalStats carries the player's recent production for the prop's
// stat category.
type HistoricalStats struct {
	RecentValues []float64 `json:"recent_values,omitempty"` // last-N stat samples
	L10HitRate   *float64  `json:"l10_hit_rate,omitempty"`  // share of last 10 that cleared the line
	DvPRank      *int      `json:"dvp_rank,omitempty"`      // defense-vs-position rank, 1 = most generous
}

// AnalysisQualityContext flags problems with the reasoning that produced
// the prediction. Set by reviewers or automated audits, consumed by the
// penalty calculator.
type AnalysisQualityContext struct {
	PoorReasoning         bool `json:"poor_reasoning,omitempty"`
	StatErrors            bool `json:"stat_errors,omitempty"`
	IgnoredKeyFactors     bool `json:"ignored_key_factors,omitempty"`
	LuckyWin              bool `json:"lucky_win,omitempty"`
	InconsistentReasoning bool `json:"inconsistent_reasoning,omitempty"`

	IgnoredBackToBack   bool `json:"ignored_back_to_back,omitempty"`
	IgnoredDivisionGame bool `json:"ignored_division_game,omitempty"`
	IgnoredParkFactor   bool `json:"ignored_park_factor,omitempty"`
	IgnoredGoalieTier   bool `json:"ignored_goalie_tier,omitempty"`

	NegativeFlag bool `json:"negative_flag,omitempty"` // any disqualifying context for edge scoring
}

// PropContext aggregates the optional capability records attached to a prop
type PropContext struct {
	Weather    *WeatherContext       `json:"weather,omitempty"`
	Injuries   *InjuryContext        `json:"injuries,omitempty"`
	Situation  *GameSituationContext `json:"situation,omitempty"`
	Role       *RoleContext          `json:"role,omitempty"`
	Historical *HistoricalStats      `json:"historical,omitempty"`
}

// SituationOrNil returns the situational record, tolerating nil receivers
// so checkers can chain lookups without guarding every level.
func (c *PropContext) SituationOrNil() *GameSituationContext {
	if c == nil {
		return nil
	}
	return c.Situation
}

// HistoricalOrNil returns the historical record, tolerating nil receivers
func (c *PropContext) HistoricalOrNil() *HistoricalStats {
	if c == nil {
		return nil
	}
	return c.Historical
}

// RoleOrNil returns the role record, tolerating nil receivers
func (c *PropContext) RoleOrNil() *RoleContext {
	if c == nil {
		return nil
	}
	return c.Role
}

// WeatherOrNil returns the weather record, tolerating nil receivers
func (c *PropContext) WeatherOrNil() *WeatherContext {
	if c == nil {
		return nil
	}
	return c.Weather
}

// InjuriesOrNil returns the injury record, tolerating nil receivers
func (c *PropContext) InjuriesOrNil() *InjuryContext {
	if c == nil {
		return nil
	}
	return c.Injuries
}
