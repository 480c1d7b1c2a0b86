package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierOrdering(t *testing.T) {
	assert.True(t, TierS.AtLeast(TierA), "S should rank above A")
	assert.True(t, TierA.AtLeast(TierA), "a tier should rank at least itself")
	assert.False(t, TierC.AtLeast(TierB), "C should rank below B")
	assert.True(t, TierD.Rank() < TierC.Rank(), "D is the record-keeping floor")
	assert.Equal(t, 0, Tier("X").Rank(), "unknown tiers rank below everything")
}

func TestTierPromotable(t *testing.T) {
	assert.True(t, TierS.Promotable(), "S promotes")
	assert.True(t, TierA.Promotable(), "A promotes")
	assert.False(t, TierB.Promotable(), "B never promotes")
	assert.False(t, TierD.Promotable(), "record-keeping tier never promotes")
}

func TestBetTypeIsMultiLeg(t *testing.T) {
	assert.False(t, BetSingle.IsMultiLeg())
	assert.True(t, BetParlay.IsMultiLeg())
	assert.True(t, BetSGP.IsMultiLeg())
	assert.False(t, BetType("").IsMultiLeg(), "empty bet type is treated as single")
}

func TestWeatherAdverse(t *testing.T) {
	assert.False(t, (*WeatherContext)(nil).Adverse(), "nil weather is never adverse")

	indoor := &WeatherContext{WindMPH: 30, Outdoor: false}
	assert.False(t, indoor.Adverse(), "indoor games ignore weather")

	windy := &WeatherContext{WindMPH: 20, TemperatureF: 60, Outdoor: true}
	assert.True(t, windy.Adverse(), "20mph outdoor wind is adverse")

	mild := &WeatherContext{WindMPH: 5, TemperatureF: 70, Outdoor: true}
	assert.False(t, mild.Adverse(), "mild outdoor conditions are not adverse")
}

func TestPropValidate(t *testing.T) {
	valid := &Prop{ID: "p1", Sport: SportNBA, BetType: BetSingle, StatCategory: "points", Line: 25.5, Odds: -110}
	assert.NoError(t, valid.Validate(), "a plain single bet should validate")

	missing := &Prop{Sport: SportNBA}
	assert.Error(t, missing.Validate(), "ID is required")

	badSport := &Prop{ID: "p2", Sport: Sport("CRICKET")}
	assert.Error(t, badSport.Validate(), "unknown sports are rejected at the batch boundary")

	oneLeg := &Prop{ID: "p3", BetType: BetParlay, Legs: []Leg{{Sport: SportNBA, Line: 10}}}
	assert.Error(t, oneLeg.Validate(), "a parlay needs at least two legs")

	noLegs := &Prop{ID: "p4", BetType: BetParlay}
	assert.Error(t, noLegs.Validate(), "multi-leg bet types must carry legs")

	singleWithLegs := &Prop{ID: "p5", BetType: BetSingle, Legs: []Leg{{Line: 1}, {Line: 2}}}
	assert.Error(t, singleWithLegs.Validate(), "single bets never carry legs")

	ticket := &Prop{ID: "p6", BetType: BetParlay, Legs: []Leg{
		{Sport: SportNBA, Market: MarketOver, Line: 25.5, Odds: -115},
		{Sport: SportNBA, Market: MarketUnder, Line: 7.5, Odds: -105},
	}}
	assert.NoError(t, ticket.Validate(), "a two-leg parlay should validate")
}

func TestContextNilAccessors(t *testing.T) {
	var c *PropContext
	assert.Nil(t, c.SituationOrNil(), "nil context yields nil situation")
	assert.Nil(t, c.HistoricalOrNil(), "nil context yields nil historical stats")
	assert.Nil(t, c.WeatherOrNil(), "nil context yields nil weather")
	assert.Nil(t, c.RoleOrNil(), "nil context yields nil role")
	assert.Nil(t, c.InjuriesOrNil(), "nil context yields nil injuries")

	rank := 3
	full := &PropContext{Historical: &HistoricalStats{DvPRank: &rank}}
	assert.Equal(t, 3, *full.HistoricalOrNil().DvPRank)
}
