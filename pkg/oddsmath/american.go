// Package oddsmath converts American odds to the decimal, probability and
// payout forms the scoring calculators consume.
package oddsmath

import (
	"fmt"
	"math"
)

// AmericanToDecimal converts American odds to decimal odds
// American +150 → Decimal 2.50
// American -110 → Decimal 1.909
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}

	if american > 0 {
		return (float64(american) / 100.0) + 1.0, nil
	}

	return (100.0 / float64(-american)) + 1.0, nil
}

// DecimalToAmerican converts decimal odds to American odds
// Decimal 2.50 → American +150
// Decimal 1.91 → American -110
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds: must be > 1.0")
	}

	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}

	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// AmericanToImpliedProbability converts American odds to the book's implied
// win probability (vig included).
// American -110 → 0.524
func AmericanToImpliedProbability(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}

	return 1.0 / decimal, nil
}

// PayoutMultiplier returns the profit per unit staked for American odds,
// i.e. decimal odds minus the returned stake.
// American -110 → 0.909, American +150 → 1.50
func PayoutMultiplier(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}

	return decimal - 1.0, nil
}

// EdgePercent returns the percentage edge of a fair win probability over
// the probability implied by the offered odds. Positive means +EV.
func EdgePercent(fairProbability float64, offeredOdds int) (float64, error) {
	if fairProbability <= 0 || fairProbability >= 1 {
		return 0, fmt.Errorf("invalid fair probability: must be between 0 and 1")
	}

	implied, err := AmericanToImpliedProbability(offeredOdds)
	if err != nil {
		return 0, err
	}

	return (fairProbability - implied) * 100.0, nil
}

// InBand reports whether American odds fall inside an inclusive band.
// Used for sweet-spot checks, e.g. InBand(-110, -130, 120) → true.
func InBand(american, low, high int) bool {
	if american == 0 {
		return false
	}
	return american >= low && american <= high
}
