// Package benchmark computes fixed-income reference returns used to
// compare option structures against the CDI rate.
package benchmark

import "math"

// tradingDaysPerYear is the B3 annualization convention.
const tradingDaysPerYear = 252

// AccruedReturn returns the amount earned by principal at an annual rate
// over the holding period, optionally net of the regressive withholding
// tax bracket for that period. The annual rate is converted to a daily
// compounding rate over 252 trading days; the caller decides whether the
// day count passed in is calendar or business days.
func AccruedReturn(principal, annualRatePercent float64, days int, withTax bool) float64 {
	dailyRate := math.Pow(1+annualRatePercent/100, 1.0/tradingDaysPerYear) - 1
	gross := principal * (math.Pow(1+dailyRate, float64(days)) - 1)
	if withTax {
		gross *= 1 - taxBracket(days)
	}
	return round2(gross)
}

// taxBracket returns the regressive IR rate for a holding period.
func taxBracket(days int) float64 {
	switch {
	case days > 720:
		return 0.15
	case days > 360:
		return 0.175
	case days > 180:
		return 0.20
	default:
		return 0.225
	}
}

// OpportunityCost returns what capital would have earned at the annual
// rate over a number of business days, compounding the exponent directly
// over 252. Non-positive inputs yield 0.
func OpportunityCost(capital, annualRatePercent float64, businessDays int) float64 {
	if capital <= 0 || annualRatePercent <= 0 || businessDays <= 0 {
		return 0
	}
	factor := math.Pow(1+annualRatePercent/100, float64(businessDays)/tradingDaysPerYear)
	return round2(capital * (factor - 1))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
