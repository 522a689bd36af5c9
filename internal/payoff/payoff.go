// Package payoff computes profit/loss at expiry for an options+stock
// structure: single-point payoffs, sampled payoff curves and the
// aggregate metrics derived from them.
package payoff

import (
	"math"

	"b3-analyzer/internal/models"
	"b3-analyzer/internal/strategy"
)

const (
	// DefaultCurvePoints is the sampling resolution used for display
	// curves. The domain is split into DefaultCurvePoints intervals,
	// producing DefaultCurvePoints+1 samples.
	DefaultCurvePoints = 200

	// metricsCurvePoints is the higher resolution used when deriving
	// metrics, to keep breakeven interpolation error within a cent.
	metricsCurvePoints = 1000

	// zeroRangePadding widens the price domain when every leg shares the
	// same strike, avoiding a zero-width curve.
	zeroRangePadding = 0.2
)

// PayoffAtExpiry returns the profit or loss of the whole structure if the
// underlying settles at spot. Stock legs contribute spot minus entry
// price; option legs net their premium out of the intrinsic value. Sold
// legs flip the sign of the whole term, turning premium into a credit.
func PayoffAtExpiry(legs []models.Leg, spot float64) float64 {
	total := 0.0
	for _, leg := range legs {
		var perUnit float64
		switch leg.Kind {
		case models.KindStock:
			perUnit = spot - leg.Strike
		case models.KindCall:
			perUnit = math.Max(0, spot-leg.Strike) - leg.Premium
		case models.KindPut:
			perUnit = math.Max(0, leg.Strike-spot) - leg.Premium
		}
		total += perUnit * leg.Direction() * float64(leg.Quantity)
	}
	return total
}

// GeneratePayoffCurve samples the payoff over a price domain spanning the
// legs' strikes, widened by half the strike range on each side (or by
// 20% of the strike when all strikes coincide). The domain floor is
// clipped at zero. Returns numPoints+1 points in ascending price order,
// each rounded to cents; an empty leg list yields an empty curve.
func GeneratePayoffCurve(legs []models.Leg, numPoints int) []models.PayoffPoint {
	if len(legs) == 0 || numPoints <= 0 {
		return nil
	}

	minStrike, maxStrike := strikeBounds(legs)
	padding := 0.5 * (maxStrike - minStrike)
	if padding == 0 {
		padding = zeroRangePadding * maxStrike
	}
	low := math.Max(0, minStrike-padding)
	high := maxStrike + padding

	step := (high - low) / float64(numPoints)
	curve := make([]models.PayoffPoint, 0, numPoints+1)
	for i := 0; i <= numPoints; i++ {
		price := low + step*float64(i)
		curve = append(curve, models.PayoffPoint{
			Price:  round2(price),
			Profit: round2(PayoffAtExpiry(legs, price)),
		})
	}
	return curve
}

// ComputeMetrics derives the aggregate metrics of a leg set from a
// high-resolution curve, then lets the strategy classifier override them
// with exact values when the set matches a known template.
//
// A side whose extremum sits on a domain endpoint is reported as
// unbounded. This is an approximation: payoffs are piecewise linear
// beyond the outermost strikes, so a flat extremum at the boundary
// normally means the curve keeps climbing or falling outside the sampled
// domain, but a kink just past the boundary can be misread.
func ComputeMetrics(legs []models.Leg) models.AnalysisMetrics {
	metrics := models.AnalysisMetrics{Breakevens: []float64{}}
	if len(legs) == 0 {
		return metrics
	}

	curve := GeneratePayoffCurve(legs, metricsCurvePoints)

	maxGain := curve[0].Profit
	maxLoss := curve[0].Profit
	for _, p := range curve {
		maxGain = math.Max(maxGain, p.Profit)
		maxLoss = math.Min(maxLoss, p.Profit)
	}
	metrics.MaxGain = maxGain
	metrics.MaxLoss = maxLoss

	first, last := curve[0].Profit, curve[len(curve)-1].Profit
	metrics.MaxGainUnbounded = maxGain == first || maxGain == last
	metrics.MaxLossUnbounded = maxLoss == first || maxLoss == last

	metrics.Breakevens = findBreakevens(curve)
	metrics.NetCost = netCost(legs)

	if info := strategy.Classify(legs); info != nil {
		metrics.StrategyType = info.Type
		metrics.StrategyLabel = info.Label
		metrics.MontageTotal = info.MontageTotal
		metrics.Breakeven = info.Breakeven
		metrics.IsRiskFree = info.IsRiskFree
		metrics.MaxGain = info.MaxProfit
		metrics.MaxGainUnbounded = false
		metrics.MaxLossUnbounded = false
		if info.IsRiskFree {
			metrics.MaxLoss = 0
		} else {
			metrics.MaxLoss = -info.MaxLoss
		}
	}
	return metrics
}

// findBreakevens scans consecutive curve points for zero crossings or
// touches, inclusive on both sides, and linearly interpolates the exact
// crossing price from the ratio of profit magnitudes.
func findBreakevens(curve []models.PayoffPoint) []float64 {
	breakevens := []float64{}
	for i := 1; i < len(curve); i++ {
		prev, curr := curve[i-1], curve[i]
		crosses := (prev.Profit <= 0 && curr.Profit >= 0) ||
			(prev.Profit >= 0 && curr.Profit <= 0)
		if !crosses {
			continue
		}

		span := math.Abs(prev.Profit) + math.Abs(curr.Profit)
		price := prev.Price
		if span > 0 {
			price = prev.Price + (curr.Price-prev.Price)*math.Abs(prev.Profit)/span
		}
		price = round2(price)
		if n := len(breakevens); n == 0 || breakevens[n-1] != price {
			breakevens = append(breakevens, price)
		}
	}
	return breakevens
}

// netCost sums the premium cash flows of the legs: negative for a net
// debit, positive for a net credit. Stock legs carry zero premium and do
// not contribute.
func netCost(legs []models.Leg) float64 {
	total := 0.0
	for _, leg := range legs {
		total -= leg.Premium * float64(leg.Quantity) * leg.Direction()
	}
	return round2(total)
}

func strikeBounds(legs []models.Leg) (float64, float64) {
	minStrike, maxStrike := legs[0].Strike, legs[0].Strike
	for _, leg := range legs[1:] {
		minStrike = math.Min(minStrike, leg.Strike)
		maxStrike = math.Max(maxStrike, leg.Strike)
	}
	return minStrike, maxStrike
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
