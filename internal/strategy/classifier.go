// Package strategy recognizes well-known multi-leg templates in a leg set
// and computes their exact risk metrics, replacing the payoff engine's
// curve-sampled approximations.
package strategy

import (
	"math"
	"time"

	"b3-analyzer/internal/calendar"
	"b3-analyzer/internal/models"
)

// legGroups splits a leg list into the typed groups the matchers inspect.
type legGroups struct {
	total      int
	stockBuys  []models.Leg
	callBuys   []models.Leg
	callSells  []models.Leg
	putBuys    []models.Leg
	putSells   []models.Leg
}

func groupLegs(legs []models.Leg) legGroups {
	g := legGroups{total: len(legs)}
	for _, leg := range legs {
		switch {
		case leg.Kind == models.KindStock && leg.Side == models.SideBuy:
			g.stockBuys = append(g.stockBuys, leg)
		case leg.Kind == models.KindCall && leg.Side == models.SideBuy:
			g.callBuys = append(g.callBuys, leg)
		case leg.Kind == models.KindCall && leg.Side == models.SideSell:
			g.callSells = append(g.callSells, leg)
		case leg.Kind == models.KindPut && leg.Side == models.SideBuy:
			g.putBuys = append(g.putBuys, leg)
		case leg.Kind == models.KindPut && leg.Side == models.SideSell:
			g.putSells = append(g.putSells, leg)
		}
	}
	return g
}

// matchers run in priority order; the first match wins. Collar must come
// before Covered Call: a stock+put+call set partially satisfies the
// covered-call shape, so the 3-leg pattern is checked first.
var matchers = []func(legGroups) *models.StrategyInfo{
	matchCollar,
	matchCoveredCall,
	matchBullCallSpread,
	matchBearPutSpread,
}

// Classify pattern-matches a leg set against the known templates and, on
// a match, returns the exact closed-form metrics. Returns nil when no
// template matches, leaving the caller's curve-derived metrics in place.
func Classify(legs []models.Leg) *models.StrategyInfo {
	groups := groupLegs(legs)
	for _, match := range matchers {
		if info := match(groups); info != nil {
			return info
		}
	}
	return nil
}

// matchCollar recognizes bought stock + bought put + sold call on the
// same underlying with both options in the same expiry month.
func matchCollar(g legGroups) *models.StrategyInfo {
	if g.total < 3 || len(g.stockBuys) != 1 || len(g.putBuys) != 1 || len(g.callSells) != 1 {
		return nil
	}
	stock, put, call := g.stockBuys[0], g.putBuys[0], g.callSells[0]
	if !sameRoot(stock, put) || !sameRoot(stock, call) {
		return nil
	}
	if !sameExpiryMonth(put, call) {
		return nil
	}

	qty := float64(stock.Quantity)
	montage := stock.Strike*qty + put.Premium*qty - call.Premium*qty
	breakeven := montage / qty
	info := &models.StrategyInfo{
		Type:         models.StrategyCollar,
		Label:        "Collar",
		MontageTotal: round2(montage),
		Breakeven:    round2(breakeven),
		MaxProfit:    round2((call.Strike - breakeven) * qty),
		MaxLoss:      round2((breakeven - put.Strike) * qty),
		IsRiskFree:   put.Strike >= breakeven,
	}
	return info
}

// matchCoveredCall recognizes bought stock + sold call on the same
// underlying. Max loss is the full montage, the stock's ride to zero.
func matchCoveredCall(g legGroups) *models.StrategyInfo {
	if len(g.stockBuys) != 1 || len(g.callSells) != 1 {
		return nil
	}
	stock, call := g.stockBuys[0], g.callSells[0]
	if !sameRoot(stock, call) {
		return nil
	}

	qty := float64(stock.Quantity)
	montage := (stock.Strike - call.Premium) * qty
	breakeven := montage / qty
	return &models.StrategyInfo{
		Type:         models.StrategyCoveredCall,
		Label:        "Venda Coberta",
		MontageTotal: round2(montage),
		Breakeven:    round2(breakeven),
		MaxProfit:    round2((call.Strike - breakeven) * qty),
		MaxLoss:      round2(montage),
		IsRiskFree:   breakeven <= 0,
	}
}

// matchBullCallSpread recognizes a bought call below a sold call on the
// same underlying.
func matchBullCallSpread(g legGroups) *models.StrategyInfo {
	if len(g.callBuys) != 1 || len(g.callSells) != 1 {
		return nil
	}
	bought, sold := g.callBuys[0], g.callSells[0]
	if !sameRoot(bought, sold) || sold.Strike <= bought.Strike {
		return nil
	}

	qty := float64(bought.Quantity)
	montage := (bought.Premium - sold.Premium) * qty
	debitPerUnit := montage / qty
	return &models.StrategyInfo{
		Type:         models.StrategyBullCallSpread,
		Label:        "Trava de Alta",
		MontageTotal: round2(montage),
		Breakeven:    round2(bought.Strike + debitPerUnit),
		MaxProfit:    round2((sold.Strike - bought.Strike - debitPerUnit) * qty),
		MaxLoss:      round2(montage),
		IsRiskFree:   montage <= 0,
	}
}

// matchBearPutSpread recognizes a bought put above a sold put on the
// same underlying.
func matchBearPutSpread(g legGroups) *models.StrategyInfo {
	if len(g.putBuys) != 1 || len(g.putSells) != 1 {
		return nil
	}
	bought, sold := g.putBuys[0], g.putSells[0]
	if !sameRoot(bought, sold) || bought.Strike <= sold.Strike {
		return nil
	}

	qty := float64(bought.Quantity)
	montage := (bought.Premium - sold.Premium) * qty
	debitPerUnit := montage / qty
	return &models.StrategyInfo{
		Type:         models.StrategyBearPutSpread,
		Label:        "Trava de Baixa",
		MontageTotal: round2(montage),
		Breakeven:    round2(bought.Strike - debitPerUnit),
		MaxProfit:    round2((bought.Strike - sold.Strike - debitPerUnit) * qty),
		MaxLoss:      round2(montage),
		IsRiskFree:   montage <= 0,
	}
}

func sameRoot(a, b models.Leg) bool {
	return calendar.UnderlyingRoot(a.Ticker) == calendar.UnderlyingRoot(b.Ticker)
}

// sameExpiryMonth compares the expiry months encoded in two option
// tickers. Tickers too short to carry a series letter never match.
func sameExpiryMonth(a, b models.Leg) bool {
	ma, ok := expiryMonth(a.Ticker)
	if !ok {
		return false
	}
	mb, ok := expiryMonth(b.Ticker)
	if !ok {
		return false
	}
	return ma == mb
}

func expiryMonth(ticker string) (time.Month, bool) {
	if len(ticker) < 5 {
		return 0, false
	}
	return calendar.ExpiryMonthFromLetter(rune(ticker[4]))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
