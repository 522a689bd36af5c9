package models

// PayoffPoint is one sample of the payoff curve: the profit or loss of the
// whole structure if the underlying settles at Price on expiry.
type PayoffPoint struct {
	Price  float64 `json:"price"`
	Profit float64 `json:"profit"`
}

// StrategyType identifies a recognized multi-leg strategy template.
type StrategyType string

const (
	StrategyCollar         StrategyType = "COLLAR"
	StrategyCoveredCall    StrategyType = "COVERED_CALL"
	StrategyBullCallSpread StrategyType = "BULL_CALL_SPREAD"
	StrategyBearPutSpread  StrategyType = "BEAR_PUT_SPREAD"
)

// StrategyInfo carries the exact closed-form metrics of a recognized
// strategy. MaxLoss is expressed as a positive amount at risk; the payoff
// engine converts it to the loss-is-negative convention when it applies
// the override.
type StrategyInfo struct {
	Type         StrategyType `json:"type"`
	Label        string       `json:"label"`
	MontageTotal float64      `json:"montageTotal"`
	Breakeven    float64      `json:"breakeven"`
	MaxProfit    float64      `json:"maxProfit"`
	MaxLoss      float64      `json:"maxLoss"`
	IsRiskFree   bool         `json:"isRiskFree"`
}

// AnalysisMetrics is the derived, read-only summary of a leg set. It is
// recomputed in full on every request; there is no incremental state.
type AnalysisMetrics struct {
	MaxGain          float64   `json:"maxGain"`
	MaxGainUnbounded bool      `json:"maxGainUnbounded"`
	MaxLoss          float64   `json:"maxLoss"`
	MaxLossUnbounded bool      `json:"maxLossUnbounded"`
	Breakevens       []float64 `json:"breakevens"`
	NetCost          float64   `json:"netCost"`

	// Set only when the strategy classifier matched the leg set.
	StrategyType  StrategyType `json:"strategyType,omitempty"`
	StrategyLabel string       `json:"strategyLabel,omitempty"`
	MontageTotal  float64      `json:"montageTotal,omitempty"`
	Breakeven     float64      `json:"breakeven,omitempty"`
	IsRiskFree    bool         `json:"isRiskFree,omitempty"`
}
