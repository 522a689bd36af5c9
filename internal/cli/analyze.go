package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"b3-analyzer/internal/benchmark"
	"b3-analyzer/internal/calendar"
	"b3-analyzer/internal/models"
	"b3-analyzer/internal/payoff"
	"b3-analyzer/pkg/utils"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var legSpecs []string
	var legsFile string
	var showCurve bool
	var curvePoints int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute payoff metrics for a multi-leg structure",
		Long: `Analyze a multi-leg options structure and print its risk metrics,
strategy classification and CDI comparison.

Legs are given as repeatable --leg flags in the form
side:kind:ticker:strike:premium:quantity, for example:

  b3-analyzer analyze \
    --leg buy:stock:PETR4:39.61:0:100 \
    --leg sell:call:PETRC405:39.65:0.80:100

or as a JSON file with --file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			legs, err := collectLegs(legSpecs, legsFile)
			if err != nil {
				return err
			}
			if len(legs) == 0 {
				return fmt.Errorf("no legs given: use --leg or --file")
			}

			metrics := payoff.ComputeMetrics(legs)
			output := NewOutput(cmd)

			if output.IsJSON() {
				resp := map[string]any{"legs": legs, "metrics": metrics}
				if showCurve {
					resp["curve"] = payoff.GeneratePayoffCurve(legs, curvePoints)
				}
				return output.JSON(resp)
			}

			printMetrics(output, app, legs, metrics)
			if showCurve {
				printCurve(output, payoff.GeneratePayoffCurve(legs, curvePoints))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&legSpecs, "leg", nil, "leg as side:kind:ticker:strike:premium:quantity (repeatable)")
	cmd.Flags().StringVar(&legsFile, "file", "", "JSON file with an array of legs")
	cmd.Flags().BoolVar(&showCurve, "curve", false, "print the payoff curve")
	cmd.Flags().IntVar(&curvePoints, "points", payoff.DefaultCurvePoints, "curve sampling resolution")
	return cmd
}

// collectLegs merges legs from the repeatable flag and the JSON file.
func collectLegs(specs []string, file string) ([]models.Leg, error) {
	var legs []models.Leg
	for _, spec := range specs {
		leg, err := parseLegSpec(spec)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading legs file: %w", err)
		}
		var fromFile []models.Leg
		if err := json.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("parsing legs file: %w", err)
		}
		legs = append(legs, fromFile...)
	}
	return legs, nil
}

// parseLegSpec parses a side:kind:ticker:strike:premium:quantity flag
// value. This is an input boundary: unlike the engine, it validates.
func parseLegSpec(spec string) (models.Leg, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 6 {
		return models.Leg{}, fmt.Errorf("invalid leg %q: want side:kind:ticker:strike:premium:quantity", spec)
	}

	var side models.Side
	switch strings.ToLower(parts[0]) {
	case "buy", "compra":
		side = models.SideBuy
	case "sell", "venda":
		side = models.SideSell
	default:
		return models.Leg{}, fmt.Errorf("invalid side %q", parts[0])
	}

	var kind models.Kind
	switch strings.ToLower(parts[1]) {
	case "call":
		kind = models.KindCall
	case "put":
		kind = models.KindPut
	case "stock", "acao", "ação":
		kind = models.KindStock
	default:
		return models.Leg{}, fmt.Errorf("invalid kind %q", parts[1])
	}

	strike, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return models.Leg{}, fmt.Errorf("invalid strike %q", parts[3])
	}
	premium, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return models.Leg{}, fmt.Errorf("invalid premium %q", parts[4])
	}
	quantity, err := strconv.Atoi(parts[5])
	if err != nil || quantity <= 0 {
		return models.Leg{}, fmt.Errorf("invalid quantity %q", parts[5])
	}
	if kind != models.KindStock && strike <= 0 {
		return models.Leg{}, fmt.Errorf("strike must be positive for options")
	}
	if premium < 0 {
		return models.Leg{}, fmt.Errorf("premium must not be negative")
	}

	return models.Leg{
		Side:     side,
		Kind:     kind,
		Ticker:   strings.ToUpper(parts[2]),
		Strike:   strike,
		Premium:  premium,
		Quantity: quantity,
	}, nil
}

func printMetrics(output *Output, app *App, legs []models.Leg, m models.AnalysisMetrics) {
	output.Bold("Estrutura")
	for _, leg := range legs {
		output.Printf("  %-5s %-5s %-10s strike %-10s premio %-10s x%d\n",
			leg.Side, leg.Kind, leg.Ticker,
			utils.FormatBRL(leg.Strike), utils.FormatBRL(leg.Premium), leg.Quantity)
	}
	output.Println()

	if m.StrategyLabel != "" {
		output.Info("Estratégia: %s", m.StrategyLabel)
		output.Printf("  Custo de montagem: %s\n", utils.FormatBRL(m.MontageTotal))
		output.Printf("  Breakeven:         %s\n", utils.FormatBRL(m.Breakeven))
		if m.IsRiskFree {
			output.Success("  Operação sem risco: pior cenário não é negativo")
		}
	}

	if m.MaxGainUnbounded {
		output.Success("Ganho máximo: ilimitado")
	} else {
		output.Gain(m.MaxGain, "Ganho máximo: %s", utils.FormatBRL(m.MaxGain))
	}
	if m.MaxLossUnbounded {
		output.Error("Perda máxima: ilimitada")
	} else {
		output.Gain(m.MaxLoss, "Perda máxima: %s", utils.FormatBRL(m.MaxLoss))
	}
	output.Printf("Custo líquido: %s\n", utils.FormatBRL(m.NetCost))

	if len(m.Breakevens) > 0 {
		parts := make([]string, len(m.Breakevens))
		for i, b := range m.Breakevens {
			parts[i] = utils.FormatBRL(b)
		}
		output.Printf("Breakevens da curva: %s\n", strings.Join(parts, ", "))
	}

	printCDIComparison(output, app, legs, m)
}

// printCDIComparison shows what the montage capital would earn at the
// configured CDI rate until the structure's nearest expiry.
func printCDIComparison(output *Output, app *App, legs []models.Leg, m models.AnalysisMetrics) {
	capital := m.MontageTotal
	if capital <= 0 {
		capital = -m.NetCost
	}
	if capital <= 0 {
		return
	}

	days := app.Config.Benchmark.DefaultDays
	for _, leg := range legs {
		if !leg.IsOption() {
			continue
		}
		if expiry, ok := calendar.ExpiryFromTicker(leg.Ticker); ok {
			days = calendar.BusinessDaysBetween(time.Now(), expiry)
			break
		}
	}

	rate := app.Config.Benchmark.CDIAnnualRate
	cost := benchmark.OpportunityCost(capital, rate, days)
	output.Println()
	output.Dim("CDI %.2f%% a.a. sobre %s por %d dias úteis: %s",
		rate, utils.FormatBRL(capital), days, utils.FormatBRL(cost))
}

// printCurve renders the payoff curve as a simple fixed-width chart.
func printCurve(output *Output, curve []models.PayoffPoint) {
	if len(curve) == 0 {
		return
	}

	minProfit, maxProfit := curve[0].Profit, curve[0].Profit
	for _, p := range curve {
		if p.Profit < minProfit {
			minProfit = p.Profit
		}
		if p.Profit > maxProfit {
			maxProfit = p.Profit
		}
	}
	span := maxProfit - minProfit
	if span == 0 {
		span = 1
	}

	const width = 50
	step := len(curve) / 40
	if step == 0 {
		step = 1
	}
	output.Println()
	for i := 0; i < len(curve); i += step {
		p := curve[i]
		bar := int((p.Profit - minProfit) / span * width)
		marker := strings.Repeat(" ", bar) + "•"
		output.Printf("%10.2f │%s  %s\n", p.Price, marker, utils.FormatPnL(p.Profit))
	}
}
