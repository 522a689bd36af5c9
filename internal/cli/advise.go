package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"b3-analyzer/internal/advisor"
	"b3-analyzer/internal/benchmark"
	"b3-analyzer/internal/calendar"
	"b3-analyzer/internal/payoff"
)

func newAdviseCmd(app *App) *cobra.Command {
	var legSpecs []string
	var legsFile string

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Get an AI opinion on a structure",
		Long: `Advise computes the structure's metrics and asks the language model
for a narrative assessment. The model only reads the computed numbers;
it takes no part in the math.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.LLMClient == nil {
				return fmt.Errorf("no OpenAI API key configured: set OPENAI_API_KEY or credentials.yaml")
			}

			legs, err := collectLegs(legSpecs, legsFile)
			if err != nil {
				return err
			}
			if len(legs) == 0 {
				return fmt.Errorf("no legs given: use --leg or --file")
			}

			metrics := payoff.ComputeMetrics(legs)

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

			capital := metrics.MontageTotal
			if capital <= 0 {
				capital = -metrics.NetCost
			}
			rate := app.Config.Benchmark.CDIAnnualRate
			review := advisor.Review{
				Legs:          legs,
				Metrics:       metrics,
				BenchmarkRate: rate,
				BenchmarkGain: benchmark.OpportunityCost(capital, rate, days),
				BusinessDays:  days,
			}

			opinion, err := advisor.New(app.LLMClient).Opinion(cmd.Context(), review)
			if err != nil {
				return fmt.Errorf("getting opinion: %w", err)
			}

			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]any{"metrics": metrics, "opinion": opinion})
			}
			printMetrics(output, app, legs, metrics)
			output.Println()
			output.Bold("Opinião")
			output.Println(opinion)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&legSpecs, "leg", nil, "leg as side:kind:ticker:strike:premium:quantity (repeatable)")
	cmd.Flags().StringVar(&legsFile, "file", "", "JSON file with an array of legs")
	return cmd
}
