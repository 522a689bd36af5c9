package cli

import (
	"github.com/spf13/cobra"

	"b3-analyzer/internal/benchmark"
	"b3-analyzer/pkg/utils"
)

func newCDICmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cdi",
		Short: "Fixed-income benchmark calculations",
	}
	cmd.AddCommand(newCDIAccrueCmd(app))
	cmd.AddCommand(newCDICostCmd(app))
	return cmd
}

func newCDIAccrueCmd(app *App) *cobra.Command {
	var principal, rate float64
	var days int
	var withTax bool

	cmd := &cobra.Command{
		Use:   "accrue",
		Short: "Accrued CDI return over a holding period",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rate == 0 {
				rate = app.Config.Benchmark.CDIAnnualRate
			}
			if days == 0 {
				days = app.Config.Benchmark.DefaultDays
			}

			gain := benchmark.AccruedReturn(principal, rate, days, withTax)
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]any{
					"principal": principal,
					"rate":      rate,
					"days":      days,
					"withTax":   withTax,
					"return":    gain,
				})
			}
			output.Printf("%s a %.2f%% a.a. por %d dias: ", utils.FormatBRL(principal), rate, days)
			output.Success("%s", utils.FormatPnL(gain))
			if withTax {
				output.Dim("líquido de IR regressivo")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&principal, "principal", 0, "amount invested")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annual rate percent (default: configured CDI)")
	cmd.Flags().IntVar(&days, "days", 0, "holding period in days")
	cmd.Flags().BoolVar(&withTax, "tax", false, "apply the regressive IR bracket")
	cmd.MarkFlagRequired("principal")
	return cmd
}

func newCDICostCmd(app *App) *cobra.Command {
	var capital, rate float64
	var businessDays int

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "CDI opportunity cost of capital over business days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rate == 0 {
				rate = app.Config.Benchmark.CDIAnnualRate
			}

			cost := benchmark.OpportunityCost(capital, rate, businessDays)
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]any{
					"capital":         capital,
					"rate":            rate,
					"businessDays":    businessDays,
					"opportunityCost": cost,
				})
			}
			output.Printf("Custo de oportunidade: %s\n", utils.FormatBRL(cost))
			return nil
		},
	}

	cmd.Flags().Float64Var(&capital, "capital", 0, "capital committed to the structure")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annual rate percent (default: configured CDI)")
	cmd.Flags().IntVar(&businessDays, "days", 0, "business days until expiry")
	cmd.MarkFlagRequired("capital")
	cmd.MarkFlagRequired("days")
	return cmd
}
