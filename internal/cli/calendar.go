package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"b3-analyzer/internal/calendar"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "B3 expiry calendar utilities",
	}
	cmd.AddCommand(newExpiriesCmd(app))
	cmd.AddCommand(newBusinessDaysCmd(app))
	cmd.AddCommand(newExpiryCmd(app))
	return cmd
}

func newExpiriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expiries [year]",
		Short: "List the twelve monthly option expiries of a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := time.Now().Year()
			if len(args) == 1 {
				if _, err := fmt.Sscanf(args[0], "%d", &year); err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
			}

			expiries := calendar.ExpiryOptions(year)
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(expiries)
			}

			output.Bold("Vencimentos %d", year)
			for _, e := range expiries {
				output.Printf("  %s  %s\n", e.Label, e.Date.Format(app.Config.UI.DateFormat))
			}
			return nil
		},
	}
}

func newBusinessDaysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "business-days <from> <to>",
		Short: "Count B3 business days between two dates (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("invalid from date %q", args[0])
			}
			to, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("invalid to date %q", args[1])
			}

			days := calendar.BusinessDaysBetween(from, to)
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]int{"businessDays": days})
			}
			output.Printf("%d dias úteis\n", days)
			return nil
		},
	}
}

func newExpiryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expiry <ticker>",
		Short: "Resolve the expiry date encoded in an option ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := args[0]
			expiry, ok := calendar.ExpiryFromTicker(ticker)
			if !ok {
				return fmt.Errorf("ticker %q does not encode a valid expiry", ticker)
			}

			days := calendar.BusinessDaysBetween(time.Now(), expiry)
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]any{
					"ticker":       ticker,
					"expiry":       expiry.Format("2006-01-02"),
					"businessDays": days,
				})
			}
			output.Printf("%s vence em %s (%d dias úteis)\n",
				ticker, expiry.Format(app.Config.UI.DateFormat), days)
			return nil
		},
	}
}
