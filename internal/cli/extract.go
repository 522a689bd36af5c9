package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"b3-analyzer/internal/extract"
	"b3-analyzer/internal/payoff"
)

func newExtractCmd(app *App) *cobra.Command {
	var analyze bool

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract structure legs from a brokerage screenshot",
		Long: `Extract sends a brokerage screenshot to the vision model and
normalizes the reported rows into valid legs. Rows failing validation are
dropped; the command reports how many of the extracted rows survived.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Extractor == nil {
				return fmt.Errorf("no OpenAI API key configured: set OPENAI_API_KEY or credentials.yaml")
			}

			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}
			mimeType := mime.TypeByExtension(filepath.Ext(args[0]))
			if mimeType == "" {
				mimeType = "image/png"
			}

			raws, err := app.Extractor.ExtractLegs(cmd.Context(), image, mimeType)
			if err != nil {
				return err
			}
			legs := extract.Normalize(raws)
			app.Logger.Info().Int("extracted", len(raws)).Int("valid", len(legs)).
				Msg("Screenshot processed")

			output := NewOutput(cmd)
			if output.IsJSON() {
				resp := map[string]any{"extracted": len(raws), "legs": legs}
				if analyze {
					resp["metrics"] = payoff.ComputeMetrics(legs)
				}
				return output.JSON(resp)
			}

			if len(legs) < len(raws) {
				output.Warning("%d de %d linhas extraídas foram descartadas na validação",
					len(raws)-len(legs), len(raws))
			}
			if len(legs) == 0 {
				output.Error("Nenhuma perna válida extraída")
				return nil
			}

			if analyze {
				printMetrics(output, app, legs, payoff.ComputeMetrics(legs))
				return nil
			}
			for _, leg := range legs {
				output.Printf("%s %s %s strike %.2f premio %.2f x%d\n",
					leg.Side, leg.Kind, leg.Ticker, leg.Strike, leg.Premium, leg.Quantity)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&analyze, "analyze", false, "analyze the extracted legs")
	return cmd
}
