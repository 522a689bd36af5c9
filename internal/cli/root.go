// Package cli provides the command-line interface for the analyzer.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"b3-analyzer/internal/advisor"
	"b3-analyzer/internal/config"
	"b3-analyzer/internal/extract"
	"b3-analyzer/internal/logging"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	LLMClient advisor.LLMClient
	Extractor *extract.VisionExtractor
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if key := cfg.Credentials.OpenAI.APIKey; key != "" {
		app.LLMClient = advisor.NewOpenAIClient(key, cfg.AI.Model)
		app.Extractor = extract.NewVisionExtractor(key, cfg.AI.VisionModel)
		logger.Debug().Str("model", cfg.AI.Model).Msg("OpenAI client initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "b3-analyzer",
		Short: "B3 options structure analyzer",
		Long: `b3-analyzer computes payoff diagrams, risk metrics and strategy
classification for multi-leg B3 option structures, compares them against
the CDI benchmark and, with an OpenAI key configured, produces a
natural-language opinion on the structure.

Use 'b3-analyzer help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/b3-analyzer)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newCalendarCmd(app))
	rootCmd.AddCommand(newCDICmd(app))
	rootCmd.AddCommand(newExtractCmd(app))
	rootCmd.AddCommand(newAdviseCmd(app))
	rootCmd.AddCommand(newServeCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
				return
			}
			output.Printf("b3-analyzer v%s\n", Version)
		},
	}
}
