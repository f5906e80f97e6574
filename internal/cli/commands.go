package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"foliopulse/internal/app"
	"foliopulse/internal/config"
	"foliopulse/internal/logging"
)

const version = "1.0.0"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "foliopulse",
		Short: "foliopulse - portfolio valuation reports, delivered to your chat",
		Long: `foliopulse values a configured set of holdings with live market quotes,
merges a short news digest per position, renders a compact report, adds
AI commentary and delivers everything over Telegram or WhatsApp.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newRunCmd creates the run command: one full pipeline pass.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Value the portfolio and deliver the report",
		Long: `Run one valuation pass: fetch quotes and news for every configured
holding, render the report, generate commentary and deliver it in
transport-sized chunks. Scheduling is left to cron or CI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				// Configuration problems are fatal before any network call.
				return err
			}
			log := logging.New(cfg.LogLevel)

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
}

// newPreviewCmd creates the preview command: render locally, deliver
// nothing.
func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Fetch data and print the report without delivering it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// Preview never calls the model, so skip constructing one.
			cfg.CommentaryProvider = config.ProviderNone
			log := logging.New(cfg.LogLevel)

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			rendered, err := a.Preview(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), RenderPreview(rendered))
			return nil
		},
	}
}

// newInitCmd creates the init command: interactive holdings bootstrap.
func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a holdings file interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("output")

			if _, err := os.Stat(path); err == nil {
				overwrite, err := ConfirmOverwrite(path)
				if err != nil {
					return err
				}
				if !overwrite {
					fmt.Fprintln(cmd.OutOrStdout(), "Keeping existing file.")
					return nil
				}
			}

			holdings, err := PromptForHoldings()
			if err != nil {
				return err
			}
			if err := config.SaveHoldings(path, holdings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d holdings to %s\n", len(holdings), path)
			return nil
		},
	}

	cmd.Flags().String("output", "holdings.json", "Holdings file to write")
	return cmd
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "foliopulse %s\n", version)
		},
	}
}
