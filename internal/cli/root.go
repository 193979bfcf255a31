// Package cli provides the command line interface of the housing tool.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/anrid/recession-housing/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

// NewRootCmd creates the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "housing",
		Short: "Test whether university towns weather recessions better",
		Long: `housing compares how home prices in university towns and in other
towns moved between the quarter before a recession and the recession
bottom, using Zillow city prices, a list of college towns and BEA GDP.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			if cfg.File != "" {
				slog.Debug("Using config file", "path", cfg.File)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default: ./housing.yaml)")
	f.String("data-dir", "", "Directory that relative dataset paths are resolved against")
	f.String("prices-path", "", "Monthly city home prices (CSV, XLS or XLSX)")
	f.String("towns-path", "", "University towns list (text)")
	f.String("gdp-path", "", "Quarterly GDP sheet (XLS, XLSX or CSV)")
	f.String("first-month", "", "First monthly price column to keep (YYYY-MM)")
	f.String("first-quarter", "", "First GDP quarter to keep (YYYYqN)")
	f.Int("gdp-quarter-col", 0, "Zero based column of the GDP quarter labels")
	f.Int("gdp-value-col", 0, "Zero based column of the chained dollar GDP values")
	f.Float64("alpha", 0, "Significance level")
	f.Bool("equal-var", true, "Assume equal variances (Student); false runs Welch's test")
	f.StringP("output", "o", "", "Output format (text|json|dump)")
	f.BoolP("verbose", "v", false, "Verbose logging")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputText, config.OutputJSON, config.OutputDump}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newHypothesisCommand())
	rootCmd.AddCommand(newRecessionsCommand())
	rootCmd.AddCommand(newTownsCommand())
	rootCmd.AddCommand(newFetchCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	cfg, err := config.Load("", nil)
	if err != nil {
		panic(fmt.Errorf("load config: %w", err))
	}
	return cfg
}
