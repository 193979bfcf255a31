package cli

import (
	"github.com/spf13/cobra"
)

func newHypothesisCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "hypothesis",
		Aliases: []string{"run"},
		Short:   "Run the t-test on the recession price ratios",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())

			res, err := cfg.Datasets().Analyze(cfg.AnalysisOptions())
			if err != nil {
				return err
			}
			return renderResult(cmd.OutOrStdout(), res, cfg.Output)
		},
	}
}
