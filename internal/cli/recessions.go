package cli

import (
	"github.com/anrid/recession-housing/pkg/stats"
	"github.com/spf13/cobra"
)

func newRecessionsCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "recessions",
		Short: "Show the recession detected in the GDP series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			opts := cfg.AnalysisOptions()

			gdp, err := stats.LoadGDP(cfg.Datasets().GDP.Path, opts.GDP)
			if err != nil {
				return err
			}

			var recessions []stats.Recession
			if all {
				recessions = stats.DetectRecessions(gdp)
			} else {
				r, err := stats.DetectRecession(gdp)
				if err != nil {
					return err
				}
				recessions = []stats.Recession{r}
			}
			return renderRecessions(cmd.OutOrStdout(), recessions, cfg.Output)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every recession instead of the first one")
	return cmd
}
