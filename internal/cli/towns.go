package cli

import (
	"github.com/anrid/recession-housing/internal/config"
	"github.com/anrid/recession-housing/pkg/stats"
	"github.com/spf13/cobra"
)

func newTownsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "towns",
		Short: "Print the cleaned list of university towns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())

			towns, err := stats.LoadUniversityTowns(cfg.Datasets().Towns.Path)
			if err != nil {
				return err
			}
			if cfg.Output == config.OutputText {
				return stats.FormatUniversityTowns(cmd.OutOrStdout(), towns)
			}
			return renderValue(cmd.OutOrStdout(), towns, cfg.Output)
		},
	}
}
