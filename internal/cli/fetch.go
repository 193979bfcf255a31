package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newFetchCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the datasets from the configured source URLs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			n, err := cfg.Datasets().DownloadAll(ctx, &http.Client{})
			if err != nil {
				return err
			}
			if n == 0 {
				return errors.New("no source URLs configured (sources.prices, sources.towns, sources.gdp)")
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d dataset(s)\n", n)
			return err
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall download timeout")
	cmd.Flags().String("source-prices", "", "URL of the city home prices file")
	cmd.Flags().String("source-towns", "", "URL of the university towns list")
	cmd.Flags().String("source-gdp", "", "URL of the GDP sheet")
	return cmd
}
