package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pricewatch/internal/models"
	"pricewatch/internal/pipeline"
)

func newFetchCmd(configPath, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch prices and write output files without publishing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, tariffs, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(cfg, tariffs, pipeline.SkipPublish())
			result, err := runner.Run(cmd.Context(), models.TriggerManual)
			if err != nil {
				return err
			}
			if result.Error != nil {
				return fmt.Errorf("fetch failed: %s: %s", result.Error.Type, result.Error.Message)
			}

			fmt.Printf("Output written to %s\n", cfg.OutputDir)
			return nil
		},
	}
}
