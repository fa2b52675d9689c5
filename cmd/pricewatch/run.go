package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pricewatch/internal/models"
	"pricewatch/internal/pipeline"
)

func newRunCmd(configPath, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one pipeline run and publish any output changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, tariffs, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(cfg, tariffs)
			result, err := runner.Run(cmd.Context(), models.TriggerManual)
			if err != nil {
				return err
			}

			printSummary(result)
			if result.Error != nil {
				return fmt.Errorf("run failed: %s: %s", result.Error.Type, result.Error.Message)
			}
			return nil
		},
	}
}

func printSummary(result *models.RunResult) {
	fmt.Printf("\nRun: %s\n", result.RunName)
	fmt.Printf("Trigger: %s\n", result.Trigger)
	fmt.Printf("Published: %t\n", result.Published)
	if result.Revision != "" {
		fmt.Printf("Revision: %s\n", result.Revision)
	}
	fmt.Printf("Duration: %.2fs\n", result.Durations.TotalSec)
}
