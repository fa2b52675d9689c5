package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pricewatch/internal/models"
	"pricewatch/internal/pipeline"
)

func newScheduleCmd(configPath, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the pipeline once per day at the configured UTC time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, tariffs, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(cfg, tariffs)
			err = pipeline.Schedule(cmd.Context(), cfg.ScheduleAt, func(ctx context.Context) error {
				result, err := runner.Run(ctx, models.TriggerSchedule)
				if err != nil {
					return err
				}
				if result.Error != nil {
					return fmt.Errorf("%s: %s", result.Error.Type, result.Error.Message)
				}
				return nil
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
