package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"pricewatch/internal/check"
	"pricewatch/internal/output"
)

func newCheckCmd(configPath, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the published monthly tables for consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}

			elec, err := check.LoadMonths(filepath.Join(cfg.OutputDir, output.MonthlyElectricityCSV))
			if err != nil {
				return err
			}
			gas, err := check.LoadMonths(filepath.Join(cfg.OutputDir, output.MonthlyGasCSV))
			if err != nil {
				return err
			}
			dates, err := check.LoadMonths(filepath.Join(cfg.OutputDir, output.CompareCSV))
			if err != nil {
				return err
			}

			report := check.Months(elec, gas)
			report.BadDisplayNotation = check.CompareDates(dates)
			for _, finding := range report.Findings() {
				fmt.Println(finding)
			}
			if !report.OK() {
				return fmt.Errorf("%d consistency findings", len(report.Findings()))
			}

			fmt.Printf("OK: %d electricity months, %d gas months\n", len(elec), len(gas))
			return nil
		},
	}
}
