package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"pricewatch/internal/config"
	"pricewatch/internal/models"
)

func newRootCmd() *cobra.Command {
	var configPath string
	var logLevel string

	cmd := &cobra.Command{
		Use:          "pricewatch",
		Short:        "Pricewatch fetches Dutch energy prices and publishes daily price tables",
		SilenceUsage: true,
	}

	cmd.Version = version
	cmd.PersistentFlags().StringVar(&configPath, "config", "pricewatch.yaml", "path to run configuration")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(
		newRunCmd(&configPath, &logLevel),
		newScheduleCmd(&configPath, &logLevel),
		newFetchCmd(&configPath, &logLevel),
		newCheckCmd(&configPath, &logLevel),
		newHistoryCmd(&configPath, &logLevel),
	)

	return cmd
}

// setup loads the run configuration and tariff tables and configures the
// default logger.
func setup(configPath, flagLevel string) (models.Config, models.Tariffs, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, models.Tariffs{}, err
	}

	if warning, err := configureLoggerForCLI(flagLevel, cfg.LogLevel); err != nil {
		return cfg, models.Tariffs{}, err
	} else if warning != "" {
		fmt.Fprintln(os.Stderr, warning)
	}

	tariffs := config.DefaultTariffs()
	if cfg.TariffPath != "" {
		var fsys fs.FS = os.DirFS(cfg.TariffPath)
		tariffs, err = config.LoadTariffs(fsys)
		if err != nil {
			return cfg, tariffs, err
		}
	}

	return cfg, tariffs, nil
}
