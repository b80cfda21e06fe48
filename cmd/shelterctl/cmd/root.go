package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shelter-catalog/internal/adapters/sheets/google"
	"shelter-catalog/internal/domain/catalog"
	"shelter-catalog/internal/platform/config"
	"shelter-catalog/internal/platform/logger"
)

var (
	configPath string
	sheetURL   string

	cfg    config.Config
	client *google.Client
	svc    *catalog.Service
)

var rootCmd = &cobra.Command{
	Use:   "shelterctl",
	Short: "shelterctl inspects the shelter's shared sheet: links, catalog and adoption sheets.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if sheetURL != "" {
			loaded.SheetURL = sheetURL
		}
		cfg = loaded

		log := logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.LogLevel),
			Format: logger.ParseFormat(cfg.LogFormat),
			App:    "shelterctl",
		})
		client = google.NewClient(google.Config{Timeout: cfg.FetchTimeout.Duration})
		svc = catalog.NewService(client, catalog.Options{TTL: cfg.CacheTTL.Duration, Logger: log})
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "shelter.json5", "config file (JSON5)")
	rootCmd.PersistentFlags().StringVar(&sheetURL, "sheet", "", "share link of the sheet (overrides config and SHEET_URL)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
