// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/weather-extractor/internal/history"
	"github.com/pdiddy/weather-extractor/internal/interactive"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Analyze text or files from a menu",
	Long: `Interactive shows a menu to enter text by hand, analyze a file, or exit.
Results are printed after each analysis. This is also what runs when
weather-extractor is started without a subcommand.`,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := []interactive.Option{
		interactive.WithEncoding(cfg.Input.Encoding),
		interactive.WithLogger(logger),
	}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, interactive.WithRecorder(store))
		logger.Debug("recording history", zap.String("dir", cfg.History.Dir))
	}

	session := interactive.New(cmd.InOrStdin(), cmd.OutOrStdout(), newExtractor(cfg), opts...)
	return session.Run(cmd.Context())
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
