// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the weather-extractor CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/weather-extractor/internal/logging"
	"github.com/pdiddy/weather-extractor/internal/source"
	"github.com/pdiddy/weather-extractor/internal/weather"
	"github.com/pdiddy/weather-extractor/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is the diagnostic logger built before every command runs.
var logger = zap.NewNop()

// rootCmd is the base command for the weather-extractor CLI.
var rootCmd = &cobra.Command{
	Use:   "weather-extractor",
	Short: "Extract weather measurements from free-form text",
	Long: `weather-extractor finds temperature, humidity, pressure, wind speed, and
a description in Russian or English text. Each temperature reading starts a
new record; the other fields are taken from the text that follows it on the
same line.

Run without a subcommand for an interactive menu, or use extract to analyze
text arguments, a file, or standard input.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Info("using config file", zap.String("path", f))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runInteractive,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./weather-extractor.yaml or ~/.config/weather-extractor/config.yaml)")
	flags.String("encoding", source.DefaultEncoding, "character encoding of input files (e.g. utf-8, windows-1251, koi8-r)")
	flags.Bool("unbounded", false, "let a mention's fields extend past the next temperature reading on the line")
	flags.String("history-dir", ".weather-extractor", "directory holding the analysis history database")
	flags.String("log-level", "warn", "diagnostic log level: debug, info, warn, error")

	bindFlag("input.encoding", flags.Lookup("encoding"))
	bindFlag("extract.unbounded_field_search", flags.Lookup("unbounded"))
	bindFlag("history.dir", flags.Lookup("history-dir"))
	bindFlag("log.level", flags.Lookup("log-level"))

	viper.SetDefault("output.format", "text")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("history.enabled", false)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("weather-extractor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "weather-extractor"))
		}
	}

	viper.SetEnvPrefix("WEATHER_EXTRACTOR")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}
}

// loadConfig decodes the merged flag, environment, and file settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// newExtractor builds the extractor selected by cfg.
func newExtractor(cfg types.Config) *weather.Extractor {
	var opts []weather.Option
	if cfg.Extract.UnboundedFieldSearch {
		opts = append(opts, weather.WithUnboundedFieldSearch())
	}
	return weather.New(opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
