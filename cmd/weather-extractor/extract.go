// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/weather-extractor/internal/history"
	"github.com/pdiddy/weather-extractor/internal/report"
	"github.com/pdiddy/weather-extractor/internal/source"
	"github.com/pdiddy/weather-extractor/internal/weather"
	"github.com/pdiddy/weather-extractor/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [text...]",
	Short: "Extract weather records from text, a file, or standard input",
	Long: `Extract finds every weather mention in the given text and prints one
record per mention in document order. Text comes from the arguments, from
--file, or from standard input when the only argument is "-".

A missing or unreadable file is reported on stderr and yields no records.`,
	Example: `  weather-extractor extract "Температура: 22°C, влажность: 65%"
  weather-extractor extract --file forecast.txt --encoding windows-1251 --format json
  cat forecast.txt | weather-extractor extract -`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	file, _ := cmd.Flags().GetString("file")
	first, _ := cmd.Flags().GetBool("first")
	save, _ := cmd.Flags().GetBool("save")

	extractor := newExtractor(cfg)

	var (
		records []types.WeatherRecord
		src     string
	)
	switch {
	case file != "":
		src = file
		records, err = extractor.AnalyzeFile(file, cfg.Input.Encoding)
		if err != nil {
			reportReadError(cmd, file, err)
			// Nothing was analyzed, so there is nothing to save.
			save, cfg.History.Enabled = false, false
		}
	case len(args) == 1 && args[0] == "-":
		src = "<stdin>"
		text, err := source.Decode(cmd.InOrStdin(), cfg.Input.Encoding)
		if err != nil {
			return fmt.Errorf("reading standard input: %w", err)
		}
		records = extractText(extractor, text, first)
	case len(args) > 0:
		src = "<args>"
		records = extractText(extractor, strings.Join(args, " "), first)
	default:
		return fmt.Errorf("text required: pass it as arguments, with --file, or as - for stdin")
	}

	// AnalyzeFile reports the whole document.
	if first && len(records) > 1 {
		records = records[:1]
	}
	logger.Debug("extracted", zap.String("source", src), zap.Int("records", len(records)))

	if save || cfg.History.Enabled {
		if err := saveHistory(cmd.Context(), cfg.History, src, records); err != nil {
			return err
		}
	}

	textSource := ""
	if file != "" {
		textSource = file
	}
	return report.Write(cmd.OutOrStdout(), format, textSource, records)
}

// extractText returns every mention in text, or only the first one.
func extractText(extractor *weather.Extractor, text string, first bool) []types.WeatherRecord {
	if !first {
		return extractor.ExtractAll(text)
	}
	if rec, ok := extractor.ExtractOne(text); ok {
		return []types.WeatherRecord{rec}
	}
	return nil
}

// reportReadError tells the user why a file produced no records.
func reportReadError(cmd *cobra.Command, file string, err error) {
	if errors.Is(err, source.ErrNotFound) {
		fmt.Fprintf(cmd.ErrOrStderr(), "File %s not found.\n", file)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error reading file: %v\n", err)
	}
	logger.Warn("file analysis failed", zap.String("file", file), zap.Error(err))
}

func saveHistory(ctx context.Context, cfg types.HistoryConfig, src string, records []types.WeatherRecord) error {
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Save(ctx, src, records)
	if err != nil {
		return err
	}
	logger.Debug("saved history", zap.Int64("analysis_id", id))
	return nil
}

func init() {
	extractCmd.Flags().String("file", "", "analyze the contents of this file")
	extractCmd.Flags().Bool("first", false, "report only the first mention")
	extractCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	extractCmd.Flags().Bool("save", false, "record the analysis in the history database")

	bindFlag("output.format", extractCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(extractCmd)
}
