// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/weather-extractor/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect previously analyzed texts",
	Long: `History reads the SQLite database written by extract --save (or by any
analysis when history.enabled is set in the config).`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored weather records, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	src, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(cmd.Context(), history.ListOptions{Source: src, Limit: limit})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No records stored.")
		return nil
	}

	fmt.Fprintf(out, "%-6s  %-20s  %-3s  %-6s  %-5s  %-6s  %-6s  %s\n",
		"ID", "Analyzed", "#", "Temp", "Hum", "Press", "Wind", "Source / Description")
	fmt.Fprintln(out, strings.Repeat("-", 90))
	for _, e := range entries {
		tail := e.Source
		if e.Record.Description != "" {
			tail += " / " + e.Record.Description
		}
		fmt.Fprintf(out, "%-6d  %-20s  %-3d  %-6s  %-5s  %-6s  %-6s  %s\n",
			e.AnalysisID, e.AnalyzedAt.Local().Format("2006-01-02 15:04:05"), e.Position,
			e.Record.Temperature, e.Record.Humidity, e.Record.Pressure, e.Record.WindSpeed, tail)
	}
	fmt.Fprintf(out, "\n%d records\n", len(entries))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full history as YAML or JSON to stdout",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		return store.ExportYAML(cmd.Context(), cmd.OutOrStdout())
	case "json":
		return store.ExportJSON(cmd.Context(), cmd.OutOrStdout())
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

func init() {
	historyListCmd.Flags().String("source", "", "only records from this source")
	historyListCmd.Flags().Int("limit", 0, "maximum records to list (0 = all)")
	historyListCmd.Flags().Bool("json", false, "output records as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
