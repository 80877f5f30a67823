// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders extracted weather records for people and tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/weather-extractor/pkg/types"
)

// Format selects how records are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. An empty name selects text.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, or yaml)", name)
	}
}

// Write renders records to w. Source names where the text came from and
// is only used by the text format; it may be empty.
func Write(w io.Writer, format Format, source string, records []types.WeatherRecord) error {
	if records == nil {
		records = []types.WeatherRecord{}
	}

	switch format {
	case FormatText, "":
		return writeText(w, source, records)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, source string, records []types.WeatherRecord) error {
	in := ""
	if source != "" {
		in = fmt.Sprintf(" in '%s'", source)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintf(w, "No weather data found%s.\n", in)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d weather record(s)%s:\n", len(records), in)
	for i, r := range records {
		fmt.Fprintf(&b, "\nRecord %d:\n", i+1)
		for _, f := range r.Fields() {
			fmt.Fprintf(&b, "  %s: %s\n", f.Name, f.Value)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
