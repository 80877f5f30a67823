// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractorConfig holds settings for the extraction stage.
type ExtractorConfig struct {
	// UnboundedFieldSearch lets optional fields be taken from anywhere later
	// on the line, even past the next temperature mention. The default stops
	// the search at the next mention.
	UnboundedFieldSearch bool `json:"unbounded_field_search" yaml:"unbounded_field_search" mapstructure:"unbounded_field_search"`
}

// InputConfig holds settings for reading source files.
type InputConfig struct {
	// Encoding names the character set of input files (default "utf-8").
	// Any WHATWG encoding label is accepted, e.g. "windows-1251", "koi8-r".
	Encoding string `json:"encoding" yaml:"encoding" mapstructure:"encoding"`
}

// OutputConfig holds settings for rendering results.
type OutputConfig struct {
	// Format selects the report format: text, json, or yaml.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// HistoryConfig holds settings for the analysis history database.
type HistoryConfig struct {
	// Dir is the directory holding history.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Enabled records every analysis when true.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default warn).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	Extract ExtractorConfig `json:"extract" yaml:"extract" mapstructure:"extract"`
	Input   InputConfig     `json:"input" yaml:"input" mapstructure:"input"`
	Output  OutputConfig    `json:"output" yaml:"output" mapstructure:"output"`
	History HistoryConfig   `json:"history" yaml:"history" mapstructure:"history"`
	Log     LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}
