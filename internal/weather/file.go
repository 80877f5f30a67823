// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package weather

import (
	"github.com/pdiddy/weather-extractor/internal/source"
	"github.com/pdiddy/weather-extractor/pkg/types"
)

// AnalyzeFile reads path in the named encoding and returns every mention
// it contains. When the file cannot be read the records are empty and the
// error matches source.ErrNotFound or source.ErrRead.
func (e *Extractor) AnalyzeFile(path, encoding string) ([]types.WeatherRecord, error) {
	text, err := source.ReadFile(path, encoding)
	if err != nil {
		return nil, err
	}
	return e.ExtractAll(text), nil
}
