// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/weather-extractor/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.HistoryConfig{Dir: filepath.Join(t.TempDir(), "history")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestOpenCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "history")
	s, err := Open(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)

	// Reopening an existing database keeps the schema.
	s, err = Open(types.HistoryConfig{Dir: dir})
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestSaveAndList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, "morning.txt", []types.WeatherRecord{
		{Temperature: "18", Humidity: "75"},
		{Temperature: "25", WindSpeed: "3"},
	})
	require.NoError(t, err)
	second, err := s.Save(ctx, "evening.txt", []types.WeatherRecord{
		{Temperature: "12", Description: "дождь"},
	})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	entries, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, second, entries[0].AnalysisID)
	assert.Equal(t, "evening.txt", entries[0].Source)
	assert.Equal(t, types.WeatherRecord{Temperature: "12", Description: "дождь"}, entries[0].Record)

	assert.Equal(t, "morning.txt", entries[1].Source)
	assert.Equal(t, 1, entries[1].Position)
	assert.Equal(t, "18", entries[1].Record.Temperature)
	assert.Equal(t, 2, entries[2].Position)
	assert.Equal(t, "3", entries[2].Record.WindSpeed)
	assert.True(t, entries[0].AnalyzedAt.After(entries[1].AnalyzedAt))
}

func TestListFilters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "a.txt", []types.WeatherRecord{{Temperature: "1"}, {Temperature: "2"}})
	require.NoError(t, err)
	_, err = s.Save(ctx, "b.txt", []types.WeatherRecord{{Temperature: "3"}})
	require.NoError(t, err)

	entries, err := s.List(ctx, ListOptions{Source: "a.txt"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "a.txt", e.Source)
	}

	entries, err = s.List(ctx, ListOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "3", entries[0].Record.Temperature)
}

func TestSaveEmptyAnalysis(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, "plain.txt", nil)
	require.NoError(t, err)
	assert.NotZero(t, id)

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT record_count FROM analyses WHERE id = ?`, id).Scan(&count))
	assert.Zero(t, count)

	entries, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, s.ExportJSON(ctx, &buf))
	assert.Equal(t, "[]\n", buf.String())

	_, err := s.Save(ctx, "notes.txt", []types.WeatherRecord{{Temperature: "-5", Pressure: "760"}})
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, s.ExportJSON(ctx, &buf))
	var fromJSON []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	require.Len(t, fromJSON, 1)
	assert.Equal(t, "notes.txt", fromJSON[0].Source)
	assert.Equal(t, "-5", fromJSON[0].Record.Temperature)

	buf.Reset()
	require.NoError(t, s.ExportYAML(ctx, &buf))
	var fromYAML []Entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, "760", fromYAML[0].Record.Pressure)
}
