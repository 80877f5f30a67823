// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package interactive

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/weather-extractor/internal/weather"
	"github.com/pdiddy/weather-extractor/pkg/types"
)

type saved struct {
	source  string
	records []types.WeatherRecord
}

type mockRecorder struct {
	saves []saved
	err   error
}

func (m *mockRecorder) Save(_ context.Context, source string, records []types.WeatherRecord) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.saves = append(m.saves, saved{source: source, records: records})
	return int64(len(m.saves)), nil
}

func run(t *testing.T, input string, opts ...Option) string {
	t.Helper()
	var out bytes.Buffer
	s := New(strings.NewReader(input), &out, weather.New(), opts...)
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func TestManualInput(t *testing.T) {
	out := run(t, "1\nТемпература: -15°C, влажность 80%\n3\n")

	assert.Contains(t, out, "=== Weather data analyzer ===")
	assert.Contains(t, out, "Found 1 weather record(s):")
	assert.Contains(t, out, "  temperature: -15\n  humidity: 80\n")
	assert.True(t, strings.HasSuffix(out, "Exiting.\n"))
}

func TestManualInputEmpty(t *testing.T) {
	out := run(t, "1\n   \n3\n")
	assert.Contains(t, out, "Text must not be empty.")
}

func TestManualInputNoData(t *testing.T) {
	out := run(t, "1\nСегодня был прекрасный день.\n3\n")
	assert.Contains(t, out, "No weather data found.")
}

func TestFileInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("temp 1\ntemp 2 wind 3 mph\n"), 0o644))

	rec := &mockRecorder{}
	out := run(t, "2\n"+path+"\n3\n", WithRecorder(rec))

	assert.Contains(t, out, "Found 2 weather record(s) in '"+path+"':")
	assert.Contains(t, out, "Record 2:\n  temperature: 2\n  wind_speed: 3\n")
	require.Len(t, rec.saves, 1)
	assert.Equal(t, path, rec.saves[0].source)
	assert.Len(t, rec.saves[0].records, 2)
}

func TestFileInputErrors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")

	rec := &mockRecorder{}
	out := run(t, "2\n"+missing+"\n2\n"+dir+"\n2\n\n3\n", WithRecorder(rec), WithLogger(zap.New(core)))

	assert.Contains(t, out, "File "+missing+" not found.")
	assert.Contains(t, out, "No weather data found in '"+missing+"'.")
	assert.Contains(t, out, "Error reading file:")
	assert.Contains(t, out, "File name must not be empty.")
	assert.Empty(t, rec.saves)
	assert.Equal(t, 2, logs.FilterMessage("file analysis failed").Len())
}

func TestInvalidChoiceAndEOF(t *testing.T) {
	out := run(t, "7\n")
	assert.Contains(t, out, "Invalid choice. Try again.")
	assert.True(t, strings.HasSuffix(out, "\nExiting.\n"))
}

func TestRecorderFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := &mockRecorder{err: errors.New("disk full")}

	out := run(t, "1\nt: 5\n3\n", WithRecorder(rec), WithLogger(zap.New(core)))

	assert.Contains(t, out, "temperature: 5")
	assert.Equal(t, 1, logs.FilterMessage("saving history failed").Len())
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	s := New(strings.NewReader("1\nt: 5\n"), &out, weather.New())
	require.NoError(t, s.Run(ctx))
	assert.NotContains(t, out.String(), "temperature")
}
