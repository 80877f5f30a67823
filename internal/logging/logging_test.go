// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/weather-extractor/pkg/types"
)

func TestNewDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(types.LogConfig{}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "WARN")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(types.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Debug("analyzed", zap.Int("records", 2))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "analyzed", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.EqualValues(t, 2, entry["records"])
	assert.Contains(t, entry, "ts")
}

func TestNewInvalid(t *testing.T) {
	_, err := New(types.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(types.LogConfig{Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}
