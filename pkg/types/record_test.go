// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeatherRecordFields(t *testing.T) {
	r := WeatherRecord{Temperature: "22", WindSpeed: "5", Description: "ясно"}

	assert.Equal(t, []Field{
		{FieldTemperature, "22"},
		{FieldWindSpeed, "5"},
		{FieldDescription, "ясно"},
	}, r.Fields())
	assert.False(t, r.IsEmpty())
}

func TestWeatherRecordEmpty(t *testing.T) {
	var r WeatherRecord
	assert.True(t, r.IsEmpty())
	assert.Empty(t, r.Fields())
}
