// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Field names in the fixed order they are matched and reported.
const (
	FieldTemperature = "temperature"
	FieldHumidity    = "humidity"
	FieldPressure    = "pressure"
	FieldWindSpeed   = "wind_speed"
	FieldDescription = "description"
)

// WeatherRecord holds the measurements found for one mention of weather
// data. Values are the substrings as they appeared in the text; an empty
// value means the field was not present.
type WeatherRecord struct {
	// Temperature is always set on a record returned by the extractor.
	Temperature string `json:"temperature,omitempty" yaml:"temperature,omitempty"`

	// Humidity is the relative humidity without the trailing %.
	Humidity string `json:"humidity,omitempty" yaml:"humidity,omitempty"`

	// Pressure is the integer pressure without its unit.
	Pressure string `json:"pressure,omitempty" yaml:"pressure,omitempty"`

	// WindSpeed is the wind speed without its unit.
	WindSpeed string `json:"wind_speed,omitempty" yaml:"wind_speed,omitempty"`

	// Description is free text with surrounding whitespace trimmed.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Field is one named value of a WeatherRecord.
type Field struct {
	Name  string
	Value string
}

// Fields returns the present fields in temperature, humidity, pressure,
// wind_speed, description order.
func (r WeatherRecord) Fields() []Field {
	all := []Field{
		{FieldTemperature, r.Temperature},
		{FieldHumidity, r.Humidity},
		{FieldPressure, r.Pressure},
		{FieldWindSpeed, r.WindSpeed},
		{FieldDescription, r.Description},
	}
	present := all[:0]
	for _, f := range all {
		if f.Value != "" {
			present = append(present, f)
		}
	}
	return present
}

// IsEmpty reports whether no field is present.
func (r WeatherRecord) IsEmpty() bool {
	return r == WeatherRecord{}
}
