package domain

// Defaults substituted for absent weather fields before scoring. These match
// the fallback values the upstream weather provider leaves behind when a
// current-conditions field is missing.
const (
	DefaultTemperatureC = 25.0
	DefaultHumidityPct  = 60.0
	DefaultWindSpeedKmh = 10.0
	DefaultCloudPct     = 40.0
)

// EnvironmentReading is a raw weather observation. Fields are pointers because
// the upstream provider can omit any of them; Normalize fills the gaps.
type EnvironmentReading struct {
	TemperatureC *float64 `json:"temperature_c,omitempty"`
	HumidityPct  *float64 `json:"humidity_pct,omitempty"`
	WindSpeedKmh *float64 `json:"wind_speed_kmh,omitempty"`
	CloudPct     *float64 `json:"cloud_pct,omitempty"`
}

// NormalizedReading is a reading with every field populated, either from the
// observation or from the documented defaults.
type NormalizedReading struct {
	TemperatureC float64 `json:"temperature_c"`
	HumidityPct  float64 `json:"humidity_pct"`
	WindSpeedKmh float64 `json:"wind_speed_kmh"`
	CloudPct     float64 `json:"cloud_pct"`
}

// Normalize substitutes defaults for absent fields. Total: any reading,
// including the zero value, produces a usable result.
func (r EnvironmentReading) Normalize() NormalizedReading {
	return NormalizedReading{
		TemperatureC: valueOr(r.TemperatureC, DefaultTemperatureC),
		HumidityPct:  valueOr(r.HumidityPct, DefaultHumidityPct),
		WindSpeedKmh: valueOr(r.WindSpeedKmh, DefaultWindSpeedKmh),
		CloudPct:     valueOr(r.CloudPct, DefaultCloudPct),
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// AirQuality holds station measurements and the composite index derived from
// them. AQI is unbounded above; display code maps it to descriptive bands.
type AirQuality struct {
	AQI         float64 `json:"aqi"`
	PM25        float64 `json:"pm25"`
	PM10        float64 `json:"pm10"`
	Description string  `json:"description,omitempty"`
}

// Float returns a pointer to v, for building readings with optional fields.
func Float(v float64) *float64 {
	return &v
}
