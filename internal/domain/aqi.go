package domain

// Pollutant identifies a particulate measurement type.
type Pollutant string

const (
	PollutantPM25 Pollutant = "pm25"
	PollutantPM10 Pollutant = "pm10"
)

// PollutantAQI converts a pollutant concentration (µg/m³) to an AQI value
// using piecewise-linear EPA-style breakpoints. Unknown pollutants map to 0.
func PollutantAQI(value float64, pollutant Pollutant) float64 {
	switch pollutant {
	case PollutantPM25:
		switch {
		case value <= 12:
			return value * (50.0 / 12)
		case value <= 35.4:
			return 50 + (value-12)*(100.0/23.4)
		case value <= 55.4:
			return 100 + (value-35.4)*(50.0/20)
		default:
			return 150 + (value-55.4)*(50.0/20)
		}
	case PollutantPM10:
		switch {
		case value <= 54:
			return value * (50.0 / 54)
		case value <= 154:
			return 50 + (value-54)*(100.0/100)
		default:
			return 150 + (value-154)*(50.0/50)
		}
	default:
		return 0
	}
}

// CompositeAQI is the max of the per-pollutant indices, the convention the
// reporting station format uses for its headline value.
func CompositeAQI(pm25, pm10 float64) float64 {
	a := PollutantAQI(pm25, PollutantPM25)
	b := PollutantAQI(pm10, PollutantPM10)
	if a >= b {
		return a
	}
	return b
}

// AQIDescription maps an AQI value to its display band.
func AQIDescription(aqi float64) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}
