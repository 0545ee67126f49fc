package domain

// Factor weights. They sum to 1.0 by construction; the invariant is checked
// in tests rather than at runtime.
const (
	weightTemperature = 0.20
	weightHumidity    = 0.15
	weightAirQuality  = 0.25
	weightCloudCover  = 0.15
	weightWindSpeed   = 0.25
)

// RiskFactor is one entry of the explanation trail emitted alongside a score.
// Value is a fixed qualitative label, not generated text.
type RiskFactor struct {
	Name   string  `json:"name"`
	Value  string  `json:"value"`
	Weight float64 `json:"weight"`
}

// RiskAssessment is the result of scoring one set of readings. Immutable once
// computed; callers recompute rather than cache.
type RiskAssessment struct {
	Score   float64      `json:"score"`
	Factors []RiskFactor `json:"factors"`
}

// Score computes the composite epidemic risk score from weather and air
// quality readings. Pure and total: absent fields take defaults and no input
// can fail. The score is the weighted sum of five bucketed sub-scores,
// scaled to [0,100]. Factors are emitted in fixed order: temperature,
// humidity, air quality, cloud cover, wind speed.
func Score(reading EnvironmentReading, air AirQuality) RiskAssessment {
	r := reading.Normalize()

	factors := make([]RiskFactor, 0, 5)
	sum := 0.0

	var tempRisk float64
	switch {
	case r.TemperatureC >= 20 && r.TemperatureC <= 30:
		tempRisk = 0.3
		factors = append(factors, RiskFactor{Name: "Temperature", Value: "Moderate (ideal for pathogens)", Weight: weightTemperature})
	case r.TemperatureC > 30:
		tempRisk = 0.2
		factors = append(factors, RiskFactor{Name: "Temperature", Value: "High (less favorable)", Weight: weightTemperature})
	default:
		tempRisk = 0.1
		factors = append(factors, RiskFactor{Name: "Temperature", Value: "Low (unfavorable)", Weight: weightTemperature})
	}
	sum += tempRisk * weightTemperature

	var humidityRisk float64
	switch {
	case r.HumidityPct >= 50 && r.HumidityPct <= 80:
		humidityRisk = 0.35
		factors = append(factors, RiskFactor{Name: "Humidity", Value: "Moderate-High (favorable)", Weight: weightHumidity})
	case r.HumidityPct > 80:
		humidityRisk = 0.4
		factors = append(factors, RiskFactor{Name: "Humidity", Value: "Very High (ideal for transmission)", Weight: weightHumidity})
	default:
		humidityRisk = 0.15
		factors = append(factors, RiskFactor{Name: "Humidity", Value: "Low (less favorable)", Weight: weightHumidity})
	}
	sum += humidityRisk * weightHumidity

	var aqiRisk float64
	switch {
	case air.AQI > 150:
		aqiRisk = 0.45
		factors = append(factors, RiskFactor{Name: "Air Quality", Value: "Poor (increases susceptibility)", Weight: weightAirQuality})
	case air.AQI > 100:
		aqiRisk = 0.3
		factors = append(factors, RiskFactor{Name: "Air Quality", Value: "Moderate", Weight: weightAirQuality})
	default:
		aqiRisk = 0.15
		factors = append(factors, RiskFactor{Name: "Air Quality", Value: "Good", Weight: weightAirQuality})
	}
	sum += aqiRisk * weightAirQuality

	var cloudRisk float64
	if r.CloudPct > 70 {
		cloudRisk = 0.25
		factors = append(factors, RiskFactor{Name: "Cloud Cover", Value: "High (indicates stable conditions)", Weight: weightCloudCover})
	} else {
		cloudRisk = 0.15
		factors = append(factors, RiskFactor{Name: "Cloud Cover", Value: "Low (unstable conditions)", Weight: weightCloudCover})
	}
	sum += cloudRisk * weightCloudCover

	var windRisk float64
	switch {
	case r.WindSpeedKmh < 5:
		windRisk = 0.35
		factors = append(factors, RiskFactor{Name: "Wind Speed", Value: "Very Low (air stagnation)", Weight: weightWindSpeed})
	case r.WindSpeedKmh < 10:
		windRisk = 0.3
		factors = append(factors, RiskFactor{Name: "Wind Speed", Value: "Low (limited dispersal)", Weight: weightWindSpeed})
	default:
		windRisk = 0.15
		factors = append(factors, RiskFactor{Name: "Wind Speed", Value: "Adequate (good ventilation)", Weight: weightWindSpeed})
	}
	sum += windRisk * weightWindSpeed

	return RiskAssessment{
		Score:   clamp(sum*100, 0, 100),
		Factors: factors,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
