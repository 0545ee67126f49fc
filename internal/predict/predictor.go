// Package predict orchestrates the sequential prediction flow: resolve a
// location, fetch weather and air quality, then score, classify, match
// diseases, and run the epidemic gate. External failures never propagate;
// each collaborator has a fixed fallback so an assessment always completes.
package predict

import (
	"context"
	"log/slog"
	"time"

	"github.com/epidemicwatch/risk-service/internal/domain"
	"github.com/epidemicwatch/risk-service/internal/observability"
)

// Location is a resolved place with coordinates and display names.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country"`
}

// FallbackLocation is substituted when geolocation fails entirely.
func FallbackLocation() Location {
	return Location{
		Latitude:  28.6139,
		Longitude: 77.2090,
		City:      "Delhi",
		Region:    "Delhi",
		Country:   "India",
	}
}

// fallbackAirQuality is substituted when the air-quality service fails.
func fallbackAirQuality() domain.AirQuality {
	return domain.AirQuality{AQI: 40, PM25: 20, PM10: 28, Description: domain.AQIDescription(40)}
}

// LocationSource resolves the caller's location by IP.
type LocationSource interface {
	Locate(ctx context.Context) (Location, error)
}

// Geocoder converts a manually entered city and country to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city, country string) (lat, lon float64, err error)
}

// WeatherSource fetches current conditions for a coordinate pair.
type WeatherSource interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (domain.EnvironmentReading, error)
}

// AirQualitySource fetches nearest-station air quality for a coordinate pair.
type AirQualitySource interface {
	Nearest(ctx context.Context, lat, lon float64) (domain.AirQuality, error)
}

// Query selects the location to assess. An empty City requests automatic
// geolocation; otherwise City and Country are geocoded.
type Query struct {
	City    string
	Country string
}

// Prediction is the complete result document for one assessment.
type Prediction struct {
	Location   Location                 `json:"location"`
	Reading    domain.NormalizedReading `json:"reading"`
	AirQuality domain.AirQuality        `json:"air_quality"`
	Assessment domain.RiskAssessment    `json:"assessment"`
	Tier       domain.TierInfo          `json:"tier"`
	Advisories []domain.Advisory        `json:"advisories"`
	Epidemic   domain.EpidemicStatus    `json:"epidemic"`
}

// Predictor runs the assessment chain against injected collaborators.
type Predictor struct {
	locator LocationSource
	geocode Geocoder
	weather WeatherSource
	air     AirQualitySource
	regions []string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Predictor. regions is the epidemic gate allow-list.
func New(locator LocationSource, geocode Geocoder, weather WeatherSource, air AirQualitySource, regions []string, logger *slog.Logger, metrics *observability.Metrics) *Predictor {
	return &Predictor{
		locator: locator,
		geocode: geocode,
		weather: weather,
		air:     air,
		regions: regions,
		logger:  logger,
		metrics: metrics,
	}
}

// Assess runs the full chain for the query. Upstream failures are logged
// and replaced by documented fallbacks, never surfaced to the caller.
func (p *Predictor) Assess(ctx context.Context, q Query) Prediction {
	start := time.Now()
	defer func() {
		p.metrics.AssessmentsTotal.Inc()
		p.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	}()

	loc := p.resolveLocation(ctx, q)

	reading, err := p.weather.CurrentWeather(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		p.logger.Warn("weather fetch failed, using defaults", "city", loc.City, "error", err)
		reading = domain.EnvironmentReading{}
	}

	air, err := p.air.Nearest(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		p.logger.Warn("air quality fetch failed, using fallback", "city", loc.City, "error", err)
		air = fallbackAirQuality()
	}

	assessment := domain.Score(reading, air)
	advisories := domain.MatchDiseases(reading, air, assessment.Score)
	epidemic := domain.CheckEpidemic(loc.City, loc.Country, assessment.Score, p.regions)

	return Prediction{
		Location:   loc,
		Reading:    reading.Normalize(),
		AirQuality: air,
		Assessment: assessment,
		Tier:       domain.Classify(assessment.Score),
		Advisories: advisories,
		Epidemic:   epidemic,
	}
}

// resolveLocation picks automatic or manual resolution. Manual queries keep
// the user-entered names even when geocoding falls back to the default
// coordinates.
func (p *Predictor) resolveLocation(ctx context.Context, q Query) Location {
	if q.City == "" {
		loc, err := p.locator.Locate(ctx)
		if err != nil {
			p.logger.Warn("geolocation failed, using fallback location", "error", err)
			return FallbackLocation()
		}
		return loc
	}

	loc := Location{City: q.City, Country: q.Country}
	lat, lon, err := p.geocode.Geocode(ctx, q.City, q.Country)
	if err != nil {
		p.logger.Warn("geocoding failed, using fallback coordinates",
			"city", q.City, "country", q.Country, "error", err)
		fb := FallbackLocation()
		loc.Latitude = fb.Latitude
		loc.Longitude = fb.Longitude
		return loc
	}
	loc.Latitude = lat
	loc.Longitude = lon
	return loc
}
