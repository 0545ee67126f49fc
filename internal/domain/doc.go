// Package domain implements the epidemic risk model: reading normalization,
// composite scoring, tier classification, disease rule matching, the epidemic
// gate, and AQI conversion. Every function here is pure and total: missing
// inputs take documented defaults and nothing returns an error.
//
// # Scoring
//
// Five environmental dimensions are bucketed against fixed thresholds, each
// bucket mapping to a sub-score in [0.1, 0.45]:
//
//	Temperature °C:  [20,30] → 0.30 | >30 → 0.20 | else → 0.10   weight 0.20
//	Humidity %:      [50,80] → 0.35 | >80 → 0.40 | else → 0.15   weight 0.15
//	AQI:             >150 → 0.45 | >100 → 0.30 | else → 0.15     weight 0.25
//	Cloud cover %:   >70 → 0.25 | else → 0.15                    weight 0.15
//	Wind km/h:       <5 → 0.35 | <10 → 0.30 | else → 0.15        weight 0.25
//
// The weighted sum is scaled by 100 and clamped to [0,100]. Weights sum to
// 1.0 by construction. Each bucket decision also emits a qualitative
// RiskFactor used for display; the trail order is fixed (temperature,
// humidity, AQI, cloud cover, wind speed).
//
// # Defaults
//
// Absent weather fields are substituted before scoring: temperature 25°C,
// humidity 60%, wind 10 km/h, cloud cover 40%.
//
// # Tiers
//
// Scores discretize to four tiers: <30 Low, <50 Moderate, <75 High,
// ≥75 Critical. Each tier carries a color and a fixed English/Hindi
// description pair, looked up statically rather than derived.
//
// # AQI Conversion
//
// Station pm2.5/pm10 concentrations convert to AQI through piecewise-linear
// EPA-style breakpoints per pollutant; the composite index is the max across
// pollutants. Example: pm2.5 of 40 µg/m³ → 100 + (40−35.4)×(50/20) = 111.5.
//
// # Provenance
//
// The rule thresholds, epidemic region tokens, and factor weights are
// hand-tuned demo constants inherited from the original model. They are kept
// bit-compatible for output parity and exposed as data (DiseaseRule,
// DefaultEpidemicRegions) rather than treated as epidemiological ground truth.
package domain
