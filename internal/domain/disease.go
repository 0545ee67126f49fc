package domain

import "strings"

// Severity is the three-level scale used by advisories and alerts.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityModerate Severity = "Moderate"
	SeverityHigh     Severity = "High"
)

// ParseSeverity canonicalizes a severity string, case-insensitively.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "low":
		return SeverityLow, true
	case "moderate":
		return SeverityModerate, true
	case "high":
		return SeverityHigh, true
	default:
		return "", false
	}
}

// Advisory is a static disease-risk template attached to a fired rule.
type Advisory struct {
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	Risk          Severity `json:"risk"`
	DescriptionEn string   `json:"description_en"`
	DescriptionHi string   `json:"description_hi"`
}

// DiseaseRule pairs a threshold predicate with the advisory it emits. The
// threshold fields are data rather than literals so deployments can tune them;
// the defaults reproduce the hand-tuned heuristic of the original model and
// carry no epidemiological provenance.
type DiseaseRule struct {
	// Thresholds; a zero field means the clause is unused by this rule.
	ColdTempBelow     float64
	CoolTempBelow     float64
	CoolHumidityAbove float64
	WarmTempAbove     float64
	WarmHumidityAbove float64
	AQIAbove          float64
	ExtremeTempAbove  float64
	ScoreAbove        float64

	Advisory Advisory
}

// matches evaluates the rule's predicate. Each rule uses exactly one clause
// group, selected by which fields are non-zero.
func (dr DiseaseRule) matches(r NormalizedReading, air AirQuality, score float64) bool {
	switch {
	case dr.ColdTempBelow != 0 || dr.CoolTempBelow != 0:
		return r.TemperatureC < dr.ColdTempBelow ||
			(r.TemperatureC < dr.CoolTempBelow && r.HumidityPct > dr.CoolHumidityAbove)
	case dr.WarmTempAbove != 0 && dr.WarmHumidityAbove != 0:
		return r.TemperatureC > dr.WarmTempAbove && r.HumidityPct > dr.WarmHumidityAbove
	case dr.AQIAbove != 0:
		return air.AQI > dr.AQIAbove
	case dr.ExtremeTempAbove != 0:
		return r.TemperatureC > dr.ExtremeTempAbove
	case dr.ScoreAbove != 0:
		return score > dr.ScoreAbove
	default:
		return false
	}
}

// DefaultDiseaseRules returns the standard rule table in evaluation order.
func DefaultDiseaseRules() []DiseaseRule {
	return []DiseaseRule{
		{
			ColdTempBelow: 10, CoolTempBelow: 20, CoolHumidityAbove: 70,
			Advisory: Advisory{
				Name:          "Influenza (Flu)",
				Icon:          "🤧",
				Risk:          SeverityModerate,
				DescriptionEn: "Cold and humid conditions favor flu transmission",
				DescriptionHi: "ठंडी और नम स्थितियां फ्लू के प्रसार को बढ़ावा देती हैं",
			},
		},
		{
			WarmTempAbove: 25, WarmHumidityAbove: 60,
			Advisory: Advisory{
				Name:          "Dengue / Malaria",
				Icon:          "🦟",
				Risk:          SeverityHigh,
				DescriptionEn: "Warm and humid conditions ideal for mosquito breeding",
				DescriptionHi: "गर्म और नम स्थितियां मच्छर के प्रजनन के लिए आदर्श हैं",
			},
		},
		{
			AQIAbove: 100,
			Advisory: Advisory{
				Name:          "Respiratory Infections",
				Icon:          "🫁",
				Risk:          SeverityHigh,
				DescriptionEn: "Poor air quality increases vulnerability to lung diseases",
				DescriptionHi: "खराब वायु गुणवत्ता फेफड़ों की बीमारियों की संवेदनशीलता बढ़ाती है",
			},
		},
		{
			ExtremeTempAbove: 35,
			Advisory: Advisory{
				Name:          "Heat-Related Illnesses",
				Icon:          "🌡️",
				Risk:          SeverityModerate,
				DescriptionEn: "High temperatures increase risk of heat stroke and dehydration",
				DescriptionHi: "उच्च तापमान हीट स्ट्रोक और निर्जलीकरण का जोखिम बढ़ाता है",
			},
		},
		{
			ScoreAbove: 50,
			Advisory: Advisory{
				Name:          "Common Cold / COVID-19",
				Icon:          "😷",
				Risk:          SeverityModerate,
				DescriptionEn: "Current conditions may increase transmission of respiratory viruses",
				DescriptionHi: "वर्तमान स्थितियां श्वसन वायरस के प्रसार को बढ़ा सकती हैं",
			},
		},
	}
}

// MatchDiseases evaluates the default rule table against the readings and
// score. Rules are independent: zero or more may fire, and advisories are
// returned in rule order. Pure, total, and idempotent.
func MatchDiseases(reading EnvironmentReading, air AirQuality, score float64) []Advisory {
	return MatchDiseasesWithRules(reading, air, score, DefaultDiseaseRules())
}

// MatchDiseasesWithRules is MatchDiseases with a caller-supplied rule table.
func MatchDiseasesWithRules(reading EnvironmentReading, air AirQuality, score float64, rules []DiseaseRule) []Advisory {
	r := reading.Normalize()

	advisories := make([]Advisory, 0, len(rules))
	for _, rule := range rules {
		if rule.matches(r, air, score) {
			advisories = append(advisories, rule.Advisory)
		}
	}
	return advisories
}
