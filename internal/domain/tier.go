package domain

// Tier is the discretized risk level derived from a continuous score.
type Tier string

const (
	TierLow      Tier = "Low"
	TierModerate Tier = "Moderate"
	TierHigh     Tier = "High"
	TierCritical Tier = "Critical"
)

// Rank orders tiers for comparison: Low < Moderate < High < Critical.
func (t Tier) Rank() int {
	switch t {
	case TierLow:
		return 0
	case TierModerate:
		return 1
	case TierHigh:
		return 2
	case TierCritical:
		return 3
	default:
		return -1
	}
}

// TierInfo carries the display attributes for a tier. The description strings
// are fixed bilingual templates, not generated text.
type TierInfo struct {
	Tier          Tier   `json:"tier"`
	Color         string `json:"color"`
	DescriptionEn string `json:"description_en"`
	DescriptionHi string `json:"description_hi"`
}

var tierTable = map[Tier]TierInfo{
	TierLow: {
		Tier:          TierLow,
		Color:         "#10b981",
		DescriptionEn: "Environmental conditions are generally favorable with low epidemic risk. Continue monitoring routine health protocols.",
		DescriptionHi: "पर्यावरणीय स्थितियां आमतौर पर अनुकूल हैं जिसके साथ कम महामारी जोखिम है। नियमित स्वास्थ्य प्रोटोकॉल की निगरानी जारी रखें।",
	},
	TierModerate: {
		Tier:          TierModerate,
		Color:         "#f59e0b",
		DescriptionEn: "Moderate risk detected. Some environmental factors may increase susceptibility. Maintain hygiene practices and monitor health indicators.",
		DescriptionHi: "मध्यम जोखिम का पता चला है। कुछ पर्यावरणीय कारक संवेदनशीलता बढ़ा सकते हैं। स्वच्छता प्रथाओं को बनाए रखें और स्वास्थ्य संकेतकों की निगरानी करें।",
	},
	TierHigh: {
		Tier:          TierHigh,
		Color:         "#f97316",
		DescriptionEn: "High risk conditions present. Environmental factors significantly favor epidemic potential. Implement enhanced preventive measures and increase vigilance.",
		DescriptionHi: "उच्च जोखिम की स्थिति मौजूद है। पर्यावरणीय कारक महामारी की क्षमता को महत्वपूर्ण रूप से बढ़ाते हैं। बढ़ी हुई निवारक उपाय लागू करें और सतर्कता बढ़ाएं।",
	},
	TierCritical: {
		Tier:          TierCritical,
		Color:         "#ef4444",
		DescriptionEn: "Critical risk level detected. Immediate public health actions recommended. Environmental conditions highly favor epidemic spread. Activate emergency protocols.",
		DescriptionHi: "गंभीर जोखिम स्तर का पता चला है। तत्काल सार्वजनिक स्वास्थ्य कार्रवाई की सिफारिश की जाती है। पर्यावरणीय स्थितियां महामारी के प्रसार को अत्यधिक बढ़ावा देती हैं। आपातकालीन प्रोटोकॉल सक्रिय करें।",
	},
}

// Classify maps a score to its tier: <30 Low, <50 Moderate, <75 High,
// otherwise Critical. Pure and total; monotonic in score.
func Classify(score float64) TierInfo {
	switch {
	case score < 30:
		return tierTable[TierLow]
	case score < 50:
		return tierTable[TierModerate]
	case score < 75:
		return tierTable[TierHigh]
	default:
		return tierTable[TierCritical]
	}
}
