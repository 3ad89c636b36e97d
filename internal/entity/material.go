package entity

// Material is one entry of the canonical vocabulary stored in the Materials
// table. Description is unique across the vocabulary; CO2Savings is
// informational and plays no part in matching.
type Material struct {
	Category    string  `json:"category_name"`
	Description string  `json:"description"`
	CO2Savings  float64 `json:"co2_savings"`
}

// MaterialMatch is a reconciled (category, description) pair drawn from the
// vocabulary. Matches compare by value, so they deduplicate in map keys.
type MaterialMatch struct {
	Category    string `json:"category_name"`
	Description string `json:"description"`
}

// NormalizedBusiness carries a raw record together with its normalized
// schedule and reconciled materials, ready for batch emission. Ref is the
// within-batch synthetic identifier used to correlate child rows to the
// parent row before the real key exists.
type NormalizedBusiness struct {
	Business
	Ref          int             `json:"ref"`
	Schedule     []DaySchedule   `json:"schedule"`
	Matches      []MaterialMatch `json:"matched_materials"`
	PhoneE164    *string         `json:"phone_e164,omitempty"`
	QualityScore int             `json:"quality_score"`
}
