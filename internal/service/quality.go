package service

import "github.com/octobees/recycling-finder/internal/entity"

// Category weights for the record quality score. The score is advisory: it
// travels with the normalized export so analysts can rank how complete a
// scraped record is, and it never influences emission.
const (
	maxContactScore  = 30
	maxScheduleScore = 30
	maxMaterialScore = 30
	maxProfileScore  = 10
)

// ComputeQuality scores a normalized record from 0 to 100 based on contact
// completeness, schedule coverage, material matches, and profile signals.
func ComputeQuality(nb entity.NormalizedBusiness) int {
	return scoreContact(nb) + scoreSchedule(nb) + scoreMaterials(nb) + scoreProfile(nb)
}

func scoreContact(nb entity.NormalizedBusiness) int {
	score := 0
	if nb.PhoneE164 != nil {
		score += 15
	} else if nb.Phone != nil && *nb.Phone != "" {
		score += 5
	}
	if nb.Website != nil && *nb.Website != "" {
		score += 15
	}
	if score > maxContactScore {
		return maxContactScore
	}
	return score
}

func scoreSchedule(nb entity.NormalizedBusiness) int {
	// Full marks for a complete week; partial weeks scale linearly.
	score := len(nb.Schedule) * maxScheduleScore / 7
	if score > maxScheduleScore {
		return maxScheduleScore
	}
	return score
}

func scoreMaterials(nb entity.NormalizedBusiness) int {
	score := len(nb.Matches) * 10
	if score > maxMaterialScore {
		return maxMaterialScore
	}
	return score
}

func scoreProfile(nb entity.NormalizedBusiness) int {
	score := 0
	if nb.Rating != nil {
		score += 5
	}
	if nb.Address != "" {
		score += 5
	}
	if score > maxProfileScore {
		return maxProfileScore
	}
	return score
}
