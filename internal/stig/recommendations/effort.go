package recommendations

import "math"

const hoursPerDay = 8

// PriorityCounts tallies recommendations per implementation priority.
type PriorityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Effort is the aggregate implementation estimate for a set of recommendations.
type Effort struct {
	TotalRequirements int            `json:"totalRequirements"`
	EstimatedHours    float64        `json:"estimatedHours"`
	EstimatedDays     int            `json:"estimatedDays"`
	PriorityCounts    PriorityCounts `json:"priorityCounts"`
}

// EstimateEffort sums the STIG requirement counts of recs. Each priority level
// is counted explicitly; unknown priorities are not counted anywhere.
func EstimateEffort(recs []Recommendation, profile Profile) Effort {
	if profile.isZero() {
		profile = DefaultProfile()
	}
	var out Effort
	for _, rec := range recs {
		out.TotalRequirements += rec.Family.EstimatedRequirements
		switch rec.ImplementationPriority {
		case PriorityCritical:
			out.PriorityCounts.Critical++
		case PriorityHigh:
			out.PriorityCounts.High++
		case PriorityMedium:
			out.PriorityCounts.Medium++
		case PriorityLow:
			out.PriorityCounts.Low++
		}
	}
	out.EstimatedHours = float64(out.TotalRequirements) * profile.HoursPerRequirement
	out.EstimatedDays = int(math.Ceil(out.EstimatedHours / hoursPerDay))
	return out
}

// FilterByFamily keeps the recommendations whose family id is in ids, in order.
// An empty ids list keeps everything.
func FilterByFamily(recs []Recommendation, ids []string) []Recommendation {
	if len(ids) == 0 {
		return recs
	}
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	out := make([]Recommendation, 0, len(ids))
	for _, rec := range recs {
		if keep[rec.Family.ID] {
			out = append(out, rec)
		}
	}
	return out
}
