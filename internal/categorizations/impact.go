package categorizations

import "strings"

// ImpactLevel is a FIPS 199 potential impact level.
type ImpactLevel string

const (
	ImpactLow      ImpactLevel = "Low"
	ImpactModerate ImpactLevel = "Moderate"
	ImpactHigh     ImpactLevel = "High"
)

func (l ImpactLevel) rank() int {
	switch l {
	case ImpactHigh:
		return 3
	case ImpactModerate:
		return 2
	case ImpactLow:
		return 1
	default:
		return 0
	}
}

// ParseImpactLevel normalizes a level name, ignoring case. Unknown names are
// returned trimmed so validation can reject them.
func ParseImpactLevel(raw string) ImpactLevel {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "low":
		return ImpactLow
	case "moderate":
		return ImpactModerate
	case "high":
		return ImpactHigh
	default:
		return ImpactLevel(s)
	}
}

func maxLevel(levels ...ImpactLevel) ImpactLevel {
	out := ImpactLow
	for _, l := range levels {
		if l.rank() > out.rank() {
			out = l
		}
	}
	return out
}

// OverallImpact is the security categorization of a whole system.
type OverallImpact struct {
	Confidentiality ImpactLevel `json:"confidentiality"`
	Integrity       ImpactLevel `json:"integrity"`
	Availability    ImpactLevel `json:"availability"`
	Overall         ImpactLevel `json:"overall"`
}

// HighWaterMark applies the FIPS 199 high-water mark: each objective takes
// the highest level among the information types, and the overall level is
// the highest of the three. No information types yields Low across the board.
func HighWaterMark(types []InformationType) OverallImpact {
	out := OverallImpact{Confidentiality: ImpactLow, Integrity: ImpactLow, Availability: ImpactLow}
	for _, t := range types {
		out.Confidentiality = maxLevel(out.Confidentiality, t.Confidentiality)
		out.Integrity = maxLevel(out.Integrity, t.Integrity)
		out.Availability = maxLevel(out.Availability, t.Availability)
	}
	out.Overall = maxLevel(out.Confidentiality, out.Integrity, out.Availability)
	return out
}
