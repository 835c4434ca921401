package requirements

import (
	"strings"
	"time"

	"srtm-backend/internal/stig/recommendations"
)

// Requirement is a security requirement tracked in the SRTM.
type Requirement struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	ControlFamily string    `json:"controlFamily,omitempty"`
	Source        string    `json:"source,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Input carries the user-editable fields of a requirement.
type Input struct {
	Title         string `json:"title" validate:"required,max=300"`
	Description   string `json:"description" validate:"max=5000"`
	Category      string `json:"category" validate:"max=100"`
	ControlFamily string `json:"controlFamily" validate:"omitempty,controlfamily"`
	Source        string `json:"source" validate:"max=300"`
}

func (in Input) normalized() Input {
	return Input{
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Category:      strings.TrimSpace(in.Category),
		ControlFamily: strings.ToUpper(strings.TrimSpace(in.ControlFamily)),
		Source:        strings.TrimSpace(in.Source),
	}
}

// Filter narrows a list. Query is a case-insensitive substring of the title
// or description; Category and ControlFamily match exactly, ignoring case.
type Filter struct {
	Query         string
	Category      string
	ControlFamily string
}

// Matches reports whether r passes the filter.
func (f Filter) Matches(r Requirement) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(r.Title), q) && !strings.Contains(strings.ToLower(r.Description), q) {
			return false
		}
	}
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, r.Category) {
		return false
	}
	if cf := strings.TrimSpace(f.ControlFamily); cf != "" && !strings.EqualFold(cf, r.ControlFamily) {
		return false
	}
	return true
}

// EngineRequirement is the view of r the recommendation engine scores.
func (r Requirement) EngineRequirement() recommendations.Requirement {
	return recommendations.Requirement{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Category:      r.Category,
		ControlFamily: r.ControlFamily,
		Source:        r.Source,
	}
}

// EngineRequirements converts a list for the recommendation engine.
func EngineRequirements(items []Requirement) []recommendations.Requirement {
	out := make([]recommendations.Requirement, 0, len(items))
	for _, r := range items {
		out = append(out, r.EngineRequirement())
	}
	return out
}
