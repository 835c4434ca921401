package designelements

import (
	"strings"
	"time"

	"srtm-backend/internal/stig/recommendations"
)

// DesignElement is a component of the system under assessment.
type DesignElement struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Type           string    `json:"type"`
	Technology     string    `json:"technology,omitempty"`
	RequirementIDs []string  `json:"requirementIds"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Input carries the user-editable fields of a design element.
type Input struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Description    string   `json:"description" validate:"max=5000"`
	Type           string   `json:"type" validate:"max=100"`
	Technology     string   `json:"technology" validate:"max=200"`
	RequirementIDs []string `json:"requirementIds" validate:"max=500,dive,required,max=100"`
}

func (in Input) normalized() Input {
	ids := make([]string, 0, len(in.RequirementIDs))
	seen := make(map[string]bool, len(in.RequirementIDs))
	for _, id := range in.RequirementIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return Input{
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Type:           strings.TrimSpace(in.Type),
		Technology:     strings.TrimSpace(in.Technology),
		RequirementIDs: ids,
	}
}

// Filter narrows a list. Query is a case-insensitive substring of name,
// description or technology.
type Filter struct {
	Query         string
	Type          string
	RequirementID string
}

// Matches reports whether el passes the filter.
func (f Filter) Matches(el DesignElement) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		text := strings.ToLower(el.Name + "\n" + el.Description + "\n" + el.Technology)
		if !strings.Contains(text, q) {
			return false
		}
	}
	if t := strings.TrimSpace(f.Type); t != "" && !strings.EqualFold(t, el.Type) {
		return false
	}
	if rid := strings.TrimSpace(f.RequirementID); rid != "" && !el.LinksTo(rid) {
		return false
	}
	return true
}

// LinksTo reports whether the element is explicitly linked to a requirement.
func (el DesignElement) LinksTo(requirementID string) bool {
	for _, id := range el.RequirementIDs {
		if id == requirementID {
			return true
		}
	}
	return false
}

func (el DesignElement) clone() DesignElement {
	el.RequirementIDs = append([]string{}, el.RequirementIDs...)
	return el
}

// EngineDesignElements converts a list for the recommendation engine.
func EngineDesignElements(items []DesignElement) []recommendations.DesignElement {
	out := make([]recommendations.DesignElement, 0, len(items))
	for _, el := range items {
		out = append(out, recommendations.DesignElement{
			ID:          el.ID,
			Name:        el.Name,
			Description: el.Description,
			Type:        el.Type,
			Technology:  el.Technology,
		})
	}
	return out
}
