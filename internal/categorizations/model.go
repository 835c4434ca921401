package categorizations

import (
	"strings"
	"time"
)

// InformationType is a NIST SP 800-60 information type with its provisional impact levels.
type InformationType struct {
	ID              string      `json:"id,omitempty" validate:"max=50"`
	Name            string      `json:"name" validate:"required,max=200"`
	Confidentiality ImpactLevel `json:"confidentiality" validate:"oneof=Low Moderate High"`
	Integrity       ImpactLevel `json:"integrity" validate:"oneof=Low Moderate High"`
	Availability    ImpactLevel `json:"availability" validate:"oneof=Low Moderate High"`
}

// Categorization is the FIPS 199 categorization of one system.
type Categorization struct {
	ID               string            `json:"id"`
	SystemName       string            `json:"systemName"`
	Description      string            `json:"description"`
	InformationTypes []InformationType `json:"informationTypes"`
	OverallImpact    OverallImpact     `json:"overallImpact"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Input carries the user-editable fields of a categorization.
type Input struct {
	SystemName       string            `json:"systemName" validate:"required,max=200"`
	Description      string            `json:"description" validate:"max=5000"`
	InformationTypes []InformationType `json:"informationTypes" validate:"max=200,dive"`
}

func (in Input) normalized() Input {
	types := make([]InformationType, 0, len(in.InformationTypes))
	for _, t := range in.InformationTypes {
		types = append(types, InformationType{
			ID:              strings.TrimSpace(t.ID),
			Name:            strings.TrimSpace(t.Name),
			Confidentiality: ParseImpactLevel(string(t.Confidentiality)),
			Integrity:       ParseImpactLevel(string(t.Integrity)),
			Availability:    ParseImpactLevel(string(t.Availability)),
		})
	}
	return Input{
		SystemName:       strings.TrimSpace(in.SystemName),
		Description:      strings.TrimSpace(in.Description),
		InformationTypes: types,
	}
}

// Filter narrows a list by system name substring and overall impact.
type Filter struct {
	Query   string
	Overall string
}

// Matches reports whether c passes the filter.
func (f Filter) Matches(c Categorization) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !strings.Contains(strings.ToLower(c.SystemName), q) {
		return false
	}
	if o := strings.TrimSpace(f.Overall); o != "" && ParseImpactLevel(o) != c.OverallImpact.Overall {
		return false
	}
	return true
}

func (c Categorization) clone() Categorization {
	c.InformationTypes = append([]InformationType{}, c.InformationTypes...)
	return c
}
