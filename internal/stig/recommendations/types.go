package recommendations

import "srtm-backend/internal/stig/catalog"

// ImplementationPriority ranks how urgently a recommended STIG should be applied.
type ImplementationPriority string

const (
	PriorityCritical ImplementationPriority = "Critical"
	PriorityHigh     ImplementationPriority = "High"
	PriorityMedium   ImplementationPriority = "Medium"
	PriorityLow      ImplementationPriority = "Low"
)

// Recommendation is one scored STIG family.
type Recommendation struct {
	Family                 catalog.Family         `json:"stigFamily"`
	RelevanceScore         float64                `json:"relevanceScore"`
	ConfidenceScore        *int                   `json:"confidenceScore,omitempty"`
	MatchingRequirements   []string               `json:"matchingRequirements"`
	MatchingDesignElements []string               `json:"matchingDesignElements"`
	Reasoning              []string               `json:"reasoning"`
	ImplementationPriority ImplementationPriority `json:"implementationPriority"`
	ScoreBreakdown         ScoreBreakdown         `json:"scoreBreakdown"`
}

// ScoreBreakdown holds the sub-totals that make up a relevance score.
// Penalties is the amount actually subtracted after flooring at zero.
type ScoreBreakdown struct {
	KeywordMatches       float64 `json:"keywordMatches"`
	ControlFamilyMatches float64 `json:"controlFamilyMatches"`
	DesignElementMatches float64 `json:"designElementMatches"`
	TechnologyBonus      float64 `json:"technologyBonus"`
	EnvironmentBonus     float64 `json:"environmentBonus"`
	Penalties            float64 `json:"penalties"`
}

// Requirement is a minimal security requirement representation used by the engine.
type Requirement struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	ControlFamily string `json:"controlFamily,omitempty"`
	Source        string `json:"source,omitempty"`
}

// DesignElement is a minimal system design element representation used by the engine.
type DesignElement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Technology  string `json:"technology,omitempty"`
}

// Input is everything a recommendation pass needs. A nil Families slice
// means the built-in catalog; a zero Profile means DefaultProfile.
type Input struct {
	Requirements   []Requirement
	DesignElements []DesignElement
	Families       []catalog.Family
	Profile        Profile
}
