// Package catalog holds the STIG family catalog and the repository that owns
// its versioned snapshots.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Priority is the static authorial weight of a STIG family.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var (
	ErrFamilyNotFound   = errors.New("stig family not found")
	ErrInvalidCatalog   = errors.New("invalid catalog")
	ErrRevisionNotFound = errors.New("catalog revision not found")
)

// Family describes one DISA STIG (or SRG) and the signals that make it relevant.
type Family struct {
	ID                    string   `json:"id" yaml:"id"`
	Name                  string   `json:"name" yaml:"name"`
	Description           string   `json:"description" yaml:"description"`
	ApplicableSystemTypes []string `json:"applicableSystemTypes" yaml:"applicableSystemTypes"`
	TriggerKeywords       []string `json:"triggerKeywords" yaml:"triggerKeywords"`
	ControlFamilies       []string `json:"controlFamilies" yaml:"controlFamilies"`
	Priority              Priority `json:"priority" yaml:"priority"`
	EstimatedRequirements int      `json:"estimatedRequirements" yaml:"estimatedRequirements"`
	Version               string   `json:"version,omitempty" yaml:"version,omitempty"`
	ReleaseDate           string   `json:"releaseDate,omitempty" yaml:"releaseDate,omitempty"`
	StigID                string   `json:"stigId,omitempty" yaml:"stigId,omitempty"`
	Validated             bool     `json:"validated" yaml:"validated"`
}

// Clone returns a deep copy of f.
func (f Family) Clone() Family {
	out := f
	out.ApplicableSystemTypes = append([]string(nil), f.ApplicableSystemTypes...)
	out.TriggerKeywords = append([]string(nil), f.TriggerKeywords...)
	out.ControlFamilies = append([]string(nil), f.ControlFamilies...)
	return out
}

// ParsePriority normalizes a priority label. The zero value and unknown labels fail.
func ParsePriority(raw string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return PriorityHigh, true
	case "medium":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	default:
		return "", false
	}
}

// normalize trims text fields, lowercases keywords and uppercases control
// family codes so scoring can compare them directly.
func normalize(f Family) Family {
	out := f.Clone()
	out.ID = strings.TrimSpace(out.ID)
	out.Name = strings.TrimSpace(out.Name)
	out.Description = strings.TrimSpace(out.Description)
	out.TriggerKeywords = cleanList(out.TriggerKeywords, strings.ToLower)
	out.ControlFamilies = cleanList(out.ControlFamilies, strings.ToUpper)
	out.ApplicableSystemTypes = cleanList(out.ApplicableSystemTypes, nil)
	if p, ok := ParsePriority(string(out.Priority)); ok {
		out.Priority = p
	}
	return out
}

func cleanList(items []string, transform func(string) string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		v := strings.TrimSpace(item)
		if transform != nil {
			v = transform(v)
		}
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Validate checks a full catalog and returns normalized copies of its families.
func Validate(families []Family) ([]Family, error) {
	if len(families) == 0 {
		return nil, fmt.Errorf("%w: no families", ErrInvalidCatalog)
	}
	out := make([]Family, 0, len(families))
	seen := make(map[string]bool, len(families))
	for i, raw := range families {
		f := normalize(raw)
		if err := validateFamily(f); err != nil {
			return nil, fmt.Errorf("%w: family %d: %v", ErrInvalidCatalog, i, err)
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("%w: duplicate family id %q", ErrInvalidCatalog, f.ID)
		}
		seen[f.ID] = true
		out = append(out, f)
	}
	return out, nil
}

func validateFamily(f Family) error {
	switch {
	case f.ID == "":
		return errors.New("id is required")
	case f.Name == "":
		return fmt.Errorf("%s: name is required", f.ID)
	case len(f.TriggerKeywords) == 0:
		return fmt.Errorf("%s: at least one trigger keyword is required", f.ID)
	case f.EstimatedRequirements < 0:
		return fmt.Errorf("%s: estimatedRequirements must not be negative", f.ID)
	}
	if _, ok := ParsePriority(string(f.Priority)); !ok {
		return fmt.Errorf("%s: priority %q must be High, Medium or Low", f.ID, f.Priority)
	}
	return nil
}

func cloneAll(families []Family) []Family {
	out := make([]Family, len(families))
	for i, f := range families {
		out[i] = f.Clone()
	}
	return out
}
