package recommendations

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownProfile = errors.New("unknown scoring profile")

// Profile is a versioned set of scoring weights and thresholds.
type Profile struct {
	Name    string `json:"name"`
	Version string `json:"version"`

	RequirementKeywordWeightAppSec float64 `json:"requirementKeywordWeightAppSec"`
	RequirementKeywordWeight       float64 `json:"requirementKeywordWeight"`
	ControlFamilyBonus             float64 `json:"controlFamilyBonus"`
	DesignKeywordWeight            float64 `json:"designKeywordWeight"`
	DesignTypeWeight               float64 `json:"designTypeWeight"`
	ExactTechnologyBonus           float64 `json:"exactTechnologyBonus"`
	EnvironmentBonus               float64 `json:"environmentBonus"`
	InfrastructurePenalty          float64 `json:"infrastructurePenalty"`

	CriticalThreshold float64 `json:"criticalThreshold"`
	HighThreshold     float64 `json:"highThreshold"`
	MediumThreshold   float64 `json:"mediumThreshold"`

	HoursPerRequirement float64 `json:"hoursPerRequirement"`
	Confidence          bool    `json:"confidence"`
}

var (
	ProfileStandard = Profile{
		Name:                           "standard",
		Version:                        "1.0",
		RequirementKeywordWeightAppSec: 3,
		RequirementKeywordWeight:       2,
		ControlFamilyBonus:             3,
		DesignKeywordWeight:            1.5,
		DesignTypeWeight:               2.5,
		ExactTechnologyBonus:           4,
		EnvironmentBonus:               3,
		InfrastructurePenalty:          3,
		CriticalThreshold:              12,
		HighThreshold:                  8,
		MediumThreshold:                4,
		HoursPerRequirement:            1.2,
	}

	ProfileValidated = Profile{
		Name:                           "validated",
		Version:                        "2.0",
		RequirementKeywordWeightAppSec: 3,
		RequirementKeywordWeight:       2,
		ControlFamilyBonus:             3,
		DesignKeywordWeight:            2,
		DesignTypeWeight:               3,
		ExactTechnologyBonus:           6,
		EnvironmentBonus:               5,
		InfrastructurePenalty:          3,
		CriticalThreshold:              10,
		HighThreshold:                  7,
		MediumThreshold:                4,
		HoursPerRequirement:            1.5,
		Confidence:                     true,
	}
)

// DefaultProfile returns the profile used when none is requested.
func DefaultProfile() Profile {
	return ProfileValidated
}

// Profiles lists the known profiles, default first.
func Profiles() []Profile {
	return []Profile{ProfileValidated, ProfileStandard}
}

// ProfileByName resolves a profile name. An empty name yields the default.
func ProfileByName(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultProfile(), nil
	case ProfileValidated.Name:
		return ProfileValidated, nil
	case ProfileStandard.Name:
		return ProfileStandard, nil
	default:
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
}

func (p Profile) isZero() bool {
	return p.Name == ""
}
