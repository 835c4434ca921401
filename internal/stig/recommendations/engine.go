// Package recommendations scores STIG families against security requirements
// and system design elements.
package recommendations

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"srtm-backend/internal/stig/catalog"
)

// GenerateRecommendations scores the built-in catalog with the default profile.
func GenerateRecommendations(requirements []Requirement, designElements []DesignElement) []Recommendation {
	return Generate(Input{Requirements: requirements, DesignElements: designElements})
}

// Generate returns one recommendation per family with a positive relevance
// score, ranked by score, then confidence, then catalog order. It never
// mutates its input.
func Generate(input Input) []Recommendation {
	families := input.Families
	if families == nil {
		families = catalog.Builtin()
	}
	profile := input.Profile
	if profile.isZero() {
		profile = DefaultProfile()
	}

	devEnv := isDevelopmentEnvironment(input.DesignElements)
	reqTexts := make([]string, len(input.Requirements))
	for i, r := range input.Requirements {
		reqTexts[i] = requirementText(r)
	}
	designTexts := make([]string, len(input.DesignElements))
	for i, el := range input.DesignElements {
		designTexts[i] = designText(el)
	}

	out := make([]Recommendation, 0, len(families))
	for _, family := range families {
		s := newScorer(family, profile)
		s.environment(devEnv)
		for i, r := range input.Requirements {
			s.requirement(r, reqTexts[i])
		}
		for i, el := range input.DesignElements {
			s.designElement(el, designTexts[i])
		}
		s.penalty(devEnv)

		rec := s.result()
		if rec.RelevanceScore <= 0 {
			continue
		}
		out = append(out, rec)
	}
	sortRecommendations(out)
	return out
}

type scorer struct {
	family  catalog.Family
	profile Profile
	appSec  bool

	score      float64
	breakdown  ScoreBreakdown
	reqIDs     []string
	reqSeen    map[string]bool
	designIDs  []string
	designSeen map[string]bool
	reasoning  []string
	exactMatch bool

	keywords    []string
	systemTypes []string
	controls    map[string]bool
}

func newScorer(family catalog.Family, profile Profile) *scorer {
	s := &scorer{
		family:      family,
		profile:     profile,
		appSec:      isAppSecurityLike(family.ID),
		reqIDs:      []string{},
		reqSeen:     map[string]bool{},
		designIDs:   []string{},
		designSeen:  map[string]bool{},
		reasoning:   []string{},
		keywords:    lowerAll(family.TriggerKeywords),
		systemTypes: lowerAll(family.ApplicableSystemTypes),
		controls:    make(map[string]bool, len(family.ControlFamilies)),
	}
	for _, c := range family.ControlFamilies {
		s.controls[strings.ToUpper(strings.TrimSpace(c))] = true
	}
	return s
}

func (s *scorer) environment(devEnv bool) {
	if !devEnv || !s.appSec {
		return
	}
	bonus := s.profile.EnvironmentBonus
	s.score += bonus
	s.breakdown.EnvironmentBonus += bonus
	s.reason("Development environment detected; application security guidance applies (+%s)", formatNumber(bonus))
}

func (s *scorer) requirement(r Requirement, text string) {
	if hits := countMatches(text, s.keywords); hits > 0 {
		weight := s.profile.RequirementKeywordWeight
		if s.appSec {
			weight = s.profile.RequirementKeywordWeightAppSec
		}
		points := float64(hits) * weight
		s.score += points
		s.breakdown.KeywordMatches += points
		s.addRequirement(r.ID)
		s.reason("Requirement %q matches %d keyword(s) (+%s)", label(r.Title, r.ID), hits, formatNumber(points))
	}

	code := strings.ToUpper(strings.TrimSpace(r.ControlFamily))
	if code != "" && s.controls[code] {
		bonus := s.profile.ControlFamilyBonus
		s.score += bonus
		s.breakdown.ControlFamilyMatches += bonus
		s.addRequirement(r.ID)
		s.reason("Requirement %q maps to control family %s (+%s)", label(r.Title, r.ID), code, formatNumber(bonus))
	}
}

func (s *scorer) designElement(el DesignElement, text string) {
	keywordHits := countMatches(text, s.keywords)
	// text includes the element's type.
	typeHits := countMatches(text, s.systemTypes)
	if keywordHits+typeHits > 0 {
		points := float64(keywordHits)*s.profile.DesignKeywordWeight + float64(typeHits)*s.profile.DesignTypeWeight
		s.score += points
		s.breakdown.DesignElementMatches += points
		s.addDesignElement(el.ID)
		s.reason("Design element %q matches %d keyword(s) and %d system type(s) (+%s)", label(el.Name, el.ID), keywordHits, typeHits, formatNumber(points))
	}

	if token, ok := exactTechnologyToken(s.family.ID, text); ok {
		bonus := s.profile.ExactTechnologyBonus
		s.score += bonus
		s.breakdown.TechnologyBonus += bonus
		s.exactMatch = true
		s.addDesignElement(el.ID)
		s.reason("Direct technology match: %q uses %s (+%s)", label(el.Name, el.ID), token, formatNumber(bonus))
	}
}

func (s *scorer) penalty(devEnv bool) {
	if !devEnv || !isInfrastructureLike(s.family.ID) {
		return
	}
	before := s.score
	s.score -= s.profile.InfrastructurePenalty
	if s.score < 0 {
		s.score = 0
	}
	if before > 0 {
		s.breakdown.Penalties += before - s.score
		s.reason("Infrastructure STIG deprioritized for a development environment (-%s)", formatNumber(s.profile.InfrastructurePenalty))
	}
}

func (s *scorer) result() Recommendation {
	score := s.score
	if score < 0 {
		score = 0
	}
	rec := Recommendation{
		Family:                 s.family.Clone(),
		RelevanceScore:         score,
		MatchingRequirements:   s.reqIDs,
		MatchingDesignElements: s.designIDs,
		Reasoning:              s.reasoning,
		ImplementationPriority: classify(score, s.family.Priority, s.profile),
		ScoreBreakdown:         s.breakdown,
	}
	if s.profile.Confidence {
		c := confidence(len(s.reqIDs), len(s.designIDs), s.family.Validated, s.exactMatch)
		rec.ConfidenceScore = &c
	}
	return rec
}

func (s *scorer) addRequirement(id string) {
	if s.reqSeen[id] {
		return
	}
	s.reqSeen[id] = true
	s.reqIDs = append(s.reqIDs, id)
}

func (s *scorer) addDesignElement(id string) {
	if s.designSeen[id] {
		return
	}
	s.designSeen[id] = true
	s.designIDs = append(s.designIDs, id)
}

func (s *scorer) reason(format string, args ...any) {
	s.reasoning = append(s.reasoning, fmt.Sprintf(format, args...))
}

func confidence(requirementMatches, designMatches int, validated, exactMatch bool) int {
	c := min(30, 10*requirementMatches) + min(40, 20*designMatches)
	if validated {
		c += 10
	}
	if exactMatch {
		c += 20
	}
	return min(c, 100)
}

func classify(score float64, priority catalog.Priority, profile Profile) ImplementationPriority {
	switch {
	case score >= profile.CriticalThreshold && priority == catalog.PriorityHigh:
		return PriorityCritical
	case score >= profile.HighThreshold || priority == catalog.PriorityHigh:
		return PriorityHigh
	case score >= profile.MediumThreshold || priority == catalog.PriorityMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func sortRecommendations(items []Recommendation) {
	sort.SliceStable(items, func(i, j int) bool {
		a := items[i]
		b := items[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		return confidenceValue(a) > confidenceValue(b)
	})
}

func confidenceValue(r Recommendation) int {
	if r.ConfidenceScore == nil {
		return 0
	}
	return *r.ConfidenceScore
}

func lowerAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.ToLower(strings.TrimSpace(item)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func label(name, id string) string {
	if strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	return id
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
