package recommendations

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"srtm-backend/internal/stig/catalog"
)

var wordPool = []string{
	"windows server", "postgresql", "node.js api", "cisco router", "linux",
	"docker container", "web server", "authentication", "kubernetes cluster",
	"firewall", "database", "vmware esxi", "oracle", "audit", "quarterly review",
	"payroll", "Operating System", "", "   ", "XSS",
}

var controlPool = []string{"", "AC", "AU", "sc", "ZZ", "IA"}

func buildInput(reqWords, designWords []int) ([]Requirement, []DesignElement) {
	reqs := make([]Requirement, 0, len(reqWords))
	for i, w := range reqWords {
		reqs = append(reqs, Requirement{
			ID:            "req-" + string(rune('a'+i%26)),
			Title:         wordPool[w],
			Description:   wordPool[(w+i)%len(wordPool)],
			ControlFamily: controlPool[w%len(controlPool)],
		})
	}
	des := make([]DesignElement, 0, len(designWords))
	for i, w := range designWords {
		des = append(des, DesignElement{
			ID:   "de-" + string(rune('a'+i%26)),
			Name: wordPool[w],
			Type: wordPool[(w*7+i)%len(wordPool)],
		})
	}
	return reqs, des
}

func scoreFor(recs []Recommendation, id string) float64 {
	for _, r := range recs {
		if r.Family.ID == id {
			return r.RelevanceScore
		}
	}
	return 0
}

func wordIndexes() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, len(wordPool)-1))
}

func newProperties(t *testing.T) *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

func TestPropertyRequirementMonotonicity(t *testing.T) {
	families := catalog.Builtin()
	properties := newProperties(t)

	properties.Property("adding a keyword requirement never lowers that family's score", prop.ForAll(
		func(reqWords, designWords []int, familyIdx, kwIdx int) bool {
			family := families[familyIdx%len(families)]
			keyword := family.TriggerKeywords[kwIdx%len(family.TriggerKeywords)]
			reqs, des := buildInput(reqWords, designWords)

			before := scoreFor(GenerateRecommendations(reqs, des), family.ID)
			added := append(append([]Requirement{}, reqs...), Requirement{ID: "extra", Title: keyword})
			after := scoreFor(GenerateRecommendations(added, des), family.ID)
			return after >= before
		},
		wordIndexes(), wordIndexes(), gen.IntRange(0, 100), gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

func TestPropertyDesignElementMonotonicity(t *testing.T) {
	families := catalog.Builtin()
	properties := newProperties(t)

	properties.Property("adding a keyword design element never lowers that family's score while the environment is unchanged", prop.ForAll(
		func(reqWords, designWords []int, familyIdx, kwIdx int) bool {
			family := families[familyIdx%len(families)]
			keyword := family.TriggerKeywords[kwIdx%len(family.TriggerKeywords)]
			reqs, des := buildInput(reqWords, designWords)
			added := append(append([]DesignElement{}, des...), DesignElement{ID: "extra", Name: keyword})
			if isDevelopmentEnvironment(des) != isDevelopmentEnvironment(added) {
				return true
			}

			before := scoreFor(GenerateRecommendations(reqs, des), family.ID)
			after := scoreFor(GenerateRecommendations(reqs, added), family.ID)
			return after >= before
		},
		wordIndexes(), wordIndexes(), gen.IntRange(0, 100), gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

func TestPropertyScoresArePositiveAndSorted(t *testing.T) {
	properties := newProperties(t)

	properties.Property("scores are floored and ranked", prop.ForAll(
		func(reqWords, designWords []int, standard bool) bool {
			reqs, des := buildInput(reqWords, designWords)
			profile := ProfileValidated
			if standard {
				profile = ProfileStandard
			}
			recs := Generate(Input{Requirements: reqs, DesignElements: des, Profile: profile})
			for i, r := range recs {
				if r.RelevanceScore <= 0 {
					return false
				}
				if c := r.ConfidenceScore; c != nil && (*c < 0 || *c > 100) {
					return false
				}
				if i == 0 {
					continue
				}
				prev := recs[i-1]
				if prev.RelevanceScore < r.RelevanceScore {
					return false
				}
				if prev.RelevanceScore == r.RelevanceScore && confidenceValue(prev) < confidenceValue(r) {
					return false
				}
			}
			return true
		},
		wordIndexes(), wordIndexes(), gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestPropertyBreakdownAddsUp(t *testing.T) {
	properties := newProperties(t)

	properties.Property("score equals its breakdown", prop.ForAll(
		func(reqWords, designWords []int) bool {
			reqs, des := buildInput(reqWords, designWords)
			for _, r := range GenerateRecommendations(reqs, des) {
				b := r.ScoreBreakdown
				sum := b.KeywordMatches + b.ControlFamilyMatches + b.DesignElementMatches +
					b.TechnologyBonus + b.EnvironmentBonus - b.Penalties
				if sum != r.RelevanceScore {
					return false
				}
			}
			return true
		},
		wordIndexes(), wordIndexes(),
	))

	properties.TestingRun(t)
}

func TestPropertyIdempotence(t *testing.T) {
	properties := newProperties(t)

	properties.Property("identical input yields identical output", prop.ForAll(
		func(reqWords, designWords []int) bool {
			reqs, des := buildInput(reqWords, designWords)
			reqsCopy, desCopy := buildInput(reqWords, designWords)
			return reflect.DeepEqual(GenerateRecommendations(reqs, des), GenerateRecommendations(reqsCopy, desCopy))
		},
		wordIndexes(), wordIndexes(),
	))

	properties.TestingRun(t)
}

func TestPropertyMatchingIDsAreUnique(t *testing.T) {
	properties := newProperties(t)

	properties.Property("matching ids are deduplicated", prop.ForAll(
		func(reqWords, designWords []int) bool {
			reqs, des := buildInput(reqWords, designWords)
			for _, r := range GenerateRecommendations(reqs, des) {
				if hasDuplicates(r.MatchingRequirements) || hasDuplicates(r.MatchingDesignElements) {
					return false
				}
			}
			return true
		},
		wordIndexes(), wordIndexes(),
	))

	properties.TestingRun(t)
}

func hasDuplicates(items []string) bool {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := strings.TrimSpace(item)
		if seen[key] {
			return true
		}
		seen[key] = true
	}
	return false
}
