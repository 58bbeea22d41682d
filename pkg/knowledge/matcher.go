package knowledge

import (
	"sort"
	"strings"

	"telemed-be/internal/entity"
)

// DiseaseMatch is a scored candidate from keyword matching. Confidence is a
// percentage: matched keywords over the disease's total symptom keywords.
type DiseaseMatch struct {
	Disease          *entity.Disease
	Confidence       float64
	MatchingSymptoms []string
}

// MatchDiseases scores every disease against the reported symptoms and
// returns candidates sorted by descending confidence. Matching is
// case-insensitive on whole keywords. Diseases with no overlap are omitted.
func MatchDiseases(diseases []*entity.Disease, reportedSymptoms []string) []DiseaseMatch {
	reported := make(map[string]struct{}, len(reportedSymptoms))
	for _, s := range reportedSymptoms {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			reported[s] = struct{}{}
		}
	}
	if len(reported) == 0 {
		return nil
	}

	matches := make([]DiseaseMatch, 0, len(diseases))
	for _, d := range diseases {
		if len(d.SymptomKeywords) == 0 {
			continue
		}

		var matching []string
		seen := make(map[string]struct{})
		for _, kw := range d.SymptomKeywords {
			lower := strings.ToLower(strings.TrimSpace(kw))
			if lower == "" {
				continue
			}
			if _, dup := seen[lower]; dup {
				continue
			}
			seen[lower] = struct{}{}
			if _, ok := reported[lower]; ok {
				matching = append(matching, lower)
			}
		}
		if len(matching) == 0 {
			continue
		}

		confidence := float64(len(matching)) / float64(len(seen)) * 100.0
		matches = append(matches, DiseaseMatch{
			Disease:          d,
			Confidence:       confidence,
			MatchingSymptoms: matching,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})

	return matches
}

// MatchSymptoms resolves free-text symptom mentions to known symptom entries
// through their associated keywords. Each mention resolves to at most one
// symptom; unresolved mentions are returned as-is in the second slice.
func MatchSymptoms(symptoms []*entity.Symptom, mentions []string) ([]*entity.Symptom, []string) {
	byKeyword := make(map[string]*entity.Symptom)
	for _, s := range symptoms {
		byKeyword[strings.ToLower(s.NameFr)] = s
		for _, kw := range s.AssociatedKeywords {
			byKeyword[strings.ToLower(strings.TrimSpace(kw))] = s
		}
	}

	var resolved []*entity.Symptom
	var unresolved []string
	seen := make(map[string]struct{})
	for _, m := range mentions {
		lower := strings.ToLower(strings.TrimSpace(m))
		if lower == "" {
			continue
		}
		if s, ok := byKeyword[lower]; ok {
			if _, dup := seen[s.Id.String()]; !dup {
				seen[s.Id.String()] = struct{}{}
				resolved = append(resolved, s)
			}
		} else {
			unresolved = append(unresolved, m)
		}
	}

	return resolved, unresolved
}
