package knowledge

import (
	"math"
	"testing"

	"telemed-be/internal/entity"

	"github.com/google/uuid"
)

func disease(name string, keywords ...string) *entity.Disease {
	return &entity.Disease{
		Id:              uuid.New(),
		NameFr:          name,
		SymptomKeywords: keywords,
	}
}

func TestMatchDiseases(t *testing.T) {
	grippe := disease("Grippe", "fièvre", "toux", "courbatures")
	rhume := disease("Rhume", "nez qui coule", "toux")
	angine := disease("Angine", "mal de gorge")

	tests := []struct {
		name           string
		reported       []string
		wantOrder      []string
		wantTopScore   float64
		wantTopMatches int
	}{
		{
			name:           "two of three keywords",
			reported:       []string{"fièvre", "toux"},
			wantOrder:      []string{"Grippe", "Rhume"},
			wantTopScore:   66.66,
			wantTopMatches: 2,
		},
		{
			name:           "full overlap wins",
			reported:       []string{"nez qui coule", "toux"},
			wantOrder:      []string{"Rhume", "Grippe"},
			wantTopScore:   100,
			wantTopMatches: 2,
		},
		{
			name:           "case and whitespace are normalized",
			reported:       []string{"  FIÈVRE ", "Toux"},
			wantOrder:      []string{"Grippe", "Rhume"},
			wantTopScore:   66.66,
			wantTopMatches: 2,
		},
		{
			name:      "zero overlap diseases are omitted",
			reported:  []string{"mal de gorge"},
			wantOrder: []string{"Angine"},

			wantTopScore:   100,
			wantTopMatches: 1,
		},
	}

	diseases := []*entity.Disease{grippe, rhume, angine}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := MatchDiseases(diseases, tt.reported)

			if len(matches) != len(tt.wantOrder) {
				t.Fatalf("match count = %d, want %d", len(matches), len(tt.wantOrder))
			}
			for i, want := range tt.wantOrder {
				if matches[i].Disease.NameFr != want {
					t.Errorf("match[%d] = %s, want %s", i, matches[i].Disease.NameFr, want)
				}
			}
			if math.Abs(matches[0].Confidence-tt.wantTopScore) > 1 {
				t.Errorf("top confidence = %.2f, want ~%.2f", matches[0].Confidence, tt.wantTopScore)
			}
			if len(matches[0].MatchingSymptoms) != tt.wantTopMatches {
				t.Errorf("top matching symptoms = %d, want %d", len(matches[0].MatchingSymptoms), tt.wantTopMatches)
			}
		})
	}
}

func TestMatchDiseasesEmptyInput(t *testing.T) {
	diseases := []*entity.Disease{disease("Grippe", "fièvre")}

	if got := MatchDiseases(diseases, nil); got != nil {
		t.Errorf("expected nil for no reported symptoms, got %v", got)
	}
	if got := MatchDiseases(diseases, []string{"  ", ""}); got != nil {
		t.Errorf("expected nil for blank reported symptoms, got %v", got)
	}
}

func TestMatchDiseasesDuplicateKeywords(t *testing.T) {
	// Duplicate keywords must not inflate the denominator.
	d := disease("Grippe", "fièvre", "Fièvre", "toux")

	matches := MatchDiseases([]*entity.Disease{d}, []string{"fièvre"})
	if len(matches) != 1 {
		t.Fatalf("match count = %d, want 1", len(matches))
	}
	if math.Abs(matches[0].Confidence-50) > 0.01 {
		t.Errorf("confidence = %.2f, want 50", matches[0].Confidence)
	}
}

func TestMatchSymptoms(t *testing.T) {
	fever := &entity.Symptom{Id: uuid.New(), NameFr: "Fièvre", AssociatedKeywords: []string{"température", "chaud"}}
	cough := &entity.Symptom{Id: uuid.New(), NameFr: "Toux", AssociatedKeywords: []string{"tousser"}}
	symptoms := []*entity.Symptom{fever, cough}

	resolved, unresolved := MatchSymptoms(symptoms, []string{"température", "TOUSSER", "vertiges", "fièvre"})

	if len(resolved) != 2 {
		t.Fatalf("resolved = %d, want 2", len(resolved))
	}
	if resolved[0].NameFr != "Fièvre" || resolved[1].NameFr != "Toux" {
		t.Errorf("resolved order = [%s %s], want [Fièvre Toux]", resolved[0].NameFr, resolved[1].NameFr)
	}
	if len(unresolved) != 1 || unresolved[0] != "vertiges" {
		t.Errorf("unresolved = %v, want [vertiges]", unresolved)
	}
}
