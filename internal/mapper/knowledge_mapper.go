package mapper

import (
	"time"

	"telemed-be/internal/entity"
	"telemed-be/internal/model"

	"gorm.io/datatypes"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

// Disease Mappers

func (m *KnowledgeMapper) DiseaseToEntity(d *model.Disease) *entity.Disease {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Disease{
		Id:                   d.Id,
		NameFr:               d.NameFr,
		ICD10Code:            derefString(d.ICD10Code),
		Description:          derefString(d.Description),
		Severity:             derefInt(d.Severity),
		Prevalence:           derefString(d.Prevalence),
		TriageRecommendation: derefString(d.TriageRecommendation),
		SymptomKeywords:      []string(d.SymptomKeywords),
		CauseKeywords:        []string(d.CauseKeywords),
		RiskFactorKeywords:   []string(d.RiskFactorKeywords),
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            updatedAt,
	}
}

func (m *KnowledgeMapper) DiseaseToModel(d *entity.Disease) *model.Disease {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Disease{
		Id:                   d.Id,
		NameFr:               d.NameFr,
		ICD10Code:            refString(d.ICD10Code),
		Description:          refString(d.Description),
		Severity:             refInt(d.Severity),
		Prevalence:           refString(d.Prevalence),
		TriageRecommendation: refString(d.TriageRecommendation),
		SymptomKeywords:      datatypes.JSONSlice[string](d.SymptomKeywords),
		CauseKeywords:        datatypes.JSONSlice[string](d.CauseKeywords),
		RiskFactorKeywords:   datatypes.JSONSlice[string](d.RiskFactorKeywords),
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            updatedAt,
	}
}

// Symptom Mappers

func (m *KnowledgeMapper) SymptomToEntity(s *model.Symptom) *entity.Symptom {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Symptom{
		Id:                 s.Id,
		NameFr:             s.NameFr,
		Description:        derefString(s.Description),
		PotentialSeverity:  derefInt(s.PotentialSeverity),
		AssociatedKeywords: []string(s.AssociatedKeywords),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *KnowledgeMapper) SymptomToModel(s *entity.Symptom) *model.Symptom {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Symptom{
		Id:                 s.Id,
		NameFr:             s.NameFr,
		Description:        refString(s.Description),
		PotentialSeverity:  refInt(s.PotentialSeverity),
		AssociatedKeywords: datatypes.JSONSlice[string](s.AssociatedKeywords),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func refString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func refInt(i int) *int {
	if i == 0 {
		return nil
	}
	return &i
}
