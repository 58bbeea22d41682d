package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDiseaseRequest struct {
	NameFr               string   `json:"nom_fr" validate:"required"`
	ICD10Code            string   `json:"code_cim_10,omitempty"`
	Description          string   `json:"description,omitempty"`
	Severity             int      `json:"gravite,omitempty" validate:"omitempty,gte=1,lte=5"`
	Prevalence           string   `json:"prevalence,omitempty"`
	TriageRecommendation string   `json:"recommandation_triage,omitempty"`
	SymptomKeywords      []string `json:"symptomes_courants_mots_cles,omitempty"`
	CauseKeywords        []string `json:"causes_mots_cles,omitempty"`
	RiskFactorKeywords   []string `json:"facteurs_risque_mots_cles,omitempty"`
}

// UpdateDiseaseRequest carries typed partial updates. Nil fields are
// left untouched.
type UpdateDiseaseRequest struct {
	NameFr               *string   `json:"nom_fr,omitempty"`
	ICD10Code            *string   `json:"code_cim_10,omitempty"`
	Description          *string   `json:"description,omitempty"`
	Severity             *int      `json:"gravite,omitempty" validate:"omitempty,gte=1,lte=5"`
	Prevalence           *string   `json:"prevalence,omitempty"`
	TriageRecommendation *string   `json:"recommandation_triage,omitempty"`
	SymptomKeywords      *[]string `json:"symptomes_courants_mots_cles,omitempty"`
	CauseKeywords        *[]string `json:"causes_mots_cles,omitempty"`
	RiskFactorKeywords   *[]string `json:"facteurs_risque_mots_cles,omitempty"`
}

type DiseaseResponse struct {
	Id                   uuid.UUID `json:"id"`
	NameFr               string    `json:"nom_fr"`
	ICD10Code            string    `json:"code_cim_10,omitempty"`
	Description          string    `json:"description,omitempty"`
	Severity             int       `json:"gravite,omitempty"`
	Prevalence           string    `json:"prevalence,omitempty"`
	TriageRecommendation string    `json:"recommandation_triage,omitempty"`
	SymptomKeywords      []string  `json:"symptomes_courants_mots_cles"`
	CauseKeywords        []string  `json:"causes_mots_cles"`
	RiskFactorKeywords   []string  `json:"facteurs_risque_mots_cles"`
	CreatedAt            time.Time `json:"created_at"`
}

type CreateSymptomRequest struct {
	NameFr             string   `json:"nom_fr" validate:"required"`
	Description        string   `json:"description,omitempty"`
	PotentialSeverity  int      `json:"gravite_potentielle,omitempty" validate:"omitempty,gte=1,lte=10"`
	AssociatedKeywords []string `json:"mots_cles_associes,omitempty"`
}

type UpdateSymptomRequest struct {
	NameFr             *string   `json:"nom_fr,omitempty"`
	Description        *string   `json:"description,omitempty"`
	PotentialSeverity  *int      `json:"gravite_potentielle,omitempty" validate:"omitempty,gte=1,lte=10"`
	AssociatedKeywords *[]string `json:"mots_cles_associes,omitempty"`
}

type SymptomResponse struct {
	Id                 uuid.UUID `json:"id"`
	NameFr             string    `json:"nom_fr"`
	Description        string    `json:"description,omitempty"`
	PotentialSeverity  int       `json:"gravite_potentielle,omitempty"`
	AssociatedKeywords []string  `json:"mots_cles_associes"`
	CreatedAt          time.Time `json:"created_at"`
}

type LinkDiseaseSymptomRequest struct {
	DiseaseId uuid.UUID `json:"maladie_id" validate:"required"`
	SymptomId uuid.UUID `json:"symptome_id" validate:"required"`
	LinkForce *float64  `json:"force_lien,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// DiseaseMatchResponse is one scored candidate from symptom matching.
type DiseaseMatchResponse struct {
	Disease          DiseaseResponse `json:"maladie"`
	Confidence       float64         `json:"confiance"`
	MatchingSymptoms []string        `json:"symptomes_correspondants"`
}
