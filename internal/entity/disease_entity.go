package entity

import (
	"time"

	"github.com/google/uuid"
)

type Disease struct {
	Id                   uuid.UUID
	NameFr               string
	ICD10Code            string
	Description          string
	Severity             int
	Prevalence           string
	TriageRecommendation string
	SymptomKeywords      []string
	CauseKeywords        []string
	RiskFactorKeywords   []string
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}
