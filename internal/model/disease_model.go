package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Disease struct {
	Id                   uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NameFr               string                      `gorm:"type:varchar(255);uniqueIndex;not null"`
	ICD10Code            *string                     `gorm:"column:icd10_code;type:varchar(20)"`
	Description          *string                     `gorm:"type:text"`
	Severity             *int                        `gorm:"check:severity >= 1 AND severity <= 5"`
	Prevalence           *string                     `gorm:"type:varchar(100)"`
	TriageRecommendation *string                     `gorm:"type:varchar(100)"`
	SymptomKeywords      datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CauseKeywords        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	RiskFactorKeywords   datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt            time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt            time.Time                   `gorm:"autoUpdateTime"`
}

func (Disease) TableName() string {
	return "diseases"
}

// DiseaseSymptomLink weights the association between a disease and a
// curated symptom record.
type DiseaseSymptomLink struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DiseaseId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_disease_symptom"`
	SymptomId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_disease_symptom"`
	LinkForce *float64  `gorm:"check:link_force >= 0 AND link_force <= 1"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (DiseaseSymptomLink) TableName() string {
	return "disease_symptom_links"
}
