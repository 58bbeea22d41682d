package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Symptom struct {
	Id                 uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NameFr             string                      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description        *string                     `gorm:"type:text"`
	PotentialSeverity  *int                        `gorm:"check:potential_severity >= 1 AND potential_severity <= 10"`
	AssociatedKeywords datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt          time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt          time.Time                   `gorm:"autoUpdateTime"`
}

func (Symptom) TableName() string {
	return "symptoms"
}
