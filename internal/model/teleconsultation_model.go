package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TeleconsultationStatusScheduled = "planifiee"
	TeleconsultationStatusOngoing   = "en_cours"
	TeleconsultationStatusFinished  = "terminee"
	TeleconsultationStatusCancelled = "annulee"
)

type TeleconsultationSession struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	DoctorId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	StartedAt  time.Time      `gorm:"not null"`
	Status     string         `gorm:"type:varchar(50);not null;default:'planifiee'"`
	Notes      *string        `gorm:"type:text"`
	Transcript *string        `gorm:"type:text"`
	Summary    *string        `gorm:"type:text"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (TeleconsultationSession) TableName() string {
	return "teleconsultation_sessions"
}
