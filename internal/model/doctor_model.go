package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Doctor struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	LastName      string         `gorm:"type:varchar(255)"`
	FirstName     string         `gorm:"type:varchar(255)"`
	Specialty     *string        `gorm:"type:varchar(255)"`
	LicenseNumber *string        `gorm:"type:varchar(100)"`
	OfficeAddress *string        `gorm:"type:text"`
	OfficePhone   *string        `gorm:"type:varchar(50)"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// MedicalReport is the persisted output of LLM-assisted report generation.
type MedicalReport struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId  uuid.UUID `gorm:"type:uuid;not null;index"`
	DoctorId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title      string    `gorm:"type:varchar(255);not null"`
	Content    string    `gorm:"type:text;not null"`
	ReportType *string   `gorm:"type:varchar(100)"`
	ReportedAt time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (MedicalReport) TableName() string {
	return "medical_reports"
}
