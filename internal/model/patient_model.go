package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Patient struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	LastName  string         `gorm:"type:varchar(255)"`
	FirstName string         `gorm:"type:varchar(255)"`
	BirthDate *string        `gorm:"type:varchar(20)"`
	Gender    *string        `gorm:"type:varchar(20)"`
	Address   *string        `gorm:"type:text"`
	Phone     *string        `gorm:"type:varchar(50)"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Patient) TableName() string {
	return "patients"
}

// HealthStatusLog keeps a timeline of patient self-reported status,
// fed into health summaries.
type HealthStatusLog struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(100);not null"`
	Notes     *string   `gorm:"type:text"`
	LoggedAt  time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (HealthStatusLog) TableName() string {
	return "health_status_logs"
}

// WearableData stores sensor readings pushed by connected devices.
type WearableData struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId  uuid.UUID `gorm:"type:uuid;not null;index"`
	SensorType string    `gorm:"type:varchar(100);not null"`
	Value      float64   `gorm:"not null"`
	Unit       string    `gorm:"type:varchar(50);not null"`
	RecordedAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (WearableData) TableName() string {
	return "wearable_data"
}
