package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalStructure struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Type      *string   `gorm:"type:varchar(100)"`
	Address   *string   `gorm:"type:text"`
	Phone     *string   `gorm:"type:varchar(50)"`
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (MedicalStructure) TableName() string {
	return "medical_structures"
}
