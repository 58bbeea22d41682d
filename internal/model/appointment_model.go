package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentStatusPlanned   = "planifie"
	AppointmentStatusConfirmed = "confirme"
	AppointmentStatusCancelled = "annule"
	AppointmentStatusDone      = "termine"
)

type Appointment struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	DoctorId    *uuid.UUID     `gorm:"type:uuid;index"`
	StructureId *uuid.UUID     `gorm:"type:uuid;index"`
	ScheduledAt time.Time      `gorm:"not null;index"`
	Reason      *string        `gorm:"type:text"`
	Status      string         `gorm:"type:varchar(50);not null;default:'planifie'"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Appointment) TableName() string {
	return "appointments"
}
