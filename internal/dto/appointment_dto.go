package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	PatientId   uuid.UUID  `json:"patient_id" validate:"required"`
	DoctorId    *uuid.UUID `json:"medecin_id,omitempty"`
	StructureId *uuid.UUID `json:"structure_id,omitempty"`
	ScheduledAt time.Time  `json:"date_heure" validate:"required"`
	Reason      string     `json:"motif,omitempty"`
}

type UpdateAppointmentRequest struct {
	DoctorId    *uuid.UUID `json:"medecin_id,omitempty"`
	StructureId *uuid.UUID `json:"structure_id,omitempty"`
	ScheduledAt *time.Time `json:"date_heure,omitempty"`
	Reason      *string    `json:"motif,omitempty"`
	Status      *string    `json:"statut,omitempty" validate:"omitempty,oneof=planifie confirme annule termine"`
}

type AppointmentResponse struct {
	Id          uuid.UUID  `json:"id"`
	PatientId   uuid.UUID  `json:"patient_id"`
	DoctorId    *uuid.UUID `json:"medecin_id,omitempty"`
	StructureId *uuid.UUID `json:"structure_id,omitempty"`
	ScheduledAt time.Time  `json:"date_heure"`
	Reason      string     `json:"motif,omitempty"`
	Status      string     `json:"statut"`
	CreatedAt   time.Time  `json:"created_at"`
}
