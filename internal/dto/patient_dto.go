package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePatientRequest struct {
	UserId    uuid.UUID `json:"user_id" validate:"required"`
	LastName  string    `json:"nom,omitempty"`
	FirstName string    `json:"prenom,omitempty"`
	BirthDate string    `json:"date_naissance,omitempty"`
	Gender    string    `json:"genre,omitempty"`
	Address   string    `json:"adresse,omitempty"`
	Phone     string    `json:"telephone,omitempty"`
}

type UpdatePatientRequest struct {
	LastName  *string `json:"nom,omitempty"`
	FirstName *string `json:"prenom,omitempty"`
	BirthDate *string `json:"date_naissance,omitempty"`
	Gender    *string `json:"genre,omitempty"`
	Address   *string `json:"adresse,omitempty"`
	Phone     *string `json:"telephone,omitempty"`
}

type PatientResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"user_id"`
	LastName  string    `json:"nom,omitempty"`
	FirstName string    `json:"prenom,omitempty"`
	BirthDate string    `json:"date_naissance,omitempty"`
	Gender    string    `json:"genre,omitempty"`
	Address   string    `json:"adresse,omitempty"`
	Phone     string    `json:"telephone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type LogHealthStatusRequest struct {
	Status   string    `json:"statut" validate:"required"`
	Notes    string    `json:"notes,omitempty"`
	LoggedAt time.Time `json:"date" validate:"required"`
}

type PushWearableDataRequest struct {
	SensorType string    `json:"type_capteur" validate:"required"`
	Value      float64   `json:"valeur" validate:"required"`
	Unit       string    `json:"unite" validate:"required"`
	RecordedAt time.Time `json:"date" validate:"required"`
}

type HealthSummaryRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type HealthSummaryResponse struct {
	PatientId uuid.UUID `json:"patient_id"`
	Summary   string    `json:"resume"`
}

type HealthPlanRequest struct {
	Goal string `json:"objectif" validate:"required"`
}

type HealthPlanResponse struct {
	PatientId uuid.UUID `json:"patient_id"`
	Plan      string    `json:"planning"`
}
