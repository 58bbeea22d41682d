package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDoctorRequest struct {
	UserId        uuid.UUID `json:"user_id" validate:"required"`
	LastName      string    `json:"nom,omitempty"`
	FirstName     string    `json:"prenom,omitempty"`
	Specialty     string    `json:"specialite,omitempty"`
	LicenseNumber string    `json:"numero_licence,omitempty"`
	OfficeAddress string    `json:"adresse_cabinet,omitempty"`
	OfficePhone   string    `json:"telephone_cabinet,omitempty"`
}

type UpdateDoctorRequest struct {
	LastName      *string `json:"nom,omitempty"`
	FirstName     *string `json:"prenom,omitempty"`
	Specialty     *string `json:"specialite,omitempty"`
	LicenseNumber *string `json:"numero_licence,omitempty"`
	OfficeAddress *string `json:"adresse_cabinet,omitempty"`
	OfficePhone   *string `json:"telephone_cabinet,omitempty"`
}

type DoctorResponse struct {
	Id            uuid.UUID `json:"id"`
	UserId        uuid.UUID `json:"user_id"`
	LastName      string    `json:"nom,omitempty"`
	FirstName     string    `json:"prenom,omitempty"`
	Specialty     string    `json:"specialite,omitempty"`
	LicenseNumber string    `json:"numero_licence,omitempty"`
	OfficeAddress string    `json:"adresse_cabinet,omitempty"`
	OfficePhone   string    `json:"telephone_cabinet,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type GenerateReportRequest struct {
	PatientId  uuid.UUID              `json:"patient_id" validate:"required"`
	Title      string                 `json:"titre" validate:"required"`
	Prompt     string                 `json:"prompt" validate:"required"`
	ReportType string                 `json:"type_rapport,omitempty"`
	Context    map[string]interface{} `json:"contexte,omitempty"`
}

type MedicalReportResponse struct {
	Id         uuid.UUID `json:"id"`
	PatientId  uuid.UUID `json:"patient_id"`
	DoctorId   uuid.UUID `json:"medecin_id"`
	Title      string    `json:"titre"`
	Content    string    `json:"contenu"`
	ReportType string    `json:"type_rapport,omitempty"`
	Summary    string    `json:"resume,omitempty"`
	ReportedAt time.Time `json:"date"`
}
