package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTeleconsultationRequest struct {
	PatientId uuid.UUID `json:"patient_id" validate:"required"`
	DoctorId  uuid.UUID `json:"medecin_id" validate:"required"`
	StartedAt time.Time `json:"date" validate:"required"`
	Notes     string    `json:"notes,omitempty"`
}

type UpdateTeleconsultationRequest struct {
	Status *string `json:"statut,omitempty" validate:"omitempty,oneof=planifiee en_cours terminee annulee"`
	Notes  *string `json:"notes,omitempty"`
}

// AppendTranscriptRequest feeds a transcription fragment into a
// session. Final fragments trigger summary generation.
type AppendTranscriptRequest struct {
	Text    string `json:"texte" validate:"required"`
	IsFinal bool   `json:"est_final"`
}

type TeleconsultationResponse struct {
	Id         uuid.UUID `json:"id"`
	PatientId  uuid.UUID `json:"patient_id"`
	DoctorId   uuid.UUID `json:"medecin_id"`
	StartedAt  time.Time `json:"date"`
	Status     string    `json:"statut"`
	Notes      string    `json:"notes,omitempty"`
	Transcript string    `json:"transcription,omitempty"`
	Summary    string    `json:"resume,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
