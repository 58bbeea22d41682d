package repository

import (
	"context"

	"telemed-be/internal/model"

	"github.com/google/uuid"
)

type TeleconsultationRepository interface {
	Create(ctx context.Context, session *model.TeleconsultationSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TeleconsultationSession, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.TeleconsultationSession, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]model.TeleconsultationSession, error)
}
