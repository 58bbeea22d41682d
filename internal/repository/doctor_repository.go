package repository

import (
	"context"

	"telemed-be/internal/model"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]model.Doctor, int64, error)

	// Reports
	CreateReport(ctx context.Context, report *model.MedicalReport) error
	GetReportsByPatientID(ctx context.Context, patientID uuid.UUID) ([]model.MedicalReport, error)
	GetReportByID(ctx context.Context, id uuid.UUID) (*model.MedicalReport, error)
}
