package repository

import (
	"context"
	"time"

	"telemed-be/internal/model"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]model.Patient, int64, error)

	// Health timeline
	CreateHealthStatusLog(ctx context.Context, log *model.HealthStatusLog) error
	GetHealthStatusLogs(ctx context.Context, patientID uuid.UUID, since time.Time) ([]model.HealthStatusLog, error)
	CreateWearableData(ctx context.Context, data *model.WearableData) error
	GetWearableData(ctx context.Context, patientID uuid.UUID, since time.Time) ([]model.WearableData, error)
}
