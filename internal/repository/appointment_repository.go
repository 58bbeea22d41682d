package repository

import (
	"context"
	"time"

	"telemed-be/internal/model"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]model.Appointment, error)
	// FindOverlapping returns appointments of the doctor within the
	// given window, used for double-booking checks.
	FindOverlapping(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]model.Appointment, error)
}
