package implementation

import (
	"context"
	"errors"
	"time"

	"telemed-be/internal/model"
	"telemed-be/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepositoryImpl struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) repository.AppointmentRepository {
	return &AppointmentRepositoryImpl{db: db}
}

func (r *AppointmentRepositoryImpl) Create(ctx context.Context, appointment *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *AppointmentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Appointment{}).Where("id = ?", id).Updates(fields).Error
}

func (r *AppointmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Appointment{}, id).Error
}

func (r *AppointmentRepositoryImpl) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepositoryImpl) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepositoryImpl) FindOverlapping(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND scheduled_at >= ? AND scheduled_at < ? AND status NOT IN ?",
			doctorID, from, to, []string{model.AppointmentStatusCancelled}).
		Find(&appointments).Error
	return appointments, err
}
