package implementation

import (
	"context"
	"errors"

	"telemed-be/internal/model"
	"telemed-be/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeleconsultationRepositoryImpl struct {
	db *gorm.DB
}

func NewTeleconsultationRepository(db *gorm.DB) repository.TeleconsultationRepository {
	return &TeleconsultationRepositoryImpl{db: db}
}

func (r *TeleconsultationRepositoryImpl) Create(ctx context.Context, session *model.TeleconsultationSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *TeleconsultationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.TeleconsultationSession, error) {
	var session model.TeleconsultationSession
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *TeleconsultationRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.TeleconsultationSession{}).Where("id = ?", id).Updates(fields).Error
}

func (r *TeleconsultationRepositoryImpl) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.TeleconsultationSession, error) {
	var sessions []model.TeleconsultationSession
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("started_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *TeleconsultationRepositoryImpl) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]model.TeleconsultationSession, error) {
	var sessions []model.TeleconsultationSession
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("started_at DESC").
		Find(&sessions).Error
	return sessions, err
}
