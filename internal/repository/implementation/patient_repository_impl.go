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

type PatientRepositoryImpl struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) repository.PatientRepository {
	return &PatientRepositoryImpl{db: db}
}

func (r *PatientRepositoryImpl) Create(ctx context.Context, patient *model.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *PatientRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.WithContext(ctx).First(&patient, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Patient{}).Where("id = ?", id).Updates(fields).Error
}

func (r *PatientRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Patient{}, id).Error
}

func (r *PatientRepositoryImpl) List(ctx context.Context, limit, offset int) ([]model.Patient, int64, error) {
	var patients []model.Patient
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Patient{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&patients).Error
	return patients, total, err
}

func (r *PatientRepositoryImpl) CreateHealthStatusLog(ctx context.Context, log *model.HealthStatusLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *PatientRepositoryImpl) GetHealthStatusLogs(ctx context.Context, patientID uuid.UUID, since time.Time) ([]model.HealthStatusLog, error) {
	var logs []model.HealthStatusLog
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND logged_at >= ?", patientID, since).
		Order("logged_at ASC").
		Find(&logs).Error
	return logs, err
}

func (r *PatientRepositoryImpl) CreateWearableData(ctx context.Context, data *model.WearableData) error {
	return r.db.WithContext(ctx).Create(data).Error
}

func (r *PatientRepositoryImpl) GetWearableData(ctx context.Context, patientID uuid.UUID, since time.Time) ([]model.WearableData, error) {
	var data []model.WearableData
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND recorded_at >= ?", patientID, since).
		Order("recorded_at ASC").
		Find(&data).Error
	return data, err
}
