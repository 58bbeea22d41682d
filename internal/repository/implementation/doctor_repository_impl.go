package implementation

import (
	"context"
	"errors"

	"telemed-be/internal/model"
	"telemed-be/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepositoryImpl struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) repository.DoctorRepository {
	return &DoctorRepositoryImpl{db: db}
}

func (r *DoctorRepositoryImpl) Create(ctx context.Context, doctor *model.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

func (r *DoctorRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *DoctorRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *DoctorRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Doctor{}).Where("id = ?", id).Updates(fields).Error
}

func (r *DoctorRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Doctor{}, id).Error
}

func (r *DoctorRepositoryImpl) List(ctx context.Context, limit, offset int) ([]model.Doctor, int64, error) {
	var doctors []model.Doctor
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Doctor{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&doctors).Error
	return doctors, total, err
}

func (r *DoctorRepositoryImpl) CreateReport(ctx context.Context, report *model.MedicalReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *DoctorRepositoryImpl) GetReportsByPatientID(ctx context.Context, patientID uuid.UUID) ([]model.MedicalReport, error) {
	var reports []model.MedicalReport
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("reported_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *DoctorRepositoryImpl) GetReportByID(ctx context.Context, id uuid.UUID) (*model.MedicalReport, error) {
	var report model.MedicalReport
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}
