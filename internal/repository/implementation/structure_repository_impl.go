package implementation

import (
	"context"
	"errors"

	"telemed-be/internal/model"
	"telemed-be/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StructureRepositoryImpl struct {
	db *gorm.DB
}

func NewStructureRepository(db *gorm.DB) repository.StructureRepository {
	return &StructureRepositoryImpl{db: db}
}

func (r *StructureRepositoryImpl) Create(ctx context.Context, structure *model.MedicalStructure) error {
	return r.db.WithContext(ctx).Create(structure).Error
}

func (r *StructureRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.MedicalStructure, error) {
	var structure model.MedicalStructure
	if err := r.db.WithContext(ctx).First(&structure, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &structure, nil
}

func (r *StructureRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.MedicalStructure, error) {
	var structure model.MedicalStructure
	if err := r.db.WithContext(ctx).First(&structure, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &structure, nil
}

func (r *StructureRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.MedicalStructure{}).Where("id = ?", id).Updates(fields).Error
}

func (r *StructureRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MedicalStructure{}, id).Error
}

func (r *StructureRepositoryImpl) List(ctx context.Context, limit, offset int) ([]model.MedicalStructure, int64, error) {
	var structures []model.MedicalStructure
	var total int64

	db := r.db.WithContext(ctx).Model(&model.MedicalStructure{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&structures).Error
	return structures, total, err
}

func (r *StructureRepositoryImpl) ListGeolocated(ctx context.Context, structureType string) ([]model.MedicalStructure, error) {
	var structures []model.MedicalStructure
	db := r.db.WithContext(ctx).Where("latitude IS NOT NULL AND longitude IS NOT NULL")
	if structureType != "" {
		db = db.Where("type = ?", structureType)
	}
	err := db.Find(&structures).Error
	return structures, err
}
