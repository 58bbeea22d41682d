package implementation

import (
	"context"
	"errors"

	"telemed-be/internal/entity"
	"telemed-be/internal/mapper"
	"telemed-be/internal/model"
	"telemed-be/internal/repository/contract"
	"telemed-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SymptomRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewSymptomRepository(db *gorm.DB) contract.SymptomRepository {
	return &SymptomRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *SymptomRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SymptomRepositoryImpl) Create(ctx context.Context, symptom *entity.Symptom) error {
	m := r.mapper.SymptomToModel(symptom)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*symptom = *r.mapper.SymptomToEntity(m)
	return nil
}

func (r *SymptomRepositoryImpl) Update(ctx context.Context, symptom *entity.Symptom) error {
	m := r.mapper.SymptomToModel(symptom)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*symptom = *r.mapper.SymptomToEntity(m)
	return nil
}

func (r *SymptomRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Symptom{}).Where("id = ?", id).Updates(fields).Error
}

func (r *SymptomRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Symptom{}, id).Error
}

func (r *SymptomRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Symptom, error) {
	var m model.Symptom
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SymptomToEntity(&m), nil
}

func (r *SymptomRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Symptom, error) {
	var models []*model.Symptom
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Symptom, len(models))
	for i, m := range models {
		entities[i] = r.mapper.SymptomToEntity(m)
	}
	return entities, nil
}

func (r *SymptomRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Symptom{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
