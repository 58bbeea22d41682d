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

type DiseaseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewDiseaseRepository(db *gorm.DB) contract.DiseaseRepository {
	return &DiseaseRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *DiseaseRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DiseaseRepositoryImpl) Create(ctx context.Context, disease *entity.Disease) error {
	m := r.mapper.DiseaseToModel(disease)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*disease = *r.mapper.DiseaseToEntity(m)
	return nil
}

func (r *DiseaseRepositoryImpl) Update(ctx context.Context, disease *entity.Disease) error {
	m := r.mapper.DiseaseToModel(disease)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*disease = *r.mapper.DiseaseToEntity(m)
	return nil
}

func (r *DiseaseRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Disease{}).Where("id = ?", id).Updates(fields).Error
}

func (r *DiseaseRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Disease{}, id).Error
}

func (r *DiseaseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Disease, error) {
	var m model.Disease
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DiseaseToEntity(&m), nil
}

func (r *DiseaseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Disease, error) {
	var models []*model.Disease
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Disease, len(models))
	for i, m := range models {
		entities[i] = r.mapper.DiseaseToEntity(m)
	}
	return entities, nil
}

func (r *DiseaseRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Disease{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DiseaseRepositoryImpl) CreateLink(ctx context.Context, link *model.DiseaseSymptomLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *DiseaseRepositoryImpl) FindLinksByDiseaseId(ctx context.Context, diseaseId uuid.UUID) ([]model.DiseaseSymptomLink, error) {
	var links []model.DiseaseSymptomLink
	err := r.db.WithContext(ctx).Where("disease_id = ?", diseaseId).Find(&links).Error
	return links, err
}
