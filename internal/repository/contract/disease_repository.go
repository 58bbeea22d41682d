package contract

import (
	"context"

	"telemed-be/internal/entity"
	"telemed-be/internal/model"
	"telemed-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DiseaseRepository interface {
	Create(ctx context.Context, disease *entity.Disease) error
	Update(ctx context.Context, disease *entity.Disease) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Disease, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Disease, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Link Operations
	CreateLink(ctx context.Context, link *model.DiseaseSymptomLink) error
	FindLinksByDiseaseId(ctx context.Context, diseaseId uuid.UUID) ([]model.DiseaseSymptomLink, error)
}
