package contract

import (
	"context"

	"telemed-be/internal/entity"
	"telemed-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SymptomRepository interface {
	Create(ctx context.Context, symptom *entity.Symptom) error
	Update(ctx context.Context, symptom *entity.Symptom) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Symptom, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Symptom, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
