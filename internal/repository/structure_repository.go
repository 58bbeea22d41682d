package repository

import (
	"context"

	"telemed-be/internal/model"

	"github.com/google/uuid"
)

type StructureRepository interface {
	Create(ctx context.Context, structure *model.MedicalStructure) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.MedicalStructure, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.MedicalStructure, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]model.MedicalStructure, int64, error)
	// ListGeolocated returns all structures with coordinates set,
	// optionally filtered by type. Distance filtering happens in the
	// service layer.
	ListGeolocated(ctx context.Context, structureType string) ([]model.MedicalStructure, error)
}
