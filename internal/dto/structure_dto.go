package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateStructureRequest struct {
	UserId    uuid.UUID `json:"user_id" validate:"required"`
	Name      string    `json:"nom_structure" validate:"required"`
	Type      string    `json:"type_structure,omitempty"`
	Address   string    `json:"adresse,omitempty"`
	Phone     string    `json:"telephone,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64  `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

type UpdateStructureRequest struct {
	Name      *string  `json:"nom_structure,omitempty"`
	Type      *string  `json:"type_structure,omitempty"`
	Address   *string  `json:"adresse,omitempty"`
	Phone     *string  `json:"telephone,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

type StructureResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"user_id"`
	Name      string    `json:"nom_structure"`
	Type      string    `json:"type_structure,omitempty"`
	Address   string    `json:"adresse,omitempty"`
	Phone     string    `json:"telephone,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NearbyStructureResponse adds the computed distance to a search hit.
type NearbyStructureResponse struct {
	Structure  StructureResponse `json:"structure"`
	DistanceKm float64           `json:"distance_km"`
}

type StatsReportRequest struct {
	Instructions string                 `json:"instructions" validate:"required"`
	RawData      map[string]interface{} `json:"donnees,omitempty"`
}

type StatsReportResponse struct {
	StructureId uuid.UUID `json:"structure_id"`
	Report      string    `json:"rapport"`
}
