package service

import (
	"context"
	"math"
	"sort"

	"telemed-be/internal/dto"
	"telemed-be/internal/model"
	"telemed-be/internal/pkg/apperror"
	"telemed-be/internal/repository"
	"telemed-be/pkg/diagnosis"

	"github.com/google/uuid"
)

const earthRadiusKm = 6371.0

type IStructureService interface {
	Create(ctx context.Context, req *dto.CreateStructureRequest) (*dto.StructureResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.StructureResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateStructureRequest) (*dto.StructureResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]dto.StructureResponse, int64, error)

	// FindNearby returns geolocated structures within radiusKm of the
	// given point, closest first.
	FindNearby(ctx context.Context, lat, lon, radiusKm float64, structureType string) ([]dto.NearbyStructureResponse, error)
	GenerateStatsReport(ctx context.Context, structureId uuid.UUID, req *dto.StatsReportRequest) (*dto.StatsReportResponse, error)
}

type structureService struct {
	structures repository.StructureRepository
	replies    *diagnosis.Generator
}

func NewStructureService(structures repository.StructureRepository, replies *diagnosis.Generator) IStructureService {
	return &structureService{structures: structures, replies: replies}
}

func (s *structureService) Create(ctx context.Context, req *dto.CreateStructureRequest) (*dto.StructureResponse, error) {
	existing, err := s.structures.GetByUserID(ctx, req.UserId)
	if err != nil {
		return nil, apperror.Internal("failed to check existing structure", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("structure profile already exists for this user", nil)
	}

	structure := &model.MedicalStructure{
		UserId:    req.UserId,
		Name:      req.Name,
		Type:      optional(req.Type),
		Address:   optional(req.Address),
		Phone:     optional(req.Phone),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := s.structures.Create(ctx, structure); err != nil {
		return nil, apperror.Internal("failed to create structure", err)
	}

	res := structureToDTO(structure)
	return &res, nil
}

func (s *structureService) GetByID(ctx context.Context, id uuid.UUID) (*dto.StructureResponse, error) {
	structure, err := s.structures.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to look up structure", err)
	}
	if structure == nil {
		return nil, apperror.NotFound("structure not found", nil)
	}
	res := structureToDTO(structure)
	return &res, nil
}

func (s *structureService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateStructureRequest) (*dto.StructureResponse, error) {
	existing, err := s.structures.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to look up structure", err)
	}
	if existing == nil {
		return nil, apperror.NotFound("structure not found", nil)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}

	if len(fields) > 0 {
		if err := s.structures.UpdateFields(ctx, id, fields); err != nil {
			return nil, apperror.Internal("failed to update structure", err)
		}
	}

	return s.GetByID(ctx, id)
}

func (s *structureService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.structures.GetByID(ctx, id)
	if err != nil {
		return apperror.Internal("failed to look up structure", err)
	}
	if existing == nil {
		return apperror.NotFound("structure not found", nil)
	}
	if err := s.structures.Delete(ctx, id); err != nil {
		return apperror.Internal("failed to delete structure", err)
	}
	return nil
}

func (s *structureService) List(ctx context.Context, limit, offset int) ([]dto.StructureResponse, int64, error) {
	structures, total, err := s.structures.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal("failed to list structures", err)
	}
	out := make([]dto.StructureResponse, len(structures))
	for i := range structures {
		out[i] = structureToDTO(&structures[i])
	}
	return out, total, nil
}

func (s *structureService) FindNearby(ctx context.Context, lat, lon, radiusKm float64, structureType string) ([]dto.NearbyStructureResponse, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, apperror.InvalidInput("invalid coordinates", nil)
	}
	if radiusKm <= 0 {
		return nil, apperror.InvalidInput("radius must be positive", nil)
	}

	structures, err := s.structures.ListGeolocated(ctx, structureType)
	if err != nil {
		return nil, apperror.Internal("failed to load structures", err)
	}

	var out []dto.NearbyStructureResponse
	for i := range structures {
		st := &structures[i]
		distance := haversineKm(lat, lon, *st.Latitude, *st.Longitude)
		if distance > radiusKm {
			continue
		}
		out = append(out, dto.NearbyStructureResponse{
			Structure:  structureToDTO(st),
			DistanceKm: math.Round(distance*100) / 100,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out, nil
}

func (s *structureService) GenerateStatsReport(ctx context.Context, structureId uuid.UUID, req *dto.StatsReportRequest) (*dto.StatsReportResponse, error) {
	structure, err := s.structures.GetByID(ctx, structureId)
	if err != nil {
		return nil, apperror.Internal("failed to look up structure", err)
	}
	if structure == nil {
		return nil, apperror.NotFound("structure not found", nil)
	}

	rawData := map[string]interface{}{
		"structure": structure.Name,
	}
	for k, v := range req.RawData {
		rawData[k] = v
	}

	report := s.replies.StatsReport(ctx, rawData, req.Instructions)
	return &dto.StatsReportResponse{StructureId: structureId, Report: report}, nil
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func structureToDTO(st *model.MedicalStructure) dto.StructureResponse {
	return dto.StructureResponse{
		Id:        st.Id,
		UserId:    st.UserId,
		Name:      st.Name,
		Type:      deref(st.Type),
		Address:   deref(st.Address),
		Phone:     deref(st.Phone),
		Latitude:  st.Latitude,
		Longitude: st.Longitude,
		CreatedAt: st.CreatedAt,
	}
}
