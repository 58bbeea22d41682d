package service

import (
	"context"
	"time"

	"telemed-be/internal/dto"
	"telemed-be/internal/model"
	"telemed-be/internal/pkg/apperror"
	"telemed-be/internal/repository"
	"telemed-be/pkg/diagnosis"

	"github.com/google/uuid"
)

// Health data older than this is not fed into LLM summaries.
const healthDataWindow = 90 * 24 * time.Hour

type IPatientService interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	GetByUserID(ctx context.Context, userId uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]dto.PatientResponse, int64, error)

	LogHealthStatus(ctx context.Context, patientId uuid.UUID, req *dto.LogHealthStatusRequest) error
	PushWearableData(ctx context.Context, patientId uuid.UUID, req *dto.PushWearableDataRequest) error
	GenerateHealthSummary(ctx context.Context, patientId uuid.UUID, req *dto.HealthSummaryRequest) (*dto.HealthSummaryResponse, error)
	GenerateHealthPlan(ctx context.Context, patientId uuid.UUID, req *dto.HealthPlanRequest) (*dto.HealthPlanResponse, error)
}

type patientService struct {
	patients repository.PatientRepository
	replies  *diagnosis.Generator
}

func NewPatientService(patients repository.PatientRepository, replies *diagnosis.Generator) IPatientService {
	return &patientService{patients: patients, replies: replies}
}

func (s *patientService) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	existing, err := s.patients.GetByUserID(ctx, req.UserId)
	if err != nil {
		return nil, apperror.Internal("failed to check existing patient", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("patient profile already exists for this user", nil)
	}

	patient := &model.Patient{
		UserId:    req.UserId,
		LastName:  req.LastName,
		FirstName: req.FirstName,
		BirthDate: optional(req.BirthDate),
		Gender:    optional(req.Gender),
		Address:   optional(req.Address),
		Phone:     optional(req.Phone),
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, apperror.Internal("failed to create patient", err)
	}

	res := patientToDTO(patient)
	return &res, nil
}

func (s *patientService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to look up patient", err)
	}
	if patient == nil {
		return nil, apperror.NotFound("patient not found", nil)
	}
	res := patientToDTO(patient)
	return &res, nil
}

func (s *patientService) GetByUserID(ctx context.Context, userId uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := s.patients.GetByUserID(ctx, userId)
	if err != nil {
		return nil, apperror.Internal("failed to look up patient", err)
	}
	if patient == nil {
		return nil, apperror.NotFound("patient not found", nil)
	}
	res := patientToDTO(patient)
	return &res, nil
}

func (s *patientService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	existing, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to look up patient", err)
	}
	if existing == nil {
		return nil, apperror.NotFound("patient not found", nil)
	}

	fields := map[string]interface{}{}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.BirthDate != nil {
		fields["birth_date"] = *req.BirthDate
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}

	if len(fields) > 0 {
		if err := s.patients.UpdateFields(ctx, id, fields); err != nil {
			return nil, apperror.Internal("failed to update patient", err)
		}
	}

	return s.GetByID(ctx, id)
}

func (s *patientService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return apperror.Internal("failed to look up patient", err)
	}
	if existing == nil {
		return apperror.NotFound("patient not found", nil)
	}
	if err := s.patients.Delete(ctx, id); err != nil {
		return apperror.Internal("failed to delete patient", err)
	}
	return nil
}

func (s *patientService) List(ctx context.Context, limit, offset int) ([]dto.PatientResponse, int64, error) {
	patients, total, err := s.patients.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal("failed to list patients", err)
	}
	out := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		out[i] = patientToDTO(&patients[i])
	}
	return out, total, nil
}

func (s *patientService) LogHealthStatus(ctx context.Context, patientId uuid.UUID, req *dto.LogHealthStatusRequest) error {
	patient, err := s.patients.GetByID(ctx, patientId)
	if err != nil {
		return apperror.Internal("failed to look up patient", err)
	}
	if patient == nil {
		return apperror.NotFound("patient not found", nil)
	}

	log := &model.HealthStatusLog{
		PatientId: patientId,
		Status:    req.Status,
		Notes:     optional(req.Notes),
		LoggedAt:  req.LoggedAt,
	}
	if err := s.patients.CreateHealthStatusLog(ctx, log); err != nil {
		return apperror.Internal("failed to record health status", err)
	}
	return nil
}

func (s *patientService) PushWearableData(ctx context.Context, patientId uuid.UUID, req *dto.PushWearableDataRequest) error {
	patient, err := s.patients.GetByID(ctx, patientId)
	if err != nil {
		return apperror.Internal("failed to look up patient", err)
	}
	if patient == nil {
		return apperror.NotFound("patient not found", nil)
	}

	data := &model.WearableData{
		PatientId:  patientId,
		SensorType: req.SensorType,
		Value:      req.Value,
		Unit:       req.Unit,
		RecordedAt: req.RecordedAt,
	}
	if err := s.patients.CreateWearableData(ctx, data); err != nil {
		return apperror.Internal("failed to record wearable data", err)
	}
	return nil
}

func (s *patientService) GenerateHealthSummary(ctx context.Context, patientId uuid.UUID, req *dto.HealthSummaryRequest) (*dto.HealthSummaryResponse, error) {
	healthData, err := s.collectHealthData(ctx, patientId)
	if err != nil {
		return nil, err
	}

	summary := s.replies.HealthSummary(ctx, req.Prompt, healthData)
	return &dto.HealthSummaryResponse{PatientId: patientId, Summary: summary}, nil
}

func (s *patientService) GenerateHealthPlan(ctx context.Context, patientId uuid.UUID, req *dto.HealthPlanRequest) (*dto.HealthPlanResponse, error) {
	healthData, err := s.collectHealthData(ctx, patientId)
	if err != nil {
		return nil, err
	}

	plan := s.replies.HealthPlan(ctx, req.Goal, healthData)
	return &dto.HealthPlanResponse{PatientId: patientId, Plan: plan}, nil
}

func (s *patientService) collectHealthData(ctx context.Context, patientId uuid.UUID) (map[string]interface{}, error) {
	patient, err := s.patients.GetByID(ctx, patientId)
	if err != nil {
		return nil, apperror.Internal("failed to look up patient", err)
	}
	if patient == nil {
		return nil, apperror.NotFound("patient not found", nil)
	}

	since := time.Now().Add(-healthDataWindow)

	logs, err := s.patients.GetHealthStatusLogs(ctx, patientId, since)
	if err != nil {
		return nil, apperror.Internal("failed to load health status logs", err)
	}
	wearables, err := s.patients.GetWearableData(ctx, patientId, since)
	if err != nil {
		return nil, apperror.Internal("failed to load wearable data", err)
	}

	statusEntries := make([]map[string]interface{}, len(logs))
	for i, l := range logs {
		entry := map[string]interface{}{
			"statut": l.Status,
			"date":   l.LoggedAt.Format(time.RFC3339),
		}
		if l.Notes != nil {
			entry["notes"] = *l.Notes
		}
		statusEntries[i] = entry
	}

	wearableEntries := make([]map[string]interface{}, len(wearables))
	for i, w := range wearables {
		wearableEntries[i] = map[string]interface{}{
			"type_capteur": w.SensorType,
			"valeur":       w.Value,
			"unite":        w.Unit,
			"date":         w.RecordedAt.Format(time.RFC3339),
		}
	}

	data := map[string]interface{}{
		"historique_statuts": statusEntries,
		"donnees_objets":     wearableEntries,
	}
	if patient.BirthDate != nil {
		data["date_naissance"] = *patient.BirthDate
	}
	if patient.Gender != nil {
		data["genre"] = *patient.Gender
	}
	return data, nil
}

func patientToDTO(p *model.Patient) dto.PatientResponse {
	return dto.PatientResponse{
		Id:        p.Id,
		UserId:    p.UserId,
		LastName:  p.LastName,
		FirstName: p.FirstName,
		BirthDate: deref(p.BirthDate),
		Gender:    deref(p.Gender),
		Address:   deref(p.Address),
		Phone:     deref(p.Phone),
		CreatedAt: p.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
