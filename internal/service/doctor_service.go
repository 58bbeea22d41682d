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

type IDoctorService interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	GetByUserID(ctx context.Context, userId uuid.UUID) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]dto.DoctorResponse, int64, error)

	GenerateReport(ctx context.Context, doctorId uuid.UUID, req *dto.GenerateReportRequest) (*dto.MedicalReportResponse, error)
	GetReportsByPatient(ctx context.Context, patientId uuid.UUID) ([]dto.MedicalReportResponse, error)
	GetReport(ctx context.Context, id uuid.UUID) (*dto.MedicalReportResponse, error)
}

type doctorService struct {
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
	replies  *diagnosis.Generator
}

func NewDoctorService(doctors repository.DoctorRepository, patients repository.PatientRepository, replies *diagnosis.Generator) IDoctorService {
	return &doctorService{doctors: doctors, patients: patients, replies: replies}
}

func (s *doctorService) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	existing, err := s.doctors.GetByUserID(ctx, req.UserId)
	if err != nil {
		return nil, apperror.Internal("failed to check existing doctor", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("doctor profile already exists for this user", nil)
	}

	doctor := &model.Doctor{
		UserId:        req.UserId,
		LastName:      req.LastName,
		FirstName:     req.FirstName,
		Specialty:     optional(req.Specialty),
		LicenseNumber: optional(req.LicenseNumber),
		OfficeAddress: optional(req.OfficeAddress),
		OfficePhone:   optional(req.OfficePhone),
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, apperror.Internal("failed to create doctor", err)
	}

	res := doctorToDTO(doctor)
	return &res, nil
}

func (s *doctorService) GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to look up doctor", err)
	}
	if doctor == nil {
		return nil, apperror.NotFound("doctor not found", nil)
	}
	res := doctorToDTO(doctor)
	return &res, nil
}

func (s *doctorService) GetByUserID(ctx context.Context, userId uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := s.doctors.GetByUserID(ctx, userId)
	if err != nil {
		return nil, apperror.Internal("failed to look up doctor", err)
	}
	if doctor == nil {
		return nil, apperror.NotFound("doctor not found", nil)
	}
	res := doctorToDTO(doctor)
	return &res, nil
}

func (s *doctorService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	existing, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to look up doctor", err)
	}
	if existing == nil {
		return nil, apperror.NotFound("doctor not found", nil)
	}

	fields := map[string]interface{}{}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.Specialty != nil {
		fields["specialty"] = *req.Specialty
	}
	if req.LicenseNumber != nil {
		fields["license_number"] = *req.LicenseNumber
	}
	if req.OfficeAddress != nil {
		fields["office_address"] = *req.OfficeAddress
	}
	if req.OfficePhone != nil {
		fields["office_phone"] = *req.OfficePhone
	}

	if len(fields) > 0 {
		if err := s.doctors.UpdateFields(ctx, id, fields); err != nil {
			return nil, apperror.Internal("failed to update doctor", err)
		}
	}

	return s.GetByID(ctx, id)
}

func (s *doctorService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return apperror.Internal("failed to look up doctor", err)
	}
	if existing == nil {
		return apperror.NotFound("doctor not found", nil)
	}
	if err := s.doctors.Delete(ctx, id); err != nil {
		return apperror.Internal("failed to delete doctor", err)
	}
	return nil
}

func (s *doctorService) List(ctx context.Context, limit, offset int) ([]dto.DoctorResponse, int64, error) {
	doctors, total, err := s.doctors.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal("failed to list doctors", err)
	}
	out := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		out[i] = doctorToDTO(&doctors[i])
	}
	return out, total, nil
}

func (s *doctorService) GenerateReport(ctx context.Context, doctorId uuid.UUID, req *dto.GenerateReportRequest) (*dto.MedicalReportResponse, error) {
	doctor, err := s.doctors.GetByID(ctx, doctorId)
	if err != nil {
		return nil, apperror.Internal("failed to look up doctor", err)
	}
	if doctor == nil {
		return nil, apperror.NotFound("doctor not found", nil)
	}

	patient, err := s.patients.GetByID(ctx, req.PatientId)
	if err != nil {
		return nil, apperror.Internal("failed to look up patient", err)
	}
	if patient == nil {
		return nil, apperror.NotFound("patient not found", nil)
	}

	reportContext := map[string]interface{}{
		"patient": map[string]interface{}{
			"nom":    patient.LastName,
			"prenom": patient.FirstName,
		},
	}
	for k, v := range req.Context {
		reportContext[k] = v
	}

	content := s.replies.MedicalReport(ctx, req.Prompt, reportContext)
	summary := s.replies.ConciseSummary(ctx, content)

	report := &model.MedicalReport{
		PatientId:  req.PatientId,
		DoctorId:   doctorId,
		Title:      req.Title,
		Content:    content,
		ReportType: optional(req.ReportType),
		ReportedAt: time.Now(),
	}
	if err := s.doctors.CreateReport(ctx, report); err != nil {
		return nil, apperror.Internal("failed to save report", err)
	}

	res := reportToDTO(report)
	res.Summary = summary
	return &res, nil
}

func (s *doctorService) GetReportsByPatient(ctx context.Context, patientId uuid.UUID) ([]dto.MedicalReportResponse, error) {
	reports, err := s.doctors.GetReportsByPatientID(ctx, patientId)
	if err != nil {
		return nil, apperror.Internal("failed to list reports", err)
	}
	out := make([]dto.MedicalReportResponse, len(reports))
	for i := range reports {
		out[i] = reportToDTO(&reports[i])
	}
	return out, nil
}

func (s *doctorService) GetReport(ctx context.Context, id uuid.UUID) (*dto.MedicalReportResponse, error) {
	report, err := s.doctors.GetReportByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to look up report", err)
	}
	if report == nil {
		return nil, apperror.NotFound("report not found", nil)
	}
	res := reportToDTO(report)
	return &res, nil
}

func doctorToDTO(d *model.Doctor) dto.DoctorResponse {
	return dto.DoctorResponse{
		Id:            d.Id,
		UserId:        d.UserId,
		LastName:      d.LastName,
		FirstName:     d.FirstName,
		Specialty:     deref(d.Specialty),
		LicenseNumber: deref(d.LicenseNumber),
		OfficeAddress: deref(d.OfficeAddress),
		OfficePhone:   deref(d.OfficePhone),
		CreatedAt:     d.CreatedAt,
	}
}

func reportToDTO(r *model.MedicalReport) dto.MedicalReportResponse {
	return dto.MedicalReportResponse{
		Id:         r.Id,
		PatientId:  r.PatientId,
		DoctorId:   r.DoctorId,
		Title:      r.Title,
		Content:    r.Content,
		ReportType: deref(r.ReportType),
		ReportedAt: r.ReportedAt,
	}
}
