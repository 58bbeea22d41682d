package service

import (
	"context"

	"telemed-be/internal/dto"
	"telemed-be/internal/entity"
	"telemed-be/internal/model"
	"telemed-be/internal/pkg/apperror"
	"telemed-be/internal/repository/contract"
	"telemed-be/internal/repository/specification"
	"telemed-be/pkg/knowledge"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IKnowledgeService interface {
	CreateDisease(ctx context.Context, req *dto.CreateDiseaseRequest) (*dto.DiseaseResponse, error)
	UpdateDisease(ctx context.Context, id uuid.UUID, req *dto.UpdateDiseaseRequest) (*dto.DiseaseResponse, error)
	DeleteDisease(ctx context.Context, id uuid.UUID) error
	GetDisease(ctx context.Context, id uuid.UUID) (*dto.DiseaseResponse, error)
	ListDiseases(ctx context.Context, nameFilter string, limit, offset int) ([]dto.DiseaseResponse, int64, error)

	CreateSymptom(ctx context.Context, req *dto.CreateSymptomRequest) (*dto.SymptomResponse, error)
	UpdateSymptom(ctx context.Context, id uuid.UUID, req *dto.UpdateSymptomRequest) (*dto.SymptomResponse, error)
	DeleteSymptom(ctx context.Context, id uuid.UUID) error
	GetSymptom(ctx context.Context, id uuid.UUID) (*dto.SymptomResponse, error)
	ListSymptoms(ctx context.Context, nameFilter string, limit, offset int) ([]dto.SymptomResponse, int64, error)

	LinkDiseaseSymptom(ctx context.Context, req *dto.LinkDiseaseSymptomRequest) error
	MatchDiseases(ctx context.Context, symptoms []string) ([]dto.DiseaseMatchResponse, error)
}

type knowledgeService struct {
	diseases contract.DiseaseRepository
	symptoms contract.SymptomRepository
}

func NewKnowledgeService(diseases contract.DiseaseRepository, symptoms contract.SymptomRepository) IKnowledgeService {
	return &knowledgeService{diseases: diseases, symptoms: symptoms}
}

func (s *knowledgeService) CreateDisease(ctx context.Context, req *dto.CreateDiseaseRequest) (*dto.DiseaseResponse, error) {
	existing, err := s.diseases.FindOne(ctx, specification.ByNameFr{Name: req.NameFr})
	if err != nil {
		return nil, apperror.Internal("failed to check existing disease", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("disease already exists", nil)
	}

	disease := &entity.Disease{
		NameFr:               req.NameFr,
		ICD10Code:            req.ICD10Code,
		Description:          req.Description,
		Severity:             req.Severity,
		Prevalence:           req.Prevalence,
		TriageRecommendation: req.TriageRecommendation,
		SymptomKeywords:      req.SymptomKeywords,
		CauseKeywords:        req.CauseKeywords,
		RiskFactorKeywords:   req.RiskFactorKeywords,
	}
	if err := s.diseases.Create(ctx, disease); err != nil {
		return nil, apperror.Internal("failed to create disease", err)
	}

	res := diseaseToDTO(disease)
	return &res, nil
}

func (s *knowledgeService) UpdateDisease(ctx context.Context, id uuid.UUID, req *dto.UpdateDiseaseRequest) (*dto.DiseaseResponse, error) {
	existing, err := s.diseases.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("failed to look up disease", err)
	}
	if existing == nil {
		return nil, apperror.NotFound("disease not found", nil)
	}

	fields := map[string]interface{}{}
	if req.NameFr != nil {
		fields["name_fr"] = *req.NameFr
	}
	if req.ICD10Code != nil {
		fields["icd10_code"] = *req.ICD10Code
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Severity != nil {
		fields["severity"] = *req.Severity
	}
	if req.Prevalence != nil {
		fields["prevalence"] = *req.Prevalence
	}
	if req.TriageRecommendation != nil {
		fields["triage_recommendation"] = *req.TriageRecommendation
	}
	if req.SymptomKeywords != nil {
		fields["symptom_keywords"] = datatypes.NewJSONSlice(*req.SymptomKeywords)
	}
	if req.CauseKeywords != nil {
		fields["cause_keywords"] = datatypes.NewJSONSlice(*req.CauseKeywords)
	}
	if req.RiskFactorKeywords != nil {
		fields["risk_factor_keywords"] = datatypes.NewJSONSlice(*req.RiskFactorKeywords)
	}

	if len(fields) > 0 {
		if err := s.diseases.UpdateFields(ctx, id, fields); err != nil {
			return nil, apperror.Internal("failed to update disease", err)
		}
	}

	return s.GetDisease(ctx, id)
}

func (s *knowledgeService) DeleteDisease(ctx context.Context, id uuid.UUID) error {
	existing, err := s.diseases.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.Internal("failed to look up disease", err)
	}
	if existing == nil {
		return apperror.NotFound("disease not found", nil)
	}
	if err := s.diseases.Delete(ctx, id); err != nil {
		return apperror.Internal("failed to delete disease", err)
	}
	return nil
}

func (s *knowledgeService) GetDisease(ctx context.Context, id uuid.UUID) (*dto.DiseaseResponse, error) {
	disease, err := s.diseases.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("failed to look up disease", err)
	}
	if disease == nil {
		return nil, apperror.NotFound("disease not found", nil)
	}
	res := diseaseToDTO(disease)
	return &res, nil
}

func (s *knowledgeService) ListDiseases(ctx context.Context, nameFilter string, limit, offset int) ([]dto.DiseaseResponse, int64, error) {
	specs := []specification.Specification{}
	if nameFilter != "" {
		specs = append(specs, specification.NameContains{Fragment: nameFilter})
	}

	total, err := s.diseases.Count(ctx, specs...)
	if err != nil {
		return nil, 0, apperror.Internal("failed to count diseases", err)
	}

	specs = append(specs, specification.OrderBy{Field: "name_fr", Desc: false}, specification.Pagination{Limit: limit, Offset: offset})
	diseases, err := s.diseases.FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, apperror.Internal("failed to list diseases", err)
	}

	out := make([]dto.DiseaseResponse, len(diseases))
	for i, d := range diseases {
		out[i] = diseaseToDTO(d)
	}
	return out, total, nil
}

func (s *knowledgeService) CreateSymptom(ctx context.Context, req *dto.CreateSymptomRequest) (*dto.SymptomResponse, error) {
	existing, err := s.symptoms.FindOne(ctx, specification.ByNameFr{Name: req.NameFr})
	if err != nil {
		return nil, apperror.Internal("failed to check existing symptom", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("symptom already exists", nil)
	}

	symptom := &entity.Symptom{
		NameFr:             req.NameFr,
		Description:        req.Description,
		PotentialSeverity:  req.PotentialSeverity,
		AssociatedKeywords: req.AssociatedKeywords,
	}
	if err := s.symptoms.Create(ctx, symptom); err != nil {
		return nil, apperror.Internal("failed to create symptom", err)
	}

	res := symptomToDTO(symptom)
	return &res, nil
}

func (s *knowledgeService) UpdateSymptom(ctx context.Context, id uuid.UUID, req *dto.UpdateSymptomRequest) (*dto.SymptomResponse, error) {
	existing, err := s.symptoms.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("failed to look up symptom", err)
	}
	if existing == nil {
		return nil, apperror.NotFound("symptom not found", nil)
	}

	fields := map[string]interface{}{}
	if req.NameFr != nil {
		fields["name_fr"] = *req.NameFr
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.PotentialSeverity != nil {
		fields["potential_severity"] = *req.PotentialSeverity
	}
	if req.AssociatedKeywords != nil {
		fields["associated_keywords"] = datatypes.NewJSONSlice(*req.AssociatedKeywords)
	}

	if len(fields) > 0 {
		if err := s.symptoms.UpdateFields(ctx, id, fields); err != nil {
			return nil, apperror.Internal("failed to update symptom", err)
		}
	}

	return s.GetSymptom(ctx, id)
}

func (s *knowledgeService) DeleteSymptom(ctx context.Context, id uuid.UUID) error {
	existing, err := s.symptoms.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return apperror.Internal("failed to look up symptom", err)
	}
	if existing == nil {
		return apperror.NotFound("symptom not found", nil)
	}
	if err := s.symptoms.Delete(ctx, id); err != nil {
		return apperror.Internal("failed to delete symptom", err)
	}
	return nil
}

func (s *knowledgeService) GetSymptom(ctx context.Context, id uuid.UUID) (*dto.SymptomResponse, error) {
	symptom, err := s.symptoms.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Internal("failed to look up symptom", err)
	}
	if symptom == nil {
		return nil, apperror.NotFound("symptom not found", nil)
	}
	res := symptomToDTO(symptom)
	return &res, nil
}

func (s *knowledgeService) ListSymptoms(ctx context.Context, nameFilter string, limit, offset int) ([]dto.SymptomResponse, int64, error) {
	specs := []specification.Specification{}
	if nameFilter != "" {
		specs = append(specs, specification.NameContains{Fragment: nameFilter})
	}

	total, err := s.symptoms.Count(ctx, specs...)
	if err != nil {
		return nil, 0, apperror.Internal("failed to count symptoms", err)
	}

	specs = append(specs, specification.OrderBy{Field: "name_fr", Desc: false}, specification.Pagination{Limit: limit, Offset: offset})
	symptoms, err := s.symptoms.FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, apperror.Internal("failed to list symptoms", err)
	}

	out := make([]dto.SymptomResponse, len(symptoms))
	for i, sym := range symptoms {
		out[i] = symptomToDTO(sym)
	}
	return out, total, nil
}

func (s *knowledgeService) LinkDiseaseSymptom(ctx context.Context, req *dto.LinkDiseaseSymptomRequest) error {
	disease, err := s.diseases.FindOne(ctx, specification.ByID{ID: req.DiseaseId})
	if err != nil {
		return apperror.Internal("failed to look up disease", err)
	}
	if disease == nil {
		return apperror.NotFound("disease not found", nil)
	}

	symptom, err := s.symptoms.FindOne(ctx, specification.ByID{ID: req.SymptomId})
	if err != nil {
		return apperror.Internal("failed to look up symptom", err)
	}
	if symptom == nil {
		return apperror.NotFound("symptom not found", nil)
	}

	links, err := s.diseases.FindLinksByDiseaseId(ctx, req.DiseaseId)
	if err != nil {
		return apperror.Internal("failed to look up existing links", err)
	}
	for _, link := range links {
		if link.SymptomId == req.SymptomId {
			return apperror.Conflict("disease and symptom are already linked", nil)
		}
	}

	link := &model.DiseaseSymptomLink{
		DiseaseId: req.DiseaseId,
		SymptomId: req.SymptomId,
		LinkForce: req.LinkForce,
	}
	if err := s.diseases.CreateLink(ctx, link); err != nil {
		return apperror.Internal("failed to create link", err)
	}
	return nil
}

func (s *knowledgeService) MatchDiseases(ctx context.Context, symptoms []string) ([]dto.DiseaseMatchResponse, error) {
	if len(symptoms) == 0 {
		return nil, apperror.InvalidInput("at least one symptom is required", nil)
	}

	diseases, err := s.diseases.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to load diseases", err)
	}

	matches := knowledge.MatchDiseases(diseases, symptoms)
	out := make([]dto.DiseaseMatchResponse, len(matches))
	for i, m := range matches {
		out[i] = dto.DiseaseMatchResponse{
			Disease:          diseaseToDTO(m.Disease),
			Confidence:       m.Confidence,
			MatchingSymptoms: m.MatchingSymptoms,
		}
	}
	return out, nil
}

func diseaseToDTO(d *entity.Disease) dto.DiseaseResponse {
	return dto.DiseaseResponse{
		Id:                   d.Id,
		NameFr:               d.NameFr,
		ICD10Code:            d.ICD10Code,
		Description:          d.Description,
		Severity:             d.Severity,
		Prevalence:           d.Prevalence,
		TriageRecommendation: d.TriageRecommendation,
		SymptomKeywords:      d.SymptomKeywords,
		CauseKeywords:        d.CauseKeywords,
		RiskFactorKeywords:   d.RiskFactorKeywords,
		CreatedAt:            d.CreatedAt,
	}
}

func symptomToDTO(s *entity.Symptom) dto.SymptomResponse {
	return dto.SymptomResponse{
		Id:                 s.Id,
		NameFr:             s.NameFr,
		Description:        s.Description,
		PotentialSeverity:  s.PotentialSeverity,
		AssociatedKeywords: s.AssociatedKeywords,
		CreatedAt:          s.CreatedAt,
	}
}
