package service

import (
	"context"
	"encoding/json"
	"strings"

	"telemed-be/internal/dto"
	"telemed-be/internal/model"
	"telemed-be/internal/pkg/apperror"
	"telemed-be/internal/pkg/logger"
	"telemed-be/internal/repository"
	"telemed-be/pkg/events"
	pktNats "telemed-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// SummarizeTopic is the in-process queue for deferred session
// summarization.
const SummarizeTopic = "teleconsultation.summarize"

// SummarizeSessionMessage is the payload published on SummarizeTopic.
type SummarizeSessionMessage struct {
	SessionId uuid.UUID `json:"session_id"`
}

type ITeleconsultationService interface {
	Create(ctx context.Context, req *dto.CreateTeleconsultationRequest) (*dto.TeleconsultationResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.TeleconsultationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTeleconsultationRequest) (*dto.TeleconsultationResponse, error)
	AppendTranscript(ctx context.Context, id uuid.UUID, req *dto.AppendTranscriptRequest) (*dto.TeleconsultationResponse, error)
	ListByPatient(ctx context.Context, patientId uuid.UUID) ([]dto.TeleconsultationResponse, error)
	ListByDoctor(ctx context.Context, doctorId uuid.UUID) ([]dto.TeleconsultationResponse, error)
}

type teleconsultationService struct {
	sessions  repository.TeleconsultationRepository
	patients  repository.PatientRepository
	pubSub    *gochannel.GoChannel
	publisher *pktNats.Publisher
	log       logger.ILogger
}

func NewTeleconsultationService(
	sessions repository.TeleconsultationRepository,
	patients repository.PatientRepository,
	pubSub *gochannel.GoChannel,
	publisher *pktNats.Publisher,
	log logger.ILogger,
) ITeleconsultationService {
	return &teleconsultationService{
		sessions:  sessions,
		patients:  patients,
		pubSub:    pubSub,
		publisher: publisher,
		log:       log,
	}
}

func (s *teleconsultationService) Create(ctx context.Context, req *dto.CreateTeleconsultationRequest) (*dto.TeleconsultationResponse, error) {
	session := &model.TeleconsultationSession{
		PatientId: req.PatientId,
		DoctorId:  req.DoctorId,
		StartedAt: req.StartedAt,
		Status:    model.TeleconsultationStatusScheduled,
		Notes:     optional(req.Notes),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, apperror.Internal("failed to create teleconsultation", err)
	}

	res := teleconsultationToDTO(session)
	return &res, nil
}

func (s *teleconsultationService) GetByID(ctx context.Context, id uuid.UUID) (*dto.TeleconsultationResponse, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to look up teleconsultation", err)
	}
	if session == nil {
		return nil, apperror.NotFound("teleconsultation not found", nil)
	}
	res := teleconsultationToDTO(session)
	return &res, nil
}

func (s *teleconsultationService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTeleconsultationRequest) (*dto.TeleconsultationResponse, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to look up teleconsultation", err)
	}
	if session == nil {
		return nil, apperror.NotFound("teleconsultation not found", nil)
	}

	fields := map[string]interface{}{}
	if req.Status != nil {
		if !validTransition(session.Status, *req.Status) {
			return nil, apperror.Conflict("invalid status transition", nil)
		}
		fields["status"] = *req.Status
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if len(fields) > 0 {
		if err := s.sessions.UpdateFields(ctx, id, fields); err != nil {
			return nil, apperror.Internal("failed to update teleconsultation", err)
		}
	}

	if req.Status != nil && *req.Status == model.TeleconsultationStatusFinished {
		s.onFinished(ctx, session)
	}

	return s.GetByID(ctx, id)
}

func (s *teleconsultationService) AppendTranscript(ctx context.Context, id uuid.UUID, req *dto.AppendTranscriptRequest) (*dto.TeleconsultationResponse, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to look up teleconsultation", err)
	}
	if session == nil {
		return nil, apperror.NotFound("teleconsultation not found", nil)
	}
	if session.Status == model.TeleconsultationStatusFinished || session.Status == model.TeleconsultationStatusCancelled {
		return nil, apperror.Conflict("teleconsultation is closed", nil)
	}

	transcript := strings.TrimSpace(req.Text)
	if existing := session.Transcript; existing != nil && *existing != "" {
		transcript = *existing + "\n" + transcript
	}

	fields := map[string]interface{}{"transcript": transcript}
	if session.Status == model.TeleconsultationStatusScheduled {
		fields["status"] = model.TeleconsultationStatusOngoing
	}
	if req.IsFinal {
		fields["status"] = model.TeleconsultationStatusFinished
	}

	if err := s.sessions.UpdateFields(ctx, id, fields); err != nil {
		return nil, apperror.Internal("failed to append transcript", err)
	}

	if req.IsFinal {
		s.onFinished(ctx, session)
	}

	return s.GetByID(ctx, id)
}

func (s *teleconsultationService) ListByPatient(ctx context.Context, patientId uuid.UUID) ([]dto.TeleconsultationResponse, error) {
	sessions, err := s.sessions.ListByPatient(ctx, patientId)
	if err != nil {
		return nil, apperror.Internal("failed to list teleconsultations", err)
	}
	return teleconsultationsToDTO(sessions), nil
}

func (s *teleconsultationService) ListByDoctor(ctx context.Context, doctorId uuid.UUID) ([]dto.TeleconsultationResponse, error) {
	sessions, err := s.sessions.ListByDoctor(ctx, doctorId)
	if err != nil {
		return nil, apperror.Internal("failed to list teleconsultations", err)
	}
	return teleconsultationsToDTO(sessions), nil
}

// onFinished enqueues the deferred summary generation and announces
// the end of the session on the event bus.
func (s *teleconsultationService) onFinished(ctx context.Context, session *model.TeleconsultationSession) {
	s.enqueueSummary(session.Id)

	if s.publisher == nil {
		return
	}
	data := map[string]interface{}{
		"session_id": session.Id.String(),
		"patient_id": session.PatientId.String(),
	}
	if patient, err := s.patients.GetByID(ctx, session.PatientId); err == nil && patient != nil {
		data["user_id"] = patient.UserId.String()
	}
	if err := s.publisher.Publish(ctx, events.New(events.TypeTeleconsultationEnded, data)); err != nil {
		s.log.Warn("service.teleconsultation", "failed to publish session ended event", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}
}

func (s *teleconsultationService) enqueueSummary(id uuid.UUID) {
	if s.pubSub == nil {
		return
	}
	payload, _ := json.Marshal(SummarizeSessionMessage{SessionId: id})
	msg := message.NewMessage(uuid.NewString(), payload)
	if err := s.pubSub.Publish(SummarizeTopic, msg); err != nil {
		s.log.Warn("service.teleconsultation", "failed to enqueue summary generation", map[string]interface{}{
			"session_id": id.String(),
			"error":      err.Error(),
		})
	}
}

func validTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case model.TeleconsultationStatusScheduled:
		return to == model.TeleconsultationStatusOngoing || to == model.TeleconsultationStatusCancelled
	case model.TeleconsultationStatusOngoing:
		return to == model.TeleconsultationStatusFinished || to == model.TeleconsultationStatusCancelled
	default:
		return false
	}
}

func teleconsultationToDTO(t *model.TeleconsultationSession) dto.TeleconsultationResponse {
	return dto.TeleconsultationResponse{
		Id:         t.Id,
		PatientId:  t.PatientId,
		DoctorId:   t.DoctorId,
		StartedAt:  t.StartedAt,
		Status:     t.Status,
		Notes:      deref(t.Notes),
		Transcript: deref(t.Transcript),
		Summary:    deref(t.Summary),
		CreatedAt:  t.CreatedAt,
	}
}

func teleconsultationsToDTO(sessions []model.TeleconsultationSession) []dto.TeleconsultationResponse {
	out := make([]dto.TeleconsultationResponse, len(sessions))
	for i := range sessions {
		out[i] = teleconsultationToDTO(&sessions[i])
	}
	return out
}
