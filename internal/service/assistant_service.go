package service

import (
	"context"
	"strings"

	"telemed-be/internal/constant"
	"telemed-be/internal/dto"
	"telemed-be/internal/entity"
	"telemed-be/internal/pkg/apperror"
	"telemed-be/internal/pkg/logger"
	"telemed-be/internal/repository/contract"
	"telemed-be/internal/repository/specification"
	"telemed-be/pkg/events"
	pktNats "telemed-be/pkg/nats"
	"telemed-be/pkg/speech"
)

type IAssistantService interface {
	// Process resolves the turn input (audio when present, text
	// otherwise) and runs one chat turn.
	Process(ctx context.Context, req *dto.ProcessRequest) (*dto.AssistantResponse, error)
	// ProcessText runs one chat turn over text input.
	ProcessText(ctx context.Context, req *dto.ChatRequest) (*dto.AssistantResponse, error)
	// ProcessVoice converts and transcribes the audio, then runs the
	// turn. A nil response with empty transcription means no speech was
	// detected.
	ProcessVoice(ctx context.Context, sessionId string, audio []byte) (*dto.AssistantResponse, string, error)
	// EndCall closes a voice session with a spoken goodbye.
	EndCall(ctx context.Context, sessionId string) (*dto.AssistantResponse, error)
	GetHistory(ctx context.Context, sessionId string) ([]dto.ConversationTurnResponse, error)
	// AnnotateFeedback records the user's rating of an assistant reply.
	AnnotateFeedback(ctx context.Context, req *dto.FeedbackRequest) error
}

// TurnProcessor runs one assistant turn end to end.
type TurnProcessor interface {
	ProcessTurn(ctx context.Context, sessionId, message string) (*dto.AssistantResponse, error)
}

type assistantService struct {
	engine      TurnProcessor
	transcriber speech.Transcriber
	converter   speech.AudioConverter
	audio       *AudioStore
	turns       contract.ConversationRepository
	publisher   *pktNats.Publisher
	log         logger.ILogger
}

func NewAssistantService(
	engine TurnProcessor,
	transcriber speech.Transcriber,
	converter speech.AudioConverter,
	audio *AudioStore,
	turns contract.ConversationRepository,
	publisher *pktNats.Publisher,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		engine:      engine,
		transcriber: transcriber,
		converter:   converter,
		audio:       audio,
		turns:       turns,
		publisher:   publisher,
		log:         log,
	}
}

// Process prefers the audio upload when both inputs are present. An
// empty or failed transcription falls back to the text message, so a
// turn with a text alternative never dies on a bad recording.
func (s *assistantService) Process(ctx context.Context, req *dto.ProcessRequest) (*dto.AssistantResponse, error) {
	message := strings.TrimSpace(req.Message)

	if len(req.Audio) > 0 {
		transcription, err := s.transcribe(ctx, req.Audio)
		if err != nil && message == "" {
			return nil, err
		}
		if err != nil {
			s.log.Warn("service.assistant", "transcription failed, using text message", map[string]interface{}{
				"session_id": req.SessionId,
				"error":      err.Error(),
			})
		}
		if transcription != "" {
			message = transcription
		}
	}

	if message == "" {
		return nil, apperror.InvalidInput("a text message or an audio recording is required", nil)
	}

	return s.engine.ProcessTurn(ctx, req.SessionId, message)
}

func (s *assistantService) ProcessText(ctx context.Context, req *dto.ChatRequest) (*dto.AssistantResponse, error) {
	return s.engine.ProcessTurn(ctx, req.SessionId, req.Message)
}

func (s *assistantService) ProcessVoice(ctx context.Context, sessionId string, audio []byte) (*dto.AssistantResponse, string, error) {
	if len(audio) == 0 {
		return nil, "", nil
	}

	transcription, err := s.transcribe(ctx, audio)
	if err != nil {
		return nil, "", err
	}
	if transcription == "" {
		return nil, "", nil
	}

	response, err := s.engine.ProcessTurn(ctx, sessionId, transcription)
	if err != nil {
		return nil, transcription, err
	}
	return response, transcription, nil
}

func (s *assistantService) transcribe(ctx context.Context, audio []byte) (string, error) {
	wav, err := s.converter.ToWav(ctx, audio)
	if err != nil {
		return "", apperror.ServiceDegraded("audio conversion failed", err)
	}

	transcription, err := s.transcriber.Transcribe(ctx, wav)
	if err != nil {
		return "", apperror.ServiceDegraded("transcription failed", err)
	}
	return strings.TrimSpace(transcription), nil
}

func (s *assistantService) EndCall(ctx context.Context, sessionId string) (*dto.AssistantResponse, error) {
	goodbye := constant.MsgEndCallGoodbye
	audioPath := s.audio.Attach(ctx, sessionId, goodbye)
	var loggedAudioPath interface{}
	if audioPath != "" {
		loggedAudioPath = audioPath
	}

	turn := &entity.ConversationTurn{
		SessionId: sessionId,
		Actor:     constant.ActorAI,
		Message:   goodbye,
		StructuredData: map[string]interface{}{
			"intention_detectee":    constant.IntentEndCall,
			"recommandation_triage": constant.TriageEndCall,
			"chemin_audio":          loggedAudioPath,
		},
	}
	if err := s.turns.Append(ctx, turn); err != nil {
		return nil, apperror.Internal("failed to log end of call", err)
	}

	response := &dto.AssistantResponse{
		Type:                 constant.FrameEndCallConfirm,
		SessionId:            sessionId,
		AIResponse:           goodbye,
		AIResponseAudioURL:   audioPath,
		DetectedIntent:       constant.IntentEndCall,
		TriageRecommendation: constant.TriageEndCall,
		AIMessageId:          turn.Id.String(),
	}

	if s.publisher != nil {
		event := events.New(events.TypeAssistantSessionEnded, map[string]interface{}{
			"session_id": sessionId,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.log.Warn("service.assistant", "failed to publish session ended event", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}

	return response, nil
}

func (s *assistantService) GetHistory(ctx context.Context, sessionId string) ([]dto.ConversationTurnResponse, error) {
	turns, err := s.turns.FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "timestamp", Desc: false},
	)
	if err != nil {
		return nil, apperror.Internal("failed to load conversation history", err)
	}

	out := make([]dto.ConversationTurnResponse, len(turns))
	for i, t := range turns {
		out[i] = dto.ConversationTurnResponse{
			Id:             t.Id,
			SessionId:      t.SessionId,
			Actor:          t.Actor,
			Message:        t.Message,
			StructuredData: t.StructuredData,
			Feedback:       t.Feedback,
			Timestamp:      t.Timestamp,
		}
	}
	return out, nil
}

func (s *assistantService) AnnotateFeedback(ctx context.Context, req *dto.FeedbackRequest) error {
	found, err := s.turns.AnnotateFeedback(ctx, req.MessageId, req.Value)
	if err != nil {
		return apperror.Internal("failed to record feedback", err)
	}
	if !found {
		return apperror.NotFound("message not found", nil)
	}
	return nil
}
