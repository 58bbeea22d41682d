package service

import (
	"context"
	"encoding/json"
	"log"

	"telemed-be/internal/model"
	"telemed-be/internal/pkg/mailer"
	"telemed-be/internal/repository"
	"telemed-be/pkg/diagnosis"
	"telemed-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// maxTranscriptChars bounds the prompt size sent to the model. Long
// sessions keep only the most recent chunk of dialogue.
const maxTranscriptChars = 12000

type ISummaryConsumerService interface {
	Consume(ctx context.Context) error
}

// summaryConsumerService drains the summarize queue: for every finished
// teleconsultation it generates an LLM summary, stores it and mails it
// to the patient.
type summaryConsumerService struct {
	pubSub       *gochannel.GoChannel
	sessions     repository.TeleconsultationRepository
	patients     repository.PatientRepository
	users        repository.UserRepository
	replies      *diagnosis.Generator
	emailService mailer.IEmailService
}

func NewSummaryConsumerService(
	pubSub *gochannel.GoChannel,
	sessions repository.TeleconsultationRepository,
	patients repository.PatientRepository,
	users repository.UserRepository,
	replies *diagnosis.Generator,
	emailService mailer.IEmailService,
) ISummaryConsumerService {
	return &summaryConsumerService{
		pubSub:       pubSub,
		sessions:     sessions,
		patients:     patients,
		users:        users,
		replies:      replies,
		emailService: emailService,
	}
}

func (cs *summaryConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, SummarizeTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *summaryConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload SummarizeSessionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal summarize message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Generating summary for teleconsultation %s", payload.SessionId)

	session, err := cs.sessions.GetByID(ctx, payload.SessionId)
	if err != nil {
		log.Printf("[ERROR] Failed to load session %s: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if session == nil {
		log.Printf("[ERROR] Session not found: %s", payload.SessionId)
		msg.Ack() // Session deleted? Ack.
		return
	}

	if session.Transcript == nil || *session.Transcript == "" {
		log.Printf("[WARN] Session %s has no transcript, skipping summary", payload.SessionId)
		msg.Ack()
		return
	}
	if session.Status != model.TeleconsultationStatusFinished {
		log.Printf("[WARN] Session %s is not finished (status %s), skipping summary", payload.SessionId, session.Status)
		msg.Ack()
		return
	}

	transcript := *session.Transcript
	if len(transcript) > maxTranscriptChars {
		chunks := utils.SplitText(transcript, maxTranscriptChars, 200)
		transcript = chunks[len(chunks)-1]
		log.Printf("[WARN] Transcript for session %s truncated to last %d chars", payload.SessionId, len(transcript))
	}

	summary := cs.replies.SessionSummary(ctx, transcript)

	if err := cs.sessions.UpdateFields(ctx, session.Id, map[string]interface{}{"summary": summary}); err != nil {
		log.Printf("[ERROR] Failed to store summary for session %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	cs.mailSummary(ctx, session, summary)

	log.Printf("[SUCCESS] Summary stored for teleconsultation %s", payload.SessionId)
	msg.Ack()
}

func (cs *summaryConsumerService) mailSummary(ctx context.Context, session *model.TeleconsultationSession, summary string) {
	if cs.emailService == nil {
		return
	}

	patient, err := cs.patients.GetByID(ctx, session.PatientId)
	if err != nil || patient == nil {
		log.Printf("[WARN] Cannot mail summary for session %s, patient lookup failed", session.Id)
		return
	}
	user, err := cs.users.GetByID(ctx, patient.UserId)
	if err != nil || user == nil {
		log.Printf("[WARN] Cannot mail summary for session %s, user lookup failed", session.Id)
		return
	}

	if err := cs.emailService.SendTeleconsultationSummary(user.Email, patient.FirstName, summary); err != nil {
		log.Printf("[WARN] Failed to mail summary for session %s: %v", session.Id, err)
	}
}
