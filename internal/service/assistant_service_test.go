package service

import (
	"context"
	"errors"
	"testing"

	"telemed-be/internal/constant"
	"telemed-be/internal/dto"
	"telemed-be/internal/entity"
	"telemed-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTurnProcessor records the message each turn resolved to.
type fakeTurnProcessor struct {
	messages []string
}

func (f *fakeTurnProcessor) ProcessTurn(ctx context.Context, sessionId, message string) (*dto.AssistantResponse, error) {
	f.messages = append(f.messages, message)
	return &dto.AssistantResponse{SessionId: sessionId, AIResponse: "compris"}, nil
}

type fakeConverter struct {
	err error
}

func (f *fakeConverter) ToWav(ctx context.Context, input []byte) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return input, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, wavData []byte) (string, error) {
	return f.text, f.err
}

func TestProcessPrefersAudioTranscription(t *testing.T) {
	engine := &fakeTurnProcessor{}
	svc := NewAssistantService(engine, &fakeTranscriber{text: "j'ai de la fièvre"}, &fakeConverter{}, nil, nil, nil, testLogger{})

	res, err := svc.Process(context.Background(), &dto.ProcessRequest{
		SessionId: "s1",
		Message:   "message texte ignoré",
		Audio:     []byte("webm"),
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, []string{"j'ai de la fièvre"}, engine.messages)
}

func TestProcessFallsBackToTextOnEmptyTranscription(t *testing.T) {
	engine := &fakeTurnProcessor{}
	svc := NewAssistantService(engine, &fakeTranscriber{text: "   "}, &fakeConverter{}, nil, nil, nil, testLogger{})

	_, err := svc.Process(context.Background(), &dto.ProcessRequest{
		SessionId: "s1",
		Message:   "j'ai mal à la tête",
		Audio:     []byte("silence"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"j'ai mal à la tête"}, engine.messages)
}

func TestProcessFallsBackToTextOnTranscriptionError(t *testing.T) {
	engine := &fakeTurnProcessor{}
	svc := NewAssistantService(engine, &fakeTranscriber{err: errors.New("stt down")}, &fakeConverter{}, nil, nil, nil, testLogger{})

	_, err := svc.Process(context.Background(), &dto.ProcessRequest{
		SessionId: "s1",
		Message:   "j'ai mal à la tête",
		Audio:     []byte("bruit"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"j'ai mal à la tête"}, engine.messages)
}

func TestProcessFailsWithoutAnyUsableInput(t *testing.T) {
	engine := &fakeTurnProcessor{}
	svc := NewAssistantService(engine, &fakeTranscriber{text: ""}, &fakeConverter{}, nil, nil, nil, testLogger{})

	_, err := svc.Process(context.Background(), &dto.ProcessRequest{SessionId: "s1"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))

	_, err = svc.Process(context.Background(), &dto.ProcessRequest{SessionId: "s1", Audio: []byte("silence")})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))

	assert.Empty(t, engine.messages)
}

func TestProcessAudioOnlyFailureSurfacesDegradedService(t *testing.T) {
	engine := &fakeTurnProcessor{}
	svc := NewAssistantService(engine, &fakeTranscriber{err: errors.New("stt down")}, &fakeConverter{}, nil, nil, nil, testLogger{})

	_, err := svc.Process(context.Background(), &dto.ProcessRequest{SessionId: "s1", Audio: []byte("bruit")})
	require.Error(t, err)
	assert.Equal(t, apperror.KindServiceDegraded, apperror.KindOf(err))
}

func TestAssistantFeedbackAnnotatesTurn(t *testing.T) {
	turnID := uuid.New()
	turns := &fakeConversationRepo{turns: []*entity.ConversationTurn{
		{Id: turnID, SessionId: "s1", Actor: constant.ActorAI, Message: "Il pourrait s'agir d'une grippe."},
	}}
	svc := NewAssistantService(nil, nil, nil, nil, turns, nil, testLogger{})

	err := svc.AnnotateFeedback(context.Background(), &dto.FeedbackRequest{MessageId: turnID, Value: 1})
	require.NoError(t, err)

	require.NotNil(t, turns.turns[0].Feedback)
	assert.Equal(t, 1, *turns.turns[0].Feedback)
}

func TestAssistantFeedbackUnknownMessage(t *testing.T) {
	turns := &fakeConversationRepo{}
	svc := NewAssistantService(nil, nil, nil, nil, turns, nil, testLogger{})

	err := svc.AnnotateFeedback(context.Background(), &dto.FeedbackRequest{MessageId: uuid.New(), Value: -1})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
