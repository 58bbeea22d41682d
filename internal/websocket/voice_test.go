package websocket

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"telemed-be/internal/config"
	"telemed-be/internal/constant"
	"telemed-be/internal/dto"
	"telemed-be/internal/repository/memory"
	"telemed-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLogger struct {
	mu    sync.Mutex
	infos []string
}

func (l *countingLogger) Debug(module, message string, details map[string]interface{}) {}
func (l *countingLogger) Info(module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, message)
}
func (l *countingLogger) Warn(module, message string, details map[string]interface{})  {}
func (l *countingLogger) Error(module, message string, details map[string]interface{}) {}
func (l *countingLogger) Sync() error                                                  { return nil }

func (l *countingLogger) infoCount(message string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, m := range l.infos {
		if m == message {
			n++
		}
	}
	return n
}

// recordingSink captures every frame written to the connection.
type recordingSink struct {
	mu     sync.Mutex
	frames []interface{}
}

func (s *recordingSink) writeJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, v)
	return nil
}

func (s *recordingSink) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.frames))
	for i, f := range s.frames {
		switch v := f.(type) {
		case dto.ThinkingFrame:
			out[i] = v.Type
		case dto.UserTranscriptionFrame:
			out[i] = v.Type
		case dto.ErrorFrame:
			out[i] = v.Type
		case *dto.AssistantResponse:
			out[i] = v.Type
		}
	}
	return out
}

type fakeAssistant struct {
	mu              sync.Mutex
	voiceCalls      [][]byte
	bufferAtCall    []int
	session         *store.VoiceSession
	voiceErr        error
	transcription   string
	endCallSessions []string
}

func (f *fakeAssistant) Process(ctx context.Context, req *dto.ProcessRequest) (*dto.AssistantResponse, error) {
	return &dto.AssistantResponse{SessionId: req.SessionId}, nil
}

func (f *fakeAssistant) ProcessText(ctx context.Context, req *dto.ChatRequest) (*dto.AssistantResponse, error) {
	return &dto.AssistantResponse{SessionId: req.SessionId, AIResponse: "ok"}, nil
}

func (f *fakeAssistant) ProcessVoice(ctx context.Context, sessionId string, audio []byte) (*dto.AssistantResponse, string, error) {
	f.mu.Lock()
	f.voiceCalls = append(f.voiceCalls, audio)
	if f.session != nil {
		f.bufferAtCall = append(f.bufferAtCall, f.session.BufferSize())
	}
	f.mu.Unlock()
	if f.voiceErr != nil {
		return nil, "", f.voiceErr
	}
	transcription := f.transcription
	if transcription == "" {
		transcription = "j'ai de la fièvre"
	}
	return &dto.AssistantResponse{SessionId: sessionId, AIResponse: "compris"}, transcription, nil
}

func (f *fakeAssistant) EndCall(ctx context.Context, sessionId string) (*dto.AssistantResponse, error) {
	f.mu.Lock()
	f.endCallSessions = append(f.endCallSessions, sessionId)
	f.mu.Unlock()
	return &dto.AssistantResponse{
		Type:       constant.FrameEndCallConfirm,
		SessionId:  sessionId,
		AIResponse: constant.MsgEndCallGoodbye,
	}, nil
}

func (f *fakeAssistant) GetHistory(ctx context.Context, sessionId string) ([]dto.ConversationTurnResponse, error) {
	return nil, nil
}

func (f *fakeAssistant) AnnotateFeedback(ctx context.Context, req *dto.FeedbackRequest) error {
	return nil
}

func (f *fakeAssistant) voiceCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.voiceCalls)
}

func newTestManager(assistant *fakeAssistant, cfg config.AssistantConfig, log *countingLogger) (*VoiceManager, *memory.SessionRepository) {
	sessions := memory.NewSessionRepository()
	return NewVoiceManager(sessions, assistant, cfg, log), sessions
}

func TestFlushTakesBufferBeforeProcessing(t *testing.T) {
	assistant := &fakeAssistant{}
	m, _ := newTestManager(assistant, config.AssistantConfig{}, &countingLogger{})

	session := store.NewVoiceSession("s1", "u1")
	assistant.session = session
	session.AppendAudio([]byte("chunk-a"))
	session.AppendAudio([]byte("chunk-b"))

	sink := &recordingSink{}
	m.flush(context.Background(), session, sink)

	require.Equal(t, 1, assistant.voiceCallCount())
	assert.Equal(t, []byte("chunk-achunk-b"), assistant.voiceCalls[0])
	// The buffer was already drained when processing started, so chunks
	// arriving mid-turn land in a fresh buffer.
	assert.Equal(t, 0, assistant.bufferAtCall[0])
	assert.Equal(t, []string{
		constant.FrameAIThinking,
		constant.FrameUserTranscription,
		constant.FrameAIResponse,
	}, sink.types())
}

func TestFlushSkipsEmptyBuffer(t *testing.T) {
	assistant := &fakeAssistant{}
	m, _ := newTestManager(assistant, config.AssistantConfig{}, &countingLogger{})

	session := store.NewVoiceSession("s1", "u1")
	sink := &recordingSink{}
	m.flush(context.Background(), session, sink)

	assert.Equal(t, 0, assistant.voiceCallCount())
	assert.Empty(t, sink.types())
}

func TestMonitorSilenceFlushesBufferOnce(t *testing.T) {
	assistant := &fakeAssistant{}
	cfg := config.AssistantConfig{SilenceThresholdMs: 10, SilenceCheckMs: 5}
	m, _ := newTestManager(assistant, cfg, &countingLogger{})

	session := store.NewVoiceSession("s1", "u1")
	session.AppendAudio([]byte("bonjour"))

	ctx, cancel := context.WithCancel(context.Background())
	sink := &recordingSink{}
	go m.monitorSilence(ctx, session, sink)

	// Several check intervals pass after the single silence gap; the
	// first flush drains the buffer so later ticks have nothing to do.
	time.Sleep(120 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 1, assistant.voiceCallCount())
}

func TestEndCallConfirmFollowsPendingTurn(t *testing.T) {
	assistant := &fakeAssistant{}
	m, _ := newTestManager(assistant, config.AssistantConfig{}, &countingLogger{})

	session := store.NewVoiceSession("s1", "u1")
	session.AppendAudio([]byte("dernier message"))

	sink := &recordingSink{}
	m.flush(context.Background(), session, sink)
	m.handleEndCall(session, sink)

	require.Equal(t, []string{
		constant.FrameAIThinking,
		constant.FrameUserTranscription,
		constant.FrameAIResponse,
		constant.FrameEndCallConfirm,
	}, sink.types())
	assert.Equal(t, []string{"s1"}, assistant.endCallSessions)
}

func TestFlushWritesErrorFrameOnFailure(t *testing.T) {
	assistant := &fakeAssistant{voiceErr: errors.New("stt down")}
	m, _ := newTestManager(assistant, config.AssistantConfig{}, &countingLogger{})

	session := store.NewVoiceSession("s1", "u1")
	session.AppendAudio([]byte("inaudible"))

	sink := &recordingSink{}
	m.flush(context.Background(), session, sink)

	assert.Equal(t, []string{
		constant.FrameAIThinking,
		constant.FrameAIError,
	}, sink.types())
}

func TestTeardownRunsOnce(t *testing.T) {
	log := &countingLogger{}
	assistant := &fakeAssistant{}
	m, sessions := newTestManager(assistant, config.AssistantConfig{}, log)

	session := store.NewVoiceSession("s1", "u1")
	sessions.Save(session)

	ctx, cancel := context.WithCancel(context.Background())
	var once sync.Once
	m.teardown(&once, cancel, "s1", "u1")
	m.teardown(&once, cancel, "s1", "u1")

	_, found := sessions.Get("s1")
	assert.False(t, found)
	assert.Error(t, ctx.Err())
	assert.Equal(t, 1, log.infoCount("session closed"))
}
