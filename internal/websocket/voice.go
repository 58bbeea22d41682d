package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"telemed-be/internal/config"
	"telemed-be/internal/constant"
	"telemed-be/internal/dto"
	"telemed-be/internal/pkg/logger"
	"telemed-be/internal/repository/memory"
	"telemed-be/internal/service"
	"telemed-be/pkg/store"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// VoiceManager runs realtime assistant sessions: it buffers incoming
// audio chunks, flushes them to the assistant after a silence gap and
// streams frames back to the client.
type VoiceManager struct {
	sessions  *memory.SessionRepository
	assistant service.IAssistantService
	cfg       config.AssistantConfig
	log       logger.ILogger
}

func NewVoiceManager(sessions *memory.SessionRepository, assistant service.IAssistantService, cfg config.AssistantConfig, log logger.ILogger) *VoiceManager {
	return &VoiceManager{
		sessions:  sessions,
		assistant: assistant,
		cfg:       cfg,
		log:       log,
	}
}

// frameSink is the outbound side of a realtime connection.
type frameSink interface {
	writeJSON(v interface{}) error
}

// frameWriter serializes concurrent frame writes from the read loop and
// the silence monitor onto one connection.
type frameWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (w *frameWriter) writeJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(websocket.TextMessage, data)
}

// Handle owns the connection until the client disconnects or ends the
// call. Must run on the connection's goroutine.
func (m *VoiceManager) Handle(conn *websocket.Conn, userID string) {
	sessionId := conn.Query("session_id")
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	session := store.NewVoiceSession(sessionId, userID)
	m.sessions.Save(session)

	ctx, cancel := context.WithCancel(context.Background())
	var teardownOnce sync.Once
	defer m.teardown(&teardownOnce, cancel, sessionId, userID)

	m.log.Info("websocket.voice", "session opened", map[string]interface{}{
		"session_id": sessionId,
		"user_id":    userID,
	})

	writer := &frameWriter{conn: conn}
	go m.monitorSilence(ctx, session, writer)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		switch messageType {
		case websocket.BinaryMessage:
			session.AppendAudio(data)
			m.sessions.Touch(sessionId)

		case websocket.TextMessage:
			var frame dto.ClientFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				m.writeError(writer, sessionId, constant.MsgUnexpectedWSError)
				continue
			}

			switch frame.Type {
			case constant.FrameTextMessage:
				m.handleText(ctx, session, writer, frame.Value)

			case constant.FrameEndCall:
				// Stop the monitor first so the final flush is the only
				// one touching the buffer, then say goodbye.
				cancel()
				m.flush(context.Background(), session, writer)
				m.handleEndCall(session, writer)
				return

			default:
				m.writeError(writer, sessionId, constant.MsgUnexpectedWSError)
			}
		}
	}
}

// teardown releases the session exactly once, however many paths reach
// it.
func (m *VoiceManager) teardown(once *sync.Once, cancel context.CancelFunc, sessionId, userID string) {
	once.Do(func() {
		cancel()
		m.sessions.Delete(sessionId)
		m.log.Info("websocket.voice", "session closed", map[string]interface{}{
			"session_id": sessionId,
			"user_id":    userID,
		})
	})
}

func (m *VoiceManager) monitorSilence(ctx context.Context, session *store.VoiceSession, writer frameSink) {
	threshold := time.Duration(m.cfg.SilenceThresholdMs) * time.Millisecond
	ticker := time.NewTicker(time.Duration(m.cfg.SilenceCheckMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if session.SilentSince(threshold) {
				m.flush(ctx, session, writer)
			}
		}
	}
}

// flush processes the buffered audio as one turn. The buffer is taken
// at the start, so chunks arriving during processing belong to the next
// turn. Session.Mu guarantees a single flush at a time.
func (m *VoiceManager) flush(ctx context.Context, session *store.VoiceSession, writer frameSink) {
	session.Mu.Lock()
	defer session.Mu.Unlock()

	audio := session.TakeBuffer()
	if len(audio) == 0 {
		return
	}

	writer.writeJSON(dto.ThinkingFrame{Type: constant.FrameAIThinking, SessionId: session.ID})

	response, transcription, err := m.assistant.ProcessVoice(ctx, session.ID, audio)
	if err != nil {
		m.log.Warn("websocket.voice", "voice turn failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		m.writeError(writer, session.ID, constant.MsgVoiceProcessingError)
		return
	}
	if response == nil {
		// No recognizable speech in the chunk.
		return
	}

	writer.writeJSON(dto.UserTranscriptionFrame{
		Type:          constant.FrameUserTranscription,
		SessionId:     session.ID,
		Transcription: transcription,
	})

	response.Type = constant.FrameAIResponse
	writer.writeJSON(response)
}

func (m *VoiceManager) handleText(ctx context.Context, session *store.VoiceSession, writer frameSink, message string) {
	session.Mu.Lock()
	defer session.Mu.Unlock()

	writer.writeJSON(dto.ThinkingFrame{Type: constant.FrameAIThinking, SessionId: session.ID})

	response, err := m.assistant.ProcessText(ctx, &dto.ChatRequest{SessionId: session.ID, Message: message})
	if err != nil {
		m.log.Warn("websocket.voice", "text turn failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		m.writeError(writer, session.ID, constant.MsgTextProcessingError)
		return
	}

	response.Type = constant.FrameAIResponse
	writer.writeJSON(response)
}

func (m *VoiceManager) handleEndCall(session *store.VoiceSession, writer frameSink) {
	session.Mu.Lock()
	defer session.Mu.Unlock()

	response, err := m.assistant.EndCall(context.Background(), session.ID)
	if err != nil {
		m.log.Warn("websocket.voice", "end call failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		m.writeError(writer, session.ID, constant.MsgUnexpectedWSError)
		return
	}

	writer.writeJSON(response)
}

func (m *VoiceManager) writeError(writer frameSink, sessionId, message string) {
	writer.writeJSON(dto.ErrorFrame{
		Type:      constant.FrameAIError,
		SessionId: sessionId,
		Message:   message,
	})
}
