package dto

import "github.com/google/uuid"

// ChatRequest is the single-shot text entry point of the assistant.
type ChatRequest struct {
	SessionId string `json:"session_id" form:"session_id" validate:"required"`
	Message   string `json:"message" form:"message" validate:"required"`
}

// ProcessRequest carries one chat turn with either a text message, an
// audio recording, or both. When both are present the audio wins unless
// its transcription comes back empty.
type ProcessRequest struct {
	SessionId string
	Message   string
	Audio     []byte
}

// FeedbackRequest rates one assistant reply, 1 for helpful and -1 for
// not helpful.
type FeedbackRequest struct {
	MessageId uuid.UUID `json:"message_id" validate:"required"`
	Value     int       `json:"feedback_value" validate:"required,oneof=-1 1"`
}

// AssistantResponse is the envelope returned for every processed turn,
// over HTTP or as an AI_RESPONSE websocket frame.
type AssistantResponse struct {
	Type                 string                 `json:"type,omitempty"`
	SessionId            string                 `json:"id_session"`
	AIResponse           string                 `json:"reponse_ia"`
	DetectedIntent       string                 `json:"intention_detectee"`
	ExtractedEntities    map[string]interface{} `json:"entites_extraites,omitempty"`
	TriageRecommendation string                 `json:"recommandation_triage"`
	AIMessageId          string                 `json:"ai_message_db_id,omitempty"`
	AIResponseAudioURL   string                 `json:"chemin_audio_reponse_ia,omitempty"`
}

// UserTranscriptionFrame notifies the client of what the STT heard.
type UserTranscriptionFrame struct {
	Type          string `json:"type"`
	SessionId     string `json:"id_session"`
	Transcription string `json:"transcription"`
}

// ClientFrame is what the browser sends on the websocket text channel.
type ClientFrame struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type ThinkingFrame struct {
	Type      string `json:"type"`
	SessionId string `json:"id_session"`
}

type ErrorFrame struct {
	Type      string `json:"type"`
	SessionId string `json:"id_session"`
	Message   string `json:"message"`
}
