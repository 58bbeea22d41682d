package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConversationTurnResponse struct {
	Id             uuid.UUID              `json:"id"`
	SessionId      string                 `json:"id_session"`
	Actor          string                 `json:"role"`
	Message        string                 `json:"message"`
	StructuredData map[string]interface{} `json:"donnees_structurees,omitempty"`
	Feedback       *int                   `json:"feedback,omitempty"`
	Timestamp      time.Time              `json:"horodatage"`
}

type NotificationResponse struct {
	Id        uuid.UUID `json:"id"`
	TypeCode  string    `json:"type_code"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
