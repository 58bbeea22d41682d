package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationTurn is one entry of the append-only session log.
type ConversationTurn struct {
	Id             uuid.UUID
	SessionId      string
	Actor          string
	Message        string
	StructuredData map[string]interface{}
	Feedback       *int
	Timestamp      time.Time
}
