package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConversationLog is the append-only record of everything said in an
// assistant session, including NLU analysis entries.
type ConversationLog struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      string         `gorm:"type:varchar(100);not null;index:idx_conversation_logs_session"`
	Actor          string         `gorm:"type:varchar(50);not null"`
	Message        string         `gorm:"type:text;not null"`
	StructuredData datatypes.JSON `gorm:"type:jsonb"`
	Feedback       *int           `gorm:"type:smallint"`
	Timestamp      time.Time      `gorm:"autoCreateTime;index:idx_conversation_logs_session,priority:2"`
}

func (ConversationLog) TableName() string {
	return "conversation_logs"
}
