package mapper

import (
	"encoding/json"

	"telemed-be/internal/entity"
	"telemed-be/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) TurnToEntity(l *model.ConversationLog) *entity.ConversationTurn {
	if l == nil {
		return nil
	}

	var structured map[string]interface{}
	if len(l.StructuredData) > 0 {
		// Ignore decode failures, the raw log row remains authoritative.
		_ = json.Unmarshal(l.StructuredData, &structured)
	}

	return &entity.ConversationTurn{
		Id:             l.Id,
		SessionId:      l.SessionId,
		Actor:          l.Actor,
		Message:        l.Message,
		StructuredData: structured,
		Feedback:       l.Feedback,
		Timestamp:      l.Timestamp,
	}
}

func (m *ConversationMapper) TurnToModel(t *entity.ConversationTurn) *model.ConversationLog {
	if t == nil {
		return nil
	}

	var structured datatypes.JSON
	if t.StructuredData != nil {
		if raw, err := json.Marshal(t.StructuredData); err == nil {
			structured = raw
		}
	}

	return &model.ConversationLog{
		Id:             t.Id,
		SessionId:      t.SessionId,
		Actor:          t.Actor,
		Message:        t.Message,
		StructuredData: structured,
		Feedback:       t.Feedback,
		Timestamp:      t.Timestamp,
	}
}

func (m *ConversationMapper) TurnsToEntities(logs []model.ConversationLog) []entity.ConversationTurn {
	out := make([]entity.ConversationTurn, 0, len(logs))
	for i := range logs {
		out = append(out, *m.TurnToEntity(&logs[i]))
	}
	return out
}
