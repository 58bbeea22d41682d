package contract

import (
	"context"

	"telemed-be/internal/entity"
	"telemed-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ConversationRepository is append-only: once written, turns are never
// deleted and only the feedback annotation may change.
type ConversationRepository interface {
	Append(ctx context.Context, turn *entity.ConversationTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error)
	// FindLastN returns the n most recent turns of a session in
	// chronological order.
	FindLastN(ctx context.Context, sessionId string, n int) ([]*entity.ConversationTurn, error)
	// AnnotateFeedback sets the feedback value on a turn, the only
	// mutation the log permits.
	AnnotateFeedback(ctx context.Context, turnId uuid.UUID, value int) (bool, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
