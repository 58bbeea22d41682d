package service

import (
	"context"
	"testing"

	"telemed-be/internal/constant"
	"telemed-be/internal/entity"
	"telemed-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConversationRepo struct {
	turns []*entity.ConversationTurn
}

func (r *fakeConversationRepo) Append(ctx context.Context, turn *entity.ConversationTurn) error {
	r.turns = append(r.turns, turn)
	return nil
}

func (r *fakeConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error) {
	return r.turns, nil
}

func (r *fakeConversationRepo) FindLastN(ctx context.Context, sessionId string, n int) ([]*entity.ConversationTurn, error) {
	var out []*entity.ConversationTurn
	for _, turn := range r.turns {
		if turn.SessionId == sessionId {
			out = append(out, turn)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}

func (r *fakeConversationRepo) AnnotateFeedback(ctx context.Context, turnId uuid.UUID, value int) (bool, error) {
	for _, turn := range r.turns {
		if turn.Id == turnId {
			turn.Feedback = &value
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.turns)), nil
}

func nluTurn(sessionId string, data map[string]interface{}) *entity.ConversationTurn {
	return &entity.ConversationTurn{SessionId: sessionId, Actor: constant.ActorAINLU, StructuredData: data}
}

func TestContextRebuildsFromConversationLog(t *testing.T) {
	turns := &fakeConversationRepo{turns: []*entity.ConversationTurn{
		{SessionId: "s1", Actor: constant.ActorUser, Message: "j'ai de la fièvre"},
		nluTurn("s1", map[string]interface{}{
			"intention": "diagnostic_symptomes",
			"symptomes": []interface{}{"fièvre"},
			"duree":     "2 jours",
		}),
		{SessionId: "s1", Actor: constant.ActorAI, Message: "depuis quand ?"},
		nluTurn("s1", map[string]interface{}{
			"symptomes": []interface{}{"toux", "fièvre"},
		}),
		nluTurn("other-session", map[string]interface{}{
			"symptomes": []interface{}{"vertiges"},
		}),
	}}

	svc := NewContextService(nil, turns, 10, testLogger{})

	got, err := svc.Context(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, []string{"fièvre", "toux"}, got["symptomes"])
	assert.Equal(t, "2 jours", got["duree"])
	// The routing intent is turn-local and never part of the context.
	assert.NotContains(t, got, "intention")
}

func TestContextEmptyWithoutNLUTurns(t *testing.T) {
	turns := &fakeConversationRepo{turns: []*entity.ConversationTurn{
		{SessionId: "s1", Actor: constant.ActorUser, Message: "bonjour"},
	}}

	svc := NewContextService(nil, turns, 10, testLogger{})

	got, err := svc.Context(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestContextMergeDeduplicatesSymptoms(t *testing.T) {
	turns := &fakeConversationRepo{turns: []*entity.ConversationTurn{
		nluTurn("s1", map[string]interface{}{"symptomes": []interface{}{"fièvre"}}),
	}}

	svc := NewContextService(nil, turns, 10, testLogger{})

	got, err := svc.Merge(context.Background(), "s1",
		map[string]interface{}{"intensite": "forte", "symptomes": "ignored"},
		[]string{"fièvre", "toux"})
	require.NoError(t, err)

	assert.Equal(t, []string{"fièvre", "toux"}, got["symptomes"])
	assert.Equal(t, "forte", got["intensite"])
}

func TestContextWindowLimitsRebuild(t *testing.T) {
	turns := &fakeConversationRepo{turns: []*entity.ConversationTurn{
		nluTurn("s1", map[string]interface{}{"symptomes": []interface{}{"vertiges"}}),
		nluTurn("s1", map[string]interface{}{"symptomes": []interface{}{"fièvre"}}),
		nluTurn("s1", map[string]interface{}{"symptomes": []interface{}{"toux"}}),
	}}

	svc := NewContextService(nil, turns, 2, testLogger{})

	got, err := svc.Context(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"fièvre", "toux"}, got["symptomes"])
}
