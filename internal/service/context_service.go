package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telemed-be/internal/constant"
	"telemed-be/internal/pkg/logger"
	"telemed-be/internal/repository/contract"
	"telemed-be/pkg/diagnosis"

	"github.com/redis/go-redis/v9"
)

const sessionContextTTL = time.Hour

// contextService keeps the per-session assistant context (accumulated
// symptoms and entities) in Redis. When Redis is unavailable the context
// is rebuilt from the last turns of the conversation log, so the
// assistant degrades instead of failing.
type contextService struct {
	rdb        *redis.Client
	turns      contract.ConversationRepository
	windowSize int
	log        logger.ILogger
}

func NewContextService(rdb *redis.Client, turns contract.ConversationRepository, windowSize int, log logger.ILogger) diagnosis.ContextProvider {
	return &contextService{
		rdb:        rdb,
		turns:      turns,
		windowSize: windowSize,
		log:        log,
	}
}

func contextKey(sessionId string) string {
	return fmt.Sprintf("session_ctx:%s", sessionId)
}

func (s *contextService) Context(ctx context.Context, sessionId string) (map[string]interface{}, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, contextKey(sessionId)).Result()
		if err == nil {
			var data map[string]interface{}
			if err := json.Unmarshal([]byte(raw), &data); err == nil {
				return data, nil
			}
		} else if err != redis.Nil {
			s.log.Warn("service.context", "redis read failed, rebuilding from conversation log", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}

	return s.rebuild(ctx, sessionId)
}

func (s *contextService) Merge(ctx context.Context, sessionId string, entities map[string]interface{}, symptoms []string) (map[string]interface{}, error) {
	current, err := s.Context(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = map[string]interface{}{}
	}

	for k, v := range entities {
		if k == "symptomes" {
			continue
		}
		current[k] = v
	}
	current["symptomes"] = mergeSymptoms(current["symptomes"], symptoms)

	if s.rdb != nil {
		raw, _ := json.Marshal(current)
		if err := s.rdb.Set(ctx, contextKey(sessionId), raw, sessionContextTTL).Err(); err != nil {
			s.log.Warn("service.context", "redis write failed, context will be rebuilt next turn", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}

	return current, nil
}

// rebuild reconstructs the session context from the structured data of
// the last analysis turns.
func (s *contextService) rebuild(ctx context.Context, sessionId string) (map[string]interface{}, error) {
	turns, err := s.turns.FindLastN(ctx, sessionId, s.windowSize)
	if err != nil {
		return nil, err
	}

	rebuilt := map[string]interface{}{}
	var symptoms []string
	for _, turn := range turns {
		if turn.Actor != constant.ActorAINLU || turn.StructuredData == nil {
			continue
		}
		for k, v := range turn.StructuredData {
			if k == "intention" || k == "symptomes" {
				continue
			}
			rebuilt[k] = v
		}
		symptoms = mergeSymptoms(symptoms, toStringList(turn.StructuredData["symptomes"]))
	}
	if len(symptoms) > 0 {
		rebuilt["symptomes"] = symptoms
	}
	return rebuilt, nil
}

func mergeSymptoms(existing interface{}, add []string) []string {
	out := toStringList(existing)
	seen := make(map[string]struct{}, len(out))
	for _, s := range out {
		seen[s] = struct{}{}
	}
	for _, s := range add {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func toStringList(v interface{}) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
