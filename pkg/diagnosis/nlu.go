package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"telemed-be/internal/constant"
	"telemed-be/internal/pkg/logger"
	"telemed-be/pkg/llm"
)

// NLUResult is the structured reading of one user utterance.
type NLUResult struct {
	Intent   string
	Entities map[string]interface{}
	Symptoms []string
}

// Analyzer runs the language-understanding pass over user messages.
type Analyzer struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewAnalyzer(provider llm.LLMProvider, log logger.ILogger) *Analyzer {
	return &Analyzer{provider: provider, log: log}
}

// Analyze never fails the turn: when the model output is unusable the
// result degrades to a generic conversational intent.
func (a *Analyzer) Analyze(ctx context.Context, message string) *NLUResult {
	quoted, _ := json.Marshal(message)
	prompt := fmt.Sprintf(constant.NLUPromptTemplate, string(quoted))

	raw, err := a.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(512),
	)
	if err != nil {
		a.log.Warn("diagnosis.nlu", "language model call failed, using fallback intent", map[string]interface{}{
			"error": err.Error(),
		})
		return fallbackResult(message)
	}

	entities := map[string]interface{}{}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &entities); err != nil {
		a.log.Warn("diagnosis.nlu", "model returned unparseable JSON, using fallback intent", map[string]interface{}{
			"raw": raw,
		})
		return fallbackResult(message)
	}

	intent, _ := entities["intention"].(string)
	if intent == "" {
		intent = constant.IntentOtherConversation
	}
	delete(entities, "intention")

	return &NLUResult{
		Intent:   intent,
		Entities: entities,
		Symptoms: stringList(entities["symptomes"]),
	}
}

func fallbackResult(message string) *NLUResult {
	return &NLUResult{
		Intent: constant.IntentOtherConversation,
		Entities: map[string]interface{}{
			"message_original": message,
			"symptomes":        []interface{}{},
		},
	}
}

// extractJSON isolates the JSON object from a model response that may be
// wrapped in prose or code fences.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}

	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

func stringList(v interface{}) []string {
	switch items := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case []string:
		return items
	case string:
		if strings.TrimSpace(items) == "" {
			return nil
		}
		return []string{strings.TrimSpace(items)}
	default:
		return nil
	}
}
