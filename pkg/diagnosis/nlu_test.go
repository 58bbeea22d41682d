package diagnosis

import (
	"context"
	"errors"
	"testing"

	"telemed-be/internal/constant"
	"telemed-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// stubProvider replays canned responses and records its inputs.
type stubProvider struct {
	response string
	err      error
	prompts  []string
}

func (s *stubProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	if len(messages) > 0 {
		s.prompts = append(s.prompts, messages[len(messages)-1].Content)
	}
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare object",
			raw:  `{"intention": "salutation"}`,
			want: `{"intention": "salutation"}`,
		},
		{
			name: "object wrapped in prose",
			raw:  "Voici le résultat : {\"intention\": \"salutation\"} merci.",
			want: `{"intention": "salutation"}`,
		},
		{
			name: "fenced code block",
			raw:  "```json\n{\"intention\": \"salutation\"}\n```",
			want: "{\"intention\": \"salutation\"}",
		},
		{
			name: "no object at all",
			raw:  "je ne sais pas",
			want: "je ne sais pas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.raw)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyzeParsesModelOutput(t *testing.T) {
	provider := &stubProvider{
		response: "```json\n{\"intention\": \"diagnostic_symptomes\", \"symptomes\": [\"fièvre\", \"toux\"], \"duree\": \"3 jours\"}\n```",
	}
	analyzer := NewAnalyzer(provider, noopLogger{})

	result := analyzer.Analyze(context.Background(), "J'ai de la fièvre et je tousse depuis 3 jours")

	assert.Equal(t, constant.IntentDiagnosisSymptoms, result.Intent)
	assert.Equal(t, []string{"fièvre", "toux"}, result.Symptoms)
	assert.Equal(t, "3 jours", result.Entities["duree"])
	// The resolved intent lives on the result, not in the entity map.
	assert.NotContains(t, result.Entities, "intention")
}

func TestAnalyzeFallsBackOnProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	analyzer := NewAnalyzer(provider, noopLogger{})

	result := analyzer.Analyze(context.Background(), "bonjour")

	assert.Equal(t, constant.IntentOtherConversation, result.Intent)
	assert.Equal(t, "bonjour", result.Entities["message_original"])
	assert.Empty(t, result.Symptoms)
}

func TestAnalyzeFallsBackOnUnparseableOutput(t *testing.T) {
	provider := &stubProvider{response: "désolé, je ne peux pas répondre en JSON"}
	analyzer := NewAnalyzer(provider, noopLogger{})

	result := analyzer.Analyze(context.Background(), "j'ai mal")

	assert.Equal(t, constant.IntentOtherConversation, result.Intent)
	assert.Equal(t, "j'ai mal", result.Entities["message_original"])
}

func TestAnalyzeDefaultsMissingIntent(t *testing.T) {
	provider := &stubProvider{response: `{"symptomes": ["fièvre"]}`}
	analyzer := NewAnalyzer(provider, noopLogger{})

	result := analyzer.Analyze(context.Background(), "fièvre")

	assert.Equal(t, constant.IntentOtherConversation, result.Intent)
	assert.Equal(t, []string{"fièvre"}, result.Symptoms)
}

func TestStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, stringList([]interface{}{"a", " b ", "", 3}))
	assert.Equal(t, []string{"x"}, stringList("x"))
	assert.Nil(t, stringList("  "))
	assert.Nil(t, stringList(nil))
	assert.Nil(t, stringList(42))
}
