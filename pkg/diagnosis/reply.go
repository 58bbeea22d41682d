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

// Generator produces the assistant's natural-language replies. Every method
// degrades to a fixed French fallback when generation fails, so a model
// outage never fails a turn.
type Generator struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, log logger.ILogger) *Generator {
	return &Generator{provider: provider, log: log}
}

func (g *Generator) generate(ctx context.Context, slot, prompt, fallback string) string {
	reply, err := g.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(2048),
	)
	if err != nil || strings.TrimSpace(reply) == "" {
		details := map[string]interface{}{"slot": slot}
		if err != nil {
			details["error"] = err.Error()
		}
		g.log.Warn("diagnosis.reply", "generation failed, using fallback", details)
		return fallback
	}
	return strings.TrimSpace(reply)
}

func (g *Generator) Clarification(ctx context.Context, symptoms []string, sessionContext map[string]interface{}) string {
	contextJSON, _ := json.Marshal(sessionContext)
	prompt := fmt.Sprintf(constant.ClarificationPromptTemplate, strings.Join(symptoms, ", "), string(contextJSON))
	return g.generate(ctx, "clarification", prompt, constant.FallbackClarification)
}

func (g *Generator) Informative(ctx context.Context, question, knowledgeBaseInfo string) string {
	if strings.TrimSpace(knowledgeBaseInfo) == "" {
		knowledgeBaseInfo = constant.NoKnowledgeBaseInfo
	}
	prompt := fmt.Sprintf(constant.InformativePromptTemplate, question, knowledgeBaseInfo)
	return g.generate(ctx, "informative", prompt, constant.FallbackInformative)
}

func (g *Generator) Conversational(ctx context.Context, intent, message string, entities map[string]interface{}) string {
	entitiesJSON, _ := json.Marshal(entities)
	prompt := fmt.Sprintf(constant.ConversationalPromptTemplate, intent, message, string(entitiesJSON))
	return g.generate(ctx, "conversational", prompt, constant.FallbackConversational)
}

func (g *Generator) HealthSummary(ctx context.Context, request string, healthData interface{}) string {
	dataJSON, _ := json.MarshalIndent(healthData, "", "  ")
	prompt := fmt.Sprintf(constant.HealthSummaryPromptTemplate, request, string(dataJSON))
	return g.generate(ctx, "health_summary", prompt, constant.FallbackHealthSummary)
}

func (g *Generator) HealthPlan(ctx context.Context, request string, planningData interface{}) string {
	dataJSON, _ := json.MarshalIndent(planningData, "", "  ")
	prompt := fmt.Sprintf(constant.HealthPlanPromptTemplate, request, string(dataJSON))
	return g.generate(ctx, "health_plan", prompt, constant.FallbackHealthPlan)
}

func (g *Generator) MedicalReport(ctx context.Context, basePrompt string, reportContext interface{}) string {
	contextJSON, _ := json.MarshalIndent(reportContext, "", "  ")
	prompt := fmt.Sprintf(constant.MedicalReportPromptTemplate, basePrompt, string(contextJSON))
	return g.generate(ctx, "medical_report", prompt, constant.FallbackMedicalReport)
}

func (g *Generator) ConciseSummary(ctx context.Context, text string) string {
	prompt := fmt.Sprintf(constant.ConciseSummaryPromptTemplate, text)
	return g.generate(ctx, "concise_summary", prompt, constant.FallbackConciseSummary)
}

func (g *Generator) SessionSummary(ctx context.Context, transcript string) string {
	prompt := fmt.Sprintf(constant.SessionSummaryPromptTemplate, transcript)
	return g.generate(ctx, "session_summary", prompt, constant.FallbackSessionSummary)
}

func (g *Generator) StatsReport(ctx context.Context, rawData interface{}, instructions string) string {
	dataJSON, _ := json.MarshalIndent(rawData, "", "  ")
	prompt := fmt.Sprintf(constant.StatsReportPromptTemplate, string(dataJSON), instructions)
	return g.generate(ctx, "stats_report", prompt, constant.FallbackStatsReport)
}
