package diagnosis

import (
	"context"
	"fmt"
	"strings"

	"telemed-be/internal/config"
	"telemed-be/internal/constant"
	"telemed-be/internal/dto"
	"telemed-be/internal/entity"
	"telemed-be/internal/pkg/apperror"
	"telemed-be/internal/pkg/logger"
	"telemed-be/internal/repository/contract"
	"telemed-be/internal/repository/specification"
	"telemed-be/pkg/knowledge"
)

// ContextProvider keeps the rolling session context (accumulated symptoms
// and extracted entities) across turns of a session.
type ContextProvider interface {
	Context(ctx context.Context, sessionId string) (map[string]interface{}, error)
	// Merge folds the entities and symptoms of a new turn into the session
	// context and returns the merged view.
	Merge(ctx context.Context, sessionId string, entities map[string]interface{}, symptoms []string) (map[string]interface{}, error)
}

// AudioAttacher synthesizes a reply and returns the public path of the
// stored audio file, or empty when synthesis is unavailable. It runs
// before the assistant turn is logged so the log carries the path.
type AudioAttacher func(ctx context.Context, sessionId, reply string) string

// Engine drives one assistant turn: log the user message, analyze it,
// route on the detected intent and log the reply.
type Engine struct {
	analyzer *Analyzer
	replies  *Generator
	diseases contract.DiseaseRepository
	symptoms contract.SymptomRepository
	turns    contract.ConversationRepository
	contexts ContextProvider
	audio    AudioAttacher
	cfg      config.AssistantConfig
	log      logger.ILogger
}

func NewEngine(
	analyzer *Analyzer,
	replies *Generator,
	diseases contract.DiseaseRepository,
	symptoms contract.SymptomRepository,
	turns contract.ConversationRepository,
	contexts ContextProvider,
	audio AudioAttacher,
	cfg config.AssistantConfig,
	log logger.ILogger,
) *Engine {
	return &Engine{
		analyzer: analyzer,
		replies:  replies,
		diseases: diseases,
		symptoms: symptoms,
		turns:    turns,
		contexts: contexts,
		audio:    audio,
		cfg:      cfg,
		log:      log,
	}
}

// ProcessTurn handles one user message and returns the assistant reply
// envelope. Validation failures happen before anything is logged, so a
// rejected turn leaves no trace in the conversation.
func (e *Engine) ProcessTurn(ctx context.Context, sessionId, message string) (*dto.AssistantResponse, error) {
	message = strings.TrimSpace(message)
	if sessionId == "" {
		return nil, apperror.InvalidInput("session id is required", nil)
	}
	if message == "" {
		return nil, apperror.InvalidInput("message is required", nil)
	}

	if err := e.turns.Append(ctx, &entity.ConversationTurn{
		SessionId: sessionId,
		Actor:     constant.ActorUser,
		Message:   message,
	}); err != nil {
		return nil, apperror.Internal("failed to log user message", err)
	}

	analysis := e.analyzer.Analyze(ctx, message)

	nluData := map[string]interface{}{"intention": analysis.Intent}
	for k, v := range analysis.Entities {
		nluData[k] = v
	}
	if err := e.turns.Append(ctx, &entity.ConversationTurn{
		SessionId:      sessionId,
		Actor:          constant.ActorAINLU,
		Message:        analysis.Intent,
		StructuredData: nluData,
	}); err != nil {
		return nil, apperror.Internal("failed to log analysis", err)
	}

	sessionContext, err := e.contexts.Merge(ctx, sessionId, analysis.Entities, analysis.Symptoms)
	if err != nil {
		e.log.Warn("diagnosis.engine", "session context unavailable, continuing with turn-local context", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		sessionContext = map[string]interface{}{"symptomes": analysis.Symptoms}
	}

	reply, triage, err := e.route(ctx, analysis, message, sessionContext)
	if err != nil {
		return nil, err
	}

	// Synthesis runs before the assistant turn is logged so the durable
	// log carries the audio path the client receives.
	audioPath := ""
	if e.audio != nil {
		audioPath = e.audio(ctx, sessionId, reply)
	}
	var loggedAudioPath interface{}
	if audioPath != "" {
		loggedAudioPath = audioPath
	}

	aiTurn := &entity.ConversationTurn{
		SessionId: sessionId,
		Actor:     constant.ActorAI,
		Message:   reply,
		StructuredData: map[string]interface{}{
			"intention_detectee":    analysis.Intent,
			"recommandation_triage": triage,
			"chemin_audio":          loggedAudioPath,
		},
	}
	if err := e.turns.Append(ctx, aiTurn); err != nil {
		return nil, apperror.Internal("failed to log assistant reply", err)
	}

	return &dto.AssistantResponse{
		SessionId:            sessionId,
		AIResponse:           reply,
		DetectedIntent:       analysis.Intent,
		ExtractedEntities:    analysis.Entities,
		TriageRecommendation: triage,
		AIMessageId:          aiTurn.Id.String(),
		AIResponseAudioURL:   audioPath,
	}, nil
}

func (e *Engine) route(ctx context.Context, analysis *NLUResult, message string, sessionContext map[string]interface{}) (reply, triage string, err error) {
	switch analysis.Intent {
	case constant.IntentDiagnosisSymptoms:
		return e.routeDiagnosis(ctx, analysis, sessionContext)
	case constant.IntentDiseaseInfo:
		return e.routeDiseaseInfo(ctx, analysis, message)
	case constant.IntentSymptomInfo:
		return e.routeSymptomInfo(ctx, analysis, message)
	case constant.IntentGeneralHealth:
		return e.replies.Informative(ctx, message, ""), constant.TriageGeneralInformation, nil
	default:
		// salutation, remerciement, demande_planning_sante,
		// autre_conversation, non_pertinent.
		return e.replies.Conversational(ctx, analysis.Intent, message, analysis.Entities), constant.TriageConversation, nil
	}
}

func (e *Engine) routeDiagnosis(ctx context.Context, analysis *NLUResult, sessionContext map[string]interface{}) (string, string, error) {
	accumulated := accumulatedSymptoms(sessionContext, analysis.Symptoms)
	if len(accumulated) == 0 {
		return e.replies.Clarification(ctx, accumulated, sessionContext), constant.TriageClarification, nil
	}

	diseases, err := e.diseases.FindAll(ctx)
	if err != nil {
		return "", "", apperror.Internal("failed to load disease knowledge base", err)
	}

	matches := knowledge.MatchDiseases(diseases, accumulated)
	if len(matches) == 0 {
		query := fmt.Sprintf(
			"Je n'ai pas trouvé de maladies courantes correspondant précisément à vos symptômes : %s. "+
				"Pourriez-vous me donner plus de détails ou d'autres symptômes ?",
			strings.Join(accumulated, ", "))
		return e.replies.Informative(ctx, query, ""), constant.TriageClarification, nil
	}

	ranked := rankedMatchSummary(matches)
	top := matches[0]
	minConfidence := float64(e.cfg.MinConfidenceScore)
	ambiguityGap := float64(e.cfg.AmbiguityGapScore)

	if top.Confidence < minConfidence && len(accumulated) < 3 {
		question := e.replies.Clarification(ctx, accumulated, sessionContext)
		return composeDiagnosis(constant.PrefixFirstOrientation, ranked, question), constant.TriageClarification, nil
	}

	if len(matches) >= 2 && top.Confidence-matches[1].Confidence < ambiguityGap {
		question := e.replies.Clarification(ctx, accumulated, sessionContext)
		return composeDiagnosis(constant.PrefixAmbiguous, ranked, question), constant.TriageClarification, nil
	}

	triage := top.Disease.TriageRecommendation
	if triage == "" {
		triage = constant.TriageGeneralInformation
	}
	return composeDiagnosis(constant.PrefixConfident, ranked, constant.SuffixDisclaimer), triage, nil
}

func composeDiagnosis(prefix, ranked, suffix string) string {
	return prefix + "\n\n" + ranked + "\n\n" + suffix
}

// rankedMatchSummary renders the top three candidates with score,
// matched-symptom overlap, a truncated description and a humanized
// triage label.
func rankedMatchSummary(matches []knowledge.DiseaseMatch) string {
	var b strings.Builder
	for i, m := range matches {
		if i == 3 {
			break
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%d. **%s** (Confiance: %.2f%%) - Symptômes correspondants: %s. Description: %s... Triage suggéré: %s.",
			i+1,
			m.Disease.NameFr,
			m.Confidence,
			strings.Join(m.MatchingSymptoms, ", "),
			truncateRunes(m.Disease.Description, 100),
			humanizeTriage(m.Disease.TriageRecommendation)))
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// humanizeTriage turns a stored label like "consultation_generaliste"
// into "Consultation generaliste".
func humanizeTriage(label string) string {
	label = strings.ToLower(strings.ReplaceAll(label, "_", " "))
	if label == "" {
		return label
	}
	runes := []rune(label)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

func (e *Engine) routeDiseaseInfo(ctx context.Context, analysis *NLUResult, message string) (string, string, error) {
	names := stringList(analysis.Entities["maladies_mentionnees"])
	if len(names) == 0 {
		return constant.MsgNoDiseaseIdentified, constant.TriageClarification, nil
	}

	disease, err := e.diseases.FindOne(ctx, specification.ByNameFr{Name: names[0]})
	if err != nil {
		return "", "", apperror.Internal("failed to look up disease", err)
	}
	if disease == nil {
		return e.replies.Informative(ctx, message, ""), constant.TriageGeneralInformation, nil
	}

	kbInfo := fmt.Sprintf("Nom: %s\nCode CIM-10: %s\nDescription: %s\nGravité (1-5): %d\nPrévalence: %s\nRecommandation de triage: %s\nSymptômes courants: %s\nCauses: %s\nFacteurs de risque: %s",
		disease.NameFr,
		disease.ICD10Code,
		disease.Description,
		disease.Severity,
		disease.Prevalence,
		disease.TriageRecommendation,
		strings.Join(disease.SymptomKeywords, ", "),
		strings.Join(disease.CauseKeywords, ", "),
		strings.Join(disease.RiskFactorKeywords, ", "))

	triage := disease.TriageRecommendation
	if triage == "" {
		triage = constant.TriageGeneralInformation
	}
	return e.replies.Informative(ctx, message, kbInfo), triage, nil
}

func (e *Engine) routeSymptomInfo(ctx context.Context, analysis *NLUResult, message string) (string, string, error) {
	if len(analysis.Symptoms) == 0 {
		return constant.MsgNoSymptomIdentified, constant.TriageClarification, nil
	}

	symptom, err := e.symptoms.FindOne(ctx, specification.ByNameFr{Name: analysis.Symptoms[0]})
	if err != nil {
		return "", "", apperror.Internal("failed to look up symptom", err)
	}
	if symptom == nil {
		return e.replies.Informative(ctx, message, ""), constant.TriageGeneralInformation, nil
	}

	kbInfo := fmt.Sprintf("Nom: %s\nDescription: %s\nGravité potentielle (1-10): %d\nMots-clés associés: %s",
		symptom.NameFr,
		symptom.Description,
		symptom.PotentialSeverity,
		strings.Join(symptom.AssociatedKeywords, ", "))
	return e.replies.Informative(ctx, message, kbInfo), constant.TriageGeneralInformation, nil
}

// accumulatedSymptoms merges the session-wide symptom list with the
// current turn's, preserving first-seen order without duplicates.
func accumulatedSymptoms(sessionContext map[string]interface{}, current []string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(list []string) {
		for _, s := range list {
			lower := strings.ToLower(strings.TrimSpace(s))
			if lower == "" {
				continue
			}
			if _, dup := seen[lower]; dup {
				continue
			}
			seen[lower] = struct{}{}
			out = append(out, lower)
		}
	}
	if sessionContext != nil {
		add(stringList(sessionContext["symptomes"]))
	}
	add(current)
	return out
}
