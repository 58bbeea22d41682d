package diagnosis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"telemed-be/internal/config"
	"telemed-be/internal/constant"
	"telemed-be/internal/entity"
	"telemed-be/internal/model"
	"telemed-be/internal/pkg/apperror"
	"telemed-be/internal/repository/specification"
	"telemed-be/pkg/knowledge"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTurnLog struct {
	turns []*entity.ConversationTurn
}

func (f *fakeTurnLog) Append(ctx context.Context, turn *entity.ConversationTurn) error {
	turn.Id = uuid.New()
	f.turns = append(f.turns, turn)
	return nil
}

func (f *fakeTurnLog) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error) {
	return f.turns, nil
}

func (f *fakeTurnLog) FindLastN(ctx context.Context, sessionId string, n int) ([]*entity.ConversationTurn, error) {
	if len(f.turns) <= n {
		return f.turns, nil
	}
	return f.turns[len(f.turns)-n:], nil
}

func (f *fakeTurnLog) AnnotateFeedback(ctx context.Context, turnId uuid.UUID, value int) (bool, error) {
	for _, turn := range f.turns {
		if turn.Id == turnId {
			turn.Feedback = &value
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTurnLog) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.turns)), nil
}

type fakeDiseaseRepo struct {
	diseases []*entity.Disease
}

func (f *fakeDiseaseRepo) Create(ctx context.Context, d *entity.Disease) error { return nil }
func (f *fakeDiseaseRepo) Update(ctx context.Context, d *entity.Disease) error { return nil }
func (f *fakeDiseaseRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return nil
}
func (f *fakeDiseaseRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeDiseaseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Disease, error) {
	for _, spec := range specs {
		if byName, ok := spec.(specification.ByNameFr); ok {
			for _, d := range f.diseases {
				if strings.EqualFold(d.NameFr, byName.Name) {
					return d, nil
				}
			}
		}
	}
	return nil, nil
}
func (f *fakeDiseaseRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Disease, error) {
	return f.diseases, nil
}
func (f *fakeDiseaseRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.diseases)), nil
}
func (f *fakeDiseaseRepo) CreateLink(ctx context.Context, link *model.DiseaseSymptomLink) error {
	return nil
}
func (f *fakeDiseaseRepo) FindLinksByDiseaseId(ctx context.Context, diseaseId uuid.UUID) ([]model.DiseaseSymptomLink, error) {
	return nil, nil
}

type fakeSymptomRepo struct {
	symptoms []*entity.Symptom
}

func (f *fakeSymptomRepo) Create(ctx context.Context, s *entity.Symptom) error { return nil }
func (f *fakeSymptomRepo) Update(ctx context.Context, s *entity.Symptom) error { return nil }
func (f *fakeSymptomRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return nil
}
func (f *fakeSymptomRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeSymptomRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Symptom, error) {
	for _, spec := range specs {
		if byName, ok := spec.(specification.ByNameFr); ok {
			for _, s := range f.symptoms {
				if strings.EqualFold(s.NameFr, byName.Name) {
					return s, nil
				}
			}
		}
	}
	return nil, nil
}
func (f *fakeSymptomRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Symptom, error) {
	return f.symptoms, nil
}
func (f *fakeSymptomRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.symptoms)), nil
}

// fakeContexts accumulates symptoms per session in memory.
type fakeContexts struct {
	store map[string][]string
	fail  bool
}

func newFakeContexts() *fakeContexts {
	return &fakeContexts{store: make(map[string][]string)}
}

func (f *fakeContexts) Context(ctx context.Context, sessionId string) (map[string]interface{}, error) {
	if f.fail {
		return nil, errors.New("context store unavailable")
	}
	return map[string]interface{}{"symptomes": f.store[sessionId]}, nil
}

func (f *fakeContexts) Merge(ctx context.Context, sessionId string, entities map[string]interface{}, symptoms []string) (map[string]interface{}, error) {
	if f.fail {
		return nil, errors.New("context store unavailable")
	}
	existing := f.store[sessionId]
	seen := make(map[string]struct{})
	for _, s := range existing {
		seen[s] = struct{}{}
	}
	for _, s := range symptoms {
		lower := strings.ToLower(strings.TrimSpace(s))
		if _, dup := seen[lower]; !dup {
			seen[lower] = struct{}{}
			existing = append(existing, lower)
		}
	}
	f.store[sessionId] = existing
	return map[string]interface{}{"symptomes": existing}, nil
}

func newTestEngine(provider *stubProvider, diseases []*entity.Disease, contexts ContextProvider) (*Engine, *fakeTurnLog) {
	return newTestEngineWithAudio(provider, diseases, contexts, nil)
}

func newTestEngineWithAudio(provider *stubProvider, diseases []*entity.Disease, contexts ContextProvider, audio AudioAttacher) (*Engine, *fakeTurnLog) {
	turns := &fakeTurnLog{}
	engine := NewEngine(
		NewAnalyzer(provider, noopLogger{}),
		NewGenerator(provider, noopLogger{}),
		&fakeDiseaseRepo{diseases: diseases},
		&fakeSymptomRepo{},
		turns,
		contexts,
		audio,
		config.AssistantConfig{MinConfidenceScore: 50, AmbiguityGapScore: 15},
		noopLogger{},
	)
	return engine, turns
}

func TestProcessTurnRejectsEmptyInputWithoutLogging(t *testing.T) {
	provider := &stubProvider{}
	engine, turns := newTestEngine(provider, nil, newFakeContexts())

	_, err := engine.ProcessTurn(context.Background(), "", "bonjour")
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))

	_, err = engine.ProcessTurn(context.Background(), "session-1", "   ")
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))

	// A rejected turn must leave no trace in the conversation log.
	assert.Empty(t, turns.turns)
}

func TestProcessTurnConfidentDiagnosis(t *testing.T) {
	grippe := &entity.Disease{
		Id:                   uuid.New(),
		NameFr:               "Grippe",
		Description:          "Infection virale saisonnière",
		TriageRecommendation: "consultation_generaliste",
		SymptomKeywords:      []string{"fièvre", "toux", "courbatures"},
	}
	provider := &stubProvider{
		response: `{"intention": "diagnostic_symptomes", "symptomes": ["fièvre", "toux"]}`,
	}
	engine, turns := newTestEngine(provider, []*entity.Disease{grippe}, newFakeContexts())

	res, err := engine.ProcessTurn(context.Background(), "session-1", "J'ai de la fièvre et je tousse")
	require.NoError(t, err)

	assert.Equal(t, constant.IntentDiagnosisSymptoms, res.DetectedIntent)
	assert.Equal(t, "consultation_generaliste", res.TriageRecommendation)
	assert.True(t, strings.HasPrefix(res.AIResponse, constant.PrefixConfident))
	assert.Contains(t, res.AIResponse, "1. **Grippe** (Confiance:")
	assert.Contains(t, res.AIResponse, "Symptômes correspondants: fièvre, toux")
	assert.Contains(t, res.AIResponse, "Triage suggéré: Consultation generaliste.")
	assert.Contains(t, res.AIResponse, constant.SuffixDisclaimer)

	// One user turn, one analysis turn, one reply turn.
	require.Len(t, turns.turns, 3)
	assert.Equal(t, constant.ActorUser, turns.turns[0].Actor)
	assert.Equal(t, constant.ActorAINLU, turns.turns[1].Actor)
	assert.Equal(t, constant.ActorAI, turns.turns[2].Actor)
	assert.Equal(t, turns.turns[2].Id.String(), res.AIMessageId)
}

func TestProcessTurnAsksForClarificationOnLowConfidence(t *testing.T) {
	// One matching keyword out of five stays under the confidence floor.
	disease := &entity.Disease{
		Id:              uuid.New(),
		NameFr:          "Grippe",
		SymptomKeywords: []string{"fièvre", "toux", "courbatures", "fatigue", "maux de tête"},
	}
	provider := &stubProvider{
		response: `{"intention": "diagnostic_symptomes", "symptomes": ["fièvre"]}`,
	}
	engine, _ := newTestEngine(provider, []*entity.Disease{disease}, newFakeContexts())

	res, err := engine.ProcessTurn(context.Background(), "session-1", "J'ai de la fièvre")
	require.NoError(t, err)

	assert.Equal(t, constant.TriageClarification, res.TriageRecommendation)
	// Even a tentative reply names the candidates so far.
	assert.True(t, strings.HasPrefix(res.AIResponse, constant.PrefixFirstOrientation))
	assert.Contains(t, res.AIResponse, "1. **Grippe** (Confiance:")
}

func TestProcessTurnReportsAmbiguity(t *testing.T) {
	grippe := &entity.Disease{Id: uuid.New(), NameFr: "Grippe", SymptomKeywords: []string{"fièvre", "toux"}}
	rhume := &entity.Disease{Id: uuid.New(), NameFr: "Rhume", SymptomKeywords: []string{"fièvre", "toux"}}
	provider := &stubProvider{
		response: `{"intention": "diagnostic_symptomes", "symptomes": ["fièvre", "toux", "frissons"]}`,
	}
	engine, _ := newTestEngine(provider, []*entity.Disease{grippe, rhume}, newFakeContexts())

	res, err := engine.ProcessTurn(context.Background(), "session-1", "fièvre, toux et frissons")
	require.NoError(t, err)

	assert.Equal(t, constant.TriageClarification, res.TriageRecommendation)
	assert.True(t, strings.HasPrefix(res.AIResponse, constant.PrefixAmbiguous))
	assert.Contains(t, res.AIResponse, "1. **Grippe**")
	assert.Contains(t, res.AIResponse, "2. **Rhume**")
	assert.Contains(t, res.AIResponse, "Confiance:")
}

func TestProcessTurnAccumulatesSymptomsAcrossTurns(t *testing.T) {
	grippe := &entity.Disease{
		Id:                   uuid.New(),
		NameFr:               "Grippe",
		TriageRecommendation: "consultation_generaliste",
		SymptomKeywords:      []string{"fièvre", "toux", "courbatures"},
	}
	contexts := newFakeContexts()

	first := &stubProvider{response: `{"intention": "diagnostic_symptomes", "symptomes": ["fièvre"]}`}
	engine, _ := newTestEngine(first, []*entity.Disease{grippe}, contexts)
	res, err := engine.ProcessTurn(context.Background(), "session-1", "J'ai de la fièvre")
	require.NoError(t, err)
	assert.Equal(t, constant.TriageClarification, res.TriageRecommendation)

	// The second turn adds symptoms; together they cross the threshold.
	second := &stubProvider{response: `{"intention": "diagnostic_symptomes", "symptomes": ["toux", "courbatures"]}`}
	engine, _ = newTestEngine(second, []*entity.Disease{grippe}, contexts)
	res, err = engine.ProcessTurn(context.Background(), "session-1", "Je tousse et j'ai des courbatures")
	require.NoError(t, err)

	assert.Equal(t, "consultation_generaliste", res.TriageRecommendation)
	assert.Contains(t, res.AIResponse, "Grippe")
}

func TestProcessTurnSurvivesContextStoreFailure(t *testing.T) {
	grippe := &entity.Disease{
		Id:                   uuid.New(),
		NameFr:               "Grippe",
		TriageRecommendation: "consultation_generaliste",
		SymptomKeywords:      []string{"fièvre", "toux"},
	}
	provider := &stubProvider{
		response: `{"intention": "diagnostic_symptomes", "symptomes": ["fièvre", "toux", "frissons"]}`,
	}
	contexts := newFakeContexts()
	contexts.fail = true
	engine, _ := newTestEngine(provider, []*entity.Disease{grippe}, contexts)

	res, err := engine.ProcessTurn(context.Background(), "session-1", "fièvre, toux et frissons")
	require.NoError(t, err)
	assert.Equal(t, "consultation_generaliste", res.TriageRecommendation)
}

func TestProcessTurnConversationalFallback(t *testing.T) {
	provider := &stubProvider{response: `{"intention": "salutation"}`}
	engine, turns := newTestEngine(provider, nil, newFakeContexts())

	res, err := engine.ProcessTurn(context.Background(), "session-1", "Bonjour !")
	require.NoError(t, err)

	assert.Equal(t, constant.IntentGreeting, res.DetectedIntent)
	assert.Equal(t, constant.TriageConversation, res.TriageRecommendation)
	require.Len(t, turns.turns, 3)
	assert.Equal(t, constant.IntentGreeting, turns.turns[1].Message)
}

func TestProcessTurnDiseaseInfoUsesStoredTriage(t *testing.T) {
	grippe := &entity.Disease{
		Id:                   uuid.New(),
		NameFr:               "Grippe",
		ICD10Code:            "J11",
		Description:          "Infection virale saisonnière",
		Severity:             2,
		Prevalence:           "courante",
		TriageRecommendation: "consultation_de_routine",
		SymptomKeywords:      []string{"fièvre", "toux"},
		CauseKeywords:        []string{"virus influenza"},
		RiskFactorKeywords:   []string{"âge avancé"},
	}
	provider := &stubProvider{
		response: `{"intention": "information_maladie", "maladies_mentionnees": ["Grippe"]}`,
	}
	engine, _ := newTestEngine(provider, []*entity.Disease{grippe}, newFakeContexts())

	res, err := engine.ProcessTurn(context.Background(), "session-1", "C'est quoi la grippe ?")
	require.NoError(t, err)

	assert.Equal(t, constant.IntentDiseaseInfo, res.DetectedIntent)
	assert.Equal(t, "consultation_de_routine", res.TriageRecommendation)

	// The reply generation is fed the full knowledge base record.
	require.NotEmpty(t, provider.prompts)
	kbPrompt := provider.prompts[len(provider.prompts)-1]
	assert.Contains(t, kbPrompt, "Nom: Grippe")
	assert.Contains(t, kbPrompt, "Code CIM-10: J11")
	assert.Contains(t, kbPrompt, "Gravité (1-5): 2")
	assert.Contains(t, kbPrompt, "Prévalence: courante")
	assert.Contains(t, kbPrompt, "Recommandation de triage: consultation_de_routine")
	assert.Contains(t, kbPrompt, "Symptômes courants: fièvre, toux")
	assert.Contains(t, kbPrompt, "Causes: virus influenza")
	assert.Contains(t, kbPrompt, "Facteurs de risque: âge avancé")
}

func TestProcessTurnSymptomInfoReportsTenPointScale(t *testing.T) {
	fievre := &entity.Symptom{
		Id:                 uuid.New(),
		NameFr:             "Fièvre",
		Description:        "Élévation de la température corporelle",
		PotentialSeverity:  6,
		AssociatedKeywords: []string{"chaleur", "transpiration"},
	}
	provider := &stubProvider{
		response: `{"intention": "information_symptome", "symptomes": ["Fièvre"]}`,
	}
	turns := &fakeTurnLog{}
	engine := NewEngine(
		NewAnalyzer(provider, noopLogger{}),
		NewGenerator(provider, noopLogger{}),
		&fakeDiseaseRepo{},
		&fakeSymptomRepo{symptoms: []*entity.Symptom{fievre}},
		turns,
		newFakeContexts(),
		nil,
		config.AssistantConfig{MinConfidenceScore: 50, AmbiguityGapScore: 15},
		noopLogger{},
	)

	res, err := engine.ProcessTurn(context.Background(), "session-1", "Que signifie la fièvre ?")
	require.NoError(t, err)

	assert.Equal(t, constant.TriageGeneralInformation, res.TriageRecommendation)
	require.NotEmpty(t, provider.prompts)
	kbPrompt := provider.prompts[len(provider.prompts)-1]
	assert.Contains(t, kbPrompt, "Gravité potentielle (1-10): 6")
	assert.Contains(t, kbPrompt, "Mots-clés associés: chaleur, transpiration")
}

func TestProcessTurnAttachesAudioBeforeLogging(t *testing.T) {
	provider := &stubProvider{response: `{"intention": "salutation"}`}
	audioPath := "/static/audio_responses/greeting.wav"
	engine, turns := newTestEngineWithAudio(provider, nil, newFakeContexts(), func(ctx context.Context, sessionId, reply string) string {
		return audioPath
	})

	res, err := engine.ProcessTurn(context.Background(), "session-1", "Bonjour !")
	require.NoError(t, err)

	assert.Equal(t, audioPath, res.AIResponseAudioURL)
	// The durable log carries the same path the client receives.
	require.Len(t, turns.turns, 3)
	assert.Equal(t, audioPath, turns.turns[2].StructuredData["chemin_audio"])
}

func TestProcessTurnLogsNullAudioPathWithoutSynthesis(t *testing.T) {
	provider := &stubProvider{response: `{"intention": "salutation"}`}
	engine, turns := newTestEngine(provider, nil, newFakeContexts())

	res, err := engine.ProcessTurn(context.Background(), "session-1", "Bonjour !")
	require.NoError(t, err)

	assert.Empty(t, res.AIResponseAudioURL)
	require.Len(t, turns.turns, 3)
	data := turns.turns[2].StructuredData
	require.Contains(t, data, "chemin_audio")
	assert.Nil(t, data["chemin_audio"])
}

func TestRankedSummaryCapsAtThreeAndTruncates(t *testing.T) {
	long := strings.Repeat("a", 150)
	matches := []knowledge.DiseaseMatch{
		{Disease: &entity.Disease{NameFr: "Grippe", Description: long, TriageRecommendation: "consultation_generaliste"}, Confidence: 80, MatchingSymptoms: []string{"fièvre", "toux"}},
		{Disease: &entity.Disease{NameFr: "Rhume", TriageRecommendation: "soins_a_domicile"}, Confidence: 60, MatchingSymptoms: []string{"toux"}},
		{Disease: &entity.Disease{NameFr: "Bronchite"}, Confidence: 40, MatchingSymptoms: []string{"toux"}},
		{Disease: &entity.Disease{NameFr: "Angine"}, Confidence: 20, MatchingSymptoms: []string{"fièvre"}},
	}

	got := rankedMatchSummary(matches)

	assert.Contains(t, got, "1. **Grippe** (Confiance: 80.00%)")
	assert.Contains(t, got, "2. **Rhume** (Confiance: 60.00%)")
	assert.Contains(t, got, "3. **Bronchite**")
	assert.NotContains(t, got, "Angine")
	assert.Contains(t, got, strings.Repeat("a", 100)+"...")
	assert.NotContains(t, got, strings.Repeat("a", 101))
	assert.Contains(t, got, "Triage suggéré: Consultation generaliste.")
	assert.Contains(t, got, "Triage suggéré: Soins a domicile.")
}
