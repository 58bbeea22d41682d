package constant

// Actor types recorded in the conversation log.
const (
	ActorUser   = "utilisateur"
	ActorAI     = "ia"
	ActorAINLU  = "ia_nlu"
	ActorSystem = "systeme"
)

// User roles.
const (
	RoleAdmin   = "admin"
	RolePatient = "patient"
	RoleDoctor  = "medecin"
)

// Intents the NLU analysis can resolve a user message to.
const (
	IntentDiagnosisSymptoms = "diagnostic_symptomes"
	IntentDiseaseInfo       = "information_maladie"
	IntentSymptomInfo       = "information_symptome"
	IntentGeneralHealth     = "demande_generale_sante"
	IntentHealthPlan        = "demande_planning_sante"
	IntentGreeting          = "salutation"
	IntentThanks            = "remerciement"
	IntentOtherConversation = "autre_conversation"
	IntentNotRelevant       = "non_pertinent"
	IntentError             = "erreur"
	IntentEndCall           = "fin_appel"
)

// Triage recommendations attached to every assistant reply.
const (
	TriageConversation       = "conversation"
	TriageGeneralInformation = "information_generale"
	TriageClarification      = "clarification_necessaire"
	TriageError              = "erreur"
	TriageEndCall            = "fin_appel"
)

// Websocket frame types for the realtime voice assistant.
const (
	FrameTextMessage       = "TEXT_MESSAGE"
	FrameEndCall           = "END_CALL"
	FrameAIThinking        = "AI_THINKING"
	FrameUserTranscription = "USER_TRANSCRIPTION"
	FrameAIResponse        = "AI_RESPONSE"
	FrameAIError           = "AI_ERROR"
	FrameEndCallConfirm    = "END_CALL_CONFIRM"
)

// Fixed assistant strings used when generation fails or no generation is needed.
const (
	FallbackClarification  = "Pourriez-vous me donner plus de détails sur vos symptômes ?"
	FallbackInformative    = "Je ne suis pas en mesure de fournir cette information pour le moment. Veuillez consulter un professionnel de la santé."
	FallbackConversational = "Bonjour ! Je suis là pour vous aider avec vos questions de santé. Comment puis-je vous assister ?"
	FallbackHealthSummary  = "Désolé, je n'ai pas pu générer le résumé de l'état de santé pour le moment."
	FallbackHealthPlan     = "Désolé, je n'ai pas pu générer le planning de santé pour le moment."
	FallbackMedicalReport  = "Désolé, je n'ai pas pu générer le rapport médical pour le moment."
	FallbackConciseSummary = "Impossible de générer un résumé."
	FallbackSessionSummary = "Désolé, je n'ai pas pu générer le résumé de la téléconsultation."
	FallbackStatsReport    = "Désolé, je n'ai pas pu générer le rapport statistique pour le moment."

	MsgNoDiseaseIdentified  = "Je n'ai pas identifié de maladie spécifique dans votre demande. Pourriez-vous préciser ?"
	MsgNoSymptomIdentified  = "Je n'ai pas identifié de symptôme spécifique dans votre demande. Pourriez-vous préciser ?"
	MsgVoiceProcessingError = "Désolé, une erreur est survenue lors du traitement de votre message vocal."
	MsgTextProcessingError  = "Désolé, une erreur est survenue lors du traitement de votre message texte."
	MsgUnexpectedWSError    = "Une erreur inattendue est survenue dans le service de téléassistance. Veuillez réessayer."
	MsgEndCallGoodbye       = "Au revoir ! Merci d'avoir utilisé le service de téléassistance."

	PrefixFirstOrientation = "Basé sur les informations que vous m'avez fournies, voici une première orientation. "
	PrefixAmbiguous        = "Basé sur les informations que vous m'avez fournies, plusieurs pistes sont possibles. "
	PrefixConfident        = "Basé sur les symptômes que vous avez décrits, voici une orientation possible. "
	SuffixDisclaimer       = "N'oubliez pas que seul un professionnel de santé peut poser un diagnostic définitif."
)
