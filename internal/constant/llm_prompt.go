package constant

// Prompt templates sent to the language model. All of them are fmt
// templates; placeholders are documented next to each constant.

// NLUPromptTemplate expects the JSON-quoted user message.
const NLUPromptTemplate = `En tant qu'assistant médical IA, votre tâche est d'analyser le texte suivant de l'utilisateur.
Identifiez l'intention principale de l'utilisateur et extrayez toutes les entités médicales pertinentes.

Entités à extraire (si présentes):
- 'symptomes': Liste de symptômes décrits par l'utilisateur (ex: "fièvre", "toux sèche", "mal de tête").
- 'maladies_mentionnees': Liste de maladies explicitement mentionnées par l'utilisateur (ex: "grippe", "paludisme").
- 'duree': Durée des symptômes (ex: "3 jours", "une semaine").
- 'localisation_douleur': Où la douleur est ressentie (ex: "abdomen", "poitrine").
- 'gravite_subjective': Description subjective de la gravité par l'utilisateur (ex: "forte", "légère", "insupportable").
- 'facteurs_aggravants': Ce qui rend les symptômes pires.
- 'facteurs_attenuants': Ce qui soulage les symptômes.
- 'antecedents_medicaux': Conditions médicales passées ou existantes de l'utilisateur.
- 'medicaments_actuels': Médicaments que l'utilisateur prend actuellement.
- 'age': Âge de l'utilisateur (si mentionné).
- 'sexe': Sexe de l'utilisateur (si mentionné).
- 'objectif_sante': Objectif de santé exprimé (ex: "perdre du poids", "améliorer le sommeil").

Intentions possibles:
- 'diagnostic_symptomes': L'utilisateur décrit des symptômes pour obtenir une orientation ou un diagnostic.
- 'information_maladie': L'utilisateur demande des informations sur une maladie spécifique.
- 'information_symptome': L'utilisateur demande des informations sur un symptôme spécifique.
- 'demande_generale_sante': Question générale liée à la santé mais non diagnostique (ex: "comment prévenir la grippe?").
- 'demande_planning_sante': L'utilisateur demande un planning ou des conseils pour un objectif de santé.
- 'salutation': L'utilisateur salue l'IA.
- 'remerciement': L'utilisateur remercie l'IA.
- 'autre_conversation': L'utilisateur engage une conversation générale, sans intention médicale claire.
- 'non_pertinent': Le texte n'a aucun rapport avec la santé ou l'assistance médicale.

La réponse doit être un objet JSON valide. Si une entité n'est pas présente, omettez-la ou mettez une liste vide/null.
Assurez-vous que le JSON est propre, sans texte additionnel ni backticks.

Exemples de format JSON:
- {"intention": "diagnostic_symptomes", "symptomes": ["fièvre", "maux de tête"], "duree": "2 jours"}
- {"intention": "information_maladie", "maladies_mentionnees": ["paludisme"]}
- {"intention": "salutation"}
- {"intention": "demande_planning_sante", "objectif_sante": "améliorer mon sommeil"}

Texte de l'utilisateur: %s
Réponse JSON:`

// ClarificationPromptTemplate expects the identified symptoms joined
// with ", " and the JSON-encoded current context.
const ClarificationPromptTemplate = `En tant qu'assistant médical IA, vous avez identifié les symptômes suivants: %s.
Le contexte actuel de la conversation est: %s.

Formulez une question concise et pertinente pour obtenir plus de détails
ou clarifier les symptômes de l'utilisateur, en restant amical et professionnel.

Exemples:
- "Pouvez-vous me décrire la nature exacte de vos maux de tête ?"
- "Depuis combien de temps ressentez-vous cette fièvre ?"
- "La toux est-elle sèche ou grasse ?"
- "Ressentez-vous d'autres symptômes, même légers ?"

Question de clarification:`

// InformativePromptTemplate expects the user question and the knowledge
// base extract (or NoKnowledgeBaseInfo).
const InformativePromptTemplate = `En tant qu'assistant médical IA, répondez à la question suivante de l'utilisateur.
Si des informations supplémentaires sont fournies par la base de connaissances, utilisez-les pour enrichir votre réponse.
Restez concis, clair, professionnel et ne donnez pas de conseils médicaux directs.

Question de l'utilisateur: "%s"
Informations de la base de connaissances (si disponibles):
%s

Réponse:`

const NoKnowledgeBaseInfo = "Aucune information spécifique fournie."

// ConversationalPromptTemplate expects the detected intent, the original
// message and the JSON-encoded extracted entities.
const ConversationalPromptTemplate = `En tant qu'assistant médical IA, vous interagissez avec un utilisateur.
Votre objectif est d'être amical, empathique et de guider la conversation vers des sujets de santé,
tout en restant professionnel et en évitant les conseils médicaux directs.

L'intention détectée est: '%s'.
Le message original de l'utilisateur était: "%s".
Les entités extraites sont: %s.

Formulez une réponse appropriée:

- Si l'intention est 'salutation': Saluez l'utilisateur chaleureusement et invitez-le à exprimer ses préoccupations de santé.
- Si l'intention est 'remerciement': Remerciez l'utilisateur et proposez de l'aide supplémentaire.
- Si l'intention est 'demande_generale_sante': Répondez de manière générale sur la santé et invitez à plus de détails ou à des symptômes spécifiques.
- Si l'intention est 'autre_conversation': Reconnaissez le message et redirigez doucement vers le cadre de l'assistance médicale.
- Si l'intention est 'non_pertinent': Indiquez poliment que votre domaine d'expertise est la santé et proposez de l'aide sur ce sujet.
- Si l'intention est 'demande_planning_sante': Indiquez que vous pouvez aider à créer un planning de santé personnalisé et demandez l'objectif précis.

Réponse de l'IA:`

// HealthSummaryPromptTemplate expects the patient request and the
// JSON-encoded health context.
const HealthSummaryPromptTemplate = `En tant qu'assistant médical IA, votre tâche est de générer un résumé concis de l'état de santé d'un patient.
Le patient a demandé: "%s".
Voici les données de santé disponibles:
%s

Veuillez analyser ces informations et fournir un résumé clair et professionnel,
mettant en évidence les points clés, les tendances et les préoccupations éventuelles.
N'incluez pas de conseils médicaux directs ni de diagnostic.

Résumé de l'état de santé:`

// HealthPlanPromptTemplate expects the patient request and the
// JSON-encoded planning context.
const HealthPlanPromptTemplate = `En tant qu'assistant médical IA, votre tâche est de générer un planning de santé personnalisé.
Le patient a demandé: "%s".
Voici les informations pertinentes pour le planning:
%s

Veuillez proposer un plan d'action structuré et réaliste, incluant des suggestions pour l'alimentation,
l'exercice, le sommeil, la gestion du stress, etc., en fonction de l'objectif de santé spécifié.
Le planning doit être facile à comprendre et ne doit pas remplacer un avis médical professionnel.

Planning de santé personnalisé:`

// MedicalReportPromptTemplate expects the caller-provided base prompt
// and the JSON-encoded report context.
const MedicalReportPromptTemplate = `%s

Contexte détaillé pour le rapport:
%s

Le rapport doit être complet, structuré, professionnel et au format Markdown.
Utilisez des titres, des listes et des paragraphes pour une bonne lisibilité.
N'incluez pas de phrases introductives ou conclusives en dehors du rapport lui-même.

Rapport Médical:`

// ConciseSummaryPromptTemplate expects the long text to summarize.
const ConciseSummaryPromptTemplate = `Résumez le texte suivant en une ou deux phrases clés.
Texte:
%s

Résumé:`

// SessionSummaryPromptTemplate expects a full teleconsultation transcript.
const SessionSummaryPromptTemplate = `En tant qu'assistant médical IA, veuillez générer un résumé concis et professionnel
de la session de téléconsultation suivante. Mettez en évidence les points clés:
symptômes principaux, diagnostic ou orientation, traitements/recommandations, et prochaines étapes.

Transcription de la téléconsultation:
%s

Résumé de la téléconsultation:`

// StatsReportPromptTemplate expects the JSON-encoded raw data and the
// caller's reporting instructions.
const StatsReportPromptTemplate = `En tant qu'analyste IA, votre tâche est de générer un rapport statistique.
Voici les données brutes à analyser:
%s

Instructions spécifiques pour le rapport: %s

Le rapport doit être clair, concis et mettre en évidence les tendances et les informations clés.
Utilisez un format lisible.

Rapport Statistique:`
