package main

import (
	"log"
	"os"

	"telemed-be/internal/model"
	"telemed-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding medical knowledge base...")
	seedSymptoms(db)
	seedDiseases(db)
	seedAdminUser(db)

	color.Green("Seeding completed!")
}

func seedSymptoms(db *gorm.DB) {
	symptoms := []model.Symptom{
		{NameFr: "Fièvre", Description: ptr("Température corporelle supérieure à 38°C"), PotentialSeverity: intPtr(4), AssociatedKeywords: datatypes.NewJSONSlice([]string{"fièvre", "fievre", "température", "chaud"})},
		{NameFr: "Toux", Description: ptr("Toux sèche ou grasse"), PotentialSeverity: intPtr(3), AssociatedKeywords: datatypes.NewJSONSlice([]string{"toux", "tousser"})},
		{NameFr: "Fatigue", Description: ptr("Sensation d'épuisement inhabituelle"), PotentialSeverity: intPtr(2), AssociatedKeywords: datatypes.NewJSONSlice([]string{"fatigue", "épuisement", "faiblesse"})},
		{NameFr: "Maux de tête", Description: ptr("Céphalées diffuses ou localisées"), PotentialSeverity: intPtr(3), AssociatedKeywords: datatypes.NewJSONSlice([]string{"maux de tête", "mal de tête", "céphalée"})},
		{NameFr: "Courbatures", Description: ptr("Douleurs musculaires diffuses"), PotentialSeverity: intPtr(2), AssociatedKeywords: datatypes.NewJSONSlice([]string{"courbatures", "douleurs musculaires"})},
		{NameFr: "Mal de gorge", Description: ptr("Douleur ou irritation de la gorge"), PotentialSeverity: intPtr(2), AssociatedKeywords: datatypes.NewJSONSlice([]string{"mal de gorge", "gorge irritée"})},
		{NameFr: "Nez qui coule", Description: ptr("Écoulement nasal clair ou épais"), PotentialSeverity: intPtr(1), AssociatedKeywords: datatypes.NewJSONSlice([]string{"nez qui coule", "rhinorrhée", "nez bouché"})},
		{NameFr: "Nausées", Description: ptr("Envie de vomir"), PotentialSeverity: intPtr(3), AssociatedKeywords: datatypes.NewJSONSlice([]string{"nausées", "nausée", "envie de vomir"})},
		{NameFr: "Diarrhée", Description: ptr("Selles liquides fréquentes"), PotentialSeverity: intPtr(4), AssociatedKeywords: datatypes.NewJSONSlice([]string{"diarrhée", "selles liquides"})},
		{NameFr: "Douleur thoracique", Description: ptr("Douleur ou oppression dans la poitrine"), PotentialSeverity: intPtr(9), AssociatedKeywords: datatypes.NewJSONSlice([]string{"douleur thoracique", "douleur poitrine", "oppression"})},
		{NameFr: "Essoufflement", Description: ptr("Difficulté à respirer"), PotentialSeverity: intPtr(8), AssociatedKeywords: datatypes.NewJSONSlice([]string{"essoufflement", "difficulté à respirer", "dyspnée"})},
	}

	for _, s := range symptoms {
		var existing model.Symptom
		if err := db.Where("name_fr = ?", s.NameFr).First(&existing).Error; err == nil {
			log.Printf("Symptom '%s' already exists, skipping...", s.NameFr)
			continue
		}
		if err := db.Create(&s).Error; err != nil {
			color.Red("Error creating symptom '%s': %v", s.NameFr, err)
		} else {
			log.Printf("Created symptom: %s", s.NameFr)
		}
	}
}

func seedDiseases(db *gorm.DB) {
	diseases := []model.Disease{
		{
			NameFr:               "Grippe",
			ICD10Code:            ptr("J11"),
			Description:          ptr("Infection virale saisonnière touchant les voies respiratoires."),
			Severity:             intPtr(2),
			Prevalence:           ptr("très fréquente en hiver"),
			TriageRecommendation: ptr("consultation_generaliste"),
			SymptomKeywords:      datatypes.NewJSONSlice([]string{"fièvre", "toux", "courbatures", "fatigue", "maux de tête"}),
			CauseKeywords:        datatypes.NewJSONSlice([]string{"virus influenza"}),
			RiskFactorKeywords:   datatypes.NewJSONSlice([]string{"âge avancé", "immunodépression"}),
		},
		{
			NameFr:               "Rhume",
			ICD10Code:            ptr("J00"),
			Description:          ptr("Infection virale bénigne des voies respiratoires supérieures."),
			Severity:             intPtr(1),
			Prevalence:           ptr("très fréquente"),
			TriageRecommendation: ptr("automedication_conseillee"),
			SymptomKeywords:      datatypes.NewJSONSlice([]string{"nez qui coule", "mal de gorge", "toux", "fatigue"}),
			CauseKeywords:        datatypes.NewJSONSlice([]string{"rhinovirus"}),
		},
		{
			NameFr:               "Gastro-entérite",
			ICD10Code:            ptr("A09"),
			Description:          ptr("Inflammation du tube digestif d'origine le plus souvent virale."),
			Severity:             intPtr(2),
			Prevalence:           ptr("fréquente"),
			TriageRecommendation: ptr("consultation_generaliste"),
			SymptomKeywords:      datatypes.NewJSONSlice([]string{"diarrhée", "nausées", "fièvre", "fatigue"}),
			CauseKeywords:        datatypes.NewJSONSlice([]string{"norovirus", "rotavirus"}),
			RiskFactorKeywords:   datatypes.NewJSONSlice([]string{"contact avec une personne malade"}),
		},
		{
			NameFr:               "Angine",
			ICD10Code:            ptr("J03"),
			Description:          ptr("Inflammation des amygdales, d'origine virale ou bactérienne."),
			Severity:             intPtr(2),
			Prevalence:           ptr("fréquente"),
			TriageRecommendation: ptr("consultation_generaliste"),
			SymptomKeywords:      datatypes.NewJSONSlice([]string{"mal de gorge", "fièvre", "maux de tête"}),
			CauseKeywords:        datatypes.NewJSONSlice([]string{"streptocoque", "virus"}),
		},
		{
			NameFr:               "Infarctus du myocarde",
			ICD10Code:            ptr("I21"),
			Description:          ptr("Urgence cardiovasculaire par occlusion d'une artère coronaire."),
			Severity:             intPtr(5),
			Prevalence:           ptr("rare avant 45 ans"),
			TriageRecommendation: ptr("urgence_immediate"),
			SymptomKeywords:      datatypes.NewJSONSlice([]string{"douleur thoracique", "essoufflement", "nausées"}),
			RiskFactorKeywords:   datatypes.NewJSONSlice([]string{"tabagisme", "hypertension", "diabète"}),
		},
	}

	for _, d := range diseases {
		var existing model.Disease
		if err := db.Where("name_fr = ?", d.NameFr).First(&existing).Error; err == nil {
			log.Printf("Disease '%s' already exists, skipping...", d.NameFr)
			continue
		}
		if err := db.Create(&d).Error; err != nil {
			color.Red("Error creating disease '%s': %v", d.NameFr, err)
		} else {
			log.Printf("Created disease: %s", d.NameFr)
		}
	}
}

func seedAdminUser(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@telemed.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		color.Yellow("SEED_ADMIN_PASSWORD not set, skipping admin user")
		return
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin user '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error hashing admin password: %v", err)
		return
	}

	admin := model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		color.Red("Error creating admin user: %v", err)
		return
	}
	log.Printf("Created admin user: %s", email)
}

func ptr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
