package main

import (
	"log"

	"telemed-be/internal/config"
	"telemed-be/internal/model"
	"telemed-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	log.Println("Running migrations...")

	err = db.AutoMigrate(
		&model.User{},
		&model.Patient{},
		&model.Doctor{},
		&model.MedicalStructure{},
		&model.Appointment{},
		&model.TeleconsultationSession{},
		&model.Disease{},
		&model.Symptom{},
		&model.DiseaseSymptomLink{},
		&model.ConversationLog{},
		&model.HealthStatusLog{},
		&model.WearableData{},
		&model.MedicalReport{},
		&model.Notification{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("✅ Migration complete")
}
