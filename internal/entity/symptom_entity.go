package entity

import (
	"time"

	"github.com/google/uuid"
)

type Symptom struct {
	Id                 uuid.UUID
	NameFr             string
	Description        string
	PotentialSeverity  int
	AssociatedKeywords []string
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}
