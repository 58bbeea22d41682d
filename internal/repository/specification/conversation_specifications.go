package specification

import "gorm.io/gorm"

type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByActor struct {
	Actor string
}

func (s ByActor) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("actor = ?", s.Actor)
}
