package specification

import "gorm.io/gorm"

// ByNameFr matches the French name case-insensitively. Lookup by name
// is the primary access path of the knowledge base.
type ByNameFr struct {
	Name string
}

func (s ByNameFr) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(name_fr) = LOWER(?)", s.Name)
}

// NameContains searches by partial French name (case-insensitive).
type NameContains struct {
	Fragment string
}

func (s NameContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name_fr ILIKE ?", "%"+s.Fragment+"%")
}
