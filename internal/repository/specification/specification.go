package specification

import "gorm.io/gorm"

// Specification narrows a query. Implementations compose onto the
// chain via Apply.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
