package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var Models = []interface{}{
	&AuditRecord{}, &ArchivedAuditRecord{}, &RetentionPolicy{}, &ComplianceReport{},
}

// NewID returns a new random identifier for an entity.
func NewID() string {
	return uuid.NewString()
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}
