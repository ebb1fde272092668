package model

import (
	"time"

	"gorm.io/gorm"
)

// RecordFilter selects audit records eligible for retention action. The
// four predicate variants (category x min-severity presence) live here and
// nowhere else.
//
// Severity comparison is ordinal and strict: a record matches only when its
// severity rank is strictly less than MinSeverity. Retention deletes
// low-severity noise, never records at or above the threshold.
type RecordFilter struct {
	TenantID    string
	Cutoff      time.Time
	Category    *AuditCategory
	MinSeverity *AuditSeverity
}

// Scope applies the filter to a query. Usable with db.Scopes.
func (f RecordFilter) Scope() func(tx *gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("tenant_id = ?", f.TenantID).Where("created_at < ?", f.Cutoff)
		if f.Category != nil {
			tx = tx.Where("category = ?", *f.Category)
		}
		if f.MinSeverity != nil {
			tx = tx.Where("severity IN ?", SeveritiesBelow(*f.MinSeverity))
		}
		return tx
	}
}

// Matches reports whether the record satisfies the filter. It is the
// in-memory equivalent of Scope.
func (f RecordFilter) Matches(rec *AuditRecord) bool {
	if rec.TenantID != f.TenantID {
		return false
	}
	if !rec.CreatedAt.Before(f.Cutoff) {
		return false
	}
	if f.Category != nil && rec.Category != *f.Category {
		return false
	}
	if f.MinSeverity != nil && rec.Severity.Rank() >= f.MinSeverity.Rank() {
		return false
	}
	return true
}
