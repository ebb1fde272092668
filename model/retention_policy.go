package model

import "time"

// RetentionPolicy controls how long audit records are kept for a tenant.
// At most one policy may exist per (tenant, name) pair. Category and
// MinSeverity are optional filters; when nil the policy applies to all
// records older than the cutoff.
type RetentionPolicy struct {
	ID                  string         `gorm:"type:char(36);primaryKey" json:"id"`
	TenantID            string         `gorm:"type:char(36);uniqueIndex:idx_policy_tenant_name;not null" json:"tenantId"`
	Name                string         `gorm:"size:100;uniqueIndex:idx_policy_tenant_name;not null" json:"name"`
	Description         string         `gorm:"size:500" json:"description,omitempty"`
	RetentionDays       int            `gorm:"not null" json:"retentionDays"`
	Category            *AuditCategory `gorm:"size:20" json:"category,omitempty"`
	MinSeverity         *AuditSeverity `gorm:"size:20" json:"minSeverity,omitempty"`
	Enabled             bool           `gorm:"not null;default:true" json:"enabled"`
	ArchiveBeforeDelete bool           `gorm:"not null;default:false" json:"archiveBeforeDelete"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (RetentionPolicy) TableName() string {
	return "retention_policies"
}

// Cutoff returns the timestamp boundary below which records are eligible
// for retention action, relative to now in UTC.
func (p *RetentionPolicy) Cutoff(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, -p.RetentionDays)
}

// Filter builds the record selection predicate for one execution of the
// policy. The engine builds it once per run and hands the same filter to
// selection, archival and deletion so the three always agree.
func (p *RetentionPolicy) Filter(now time.Time) RecordFilter {
	return RecordFilter{
		TenantID:    p.TenantID,
		Cutoff:      p.Cutoff(now),
		Category:    p.Category,
		MinSeverity: p.MinSeverity,
	}
}
