package model

import "time"

type AuditSeverity string

const (
	SeverityLow      AuditSeverity = "LOW"
	SeverityMedium   AuditSeverity = "MEDIUM"
	SeverityHigh     AuditSeverity = "HIGH"
	SeverityCritical AuditSeverity = "CRITICAL"
)

var severityRanks = map[AuditSeverity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Rank returns the ordinal position of the severity, -1 if unknown.
func (s AuditSeverity) Rank() int {
	if rank, ok := severityRanks[s]; ok {
		return rank
	}
	return -1
}

func (s AuditSeverity) Valid() bool {
	_, ok := severityRanks[s]
	return ok
}

// SeveritiesBelow returns every severity with a rank strictly less than s,
// ordered from lowest to highest. Used for threshold comparisons in queries.
func SeveritiesBelow(s AuditSeverity) []AuditSeverity {
	ordered := []AuditSeverity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	var below []AuditSeverity
	for _, candidate := range ordered {
		if candidate.Rank() < s.Rank() {
			below = append(below, candidate)
		}
	}
	return below
}

type AuditCategory string

const (
	CategoryAuthentication   AuditCategory = "AUTHENTICATION"
	CategoryAuthorization    AuditCategory = "AUTHORIZATION"
	CategoryDataAccess       AuditCategory = "DATA_ACCESS"
	CategoryDataModification AuditCategory = "DATA_MODIFICATION"
	CategoryConfiguration    AuditCategory = "CONFIGURATION"
	CategorySecurity         AuditCategory = "SECURITY"
	CategoryCompliance       AuditCategory = "COMPLIANCE"
	CategorySystem           AuditCategory = "SYSTEM"
)

var categories = map[AuditCategory]bool{
	CategoryAuthentication:   true,
	CategoryAuthorization:    true,
	CategoryDataAccess:       true,
	CategoryDataModification: true,
	CategoryConfiguration:    true,
	CategorySecurity:         true,
	CategoryCompliance:       true,
	CategorySystem:           true,
}

func (c AuditCategory) Valid() bool {
	return categories[c]
}

// AuditRecord is an immutable audit trail entry. Records are created by
// ingestion, read by retrieval and reporting, and removed only by the
// retention engine - never mutated in place.
type AuditRecord struct {
	ID            string        `gorm:"type:char(36);primaryKey" json:"id"`
	TenantID      string        `gorm:"type:char(36);index;not null" json:"tenantId"`
	ActorID       string        `gorm:"type:char(36);index;not null" json:"actorId"`
	ActorEmail    string        `gorm:"size:100" json:"actorEmail,omitempty"`
	ActorName     string        `gorm:"size:100" json:"actorName,omitempty"`
	Action        string        `gorm:"size:100;index;not null" json:"action"`
	ResourceType  string        `gorm:"size:50;index:idx_record_resource;not null" json:"resourceType"`
	ResourceID    string        `gorm:"type:char(36);index:idx_record_resource;not null" json:"resourceId"`
	ResourceName  string        `gorm:"size:255" json:"resourceName,omitempty"`
	Metadata      string        `gorm:"type:json" json:"metadata,omitempty"`
	PreviousState string        `gorm:"type:json" json:"previousState,omitempty"`
	NewState      string        `gorm:"type:json" json:"newState,omitempty"`
	IPAddress     string        `gorm:"size:50" json:"ipAddress,omitempty"`
	UserAgent     string        `gorm:"size:255" json:"userAgent,omitempty"`
	SessionID     string        `gorm:"size:50" json:"sessionId,omitempty"`
	Severity      AuditSeverity `gorm:"size:20;not null" json:"severity"`
	Category      AuditCategory `gorm:"size:20;not null" json:"category"`
	CreatedAt     time.Time     `gorm:"index;not null" json:"createdAt"`
}

func (AuditRecord) TableName() string {
	return "audit_records"
}
