package model

import "time"

// ArchivedAuditRecord is a value copy of an AuditRecord made by the archival
// unit before retention deletes the original. The record keeps its original
// ID so lookups remain stable across archival.
type ArchivedAuditRecord struct {
	ID                string        `gorm:"type:char(36);primaryKey" json:"id"`
	TenantID          string        `gorm:"type:char(36);index;not null" json:"tenantId"`
	ActorID           string        `gorm:"type:char(36);index;not null" json:"actorId"`
	ActorEmail        string        `gorm:"size:100" json:"actorEmail,omitempty"`
	ActorName         string        `gorm:"size:100" json:"actorName,omitempty"`
	Action            string        `gorm:"size:100;index;not null" json:"action"`
	ResourceType      string        `gorm:"size:50;index:idx_archived_resource;not null" json:"resourceType"`
	ResourceID        string        `gorm:"type:char(36);index:idx_archived_resource;not null" json:"resourceId"`
	ResourceName      string        `gorm:"size:255" json:"resourceName,omitempty"`
	Metadata          string        `gorm:"type:json" json:"metadata,omitempty"`
	PreviousState     string        `gorm:"type:json" json:"previousState,omitempty"`
	NewState          string        `gorm:"type:json" json:"newState,omitempty"`
	IPAddress         string        `gorm:"size:50" json:"ipAddress,omitempty"`
	UserAgent         string        `gorm:"size:255" json:"userAgent,omitempty"`
	SessionID         string        `gorm:"size:50" json:"sessionId,omitempty"`
	Severity          AuditSeverity `gorm:"size:20;not null" json:"severity"`
	Category          AuditCategory `gorm:"size:20;not null" json:"category"`
	CreatedAt         time.Time     `gorm:"index;not null" json:"createdAt"`
	ArchivedAt        time.Time     `gorm:"not null" json:"archivedAt"`
	ArchivedByPolicyID string       `gorm:"type:char(36);index;not null" json:"archivedByPolicyId"`
}

func (ArchivedAuditRecord) TableName() string {
	return "archived_audit_records"
}

// NewArchivedRecord copies every field of the record verbatim, including
// opaque metadata and state blobs, and stamps the archival context.
func NewArchivedRecord(rec *AuditRecord, policyID string, archivedAt time.Time) *ArchivedAuditRecord {
	return &ArchivedAuditRecord{
		ID:                 rec.ID,
		TenantID:           rec.TenantID,
		ActorID:            rec.ActorID,
		ActorEmail:         rec.ActorEmail,
		ActorName:          rec.ActorName,
		Action:             rec.Action,
		ResourceType:       rec.ResourceType,
		ResourceID:         rec.ResourceID,
		ResourceName:       rec.ResourceName,
		Metadata:           rec.Metadata,
		PreviousState:      rec.PreviousState,
		NewState:           rec.NewState,
		IPAddress:          rec.IPAddress,
		UserAgent:          rec.UserAgent,
		SessionID:          rec.SessionID,
		Severity:           rec.Severity,
		Category:           rec.Category,
		CreatedAt:          rec.CreatedAt,
		ArchivedAt:         archivedAt,
		ArchivedByPolicyID: policyID,
	}
}
