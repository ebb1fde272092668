package model

import "time"

type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "PENDING"
	ReportStatusProcessing ReportStatus = "PROCESSING"
	ReportStatusCompleted  ReportStatus = "COMPLETED"
	ReportStatusFailed     ReportStatus = "FAILED"
)

// Terminal reports whether the status permits no further transitions.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusCompleted || s == ReportStatusFailed
}

type ReportType string

const (
	ReportTypeLoginHistory      ReportType = "LOGIN_HISTORY"
	ReportTypeAccessLog         ReportType = "ACCESS_LOG"
	ReportTypeUserActivity      ReportType = "USER_ACTIVITY"
	ReportTypeSecurityAudit     ReportType = "SECURITY_AUDIT"
	ReportTypeAdminActions      ReportType = "ADMIN_ACTIONS"
	ReportTypeDataExport        ReportType = "DATA_EXPORT"
	ReportTypeComplianceSummary ReportType = "COMPLIANCE_SUMMARY"
)

// ComplianceReport is an asynchronous report job. It is created PENDING,
// moved through PROCESSING to COMPLETED or FAILED by the report service,
// and terminal once finished.
type ComplianceReport struct {
	ID           string       `gorm:"type:char(36);primaryKey" json:"id"`
	TenantID     string       `gorm:"type:char(36);index;not null" json:"tenantId"`
	Name         string       `gorm:"size:100;not null" json:"name"`
	ReportType   ReportType   `gorm:"size:30;not null" json:"reportType"`
	Status       ReportStatus `gorm:"size:20;not null" json:"status"`
	PeriodStart  time.Time    `gorm:"not null" json:"periodStart"`
	PeriodEnd    time.Time    `gorm:"not null" json:"periodEnd"`
	RequestedBy  string       `gorm:"type:char(36)" json:"requestedBy,omitempty"`
	Parameters   string       `gorm:"type:json" json:"parameters,omitempty"`
	Summary      string       `gorm:"type:json" json:"summary,omitempty"`
	FilePath     string       `gorm:"size:512" json:"-"`
	FileURL      string       `gorm:"size:512" json:"fileUrl,omitempty"`
	FileSize     int64        `json:"fileSize,omitempty"`
	ErrorMessage string       `gorm:"size:1000" json:"errorMessage,omitempty"`
	CreatedAt    time.Time    `gorm:"autoCreateTime;index" json:"createdAt"`
	CompletedAt  *time.Time   `json:"completedAt,omitempty"`
}

func (ComplianceReport) TableName() string {
	return "compliance_reports"
}
