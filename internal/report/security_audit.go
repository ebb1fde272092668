package report

import (
	"context"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/model"
)

// securityAuditGenerator reports on SECURITY events with a severity
// breakdown highlighting critical and high findings.
type securityAuditGenerator struct {
	recordRepo auditlog.AuditRecordRepository
}

func NewSecurityAuditGenerator(recordRepo auditlog.AuditRecordRepository) Generator {
	return &securityAuditGenerator{recordRepo: recordRepo}
}

func (g *securityAuditGenerator) Type() model.ReportType {
	return model.ReportTypeSecurityAudit
}

func (g *securityAuditGenerator) Data(ctx context.Context, rctx Context) ([]*model.AuditRecord, error) {
	return g.recordRepo.FindByTenantAndCategoryAndPeriod(ctx, rctx.TenantID,
		model.CategorySecurity, rctx.PeriodStart, rctx.PeriodEnd)
}

func (g *securityAuditGenerator) Summarize(rctx Context, records []*model.AuditRecord) map[string]any {
	summary := baseSummary(g.Type(), rctx, len(records))
	summary["eventsBySeverity"] = countBySeverity(records)
	summary["criticalEvents"] = countSeverity(records, model.SeverityCritical)
	summary["highSeverityEvents"] = countSeverity(records, model.SeverityHigh)
	summary["eventsByAction"] = countByAction(records)
	return summary
}
