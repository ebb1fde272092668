package report

import (
	"context"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/model"
)

// complianceSummaryGenerator produces the tenant-wide compliance overview
// including the weighted compliance score.
type complianceSummaryGenerator struct {
	recordRepo auditlog.AuditRecordRepository
}

func NewComplianceSummaryGenerator(recordRepo auditlog.AuditRecordRepository) Generator {
	return &complianceSummaryGenerator{recordRepo: recordRepo}
}

func (g *complianceSummaryGenerator) Type() model.ReportType {
	return model.ReportTypeComplianceSummary
}

func (g *complianceSummaryGenerator) Data(ctx context.Context, rctx Context) ([]*model.AuditRecord, error) {
	return g.recordRepo.FindByTenantAndPeriod(ctx, rctx.TenantID, rctx.PeriodStart, rctx.PeriodEnd)
}

func (g *complianceSummaryGenerator) Summarize(rctx Context, records []*model.AuditRecord) map[string]any {
	summary := baseSummary(g.Type(), rctx, len(records))
	summary["eventsByCategory"] = countByCategory(records)
	summary["eventsBySeverity"] = countBySeverity(records)
	summary["eventsByAction"] = countByAction(records)
	summary["uniqueUsers"] = len(uniqueActorEmails(records))

	critical := countSeverity(records, model.SeverityCritical)
	high := countSeverity(records, model.SeverityHigh)
	summary["criticalEvents"] = critical
	summary["highSeverityEvents"] = high
	summary["securityEvents"] = countCategory(records, model.CategorySecurity)
	summary["authenticationEvents"] = countCategory(records, model.CategoryAuthentication)
	summary["complianceScore"] = complianceScore(len(records), critical, high)

	return summary
}

// complianceScore starts at 100 and deducts 5 points per critical event
// (capped at 30) and 2 points per high severity event (capped at 20),
// never dropping below 0. An empty period scores a perfect 100.
func complianceScore(total int, critical, high int64) float64 {
	if total == 0 {
		return 100.0
	}
	score := 100.0
	score -= min(float64(critical)*5, 30)
	score -= min(float64(high)*2, 20)
	return max(score, 0)
}
