package report

import (
	"context"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/model"
)

// loginHistoryGenerator reports on authentication events: login successes,
// failures and logouts, broken down per user.
type loginHistoryGenerator struct {
	recordRepo auditlog.AuditRecordRepository
}

func NewLoginHistoryGenerator(recordRepo auditlog.AuditRecordRepository) Generator {
	return &loginHistoryGenerator{recordRepo: recordRepo}
}

func (g *loginHistoryGenerator) Type() model.ReportType {
	return model.ReportTypeLoginHistory
}

func (g *loginHistoryGenerator) Data(ctx context.Context, rctx Context) ([]*model.AuditRecord, error) {
	return g.recordRepo.FindByTenantAndCategoryAndPeriod(ctx, rctx.TenantID,
		model.CategoryAuthentication, rctx.PeriodStart, rctx.PeriodEnd)
}

func (g *loginHistoryGenerator) Summarize(rctx Context, records []*model.AuditRecord) map[string]any {
	summary := baseSummary(g.Type(), rctx, len(records))

	var successful, failed, logouts int64
	for _, rec := range records {
		switch rec.Action {
		case "LOGIN_SUCCESS":
			successful++
		case "LOGIN_FAILED":
			failed++
		case "LOGOUT":
			logouts++
		}
	}
	summary["successfulLogins"] = successful
	summary["failedLogins"] = failed
	summary["logouts"] = logouts
	summary["loginsByUser"] = countByActorEmail(records)

	return summary
}
