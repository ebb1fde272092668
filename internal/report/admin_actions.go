package report

import (
	"context"
	"strings"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/model"
)

// adminActionsGenerator reports on administrative activity: configuration
// and authorization changes plus explicitly admin-flagged actions.
type adminActionsGenerator struct {
	recordRepo auditlog.AuditRecordRepository
}

func NewAdminActionsGenerator(recordRepo auditlog.AuditRecordRepository) Generator {
	return &adminActionsGenerator{recordRepo: recordRepo}
}

func (g *adminActionsGenerator) Type() model.ReportType {
	return model.ReportTypeAdminActions
}

func (g *adminActionsGenerator) Data(ctx context.Context, rctx Context) ([]*model.AuditRecord, error) {
	records, err := g.recordRepo.FindByTenantAndPeriod(ctx, rctx.TenantID, rctx.PeriodStart, rctx.PeriodEnd)
	if err != nil {
		return nil, err
	}
	var admin []*model.AuditRecord
	for _, rec := range records {
		if isAdminAction(rec) {
			admin = append(admin, rec)
		}
	}
	return admin, nil
}

func isAdminAction(rec *model.AuditRecord) bool {
	return rec.Category == model.CategoryConfiguration ||
		rec.Category == model.CategoryAuthorization ||
		strings.HasPrefix(rec.Action, "ADMIN_") ||
		strings.Contains(rec.Action, "ROLE") ||
		strings.Contains(rec.Action, "PERMISSION")
}

func (g *adminActionsGenerator) Summarize(rctx Context, records []*model.AuditRecord) map[string]any {
	summary := baseSummary(g.Type(), rctx, len(records))

	admins := uniqueActorEmails(records)
	summary["uniqueAdmins"] = len(admins)
	summary["adminEmails"] = admins
	summary["actionsByAdmin"] = countByActorEmail(records)
	summary["eventsByAction"] = countByAction(records)
	summary["configurationChanges"] = countCategory(records, model.CategoryConfiguration)

	return summary
}
