package report

import (
	"context"
	"strings"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/model"
)

// accessLogGenerator reports on DATA_ACCESS events, splitting the workload
// into read and write operations per resource type.
type accessLogGenerator struct {
	recordRepo auditlog.AuditRecordRepository
}

func NewAccessLogGenerator(recordRepo auditlog.AuditRecordRepository) Generator {
	return &accessLogGenerator{recordRepo: recordRepo}
}

func (g *accessLogGenerator) Type() model.ReportType {
	return model.ReportTypeAccessLog
}

func (g *accessLogGenerator) Data(ctx context.Context, rctx Context) ([]*model.AuditRecord, error) {
	return g.recordRepo.FindByTenantAndCategoryAndPeriod(ctx, rctx.TenantID,
		model.CategoryDataAccess, rctx.PeriodStart, rctx.PeriodEnd)
}

func (g *accessLogGenerator) Summarize(rctx Context, records []*model.AuditRecord) map[string]any {
	summary := baseSummary(g.Type(), rctx, len(records))
	summary["uniqueUsers"] = len(uniqueActorEmails(records))

	byResourceType := make(map[string]int64)
	var reads, writes int64
	for _, rec := range records {
		byResourceType[rec.ResourceType]++
		if isReadAction(rec.Action) {
			reads++
		}
		if isWriteAction(rec.Action) {
			writes++
		}
	}
	summary["accessByResourceType"] = byResourceType
	summary["eventsByAction"] = countByAction(records)
	summary["readOperations"] = reads
	summary["writeOperations"] = writes

	return summary
}

func isReadAction(action string) bool {
	return strings.Contains(action, "READ") ||
		strings.Contains(action, "VIEW") ||
		strings.Contains(action, "GET")
}

func isWriteAction(action string) bool {
	return strings.Contains(action, "WRITE") ||
		strings.Contains(action, "CREATE") ||
		strings.Contains(action, "UPDATE") ||
		strings.Contains(action, "DELETE")
}
