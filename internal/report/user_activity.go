package report

import (
	"context"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/model"
)

// userActivityGenerator reports on the full event stream of a tenant,
// grouped per user, action and category.
type userActivityGenerator struct {
	recordRepo auditlog.AuditRecordRepository
}

func NewUserActivityGenerator(recordRepo auditlog.AuditRecordRepository) Generator {
	return &userActivityGenerator{recordRepo: recordRepo}
}

func (g *userActivityGenerator) Type() model.ReportType {
	return model.ReportTypeUserActivity
}

func (g *userActivityGenerator) Data(ctx context.Context, rctx Context) ([]*model.AuditRecord, error) {
	return g.recordRepo.FindByTenantAndPeriod(ctx, rctx.TenantID, rctx.PeriodStart, rctx.PeriodEnd)
}

func (g *userActivityGenerator) Summarize(rctx Context, records []*model.AuditRecord) map[string]any {
	summary := baseSummary(g.Type(), rctx, len(records))

	// Unique users are counted by actor id, not email: events without an
	// email still represent a distinct actor.
	actors := make(map[string]bool)
	for _, rec := range records {
		actors[rec.ActorID] = true
	}
	summary["uniqueUsers"] = len(actors)
	summary["activityByUser"] = countByActorEmail(records)
	summary["eventsByAction"] = countByAction(records)
	summary["eventsByCategory"] = countByCategory(records)

	return summary
}
