package report

import (
	"context"
	"strings"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/model"
)

// dataExportGenerator reports on data leaving the platform: export,
// download and bulk operations.
type dataExportGenerator struct {
	recordRepo auditlog.AuditRecordRepository
}

func NewDataExportGenerator(recordRepo auditlog.AuditRecordRepository) Generator {
	return &dataExportGenerator{recordRepo: recordRepo}
}

func (g *dataExportGenerator) Type() model.ReportType {
	return model.ReportTypeDataExport
}

func (g *dataExportGenerator) Data(ctx context.Context, rctx Context) ([]*model.AuditRecord, error) {
	records, err := g.recordRepo.FindByTenantAndPeriod(ctx, rctx.TenantID, rctx.PeriodStart, rctx.PeriodEnd)
	if err != nil {
		return nil, err
	}
	var exports []*model.AuditRecord
	for _, rec := range records {
		if isExportAction(rec.Action) {
			exports = append(exports, rec)
		}
	}
	return exports, nil
}

func isExportAction(action string) bool {
	return strings.Contains(action, "EXPORT") ||
		strings.Contains(action, "DOWNLOAD") ||
		strings.Contains(action, "BULK_")
}

func (g *dataExportGenerator) Summarize(rctx Context, records []*model.AuditRecord) map[string]any {
	summary := baseSummary(g.Type(), rctx, len(records))
	// This report counts exports, not generic events.
	delete(summary, "totalEvents")
	summary["totalExports"] = len(records)

	exporters := uniqueActorEmails(records)
	summary["uniqueExporters"] = len(exporters)
	summary["exporterEmails"] = exporters
	summary["exportsByUser"] = countByActorEmail(records)

	byResourceType := make(map[string]int64)
	for _, rec := range records {
		byResourceType[rec.ResourceType]++
	}
	summary["exportsByResourceType"] = byResourceType

	return summary
}
