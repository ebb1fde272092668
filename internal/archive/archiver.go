package archive

import (
	"context"
	"log/slog"
	"time"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/model"
)

// Archiver copies audit records into the archive space before retention
// deletes them. The caller supplies the filter it will later delete with,
// so archival and deletion always select the same records.
type Archiver struct {
	recordRepo   auditlog.AuditRecordRepository
	archivedRepo auditlog.ArchivedRecordRepository
}

// Archive copies every record matching the filter, stamping the archival
// time and originating policy. Records already archived under the same id
// are skipped, so a repeated invocation cannot duplicate archive entries.
// Returns 0 with no side effects when nothing matches.
func (a *Archiver) Archive(ctx context.Context, policy *model.RetentionPolicy, filter model.RecordFilter) (int64, error) {
	records, err := a.recordRepo.FindMatching(ctx, filter)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	archivedAt := time.Now().UTC()
	archived := make([]*model.ArchivedAuditRecord, 0, len(records))
	for _, rec := range records {
		archived = append(archived, model.NewArchivedRecord(rec, policy.ID, archivedAt))
	}

	count, err := a.archivedRepo.SaveAll(ctx, archived)
	if err != nil {
		return 0, err
	}
	slog.Info("Archived audit records", "count", count, "policy", policy.Name)
	return count, nil
}

// CountByPolicy reports how many records a policy has archived in total.
func (a *Archiver) CountByPolicy(ctx context.Context, policyID string) (int64, error) {
	return a.archivedRepo.CountByPolicy(ctx, policyID)
}

func NewArchiver(recordRepo auditlog.AuditRecordRepository, archivedRepo auditlog.ArchivedRecordRepository) *Archiver {
	return &Archiver{
		recordRepo:   recordRepo,
		archivedRepo: archivedRepo,
	}
}
