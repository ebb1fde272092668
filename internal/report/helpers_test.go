package report

import (
	"context"
	"time"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/internal/export"
	"github.com/quckapp/audit/model"
	"gorm.io/gorm"
)

// fakeRecordRepo serves a fixed record set for generator tests. Period
// queries return everything; the generators under test do the filtering.
type fakeRecordRepo struct {
	records []*model.AuditRecord
	err     error
}

func (r *fakeRecordRepo) Create(ctx context.Context, rec *model.AuditRecord) error { return nil }

func (r *fakeRecordRepo) FirstByID(ctx context.Context, id string) (*model.AuditRecord, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRecordRepo) FindByTenant(ctx context.Context, tenantID string, q auditlog.ListQuery, offset, limit int) ([]*model.AuditRecord, int64, error) {
	return nil, 0, nil
}

func (r *fakeRecordRepo) FindByTenantAndPeriod(ctx context.Context, tenantID string, start, end time.Time) ([]*model.AuditRecord, error) {
	return r.records, r.err
}

func (r *fakeRecordRepo) FindByTenantAndCategoryAndPeriod(ctx context.Context, tenantID string, category model.AuditCategory, start, end time.Time) ([]*model.AuditRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	var matched []*model.AuditRecord
	for _, rec := range r.records {
		if rec.Category == category {
			matched = append(matched, rec)
		}
	}
	return matched, r.err
}

func (r *fakeRecordRepo) FindMatching(ctx context.Context, filter model.RecordFilter) ([]*model.AuditRecord, error) {
	return nil, nil
}

func (r *fakeRecordRepo) FindIDsMatching(ctx context.Context, filter model.RecordFilter) ([]string, error) {
	return nil, nil
}

func (r *fakeRecordRepo) DeleteMatching(ctx context.Context, filter model.RecordFilter) (int64, error) {
	return 0, nil
}

type fakeReportRepo struct {
	reports map[string]*model.ComplianceReport
	saveErr error
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*model.ComplianceReport)}
}

func (r *fakeReportRepo) Create(ctx context.Context, report *model.ComplianceReport) error {
	copied := *report
	r.reports[report.ID] = &copied
	return nil
}

func (r *fakeReportRepo) FirstByID(ctx context.Context, id string) (*model.ComplianceReport, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *report
	return &copied, nil
}

func (r *fakeReportRepo) FindByTenant(ctx context.Context, tenantID string, offset, limit int) ([]*model.ComplianceReport, int64, error) {
	var found []*model.ComplianceReport
	for _, report := range r.reports {
		if report.TenantID == tenantID {
			found = append(found, report)
		}
	}
	return found, int64(len(found)), nil
}

func (r *fakeReportRepo) Save(ctx context.Context, report *model.ComplianceReport) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *report
	r.reports[report.ID] = &copied
	return nil
}

type fakeExporter struct {
	result export.Result
	err    error
	calls  int
}

func (e *fakeExporter) Export(records []*model.AuditRecord, reportName, reportID string) (export.Result, error) {
	e.calls++
	return e.result, e.err
}

func (e *fakeExporter) Resolve(reportID string) (string, error) {
	return e.result.FilePath, nil
}

func testContext() Context {
	return Context{
		TenantID:    "tenant-1",
		PeriodStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
	}
}

func authRecord(action, email string) *model.AuditRecord {
	return &model.AuditRecord{
		ID:         model.NewID(),
		TenantID:   "tenant-1",
		ActorID:    model.NewID(),
		ActorEmail: email,
		Action:     action,
		Category:   model.CategoryAuthentication,
		Severity:   model.SeverityLow,
	}
}
