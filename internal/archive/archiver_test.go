package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/model"
	"gorm.io/gorm"
)

type fakeRecordRepo struct {
	records []*model.AuditRecord
	findErr error
}

func (r *fakeRecordRepo) Create(ctx context.Context, rec *model.AuditRecord) error { return nil }

func (r *fakeRecordRepo) FirstByID(ctx context.Context, id string) (*model.AuditRecord, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRecordRepo) FindByTenant(ctx context.Context, tenantID string, q auditlog.ListQuery, offset, limit int) ([]*model.AuditRecord, int64, error) {
	return nil, 0, nil
}

func (r *fakeRecordRepo) FindByTenantAndPeriod(ctx context.Context, tenantID string, start, end time.Time) ([]*model.AuditRecord, error) {
	return nil, nil
}

func (r *fakeRecordRepo) FindByTenantAndCategoryAndPeriod(ctx context.Context, tenantID string, category model.AuditCategory, start, end time.Time) ([]*model.AuditRecord, error) {
	return nil, nil
}

func (r *fakeRecordRepo) FindMatching(ctx context.Context, filter model.RecordFilter) ([]*model.AuditRecord, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var matched []*model.AuditRecord
	for _, rec := range r.records {
		if filter.Matches(rec) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (r *fakeRecordRepo) FindIDsMatching(ctx context.Context, filter model.RecordFilter) ([]string, error) {
	return nil, nil
}

func (r *fakeRecordRepo) DeleteMatching(ctx context.Context, filter model.RecordFilter) (int64, error) {
	return 0, nil
}

type fakeArchivedRepo struct {
	saved   []*model.ArchivedAuditRecord
	saveErr error
}

func (r *fakeArchivedRepo) SaveAll(ctx context.Context, records []*model.ArchivedAuditRecord) (int64, error) {
	if r.saveErr != nil {
		return 0, r.saveErr
	}
	var written int64
	for _, rec := range records {
		exists := false
		for _, prev := range r.saved {
			if prev.ID == rec.ID {
				exists = true
				break
			}
		}
		if !exists {
			r.saved = append(r.saved, rec)
			written++
		}
	}
	return written, nil
}

func (r *fakeArchivedRepo) CountByPolicy(ctx context.Context, policyID string) (int64, error) {
	var count int64
	for _, rec := range r.saved {
		if rec.ArchivedByPolicyID == policyID {
			count++
		}
	}
	return count, nil
}

func (r *fakeArchivedRepo) FindByTenant(ctx context.Context, tenantID string, offset, limit int) ([]*model.ArchivedAuditRecord, int64, error) {
	return nil, 0, nil
}

func agedRecord(days int) *model.AuditRecord {
	return &model.AuditRecord{
		ID:        model.NewID(),
		TenantID:  "tenant-1",
		Action:    "LOGIN_SUCCESS",
		Severity:  model.SeverityLow,
		Category:  model.CategoryAuthentication,
		CreatedAt: time.Now().UTC().AddDate(0, 0, -days),
	}
}

func TestArchiveCopiesMatchingRecords(t *testing.T) {
	recordRepo := &fakeRecordRepo{records: []*model.AuditRecord{
		agedRecord(100),
		agedRecord(100),
		agedRecord(5),
	}}
	archivedRepo := &fakeArchivedRepo{}
	archiver := NewArchiver(recordRepo, archivedRepo)

	policy := &model.RetentionPolicy{ID: model.NewID(), TenantID: "tenant-1", Name: "p", RetentionDays: 90}
	filter := policy.Filter(time.Now())

	count, err := archiver.Archive(context.Background(), policy, filter)
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if count != 2 {
		t.Errorf("archived count = %d, want 2", count)
	}
	for _, rec := range archivedRepo.saved {
		if rec.ArchivedByPolicyID != policy.ID {
			t.Errorf("archivedByPolicyId = %s, want %s", rec.ArchivedByPolicyID, policy.ID)
		}
		if rec.ArchivedAt.IsZero() {
			t.Error("archivedAt not stamped")
		}
	}
}

func TestArchiveNothingMatches(t *testing.T) {
	recordRepo := &fakeRecordRepo{records: []*model.AuditRecord{agedRecord(5)}}
	archivedRepo := &fakeArchivedRepo{}
	archiver := NewArchiver(recordRepo, archivedRepo)

	policy := &model.RetentionPolicy{ID: model.NewID(), TenantID: "tenant-1", Name: "p", RetentionDays: 90}
	count, err := archiver.Archive(context.Background(), policy, policy.Filter(time.Now()))
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}
	if count != 0 {
		t.Errorf("archived count = %d, want 0", count)
	}
	if len(archivedRepo.saved) != 0 {
		t.Errorf("saved %d records, want 0 side effects", len(archivedRepo.saved))
	}
}

func TestArchiveIsIdempotent(t *testing.T) {
	recordRepo := &fakeRecordRepo{records: []*model.AuditRecord{agedRecord(100)}}
	archivedRepo := &fakeArchivedRepo{}
	archiver := NewArchiver(recordRepo, archivedRepo)

	policy := &model.RetentionPolicy{ID: model.NewID(), TenantID: "tenant-1", Name: "p", RetentionDays: 90}
	filter := policy.Filter(time.Now())

	if _, err := archiver.Archive(context.Background(), policy, filter); err != nil {
		t.Fatalf("first Archive() error = %v", err)
	}
	count, err := archiver.Archive(context.Background(), policy, filter)
	if err != nil {
		t.Fatalf("second Archive() error = %v", err)
	}
	if count != 0 {
		t.Errorf("second archive wrote %d rows, want 0", count)
	}
	if len(archivedRepo.saved) != 1 {
		t.Errorf("archive holds %d copies, want 1", len(archivedRepo.saved))
	}
}

func TestArchivePropagatesStoreErrors(t *testing.T) {
	recordRepo := &fakeRecordRepo{records: []*model.AuditRecord{agedRecord(100)}}
	archivedRepo := &fakeArchivedRepo{saveErr: errors.New("archive store down")}
	archiver := NewArchiver(recordRepo, archivedRepo)

	policy := &model.RetentionPolicy{ID: model.NewID(), TenantID: "tenant-1", Name: "p", RetentionDays: 90}
	if _, err := archiver.Archive(context.Background(), policy, policy.Filter(time.Now())); err == nil {
		t.Error("Archive() error = nil, want store error propagated")
	}
}
