package auditlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quckapp/audit/model"
	"gorm.io/gorm"
)

type fakeRecordRepo struct {
	records   []*model.AuditRecord
	createErr error
}

func (r *fakeRecordRepo) Create(ctx context.Context, rec *model.AuditRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *fakeRecordRepo) FirstByID(ctx context.Context, id string) (*model.AuditRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRecordRepo) FindByTenant(ctx context.Context, tenantID string, q ListQuery, offset, limit int) ([]*model.AuditRecord, int64, error) {
	var found []*model.AuditRecord
	for _, rec := range r.records {
		if rec.TenantID == tenantID {
			found = append(found, rec)
		}
	}
	return found, int64(len(found)), nil
}

func (r *fakeRecordRepo) FindByTenantAndPeriod(ctx context.Context, tenantID string, start, end time.Time) ([]*model.AuditRecord, error) {
	var found []*model.AuditRecord
	for _, rec := range r.records {
		if rec.TenantID == tenantID {
			found = append(found, rec)
		}
	}
	return found, nil
}

func (r *fakeRecordRepo) FindByTenantAndCategoryAndPeriod(ctx context.Context, tenantID string, category model.AuditCategory, start, end time.Time) ([]*model.AuditRecord, error) {
	return nil, nil
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

type fakeArchivedRepo struct {
	records []*model.ArchivedAuditRecord
}

func (r *fakeArchivedRepo) SaveAll(ctx context.Context, records []*model.ArchivedAuditRecord) (int64, error) {
	r.records = append(r.records, records...)
	return int64(len(records)), nil
}

func (r *fakeArchivedRepo) CountByPolicy(ctx context.Context, policyID string) (int64, error) {
	return int64(len(r.records)), nil
}

func (r *fakeArchivedRepo) FindByTenant(ctx context.Context, tenantID string, offset, limit int) ([]*model.ArchivedAuditRecord, int64, error) {
	return r.records, int64(len(r.records)), nil
}

type fakeIndex struct {
	indexed []string
	err     error
}

func (i *fakeIndex) IndexRecord(ctx context.Context, rec *model.AuditRecord) error {
	if i.err != nil {
		return i.err
	}
	i.indexed = append(i.indexed, rec.ID)
	return nil
}

func (i *fakeIndex) DeleteAllByID(ctx context.Context, ids []string) error { return i.err }

func validCreateInput() CreateRecordInput {
	return CreateRecordInput{
		TenantID:     "tenant-1",
		ActorID:      "user-1",
		Action:       "FILE_READ",
		ResourceType: "FILE",
		ResourceID:   "file-1",
	}
}

func TestCreateRecordValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateRecordInput)
		wantErr error
	}{
		{"missing tenant", func(in *CreateRecordInput) { in.TenantID = "" }, ErrTenantIDEmpty},
		{"missing actor", func(in *CreateRecordInput) { in.ActorID = "" }, ErrActorIDEmpty},
		{"missing action", func(in *CreateRecordInput) { in.Action = "" }, ErrActionEmpty},
		{"missing resource type", func(in *CreateRecordInput) { in.ResourceType = "" }, ErrResourceTypeEmpty},
		{"missing resource id", func(in *CreateRecordInput) { in.ResourceID = "" }, ErrResourceIDEmpty},
		{"bad severity", func(in *CreateRecordInput) { in.Severity = "SEVERE" }, ErrInvalidSeverity},
		{"bad category", func(in *CreateRecordInput) { in.Category = "MISC" }, ErrInvalidCategory},
	}
	svc := NewService(&fakeRecordRepo{}, &fakeArchivedRepo{}, &fakeIndex{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			tt.mutate(&in)
			if _, err := svc.CreateRecord(context.Background(), in); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateRecordDefaultsClassification(t *testing.T) {
	repo := &fakeRecordRepo{}
	index := &fakeIndex{}
	svc := NewService(repo, &fakeArchivedRepo{}, index)

	rec, err := svc.CreateRecord(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}
	if rec.Severity != model.SeverityLow {
		t.Errorf("Severity = %s, want LOW", rec.Severity)
	}
	if rec.Category != model.CategorySystem {
		t.Errorf("Category = %s, want SYSTEM", rec.Category)
	}
	if rec.ID == "" || rec.CreatedAt.IsZero() {
		t.Error("record identity not assigned")
	}
	if len(index.indexed) != 1 || index.indexed[0] != rec.ID {
		t.Errorf("indexed ids = %v", index.indexed)
	}
}

func TestCreateRecordKeepsExplicitClassification(t *testing.T) {
	svc := NewService(&fakeRecordRepo{}, &fakeArchivedRepo{}, &fakeIndex{})

	in := validCreateInput()
	in.Severity = model.SeverityCritical
	in.Category = model.CategorySecurity

	rec, err := svc.CreateRecord(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}
	if rec.Severity != model.SeverityCritical || rec.Category != model.CategorySecurity {
		t.Errorf("classification = (%s, %s)", rec.Category, rec.Severity)
	}
}

func TestCreateRecordIndexFailureIsNonFatal(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := NewService(repo, &fakeArchivedRepo{}, &fakeIndex{err: errors.New("redis down")})

	rec, err := svc.CreateRecord(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}
	if len(repo.records) != 1 || repo.records[0].ID != rec.ID {
		t.Error("record not persisted despite index failure")
	}
}

func TestCreateRecordStoreFailurePropagates(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewService(&fakeRecordRepo{createErr: storeErr}, &fakeArchivedRepo{}, &fakeIndex{})

	if _, err := svc.CreateRecord(context.Background(), validCreateInput()); !errors.Is(err, storeErr) {
		t.Errorf("CreateRecord() error = %v, want %v", err, storeErr)
	}
}

func TestGetRecordNotFound(t *testing.T) {
	svc := NewService(&fakeRecordRepo{}, &fakeArchivedRepo{}, &fakeIndex{})
	if _, err := svc.GetRecord(context.Background(), "missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("GetRecord() error = %v, want %v", err, ErrRecordNotFound)
	}
}

func TestGetStatistics(t *testing.T) {
	repo := &fakeRecordRepo{records: []*model.AuditRecord{
		{ID: "1", TenantID: "tenant-1", ActorID: "user-1", Action: "LOGIN_SUCCESS",
			Category: model.CategoryAuthentication, Severity: model.SeverityLow},
		{ID: "2", TenantID: "tenant-1", ActorID: "user-1", Action: "FILE_READ",
			Category: model.CategoryDataAccess, Severity: model.SeverityLow},
		{ID: "3", TenantID: "tenant-1", ActorID: "user-2", Action: "FILE_READ",
			Category: model.CategoryDataAccess, Severity: model.SeverityHigh},
	}}
	svc := NewService(repo, &fakeArchivedRepo{}, &fakeIndex{})

	stats, err := svc.GetStatistics(context.Background(), "tenant-1", time.Now().AddDate(0, 0, -30), time.Now())
	if err != nil {
		t.Fatalf("GetStatistics() error = %v", err)
	}
	if stats.TotalEvents != 3 {
		t.Errorf("TotalEvents = %d, want 3", stats.TotalEvents)
	}
	if stats.UniqueActors != 2 {
		t.Errorf("UniqueActors = %d, want 2", stats.UniqueActors)
	}
	if stats.EventsByCategory["DATA_ACCESS"] != 2 {
		t.Errorf("EventsByCategory = %v", stats.EventsByCategory)
	}
	if stats.EventsBySeverity["HIGH"] != 1 {
		t.Errorf("EventsBySeverity = %v", stats.EventsBySeverity)
	}
	if stats.EventsByAction["FILE_READ"] != 2 {
		t.Errorf("EventsByAction = %v", stats.EventsByAction)
	}
}
