package auditlog

import (
	"context"
	"time"

	"github.com/quckapp/audit/model"
	"gorm.io/gorm"
)

// ListQuery narrows a tenant-scoped record listing. Zero values mean
// "no constraint".
type ListQuery struct {
	ActorID      string
	Action       string
	ResourceType string
	ResourceID   string
	Category     model.AuditCategory
	Start        time.Time
	End          time.Time
}

type AuditRecordRepository interface {
	Create(ctx context.Context, rec *model.AuditRecord) error
	FirstByID(ctx context.Context, id string) (*model.AuditRecord, error)
	FindByTenant(ctx context.Context, tenantID string, q ListQuery, offset, limit int) ([]*model.AuditRecord, int64, error)
	FindByTenantAndPeriod(ctx context.Context, tenantID string, start, end time.Time) ([]*model.AuditRecord, error)
	FindByTenantAndCategoryAndPeriod(ctx context.Context, tenantID string, category model.AuditCategory, start, end time.Time) ([]*model.AuditRecord, error)
	FindMatching(ctx context.Context, filter model.RecordFilter) ([]*model.AuditRecord, error)
	FindIDsMatching(ctx context.Context, filter model.RecordFilter) ([]string, error)
	DeleteMatching(ctx context.Context, filter model.RecordFilter) (int64, error)
}

type auditRecordRepository struct {
	db *gorm.DB
}

func (r *auditRecordRepository) Create(ctx context.Context, rec *model.AuditRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *auditRecordRepository) FirstByID(ctx context.Context, id string) (*model.AuditRecord, error) {
	var rec model.AuditRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *auditRecordRepository) FindByTenant(ctx context.Context, tenantID string, q ListQuery, offset, limit int) ([]*model.AuditRecord, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.AuditRecord{}).Where("tenant_id = ?", tenantID)
	if q.ActorID != "" {
		tx = tx.Where("actor_id = ?", q.ActorID)
	}
	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.ResourceType != "" {
		tx = tx.Where("resource_type = ?", q.ResourceType)
	}
	if q.ResourceID != "" {
		tx = tx.Where("resource_id = ?", q.ResourceID)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if !q.Start.IsZero() && !q.End.IsZero() {
		tx = tx.Where("created_at BETWEEN ? AND ?", q.Start, q.End)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []*model.AuditRecord
	err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&records).Error
	return records, total, err
}

func (r *auditRecordRepository) FindByTenantAndPeriod(ctx context.Context, tenantID string, start, end time.Time) ([]*model.AuditRecord, error) {
	var records []*model.AuditRecord
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND created_at BETWEEN ? AND ?", tenantID, start, end).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *auditRecordRepository) FindByTenantAndCategoryAndPeriod(ctx context.Context, tenantID string, category model.AuditCategory, start, end time.Time) ([]*model.AuditRecord, error) {
	var records []*model.AuditRecord
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND category = ? AND created_at BETWEEN ? AND ?", tenantID, category, start, end).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *auditRecordRepository) FindMatching(ctx context.Context, filter model.RecordFilter) ([]*model.AuditRecord, error) {
	var records []*model.AuditRecord
	err := r.db.WithContext(ctx).Scopes(filter.Scope()).Find(&records).Error
	return records, err
}

func (r *auditRecordRepository) FindIDsMatching(ctx context.Context, filter model.RecordFilter) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.AuditRecord{}).Scopes(filter.Scope()).Pluck("id", &ids).Error
	return ids, err
}

func (r *auditRecordRepository) DeleteMatching(ctx context.Context, filter model.RecordFilter) (int64, error) {
	ret := r.db.WithContext(ctx).Scopes(filter.Scope()).Delete(&model.AuditRecord{})
	return ret.RowsAffected, ret.Error
}

func NewAuditRecordRepository(db *gorm.DB) AuditRecordRepository {
	return &auditRecordRepository{db}
}
