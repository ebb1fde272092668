package auditlog

import (
	"context"

	"github.com/quckapp/audit/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArchivedRecordRepository interface {
	SaveAll(ctx context.Context, records []*model.ArchivedAuditRecord) (int64, error)
	CountByPolicy(ctx context.Context, policyID string) (int64, error)
	FindByTenant(ctx context.Context, tenantID string, offset, limit int) ([]*model.ArchivedAuditRecord, int64, error)
}

type archivedRecordRepository struct {
	db *gorm.DB
}

// SaveAll inserts archive copies, skipping rows whose original id was
// already archived. Returns the number of rows actually written.
func (r *archivedRecordRepository) SaveAll(ctx context.Context, records []*model.ArchivedAuditRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	ret := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&records)
	return ret.RowsAffected, ret.Error
}

func (r *archivedRecordRepository) CountByPolicy(ctx context.Context, policyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ArchivedAuditRecord{}).
		Where("archived_by_policy_id = ?", policyID).
		Count(&count).Error
	return count, err
}

func (r *archivedRecordRepository) FindByTenant(ctx context.Context, tenantID string, offset, limit int) ([]*model.ArchivedAuditRecord, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.ArchivedAuditRecord{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []*model.ArchivedAuditRecord
	err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&records).Error
	return records, total, err
}

func NewArchivedRecordRepository(db *gorm.DB) ArchivedRecordRepository {
	return &archivedRecordRepository{db}
}
