package report

import (
	"context"

	"github.com/quckapp/audit/model"
	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, report *model.ComplianceReport) error
	FirstByID(ctx context.Context, id string) (*model.ComplianceReport, error)
	FindByTenant(ctx context.Context, tenantID string, offset, limit int) ([]*model.ComplianceReport, int64, error)
	Save(ctx context.Context, report *model.ComplianceReport) error
}

type reportRepository struct {
	db *gorm.DB
}

func (r *reportRepository) Create(ctx context.Context, report *model.ComplianceReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FirstByID(ctx context.Context, id string) (*model.ComplianceReport, error) {
	var report model.ComplianceReport
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByTenant(ctx context.Context, tenantID string, offset, limit int) ([]*model.ComplianceReport, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.ComplianceReport{}).Where("tenant_id = ?", tenantID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []*model.ComplianceReport
	err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reports).Error
	return reports, total, err
}

func (r *reportRepository) Save(ctx context.Context, report *model.ComplianceReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db}
}
