package retention

import (
	"context"

	"github.com/quckapp/audit/model"
	"gorm.io/gorm"
)

type PolicyRepository interface {
	Create(ctx context.Context, policy *model.RetentionPolicy) error
	FirstByID(ctx context.Context, id string) (*model.RetentionPolicy, error)
	FindByTenant(ctx context.Context, tenantID string) ([]*model.RetentionPolicy, error)
	FindEnabled(ctx context.Context) ([]*model.RetentionPolicy, error)
	ExistsByTenantAndName(ctx context.Context, tenantID, name string) (bool, error)
	Save(ctx context.Context, policy *model.RetentionPolicy) error
	Delete(ctx context.Context, id string) (int64, error)
}

type policyRepository struct {
	db *gorm.DB
}

func (r *policyRepository) Create(ctx context.Context, policy *model.RetentionPolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *policyRepository) FirstByID(ctx context.Context, id string) (*model.RetentionPolicy, error) {
	var policy model.RetentionPolicy
	if err := r.db.WithContext(ctx).First(&policy, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *policyRepository) FindByTenant(ctx context.Context, tenantID string) ([]*model.RetentionPolicy, error) {
	var policies []*model.RetentionPolicy
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&policies).Error
	return policies, err
}

func (r *policyRepository) FindEnabled(ctx context.Context) ([]*model.RetentionPolicy, error) {
	var policies []*model.RetentionPolicy
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("created_at ASC").
		Find(&policies).Error
	return policies, err
}

func (r *policyRepository) ExistsByTenantAndName(ctx context.Context, tenantID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RetentionPolicy{}).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *policyRepository) Save(ctx context.Context, policy *model.RetentionPolicy) error {
	return r.db.WithContext(ctx).Save(policy).Error
}

func (r *policyRepository) Delete(ctx context.Context, id string) (int64, error) {
	ret := r.db.WithContext(ctx).Delete(&model.RetentionPolicy{}, "id = ?", id)
	return ret.RowsAffected, ret.Error
}

func NewPolicyRepository(db *gorm.DB) PolicyRepository {
	return &policyRepository{db}
}
