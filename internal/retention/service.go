package retention

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/internal/metrics"
	"github.com/quckapp/audit/internal/search"
	"github.com/quckapp/audit/model"
	"gorm.io/gorm"
)

// Archiver copies records matching a policy's filter into the archive
// space before the engine deletes them from the primary store.
type Archiver interface {
	Archive(ctx context.Context, policy *model.RetentionPolicy, filter model.RecordFilter) (int64, error)
}

// PolicyExecutionDetail is the per-policy outcome of one retention run.
// Computed per run, never persisted.
type PolicyExecutionDetail struct {
	PolicyID          string    `json:"policyId"`
	PolicyName        string    `json:"policyName"`
	Success           bool      `json:"success"`
	ArchivedCount     int64     `json:"archivedCount"`
	DeletedCount      int64     `json:"deletedCount"`
	IndexCleanedCount int64     `json:"indexCleanedCount"`
	ErrorMessage      string    `json:"errorMessage,omitempty"`
	ExecutedAt        time.Time `json:"executedAt"`
}

type ExecutionResult struct {
	TotalPoliciesExecuted int                     `json:"totalPoliciesExecuted"`
	SuccessfulPolicies    int                     `json:"successfulPolicies"`
	FailedPolicies        int                     `json:"failedPolicies"`
	Details               []PolicyExecutionDetail `json:"details"`
	ExecutedAt            time.Time               `json:"executedAt"`
}

type CreatePolicyInput struct {
	TenantID            string
	Name                string
	Description         string
	RetentionDays       int
	Category            *model.AuditCategory
	MinSeverity         *model.AuditSeverity
	ArchiveBeforeDelete bool
}

// UpdatePolicyInput carries partial updates; nil fields are left unchanged.
type UpdatePolicyInput struct {
	Name                *string
	Description         *string
	RetentionDays       *int
	MinSeverity         *model.AuditSeverity
	Enabled             *bool
	ArchiveBeforeDelete *bool
}

type Service struct {
	policyRepo  PolicyRepository
	recordRepo  auditlog.AuditRecordRepository
	searchIndex search.Index
	archiver    Archiver
}

func validateFilters(category *model.AuditCategory, minSeverity *model.AuditSeverity) error {
	if category != nil && !category.Valid() {
		return ErrInvalidCategory
	}
	if minSeverity != nil && !minSeverity.Valid() {
		return ErrInvalidSeverity
	}
	return nil
}

func (s *Service) CreatePolicy(ctx context.Context, in CreatePolicyInput) (*model.RetentionPolicy, error) {
	switch {
	case in.TenantID == "":
		return nil, ErrTenantIDEmpty
	case in.Name == "":
		return nil, ErrPolicyNameEmpty
	case in.RetentionDays <= 0:
		return nil, ErrInvalidRetentionDays
	}
	if err := validateFilters(in.Category, in.MinSeverity); err != nil {
		return nil, err
	}

	exists, err := s.policyRepo.ExistsByTenantAndName(ctx, in.TenantID, in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePolicyName
	}

	policy := &model.RetentionPolicy{
		ID:                  model.NewID(),
		TenantID:            in.TenantID,
		Name:                in.Name,
		Description:         in.Description,
		RetentionDays:       in.RetentionDays,
		Category:            in.Category,
		MinSeverity:         in.MinSeverity,
		Enabled:             true,
		ArchiveBeforeDelete: in.ArchiveBeforeDelete,
	}

	var mysqlErr *mysql.MySQLError
	if err := s.policyRepo.Create(ctx, policy); err != nil {
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, ErrDuplicatePolicyName
		}
		return nil, err
	}
	slog.Info("Created retention policy", "name", policy.Name, "tenant", policy.TenantID)
	return policy, nil
}

func (s *Service) GetPolicy(ctx context.Context, id string) (*model.RetentionPolicy, error) {
	policy, err := s.policyRepo.FirstByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPolicyNotFound
	}
	return policy, err
}

func (s *Service) ListPolicies(ctx context.Context, tenantID string) ([]*model.RetentionPolicy, error) {
	return s.policyRepo.FindByTenant(ctx, tenantID)
}

func (s *Service) UpdatePolicy(ctx context.Context, id string, in UpdatePolicyInput) (*model.RetentionPolicy, error) {
	policy, err := s.GetPolicy(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		policy.Name = *in.Name
	}
	if in.Description != nil {
		policy.Description = *in.Description
	}
	if in.RetentionDays != nil {
		if *in.RetentionDays <= 0 {
			return nil, ErrInvalidRetentionDays
		}
		policy.RetentionDays = *in.RetentionDays
	}
	if in.MinSeverity != nil {
		if !in.MinSeverity.Valid() {
			return nil, ErrInvalidSeverity
		}
		policy.MinSeverity = in.MinSeverity
	}
	if in.Enabled != nil {
		policy.Enabled = *in.Enabled
	}
	if in.ArchiveBeforeDelete != nil {
		policy.ArchiveBeforeDelete = *in.ArchiveBeforeDelete
	}

	var mysqlErr *mysql.MySQLError
	if err := s.policyRepo.Save(ctx, policy); err != nil {
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, ErrDuplicatePolicyName
		}
		return nil, err
	}
	return policy, nil
}

func (s *Service) DeletePolicy(ctx context.Context, id string) error {
	deleted, err := s.policyRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrPolicyNotFound
	}
	return nil
}

// ExecuteAll runs every enabled policy in listing order. A failing policy
// is recorded in its detail and never interrupts the remaining policies;
// ExecuteAll itself only fails when the policy listing cannot be read.
func (s *Service) ExecuteAll(ctx context.Context) (*ExecutionResult, error) {
	policies, err := s.policyRepo.FindEnabled(ctx)
	if err != nil {
		return nil, err
	}

	result := &ExecutionResult{
		TotalPoliciesExecuted: len(policies),
		ExecutedAt:            time.Now().UTC(),
	}
	for _, policy := range policies {
		detail := s.executePolicy(ctx, policy)
		result.Details = append(result.Details, detail)
		if detail.Success {
			result.SuccessfulPolicies++
		} else {
			result.FailedPolicies++
		}
	}
	return result, nil
}

// ExecutePolicy runs a single policy by id. It fails only when the policy
// does not exist; execution errors are reported through the detail.
func (s *Service) ExecutePolicy(ctx context.Context, policyID string) (*PolicyExecutionDetail, error) {
	policy, err := s.GetPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}
	detail := s.executePolicy(ctx, policy)
	return &detail, nil
}

// executePolicy performs one retention pass: select candidate ids, archive
// if configured, delete, then best-effort clean the search index. The same
// filter drives all three steps so they always agree on which records match.
func (s *Service) executePolicy(ctx context.Context, policy *model.RetentionPolicy) PolicyExecutionDetail {
	detail := PolicyExecutionDetail{
		PolicyID:   policy.ID,
		PolicyName: policy.Name,
		ExecutedAt: time.Now().UTC(),
	}
	filter := policy.Filter(time.Now())

	// Candidate ids are captured before deletion; index cleanup needs them
	// whether or not archival runs.
	ids, err := s.recordRepo.FindIDsMatching(ctx, filter)
	if err != nil {
		return s.failDetail(detail, policy, err)
	}

	if policy.ArchiveBeforeDelete {
		archived, err := s.archiver.Archive(ctx, policy, filter)
		if err != nil {
			return s.failDetail(detail, policy, err)
		}
		detail.ArchivedCount = archived
		metrics.RetentionArchived.Add(float64(archived))
	}

	deleted, err := s.recordRepo.DeleteMatching(ctx, filter)
	if err != nil {
		return s.failDetail(detail, policy, err)
	}
	detail.DeletedCount = deleted
	metrics.RetentionDeleted.Add(float64(deleted))

	detail.IndexCleanedCount = s.cleanupIndex(ctx, ids)
	detail.Success = true

	slog.Info("Retention policy executed",
		"policy", policy.Name,
		"archived", detail.ArchivedCount,
		"deleted", detail.DeletedCount,
		"indexCleaned", detail.IndexCleanedCount)
	return detail
}

func (s *Service) failDetail(detail PolicyExecutionDetail, policy *model.RetentionPolicy, err error) PolicyExecutionDetail {
	slog.Error("Failed to apply retention policy", "policy", policy.ID, "error", err)
	metrics.RetentionPolicyFailures.Inc()
	detail.Success = false
	detail.ErrorMessage = err.Error()
	return detail
}

// cleanupIndex removes deleted record ids from the search index. Failures
// degrade to orphaned index entries: they are logged and reported as zero
// cleaned, never escalated to the policy outcome.
func (s *Service) cleanupIndex(ctx context.Context, ids []string) int64 {
	if len(ids) == 0 {
		return 0
	}
	if err := s.searchIndex.DeleteAllByID(ctx, ids); err != nil {
		slog.Warn("Failed to clean up search index, entries may be orphaned", "error", err)
		return 0
	}
	cleaned := int64(len(ids))
	metrics.RetentionIndexCleaned.Add(float64(cleaned))
	return cleaned
}

func NewService(policyRepo PolicyRepository, recordRepo auditlog.AuditRecordRepository, searchIndex search.Index, archiver Archiver) *Service {
	return &Service{
		policyRepo:  policyRepo,
		recordRepo:  recordRepo,
		searchIndex: searchIndex,
		archiver:    archiver,
	}
}
