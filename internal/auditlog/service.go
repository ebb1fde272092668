package auditlog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quckapp/audit/internal/metrics"
	"github.com/quckapp/audit/internal/search"
	"github.com/quckapp/audit/model"
	"gorm.io/gorm"
)

// CreateRecordInput carries everything needed to write one audit record.
// Severity defaults to LOW and category to SYSTEM when omitted.
type CreateRecordInput struct {
	TenantID      string
	ActorID       string
	ActorEmail    string
	ActorName     string
	Action        string
	ResourceType  string
	ResourceID    string
	ResourceName  string
	Metadata      string
	PreviousState string
	NewState      string
	IPAddress     string
	UserAgent     string
	SessionID     string
	Severity      model.AuditSeverity
	Category      model.AuditCategory
}

func (in *CreateRecordInput) validate() error {
	switch {
	case in.TenantID == "":
		return ErrTenantIDEmpty
	case in.ActorID == "":
		return ErrActorIDEmpty
	case in.Action == "":
		return ErrActionEmpty
	case in.ResourceType == "":
		return ErrResourceTypeEmpty
	case in.ResourceID == "":
		return ErrResourceIDEmpty
	}
	if in.Severity != "" && !in.Severity.Valid() {
		return ErrInvalidSeverity
	}
	if in.Category != "" && !in.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

type Service struct {
	recordRepo   AuditRecordRepository
	archivedRepo ArchivedRecordRepository
	searchIndex  search.Index
}

// CreateRecord persists a new audit record and best-effort indexes it into
// the search index. Index failures are logged, never returned: the index
// is eventually consistent by contract.
func (s *Service) CreateRecord(ctx context.Context, in CreateRecordInput) (*model.AuditRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Severity == "" {
		in.Severity = model.SeverityLow
	}
	if in.Category == "" {
		in.Category = model.CategorySystem
	}

	rec := &model.AuditRecord{
		ID:            model.NewID(),
		TenantID:      in.TenantID,
		ActorID:       in.ActorID,
		ActorEmail:    in.ActorEmail,
		ActorName:     in.ActorName,
		Action:        in.Action,
		ResourceType:  in.ResourceType,
		ResourceID:    in.ResourceID,
		ResourceName:  in.ResourceName,
		Metadata:      in.Metadata,
		PreviousState: in.PreviousState,
		NewState:      in.NewState,
		IPAddress:     in.IPAddress,
		UserAgent:     in.UserAgent,
		SessionID:     in.SessionID,
		Severity:      in.Severity,
		Category:      in.Category,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.recordRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	metrics.RecordsCreated.Inc()

	if s.searchIndex != nil {
		if err := s.searchIndex.IndexRecord(ctx, rec); err != nil {
			slog.Warn("Failed to index audit record", "id", rec.ID, "error", err)
		}
	}
	return rec, nil
}

func (s *Service) GetRecord(ctx context.Context, id string) (*model.AuditRecord, error) {
	rec, err := s.recordRepo.FirstByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	return rec, err
}

func (s *Service) ListRecords(ctx context.Context, tenantID string, q ListQuery, offset, limit int) ([]*model.AuditRecord, int64, error) {
	return s.recordRepo.FindByTenant(ctx, tenantID, q, offset, limit)
}

func (s *Service) ListArchivedRecords(ctx context.Context, tenantID string, offset, limit int) ([]*model.ArchivedAuditRecord, int64, error) {
	return s.archivedRepo.FindByTenant(ctx, tenantID, offset, limit)
}

// Statistics summarizes a tenant's audit activity over a period.
type Statistics struct {
	TotalEvents      int64            `json:"totalEvents"`
	UniqueActors     int64            `json:"uniqueActors"`
	EventsByCategory map[string]int64 `json:"eventsByCategory"`
	EventsBySeverity map[string]int64 `json:"eventsBySeverity"`
	EventsByAction   map[string]int64 `json:"eventsByAction"`
}

func (s *Service) GetStatistics(ctx context.Context, tenantID string, start, end time.Time) (*Statistics, error) {
	records, err := s.recordRepo.FindByTenantAndPeriod(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalEvents:      int64(len(records)),
		EventsByCategory: make(map[string]int64),
		EventsBySeverity: make(map[string]int64),
		EventsByAction:   make(map[string]int64),
	}
	actors := make(map[string]bool)
	for _, rec := range records {
		stats.EventsByCategory[string(rec.Category)]++
		stats.EventsBySeverity[string(rec.Severity)]++
		stats.EventsByAction[rec.Action]++
		actors[rec.ActorID] = true
	}
	stats.UniqueActors = int64(len(actors))
	return stats, nil
}

func NewService(recordRepo AuditRecordRepository, archivedRepo ArchivedRecordRepository, searchIndex search.Index) *Service {
	return &Service{
		recordRepo:   recordRepo,
		archivedRepo: archivedRepo,
		searchIndex:  searchIndex,
	}
}
