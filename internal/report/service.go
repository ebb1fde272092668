package report

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/quckapp/audit/internal/export"
	"github.com/quckapp/audit/internal/metrics"
	"github.com/quckapp/audit/model"
	"gorm.io/gorm"
)

// Exporter turns a report dataset into a durable artifact.
type Exporter interface {
	Export(records []*model.AuditRecord, reportName, reportID string) (export.Result, error)
	Resolve(reportID string) (string, error)
}

type CreateReportInput struct {
	TenantID    string
	Name        string
	ReportType  model.ReportType
	PeriodStart time.Time
	PeriodEnd   time.Time
	RequestedBy string
	Parameters  map[string]any
}

type Service struct {
	reportRepo ReportRepository
	registry   *Registry
	exporter   Exporter
	pool       *WorkerPool
}

// RequestReport persists a PENDING job and hands it to the worker pool.
// The caller gets the pending job reference immediately; generation runs
// on the pool and is observed through the job status.
func (s *Service) RequestReport(ctx context.Context, in CreateReportInput) (*model.ComplianceReport, error) {
	switch {
	case in.TenantID == "":
		return nil, ErrTenantIDEmpty
	case in.Name == "":
		return nil, ErrReportNameEmpty
	}
	if in.PeriodStart.After(in.PeriodEnd) {
		return nil, ErrInvalidPeriod
	}
	if _, err := s.registry.Lookup(in.ReportType); err != nil {
		return nil, err
	}

	report := &model.ComplianceReport{
		ID:          model.NewID(),
		TenantID:    in.TenantID,
		Name:        in.Name,
		ReportType:  in.ReportType,
		Status:      model.ReportStatusPending,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		RequestedBy: in.RequestedBy,
		Parameters:  toJSON(in.Parameters),
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	slog.Info("Created compliance report request", "id", report.ID, "tenant", report.TenantID, "type", report.ReportType)

	if err := s.pool.Submit(report.ID); err != nil {
		// The job was persisted but cannot be scheduled; fail it so the
		// caller is not left polling a report that will never run.
		s.failReport(ctx, report, err)
		return nil, err
	}
	return report, nil
}

func (s *Service) GetReport(ctx context.Context, id string) (*model.ComplianceReport, error) {
	report, err := s.reportRepo.FirstByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	return report, err
}

func (s *Service) ListReports(ctx context.Context, tenantID string, offset, limit int) ([]*model.ComplianceReport, int64, error) {
	return s.reportRepo.FindByTenant(ctx, tenantID, offset, limit)
}

// ResolveDownload locates the export artifact of a completed report.
func (s *Service) ResolveDownload(ctx context.Context, id string) (*model.ComplianceReport, string, error) {
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if report.Status != model.ReportStatusCompleted || report.FileURL == "" {
		return nil, "", ErrExportNotReady
	}
	path, err := s.exporter.Resolve(report.ID)
	if err != nil {
		return nil, "", err
	}
	return report, path, nil
}

// Generate runs one report job to its terminal state. Every failure is
// persisted on the job and never propagated: no caller waits on this path.
func (s *Service) Generate(ctx context.Context, reportID string) {
	report, err := s.reportRepo.FirstByID(ctx, reportID)
	if err != nil {
		slog.Error("Failed to load compliance report for generation", "id", reportID, "error", err)
		return
	}
	if report.Status.Terminal() {
		slog.Warn("Skipping generation for terminal report", "id", reportID, "status", report.Status)
		return
	}

	report.Status = model.ReportStatusProcessing
	if err := s.reportRepo.Save(ctx, report); err != nil {
		slog.Error("Failed to mark report processing", "id", reportID, "error", err)
		return
	}

	generator, err := s.registry.Lookup(report.ReportType)
	if err != nil {
		s.failReport(ctx, report, err)
		return
	}

	rctx := Context{
		TenantID:    report.TenantID,
		PeriodStart: report.PeriodStart,
		PeriodEnd:   report.PeriodEnd,
		Parameters:  fromJSON(report.Parameters),
	}

	// The dataset is fetched once; the summary is derived from it and the
	// export writes it, so the two cannot diverge.
	records, err := generator.Data(ctx, rctx)
	if err != nil {
		s.failReport(ctx, report, err)
		return
	}
	summary := generator.Summarize(rctx, records)

	result, err := s.exporter.Export(records, report.Name, report.ID)
	if err != nil {
		s.failReport(ctx, report, err)
		return
	}

	now := time.Now().UTC()
	report.Summary = toJSON(summary)
	report.FilePath = result.FilePath
	report.FileURL = result.FileURL
	report.FileSize = result.FileSize
	report.Status = model.ReportStatusCompleted
	report.CompletedAt = &now
	if err := s.reportRepo.Save(ctx, report); err != nil {
		slog.Error("Failed to persist completed report", "id", reportID, "error", err)
		return
	}
	metrics.ReportsCompleted.WithLabelValues(string(report.ReportType)).Inc()
	slog.Info("Completed compliance report", "id", report.ID, "records", len(records), "size", result.FileSize)
}

func (s *Service) failReport(ctx context.Context, report *model.ComplianceReport, cause error) {
	slog.Error("Failed to generate compliance report", "id", report.ID, "error", cause)
	metrics.ReportsFailed.WithLabelValues(string(report.ReportType)).Inc()

	report.Status = model.ReportStatusFailed
	report.ErrorMessage = cause.Error()
	if err := s.reportRepo.Save(ctx, report); err != nil {
		slog.Error("Failed to persist failed report", "id", report.ID, "error", err)
	}
}

// Pool exposes the worker pool for lifecycle management in main.
func (s *Service) Pool() *WorkerPool {
	return s.pool
}

func toJSON(v map[string]any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("Failed to serialize to JSON", "error", err)
		return ""
	}
	return string(data)
}

func fromJSON(s string) map[string]any {
	if s == "" {
		return nil
	}
	var v map[string]any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		slog.Warn("Failed to deserialize from JSON", "error", err)
		return nil
	}
	return v
}

func NewService(reportRepo ReportRepository, registry *Registry, exporter Exporter, workers, queueSize int) *Service {
	s := &Service{
		reportRepo: reportRepo,
		registry:   registry,
		exporter:   exporter,
	}
	s.pool = NewWorkerPool(workers, queueSize, func(ctx context.Context, reportID string) {
		s.Generate(ctx, reportID)
	})
	return s
}
