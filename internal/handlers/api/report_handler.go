package api

import (
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/quckapp/audit/internal/report"
	"github.com/quckapp/audit/model"
)

type ReportHandler struct {
	reportService *report.Service
}

type createReportRequest struct {
	TenantID    string           `json:"tenantId"`
	Name        string           `json:"name"`
	ReportType  model.ReportType `json:"reportType"`
	PeriodStart time.Time        `json:"periodStart"`
	PeriodEnd   time.Time        `json:"periodEnd"`
	RequestedBy string           `json:"requestedBy"`
	Parameters  map[string]any   `json:"parameters"`
}

func (h *ReportHandler) PostCreateReport(ctx *fiber.Ctx) error {
	var req createReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	job, err := h.reportService.RequestReport(ctx.Context(), report.CreateReportInput{
		TenantID:    req.TenantID,
		Name:        req.Name,
		ReportType:  req.ReportType,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		RequestedBy: req.RequestedBy,
		Parameters:  req.Parameters,
	})
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(NewDataResponse(job))
}

func (h *ReportHandler) GetTenantReports(ctx *fiber.Ctx) error {
	tenantID := ctx.Params("tenantId")
	page, size := parsePaging(ctx)

	reports, total, err := h.reportService.ListReports(ctx.Context(), tenantID, page*size, size)
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(NewPagedResponse(reports, page, size, total)))
}

func (h *ReportHandler) GetReport(ctx *fiber.Ctx) error {
	job, err := h.reportService.GetReport(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(job))
}

func (h *ReportHandler) GetDownloadReport(ctx *fiber.Ctx) error {
	_, path, err := h.reportService.ResolveDownload(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.Download(path, filepath.Base(path))
}

func NewReportHandler(reportService *report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}
