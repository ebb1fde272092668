package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/model"
)

type AuditHandler struct {
	auditService *auditlog.Service
}

type createRecordRequest struct {
	TenantID      string              `json:"tenantId"`
	ActorID       string              `json:"actorId"`
	ActorEmail    string              `json:"actorEmail"`
	ActorName     string              `json:"actorName"`
	Action        string              `json:"action"`
	ResourceType  string              `json:"resourceType"`
	ResourceID    string              `json:"resourceId"`
	ResourceName  string              `json:"resourceName"`
	Metadata      string              `json:"metadata"`
	PreviousState string              `json:"previousState"`
	NewState      string              `json:"newState"`
	IPAddress     string              `json:"ipAddress"`
	UserAgent     string              `json:"userAgent"`
	SessionID     string              `json:"sessionId"`
	Severity      model.AuditSeverity `json:"severity"`
	Category      model.AuditCategory `json:"category"`
}

func (h *AuditHandler) PostCreateRecord(ctx *fiber.Ctx) error {
	var req createRecordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	rec, err := h.auditService.CreateRecord(ctx.Context(), auditlog.CreateRecordInput{
		TenantID:      req.TenantID,
		ActorID:       req.ActorID,
		ActorEmail:    req.ActorEmail,
		ActorName:     req.ActorName,
		Action:        req.Action,
		ResourceType:  req.ResourceType,
		ResourceID:    req.ResourceID,
		ResourceName:  req.ResourceName,
		Metadata:      req.Metadata,
		PreviousState: req.PreviousState,
		NewState:      req.NewState,
		IPAddress:     req.IPAddress,
		UserAgent:     req.UserAgent,
		SessionID:     req.SessionID,
		Severity:      req.Severity,
		Category:      req.Category,
	})
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(NewDataResponse(rec))
}

func (h *AuditHandler) GetRecord(ctx *fiber.Ctx) error {
	rec, err := h.auditService.GetRecord(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(rec))
}

type searchRecordsRequest struct {
	TenantID     string              `json:"tenantId"`
	ActorID      string              `json:"actorId"`
	Action       string              `json:"action"`
	ResourceType string              `json:"resourceType"`
	ResourceID   string              `json:"resourceId"`
	Category     model.AuditCategory `json:"category"`
	StartDate    *time.Time          `json:"startDate"`
	EndDate      *time.Time          `json:"endDate"`
	Page         int                 `json:"page"`
	Size         int                 `json:"size"`
}

func (h *AuditHandler) PostSearchRecords(ctx *fiber.Ctx) error {
	var req searchRecordsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if req.TenantID == "" {
		return auditlog.ErrTenantIDEmpty
	}

	query := auditlog.ListQuery{
		ActorID:      req.ActorID,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		Category:     req.Category,
	}
	if req.StartDate != nil {
		query.Start = *req.StartDate
	}
	if req.EndDate != nil {
		query.End = *req.EndDate
	}

	page, size := req.Page, req.Size
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}

	records, total, err := h.auditService.ListRecords(ctx.Context(), req.TenantID, query, page*size, size)
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(NewPagedResponse(records, page, size, total)))
}

func (h *AuditHandler) GetTenantRecords(ctx *fiber.Ctx) error {
	tenantID := ctx.Params("tenantId")
	page, size := parsePaging(ctx)

	records, total, err := h.auditService.ListRecords(ctx.Context(), tenantID, auditlog.ListQuery{}, page*size, size)
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(NewPagedResponse(records, page, size, total)))
}

func (h *AuditHandler) GetTenantArchivedRecords(ctx *fiber.Ctx) error {
	tenantID := ctx.Params("tenantId")
	page, size := parsePaging(ctx)

	records, total, err := h.auditService.ListArchivedRecords(ctx.Context(), tenantID, page*size, size)
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(NewPagedResponse(records, page, size, total)))
}

func (h *AuditHandler) GetTenantStatistics(ctx *fiber.Ctx) error {
	tenantID := ctx.Params("tenantId")

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -30)
	if raw := ctx.Query("startDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fiber.ErrBadRequest
		}
		start = parsed
	}
	if raw := ctx.Query("endDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fiber.ErrBadRequest
		}
		end = parsed
	}

	stats, err := h.auditService.GetStatistics(ctx.Context(), tenantID, start, end)
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(stats))
}

func NewAuditHandler(auditService *auditlog.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}
