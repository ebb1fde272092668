package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quckapp/audit/internal/retention"
	"github.com/quckapp/audit/model"
)

type RetentionHandler struct {
	retentionService *retention.Service
}

type createPolicyRequest struct {
	TenantID            string               `json:"tenantId"`
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	RetentionDays       int                  `json:"retentionDays"`
	Category            *model.AuditCategory `json:"category"`
	MinSeverity         *model.AuditSeverity `json:"minSeverity"`
	ArchiveBeforeDelete bool                 `json:"archiveBeforeDelete"`
}

func (h *RetentionHandler) PostCreatePolicy(ctx *fiber.Ctx) error {
	var req createPolicyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	policy, err := h.retentionService.CreatePolicy(ctx.Context(), retention.CreatePolicyInput{
		TenantID:            req.TenantID,
		Name:                req.Name,
		Description:         req.Description,
		RetentionDays:       req.RetentionDays,
		Category:            req.Category,
		MinSeverity:         req.MinSeverity,
		ArchiveBeforeDelete: req.ArchiveBeforeDelete,
	})
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(NewDataResponse(policy))
}

func (h *RetentionHandler) GetTenantPolicies(ctx *fiber.Ctx) error {
	policies, err := h.retentionService.ListPolicies(ctx.Context(), ctx.Params("tenantId"))
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(policies))
}

func (h *RetentionHandler) GetPolicy(ctx *fiber.Ctx) error {
	policy, err := h.retentionService.GetPolicy(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(policy))
}

type updatePolicyRequest struct {
	Name                *string              `json:"name"`
	Description         *string              `json:"description"`
	RetentionDays       *int                 `json:"retentionDays"`
	MinSeverity         *model.AuditSeverity `json:"minSeverity"`
	Enabled             *bool                `json:"enabled"`
	ArchiveBeforeDelete *bool                `json:"archiveBeforeDelete"`
}

func (h *RetentionHandler) PutUpdatePolicy(ctx *fiber.Ctx) error {
	var req updatePolicyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}

	policy, err := h.retentionService.UpdatePolicy(ctx.Context(), ctx.Params("id"), retention.UpdatePolicyInput{
		Name:                req.Name,
		Description:         req.Description,
		RetentionDays:       req.RetentionDays,
		MinSeverity:         req.MinSeverity,
		Enabled:             req.Enabled,
		ArchiveBeforeDelete: req.ArchiveBeforeDelete,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(policy))
}

func (h *RetentionHandler) DeletePolicy(ctx *fiber.Ctx) error {
	if err := h.retentionService.DeletePolicy(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *RetentionHandler) PostExecuteAll(ctx *fiber.Ctx) error {
	result, err := h.retentionService.ExecuteAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(result))
}

func (h *RetentionHandler) PostExecutePolicy(ctx *fiber.Ctx) error {
	detail, err := h.retentionService.ExecutePolicy(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(NewDataResponse(detail))
}

func NewRetentionHandler(retentionService *retention.Service) *RetentionHandler {
	return &RetentionHandler{retentionService: retentionService}
}
