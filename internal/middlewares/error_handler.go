package middlewares

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/internal/handlers/api"
	"github.com/quckapp/audit/internal/report"
	"github.com/quckapp/audit/internal/retention"
)

// statusFor translates domain errors into HTTP status codes. Anything
// unmapped is an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auditlog.ErrRecordNotFound),
		errors.Is(err, retention.ErrPolicyNotFound),
		errors.Is(err, report.ErrReportNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, retention.ErrDuplicatePolicyName):
		return fiber.StatusConflict
	case errors.Is(err, report.ErrExportNotReady):
		return fiber.StatusConflict
	case errors.Is(err, report.ErrQueueFull),
		errors.Is(err, report.ErrQueueClosed):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, auditlog.ErrTenantIDEmpty),
		errors.Is(err, auditlog.ErrActorIDEmpty),
		errors.Is(err, auditlog.ErrActionEmpty),
		errors.Is(err, auditlog.ErrResourceTypeEmpty),
		errors.Is(err, auditlog.ErrResourceIDEmpty),
		errors.Is(err, auditlog.ErrInvalidSeverity),
		errors.Is(err, auditlog.ErrInvalidCategory),
		errors.Is(err, retention.ErrPolicyNameEmpty),
		errors.Is(err, retention.ErrTenantIDEmpty),
		errors.Is(err, retention.ErrInvalidRetentionDays),
		errors.Is(err, retention.ErrInvalidSeverity),
		errors.Is(err, retention.ErrInvalidCategory),
		errors.Is(err, report.ErrReportNameEmpty),
		errors.Is(err, report.ErrTenantIDEmpty),
		errors.Is(err, report.ErrInvalidReportType),
		errors.Is(err, report.ErrInvalidPeriod):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := statusFor(err)
	message := err.Error()
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if code == fiber.StatusInternalServerError {
		slog.Error("Unhandled error", "path", ctx.Path(), "error", err)
		message = "Internal server error"
	}
	return ctx.Status(code).JSON(api.NewErrorResponse(code, message))
}
