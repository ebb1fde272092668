package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the audit API under /api/v1/audit.
func RegisterRoutes(app *fiber.App, audit *AuditHandler, retention *RetentionHandler, report *ReportHandler) {
	root := app.Group("/api/v1/audit")

	logs := root.Group("/logs")
	logs.Post("/", audit.PostCreateRecord)
	logs.Post("/search", audit.PostSearchRecords)
	logs.Get("/tenant/:tenantId", audit.GetTenantRecords)
	logs.Get("/tenant/:tenantId/archived", audit.GetTenantArchivedRecords)
	logs.Get("/statistics/tenant/:tenantId", audit.GetTenantStatistics)
	logs.Get("/:id", audit.GetRecord)

	policies := root.Group("/retention-policies")
	policies.Post("/", retention.PostCreatePolicy)
	policies.Post("/execute", retention.PostExecuteAll)
	policies.Get("/tenant/:tenantId", retention.GetTenantPolicies)
	policies.Get("/:id", retention.GetPolicy)
	policies.Put("/:id", retention.PutUpdatePolicy)
	policies.Delete("/:id", retention.DeletePolicy)
	policies.Post("/:id/execute", retention.PostExecutePolicy)

	reports := root.Group("/reports")
	reports.Post("/", report.PostCreateReport)
	reports.Get("/tenant/:tenantId", report.GetTenantReports)
	reports.Get("/:id", report.GetReport)
	reports.Get("/:id/download", report.GetDownloadReport)
}
