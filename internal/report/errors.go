package report

import "errors"

var (
	ErrReportNotFound    = errors.New("compliance report not found")
	ErrReportNameEmpty   = errors.New("report name cannot be empty")
	ErrTenantIDEmpty     = errors.New("tenant id cannot be empty")
	ErrInvalidReportType = errors.New("no generator registered for report type")
	ErrInvalidPeriod     = errors.New("period start must not be after period end")
	ErrExportNotReady    = errors.New("report export is not available")
	ErrQueueClosed       = errors.New("report worker pool is shut down")
)
