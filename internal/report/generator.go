package report

import (
	"context"
	"time"

	"github.com/spf13/cast"

	"github.com/quckapp/audit/model"
)

// Context scopes one report generation: tenant, reporting period and
// loose-typed request parameters.
type Context struct {
	TenantID    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Parameters  map[string]any
}

// IntParam reads an integer parameter, falling back to def when the key is
// absent or not coercible.
func (c Context) IntParam(key string, def int) int {
	v, ok := c.Parameters[key]
	if !ok {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

// StringParam reads a string parameter, falling back to def when absent.
func (c Context) StringParam(key string, def string) string {
	v, ok := c.Parameters[key]
	if !ok {
		return def
	}
	return cast.ToString(v)
}

// Generator produces one report type's dataset and summary. Data performs
// the store query; Summarize derives metrics purely from the dataset it is
// given, so the exported dataset and the summary can never diverge.
type Generator interface {
	Type() model.ReportType
	Data(ctx context.Context, rctx Context) ([]*model.AuditRecord, error)
	Summarize(rctx Context, records []*model.AuditRecord) map[string]any
}

// baseSummary seeds the fields every report type shares.
func baseSummary(t model.ReportType, rctx Context, total int) map[string]any {
	return map[string]any{
		"reportType":  string(t),
		"periodStart": rctx.PeriodStart.UTC().Format(time.RFC3339),
		"periodEnd":   rctx.PeriodEnd.UTC().Format(time.RFC3339),
		"totalEvents": total,
	}
}

func countByAction(records []*model.AuditRecord) map[string]int64 {
	counts := make(map[string]int64)
	for _, rec := range records {
		counts[rec.Action]++
	}
	return counts
}

func countByCategory(records []*model.AuditRecord) map[string]int64 {
	counts := make(map[string]int64)
	for _, rec := range records {
		counts[string(rec.Category)]++
	}
	return counts
}

func countBySeverity(records []*model.AuditRecord) map[string]int64 {
	counts := make(map[string]int64)
	for _, rec := range records {
		counts[string(rec.Severity)]++
	}
	return counts
}

func countByActorEmail(records []*model.AuditRecord) map[string]int64 {
	counts := make(map[string]int64)
	for _, rec := range records {
		if rec.ActorEmail != "" {
			counts[rec.ActorEmail]++
		}
	}
	return counts
}

func uniqueActorEmails(records []*model.AuditRecord) []string {
	seen := make(map[string]bool)
	var emails []string
	for _, rec := range records {
		if rec.ActorEmail != "" && !seen[rec.ActorEmail] {
			seen[rec.ActorEmail] = true
			emails = append(emails, rec.ActorEmail)
		}
	}
	return emails
}

func countSeverity(records []*model.AuditRecord, severity model.AuditSeverity) int64 {
	var n int64
	for _, rec := range records {
		if rec.Severity == severity {
			n++
		}
	}
	return n
}

func countCategory(records []*model.AuditRecord, category model.AuditCategory) int64 {
	var n int64
	for _, rec := range records {
		if rec.Category == category {
			n++
		}
	}
	return n
}
