package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audit_records_created_total",
		Help: "Total number of audit records written to the store",
	})

	EventsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_events_ingested_total",
		Help: "Total number of upstream events consumed, by stream and result",
	}, []string{"stream", "result"})

	RetentionDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audit_retention_deleted_total",
		Help: "Total number of audit records deleted by retention policies",
	})

	RetentionArchived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audit_retention_archived_total",
		Help: "Total number of audit records archived before deletion",
	})

	RetentionIndexCleaned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audit_retention_index_cleaned_total",
		Help: "Total number of search index entries removed by retention",
	})

	RetentionPolicyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "audit_retention_policy_failures_total",
		Help: "Total number of retention policy executions that failed",
	})

	ReportsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_reports_completed_total",
		Help: "Total number of compliance reports generated, by type",
	}, []string{"type"})

	ReportsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_reports_failed_total",
		Help: "Total number of compliance report jobs that failed, by type",
	}, []string{"type"})
)
