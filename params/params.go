package params

import "time"

const (
	APIVersion = "v1"

	ServerBodyLimit    = 1048576 // 1 MiB
	ServerIdleTimeout  = 30 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second

	OpsServerAddr = ":3001" // liveness, readiness and metrics endpoints

	DefaultPageSize = 20
	MaxPageSize     = 200

	SearchIndexKeyPrefix = "audit:idx:" // search index document key prefix

	DefaultRetentionSchedule = "0 2 * * *" // daily at 2 AM

	DefaultReportWorkers   = 4
	DefaultReportQueueSize = 64

	IngestReadBlock = 5 * time.Second // XREADGROUP block duration
	IngestBatchSize = 100             // events fetched per read
)
