package search

import (
	"context"

	"github.com/quckapp/audit/model"
)

// Index is the secondary, eventually-consistent record index. Removal lags
// primary-store deletion; callers treat every operation as advisory.
type Index interface {
	IndexRecord(ctx context.Context, rec *model.AuditRecord) error
	DeleteAllByID(ctx context.Context, ids []string) error
}
