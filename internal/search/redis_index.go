package search

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/quckapp/audit/internal/store"
	"github.com/quckapp/audit/model"
	"github.com/quckapp/audit/params"
)

// storageIndex keeps one flat document per record id under the index key
// prefix. Documents carry the queryable subset of record fields.
type storageIndex struct {
	docs store.Storage
}

func (s *storageIndex) IndexRecord(ctx context.Context, rec *model.AuditRecord) error {
	doc := map[string]any{
		"tenantId":     rec.TenantID,
		"actorId":      rec.ActorID,
		"actorEmail":   rec.ActorEmail,
		"action":       rec.Action,
		"resourceType": rec.ResourceType,
		"resourceId":   rec.ResourceID,
		"resourceName": rec.ResourceName,
		"severity":     string(rec.Severity),
		"category":     string(rec.Category),
		"createdAt":    rec.CreatedAt.UnixMilli(),
	}
	return s.docs.Set(ctx, rec.ID, doc, -1)
}

func (s *storageIndex) DeleteAllByID(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.docs.DeleteAll(ctx, ids)
}

func NewRedisIndex(rdb redis.UniversalClient) Index {
	return &storageIndex{
		docs: store.StorageWithPrefix(store.NewRedisStorage(rdb), params.SearchIndexKeyPrefix),
	}
}
