package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// Storage is a document-oriented key-value store. A document is a flat
// field map; the Redis implementation backs it with a hash per key.
type Storage interface {
	Get(ctx context.Context, key string, val any) error
	Set(ctx context.Context, key string, val any, expiresIn time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, keys []string) error
}
