package repository

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// CacheRepository stores short-lived string values such as priced quotes.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
