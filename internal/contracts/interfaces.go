package contracts

import (
	"context"
	"time"
)

// TradeStore is the read-only tabular source of comtrade rows. The
// production implementation runs against the Postgres trade table; tests use
// an in-memory fixture.
type TradeStore interface {
	Query(ctx context.Context, q TradeQuery) ([]StoredRow, error)
}

// Cache is the optional cross-request key-value cache. A nil Cache is legal;
// correctness does not depend on it.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
