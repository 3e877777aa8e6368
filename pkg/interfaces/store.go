package interfaces

import (
	"context"
	"time"
)

// ContentRow is one record of the remote content table. Value carries an
// arbitrary JSON document whose shape is defined by the page that owns the
// key; the store performs no shape validation.
type ContentRow struct {
	Key       string    `json:"key"`
	Value     any       `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContentStore is the remote structured-storage collaborator holding
// overridable page content. Implementations must provide upsert-on-conflict
// semantics keyed by ContentRow.Key.
type ContentStore interface {
	// SelectAll returns every stored row. An empty result is not an error.
	SelectAll(ctx context.Context) ([]ContentRow, error)

	// UpsertByKey inserts or replaces the value stored under key.
	UpsertByKey(ctx context.Context, key string, value any, updatedAt time.Time) error
}

// SnapshotStore persists the whole content map as one blob. It backs the
// degraded mode used when no remote store is configured or reachable.
type SnapshotStore interface {
	Load() (map[string]any, error)
	Save(data map[string]any) error
}
