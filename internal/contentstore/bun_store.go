package contentstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/ift-institute/ift-site/pkg/interfaces"
)

// contentRow is the persisted shape of one overridable content entry. The
// value column carries the JSON document exactly as the session supplied it.
type contentRow struct {
	bun.BaseModel `bun:"table:cms_content,alias:cc"`

	Key       string          `bun:"key,pk"                  json:"key"`
	Value     json.RawMessage `bun:"value,type:jsonb,notnull" json:"value"`
	UpdatedAt time.Time       `bun:"updated_at,notnull"       json:"updated_at"`
}

// BunStore implements interfaces.ContentStore over a Bun-backed database.
type BunStore struct {
	db *bun.DB
}

var _ interfaces.ContentStore = (*BunStore)(nil)

// NewBunStore constructs a store over an existing Bun handle.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// OpenSQLite opens the sqlite-backed content table and ensures its schema.
func OpenSQLite(ctx context.Context, dsn string) (*BunStore, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "open content database")
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	store := NewBunStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// EnsureSchema creates the content table when missing.
func (s *BunStore) EnsureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	if _, err := s.db.NewCreateTable().
		Model((*contentRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "ensure content schema")
	}
	return nil
}

// SelectAll returns every stored row. Values that fail to decode are passed
// through as raw strings rather than dropped; shape handling is the reader's
// concern.
func (s *BunStore) SelectAll(ctx context.Context) ([]interfaces.ContentRow, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}

	var models []contentRow
	if err := s.db.NewSelect().Model(&models).Order("key ASC").Scan(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "select content rows")
	}

	out := make([]interfaces.ContentRow, 0, len(models))
	for i := range models {
		out = append(out, interfaces.ContentRow{
			Key:       models[i].Key,
			Value:     decodeValue(models[i].Value),
			UpdatedAt: models[i].UpdatedAt,
		})
	}
	return out, nil
}

// UpsertByKey inserts or replaces the value stored under key.
func (s *BunStore) UpsertByKey(ctx context.Context, key string, value any, updatedAt time.Time) error {
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ErrKeyRequired
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "encode content value")
	}

	model := contentRow{
		Key:       trimmed,
		Value:     encoded,
		UpdatedAt: updatedAt.UTC(),
	}
	if _, err := s.db.NewInsert().
		Model(&model).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryExternal, "upsert content row")
	}
	return nil
}

// DB exposes the underlying handle for lifecycle management.
func (s *BunStore) DB() *bun.DB {
	if s == nil {
		return nil
	}
	return s.db
}

func decodeValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}
	return value
}
