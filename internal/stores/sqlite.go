package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// SQLiteStore is a RecordStore over a single SQLite table holding JSON
// documents: (k TEXT PRIMARY KEY, doc TEXT NOT NULL). Filters and
// queries use json_extract so the store stays schemaless like the
// document store it stands in for.
type SQLiteStore struct {
	db     *sql.DB
	table  string
	logger *logrus.Logger
}

// NewSQLiteStore creates a store over the given table. The table must
// exist; see RunMigrations.
func NewSQLiteStore(db *sql.DB, table string, logger *logrus.Logger) *SQLiteStore {
	if logger == nil {
		logger = logrus.New()
	}
	return &SQLiteStore{db: db, table: table, logger: logger}
}

// Scan implements RecordStore.Scan
func (s *SQLiteStore) Scan(ctx context.Context) ([]Record, error) {
	query := fmt.Sprintf("SELECT doc FROM %s", s.table)
	return s.queryRecords(ctx, "scan", query)
}

// Filter implements RecordStore.Filter
func (s *SQLiteStore) Filter(ctx context.Context, filters map[string]any) ([]Record, error) {
	if len(filters) == 0 {
		return s.Scan(ctx)
	}

	var conditions []string
	var args []any
	for field, value := range filters {
		conditions = append(conditions, "json_extract(doc, ?) = ?")
		args = append(args, "$."+field, normalizeValue(value))
	}

	query := fmt.Sprintf("SELECT doc FROM %s WHERE %s", s.table, strings.Join(conditions, " AND "))
	return s.queryRecords(ctx, "filter", query, args...)
}

// Query implements RecordStore.Query
func (s *SQLiteStore) Query(ctx context.Context, field, value string) ([]Record, error) {
	query := fmt.Sprintf("SELECT doc FROM %s WHERE json_extract(doc, ?) = ?", s.table)
	return s.queryRecords(ctx, "query", query, "$."+field, value)
}

// Get implements RecordStore.Get
func (s *SQLiteStore) Get(ctx context.Context, key string) (Record, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	query := fmt.Sprintf("SELECT doc FROM %s WHERE k = ?", s.table)

	var doc string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&doc)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, NewStoreError("get", s.table, key, err)
	}

	return decodeRecord(s.table, key, doc)
}

// Put implements RecordStore.Put
func (s *SQLiteStore) Put(ctx context.Context, key string, rec Record) error {
	if key == "" {
		return ErrInvalidKey
	}

	doc, err := json.Marshal(normalizeRecord(rec))
	if err != nil {
		return NewStoreError("put", s.table, key, err)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (k, doc) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET doc = excluded.doc",
		s.table,
	)

	start := time.Now()
	_, err = s.db.ExecContext(ctx, query, key, string(doc))
	s.logQuery("put", key, time.Since(start), err)
	if err != nil {
		return NewStoreError("put", s.table, key, err)
	}
	return nil
}

// UpdateFields implements RecordStore.UpdateFields. The read-modify-write
// runs inside a transaction so the single update stays atomic.
func (s *SQLiteStore) UpdateFields(ctx context.Context, key string, fields map[string]any) (Record, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, NewStoreError("update", s.table, key, err)
	}
	defer tx.Rollback()

	var doc string
	selectQuery := fmt.Sprintf("SELECT doc FROM %s WHERE k = ?", s.table)
	if err := tx.QueryRowContext(ctx, selectQuery, key).Scan(&doc); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, NewStoreError("update", s.table, key, err)
	}

	rec, err := decodeRecord(s.table, key, doc)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		rec[k] = normalizeValue(v)
	}

	updated, err := json.Marshal(rec)
	if err != nil {
		return nil, NewStoreError("update", s.table, key, err)
	}

	updateQuery := fmt.Sprintf("UPDATE %s SET doc = ? WHERE k = ?", s.table)
	if _, err := tx.ExecContext(ctx, updateQuery, string(updated), key); err != nil {
		return nil, NewStoreError("update", s.table, key, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, NewStoreError("update", s.table, key, err)
	}
	return rec, nil
}

// Delete implements RecordStore.Delete
func (s *SQLiteStore) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE k = ?", s.table)

	start := time.Now()
	res, err := s.db.ExecContext(ctx, query, key)
	s.logQuery("delete", key, time.Since(start), err)
	if err != nil {
		return false, NewStoreError("delete", s.table, key, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, NewStoreError("delete", s.table, key, err)
	}
	return affected > 0, nil
}

func (s *SQLiteStore) queryRecords(ctx context.Context, op, query string, args ...any) ([]Record, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query, args...)
	s.logQuery(op, "", time.Since(start), err)
	if err != nil {
		return nil, NewStoreError(op, s.table, "", err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, NewStoreError(op, s.table, "", err)
		}
		rec, err := decodeRecord(s.table, "", doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStoreError(op, s.table, "", err)
	}
	return out, nil
}

func (s *SQLiteStore) logQuery(op, key string, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": op,
		"table":     s.table,
		"duration":  duration,
	}
	if key != "" {
		fields["key"] = key
	}
	if err != nil {
		fields["error"] = err.Error()
		s.logger.WithFields(fields).Error("Store operation failed")
		return
	}
	s.logger.WithFields(fields).Debug("Store operation executed")
}

func decodeRecord(table, key, doc string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return nil, NewStoreError("decode", table, key, err)
	}
	return rec, nil
}
