package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/ldcurate"
)

// Compile-time interface verification.
var (
	_ ldcurate.RecordStore   = (*RecordStore)(nil)
	_ ldcurate.RecordService = (*RecordService)(nil)
)

// RecordStore implements ldcurate.RecordStore on a single transaction.
// Saved records become visible on Commit; Abort rolls them back.
// Saving a record whose ID is already indexed replaces it.
type RecordStore struct {
	db *DB

	mu sync.Mutex
	tx *sql.Tx
}

// NewRecordStore creates a new RecordStore.
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db}
}

// Save indexes the record inside the pending transaction.
func (s *RecordStore) Save(ctx context.Context, record *ldcurate.Record) error {
	if record == nil {
		return ldcurate.Errorf(ldcurate.EINVALID, "record required")
	}
	if record.ID == "" || record.URL == "" {
		return ldcurate.Errorf(ldcurate.EINVALID, "record id and url required")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		tx, err := s.db.BeginTx(ctx)
		if err != nil {
			return err
		}
		s.tx = tx
	}

	_, err = s.tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO records (id, run_id, url, status, schema_type, score, passed, content_hash, scraped_at, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.RunID, record.URL, record.Status, record.SchemaType, record.Score,
		record.Passed, record.ContentHash, record.ScrapedAt.UTC().Format(time.RFC3339), string(data))
	return err
}

// Commit makes saved records visible. Committing with nothing saved is a no-op.
func (s *RecordStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

// Abort discards saved records.
func (s *RecordStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

// RecordService implements ldcurate.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*ldcurate.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM records WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ldcurate.Errorf(ldcurate.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}
	return decodeRecord(data)
}

// FindRecords retrieves records matching the filter, highest score first
// and by URL among equal scores.
func (s *RecordService) FindRecords(ctx context.Context, filter ldcurate.RecordFilter) ([]*ldcurate.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT data FROM records WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.SchemaType != nil {
		query.WriteString(" AND schema_type = ?")
		args = append(args, *filter.SchemaType)
	}
	if filter.Passed != nil {
		query.WriteString(" AND passed = ?")
		args = append(args, *filter.Passed)
	}
	if filter.MinScore != nil {
		query.WriteString(" AND score >= ?")
		args = append(args, *filter.MinScore)
	}

	query.WriteString(" ORDER BY score DESC, url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*ldcurate.Record{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		r, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

func decodeRecord(data string) (*ldcurate.Record, error) {
	var r ldcurate.Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return &r, nil
}
