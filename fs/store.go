// Package fs provides flat-file storage for scrape results, checkpoints
// and the input lists that drive a run.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/ldcurate"
)

// Output file names.
const (
	AcceptedFile   = "accepted.jsonl"
	RejectedFile   = "rejected.jsonl"
	CheckpointFile = "checkpoint.json"
)

// Ensure RecordStore implements ldcurate.RecordStore at compile time.
var _ ldcurate.RecordStore = (*RecordStore)(nil)

// RecordStore implements ldcurate.RecordStore with atomic update semantics.
// Records are appended as JSON lines to files in a temporary directory,
// which replaces the output directory on Commit.
type RecordStore struct {
	baseDir string
	name    string

	mu        sync.Mutex
	accepted  *os.File
	rejected  *os.File
	committed bool
}

// NewRecordStore creates a new RecordStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewRecordStore(baseDir, name string) *RecordStore {
	return &RecordStore{
		baseDir: baseDir,
		name:    name,
	}
}

// TempDir returns the directory records are written to before Commit.
func (s *RecordStore) TempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Dir returns the output directory.
func (s *RecordStore) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save appends the record to accepted.jsonl if it passed and to
// rejected.jsonl otherwise.
func (s *RecordStore) Save(ctx context.Context, record *ldcurate.Record) error {
	if record == nil {
		return ldcurate.Errorf(ldcurate.EINVALID, "record required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return err
	}

	f := s.rejected
	if record.Passed {
		f = s.accepted
	}
	return writeLine(f, record)
}

// Checkpoint writes a snapshot of the run into the temporary directory.
func (s *RecordStore) Checkpoint(ctx context.Context, checkpoint *ldcurate.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(); err != nil {
		return err
	}
	return WriteCheckpoint(s.TempDir(), checkpoint)
}

// open creates the temporary directory and output files on first use.
// A temporary directory left behind by an earlier run is replaced.
func (s *RecordStore) open() error {
	if s.committed {
		return ldcurate.Errorf(ldcurate.ECONFLICT, "record store %q already committed", s.name)
	}
	if s.accepted != nil {
		return nil
	}

	if err := os.RemoveAll(s.TempDir()); err != nil {
		return err
	}
	if err := os.MkdirAll(s.TempDir(), 0755); err != nil {
		return err
	}

	accepted, err := os.Create(filepath.Join(s.TempDir(), AcceptedFile))
	if err != nil {
		return err
	}
	rejected, err := os.Create(filepath.Join(s.TempDir(), RejectedFile))
	if err != nil {
		_ = accepted.Close()
		return err
	}
	s.accepted, s.rejected = accepted, rejected
	return nil
}

func (s *RecordStore) close() error {
	if s.accepted == nil {
		return nil
	}
	err := errors.Join(s.accepted.Close(), s.rejected.Close())
	s.accepted, s.rejected = nil, nil
	return err
}

// Commit closes the output files and moves the temporary directory into
// place, replacing any previous output. The checkpoint of the finished
// run is dropped. Calls after a successful Commit do nothing.
func (s *RecordStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committed {
		return nil
	}

	// Commit without any Save still produces empty output files.
	if err := s.open(); err != nil {
		return err
	}
	if err := s.close(); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.TempDir(), CheckpointFile)); err != nil && !os.IsNotExist(err) {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.Dir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(s.TempDir(), s.Dir()); err != nil {
		return err
	}

	s.committed = true
	return nil
}

// Abort discards everything saved since the store was created. It does
// nothing once the store is committed.
func (s *RecordStore) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committed {
		return nil
	}

	if err := s.close(); err != nil {
		return err
	}
	return os.RemoveAll(s.TempDir())
}

func writeLine(f *os.File, v any) error {
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(f.Name()), err)
	}
	return nil
}
