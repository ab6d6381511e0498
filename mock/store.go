package mock

import (
	"context"

	"github.com/fwojciec/ldcurate"
)

var _ ldcurate.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of ldcurate.RecordStore.
type RecordStore struct {
	SaveFn   func(ctx context.Context, record *ldcurate.Record) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *RecordStore) Save(ctx context.Context, record *ldcurate.Record) error {
	return s.SaveFn(ctx, record)
}

func (s *RecordStore) Commit() error {
	return s.CommitFn()
}

func (s *RecordStore) Abort() error {
	return s.AbortFn()
}
