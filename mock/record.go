package mock

import (
	"context"

	"github.com/fwojciec/ldcurate"
)

var _ ldcurate.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of ldcurate.RecordService.
type RecordService struct {
	FindRecordsFn    func(ctx context.Context, filter ldcurate.RecordFilter) ([]*ldcurate.Record, error)
	FindRecordByIDFn func(ctx context.Context, id string) (*ldcurate.Record, error)
}

func (s *RecordService) FindRecords(ctx context.Context, filter ldcurate.RecordFilter) ([]*ldcurate.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*ldcurate.Record, error) {
	return s.FindRecordByIDFn(ctx, id)
}
