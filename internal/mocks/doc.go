// Package mocks provides shared test doubles for the report store and the
// report cache.
//
// Mocks follow one pattern: a function field per interface method
// overrides the default behavior, and calls are tracked for verification.
//
//	st := &mocks.MockReportStore{
//	    FetchTasksInRangeFn: func(ctx context.Context, start, end time.Time, q string) ([]domain.Task, error) {
//	        return nil, store.ErrStoreUnavailable
//	    },
//	}
//
// MockReportStore counts every call against the perf.Collector carried by
// the context, so query-count assertions behave as they would against SQL.
package mocks
