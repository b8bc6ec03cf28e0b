package fund

import (
	"context"
	"errors"
)

// ptr is a helper for test to build drafts.
func ptr[T any](v T) *T { return &v }

// rec is a helper for test to create a direct entry record.
func rec(id string, p Period, collected, given int64, contributors ...string) Record {
	return Record{ID: id, Period: p, Contributors: contributors, AmountCollected: PKR(collected), AmountGiven: PKR(given)}
}

// draft is a helper for test to create a complete draft.
func draft(p Period, collected int64, contributors ...string) Draft {
	if contributors == nil {
		contributors = []string{}
	}
	return Draft{Period: &p, Contributors: contributors, AmountCollected: ptr(PKR(collected))}
}

// memSink is a Sink keeping the blob in memory and counting writes.
type memSink struct {
	blob   string
	ok     bool
	writes int
	err    error
}

func (s *memSink) ReadBlob(context.Context) (string, bool, error) { return s.blob, s.ok, s.err }
func (s *memSink) WriteBlob(_ context.Context, blob string) error {
	if s.err != nil {
		return s.err
	}
	s.blob, s.ok = blob, true
	s.writes++
	return nil
}
func (s *memSink) Clear(context.Context) error {
	s.blob, s.ok = "", false
	return nil
}

// seedFunc adapts a function to a SeedProvider.
type seedFunc func() ([]Draft, error)

func (f seedFunc) FetchSeedRecords(context.Context) ([]Draft, error) { return f() }

var errUnavailable = errors.New("generator unavailable")
