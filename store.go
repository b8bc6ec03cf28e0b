package fund

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// Store holds the authoritative set of records.
//
// It only applies mutations and assigns identifiers: derived fields are left
// untouched (see Reconcile) and nothing is persisted.
type Store struct {
	records []Record // insertion order
	ids     IDGenerator
	logger  *slog.Logger
}

// NewStore creates an empty store that uses ids to identify new records.
func NewStore(ids IDGenerator) *Store {
	if ids == nil {
		ids = RandomIDs()
	}
	return &Store{
		records: make([]Record, 0),
		ids:     ids,
		logger:  slog.Default().With("component", "store"),
	}
}

// Load replaces the content of the store with seed.
//
// Every entry is validated first: if any entry misses a required field,
// nothing is loaded and the error wraps ErrSeedInvalid. Entries without an
// identifier are given a fresh one.
func (s *Store) Load(seed []Draft) ([]Record, error) {
	var errs []error
	for i, d := range seed {
		if err := validateDraft(d); err != nil {
			errs = append(errs, fmt.Errorf("seed entry #%d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrSeedInvalid, errors.Join(errs...))
	}

	records := make([]Record, 0, len(seed))
	for _, d := range seed {
		r := s.materialize(d)
		records = s.upsert(records, r)
	}
	s.records = records
	return s.Records(), nil
}

// Create inserts a new record built from d and returns it.
func (s *Store) Create(d Draft) (Record, error) {
	if err := validateDraft(d); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrDraftInvalid, err)
	}
	d.ID = ""
	r := s.materialize(d)
	s.records = s.upsert(s.records, r)
	return r.clone(), nil
}

// Update merges the set fields of patch onto the record id.
//
// The identifier of a record is immutable, patch.ID is ignored. When
// patch.Revision is not 0 it must match the current revision of the record.
// The merged record must still be a valid draft, else nothing changes.
func (s *Store) Update(id string, patch Draft) (Record, error) {
	i := s.index(id)
	if i < 0 {
		return Record{}, fmt.Errorf("update %q: %w", id, ErrRecordNotFound)
	}
	current := s.records[i]
	if patch.Revision != 0 && patch.Revision != current.Revision {
		return Record{}, fmt.Errorf("update %q at revision %d, current is %d: %w", id, patch.Revision, current.Revision, ErrConflict)
	}
	r := patch.apply(current.clone())
	if err := validateDraft(DraftOf(r)); err != nil {
		return Record{}, fmt.Errorf("update %q: %w: %w", id, ErrDraftInvalid, err)
	}
	r.ID = current.ID
	r.Revision = current.Revision + 1
	s.records[i] = r
	return r.clone(), nil
}

// Delete removes the record id.
func (s *Store) Delete(id string) error {
	return s.DeleteAt(id, 0)
}

// DeleteAt removes the record id if its revision is still revision.
// A 0 revision skips the check.
func (s *Store) DeleteAt(id string, revision int64) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("delete %q: %w", id, ErrRecordNotFound)
	}
	if revision != 0 && s.records[i].Revision != revision {
		return fmt.Errorf("delete %q at revision %d, current is %d: %w", id, revision, s.records[i].Revision, ErrConflict)
	}
	s.records = slices.Delete(s.records, i, i+1)
	return nil
}

// Get returns a copy of the record id.
func (s *Store) Get(id string) (Record, bool) {
	i := s.index(id)
	if i < 0 {
		return Record{}, false
	}
	return s.records[i].clone(), true
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Records returns a snapshot of all records in insertion order.
func (s *Store) Records() []Record {
	snapshot := make([]Record, len(s.records))
	for i, r := range s.records {
		snapshot[i] = r.clone()
	}
	return snapshot
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.records, func(r Record) bool { return r.ID == id })
}

// materialize turns a validated draft into a record.
func (s *Store) materialize(d Draft) Record {
	r := d.apply(Record{})
	r.ID = d.ID
	if r.ID == "" {
		r.ID = s.ids.NewID()
	}
	r.Revision = d.Revision
	if r.Revision == 0 {
		r.Revision = 1
	}
	return r
}

// upsert appends r to records, or replaces the record with the same ID.
// Last write wins, the two records are never merged.
func (s *Store) upsert(records []Record, r Record) []Record {
	i := slices.IndexFunc(records, func(x Record) bool { return x.ID == r.ID })
	if i < 0 {
		return append(records, r)
	}
	s.logger.Warn("record id collision, replacing existing record", "id", r.ID, "month", r.Period)
	records[i] = r
	return records
}
