package fund

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// SeedProvider fetches initial records from an external generator. Its
// output is untrusted and goes through the same validation as Store.Load.
type SeedProvider interface {
	FetchSeedRecords(ctx context.Context) ([]Draft, error)
}

// Sink persists the fund as a single text blob.
type Sink interface {
	// ReadBlob returns the stored blob, ok is false when nothing was stored yet.
	ReadBlob(ctx context.Context) (blob string, ok bool, err error)
	// WriteBlob replaces the stored blob.
	WriteBlob(ctx context.Context, blob string) error
}

// Clearer is implemented by sinks that can forget their blob.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Options configures a Fund.
type Options struct {
	Sink  Sink         // required
	Seeds SeedProvider // optional, no seeding when nil
	IDs   IDGenerator  // defaults to RandomIDs
	// Strict rejects negative amounts with ErrReconciliationInputInvalid
	// instead of only flagging them.
	Strict bool
	Logger *slog.Logger
}

// Fund is the controller of a community fund: it owns the record store,
// recomputes the projection after every change and writes it through to the sink.
// A Fund is safe for concurrent use.
type Fund struct {
	mu     sync.Mutex
	store  *Store
	sink   Sink
	seeds  SeedProvider
	strict bool
	logger *slog.Logger

	view Projection
	err  error // degradation of the last load, if any
}

// Open loads a fund.
//
// A blob found in the sink is used as the initial record set. Otherwise the
// records are fetched from the seed provider. Open never fails: when neither
// source yields valid records the fund starts empty and Err reports why.
func Open(ctx context.Context, opts Options) *Fund {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	f := &Fund{
		store:  NewStore(opts.IDs),
		sink:   opts.Sink,
		seeds:  opts.Seeds,
		strict: opts.Strict,
		logger: logger.With("component", "fund"),
	}
	f.store.logger = logger.With("component", "store")

	if f.loadBlob(ctx) {
		f.refresh(ctx)
		return f
	}
	if f.err = f.loadSeeds(ctx); f.err != nil {
		// Degraded: the stored blob, if any, is left as is for the next Open.
		f.reconcile(ctx)
		return f
	}
	f.refresh(ctx)
	return f
}

// loadBlob loads the sink's blob, reports whether the store was loaded.
func (f *Fund) loadBlob(ctx context.Context) bool {
	if f.sink == nil {
		return false
	}
	blob, ok, err := f.sink.ReadBlob(ctx)
	if err != nil {
		f.logger.WarnContext(ctx, "could not read stored fund", "error", err)
		return false
	}
	if !ok {
		return false
	}
	drafts, err := UnmarshalRecords(blob)
	if err != nil {
		f.logger.WarnContext(ctx, "failed to parse stored fund", "error", err)
		return false
	}
	if _, err := f.store.Load(drafts); err != nil {
		f.logger.WarnContext(ctx, "stored fund is invalid", "error", err)
		return false
	}
	f.logger.InfoContext(ctx, "fund loaded from storage", "records", f.store.Len())
	return true
}

// loadSeeds replaces the store content with seed records. On failure the store is left unchanged.
func (f *Fund) loadSeeds(ctx context.Context) error {
	if f.seeds == nil {
		f.store.Load(nil)
		return nil
	}
	drafts, err := f.seeds.FetchSeedRecords(ctx)
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to fetch seed records", "error", err)
		return fmt.Errorf("unable to generate fund data: %w", err)
	}
	if _, err := f.store.Load(drafts); err != nil {
		f.logger.ErrorContext(ctx, "seed records rejected", "error", err)
		return err
	}
	f.logger.InfoContext(ctx, "fund seeded", "records", f.store.Len())
	return nil
}

// Err returns why the last load degraded to an empty fund, or nil.
func (f *Fund) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// View returns the current projection of the fund.
func (f *Fund) View() Projection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

// Get returns the record id as last reconciled.
func (f *Fund) Get(id string) (Record, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(id)
}

func (f *Fund) get(id string) (Record, bool) {
	for _, r := range f.view.Records {
		if r.ID == id {
			return r.clone(), true
		}
	}
	return Record{}, false
}

// Create adds a record to the fund.
func (f *Fund) Create(ctx context.Context, u User, d Draft) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authorize(u, "create"); err != nil {
		return Record{}, err
	}
	if err := f.check(d.apply(Record{})); err != nil {
		return Record{}, err
	}
	r, err := f.store.Create(d)
	if err != nil {
		return Record{}, err
	}
	f.logger.InfoContext(ctx, "record created", "id", r.ID, "month", r.Period, "user", u.Name)
	f.refresh(ctx)
	rec, _ := f.get(r.ID)
	return rec, nil
}

// Update patches the record id.
func (f *Fund) Update(ctx context.Context, u User, id string, patch Draft) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authorize(u, "update"); err != nil {
		return Record{}, err
	}
	current, ok := f.store.Get(id)
	if !ok {
		return Record{}, fmt.Errorf("update %q: %w", id, ErrRecordNotFound)
	}
	if err := f.check(patch.apply(current)); err != nil {
		return Record{}, err
	}
	r, err := f.store.Update(id, patch)
	if err != nil {
		return Record{}, err
	}
	f.logger.InfoContext(ctx, "record updated", "id", r.ID, "month", r.Period, "revision", r.Revision, "user", u.Name)
	f.refresh(ctx)
	rec, _ := f.get(r.ID)
	return rec, nil
}

// Delete removes the record id. A non zero revision must match the record's.
func (f *Fund) Delete(ctx context.Context, u User, id string, revision int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authorize(u, "delete"); err != nil {
		return err
	}
	if err := f.store.DeleteAt(id, revision); err != nil {
		return err
	}
	f.logger.InfoContext(ctx, "record deleted", "id", id, "user", u.Name)
	f.refresh(ctx)
	return nil
}

// Reset forgets the stored fund and loads fresh seed records.
// When no seed records can be loaded the fund and its storage are left unchanged.
func (f *Fund) Reset(ctx context.Context, u User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authorize(u, "reset"); err != nil {
		return err
	}
	if err := f.loadSeeds(ctx); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	f.err = nil
	if c, ok := f.sink.(Clearer); ok {
		if err := c.Clear(ctx); err != nil {
			f.logger.WarnContext(ctx, "could not clear stored fund", "error", err)
		}
	}
	f.refresh(ctx)
	return nil
}

func (f *Fund) authorize(u User, op string) error {
	if !u.CanEdit() {
		return fmt.Errorf("%s as %s: %w", op, u.Role, ErrForbidden)
	}
	return nil
}

// check applies strict validation to the record as it would be after the mutation.
func (f *Fund) check(r Record) error {
	if !f.strict {
		return nil
	}
	return Check(r)
}

// reconcile recomputes the projection of the store.
func (f *Fund) reconcile(ctx context.Context) {
	f.view = Reconcile(f.store.Records())
	for _, n := range f.view.Notices {
		f.logger.WarnContext(ctx, "record notice", "id", n.RecordID, "month", n.Period, "message", n.Message)
	}
}

// refresh reconciles the store and writes the result through to the sink.
func (f *Fund) refresh(ctx context.Context) {
	f.reconcile(ctx)
	if f.sink == nil {
		return
	}
	blob, err := MarshalRecords(f.view.Records)
	if err == nil {
		err = f.sink.WriteBlob(ctx, blob)
	}
	if err != nil {
		f.logger.ErrorContext(ctx, "could not save fund", "error", err, "records", len(f.view.Records))
	}
}
