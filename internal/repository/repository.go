// Package repository owns the canonical in-memory rating collection and
// composes the store, bucketing, statistics and CSV codec into the
// operations the UI and reminder collaborator consume.
package repository

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"daycheck/internal/core"
	"daycheck/internal/csvio"
)

// Store is the durable half of the repository.
type Store interface {
	Save(ctx context.Context, r core.Rating) error
	All(ctx context.Context) ([]core.Rating, error)
	ByDate(ctx context.Context, date core.Date) (core.Rating, bool, error)
}

// Repository keeps the published collection consistent with the store:
// every write goes through the store and is followed by a reload, never
// an in-place merge. Read operations never fail; store errors degrade
// to the last known state and are routed to the error reporter.
type Repository struct {
	store     Store
	now       func() time.Time
	reportErr func(error)

	mu        sync.RWMutex
	ratings   []core.Rating
	listeners []func([]core.Rating)
}

type Option func(*Repository)

// WithClock overrides the time source. Used by tests to pin "today".
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithErrorReporter installs a callback receiving store failures that
// the repository absorbed. Defaults to logging only.
func WithErrorReporter(report func(error)) Option {
	return func(r *Repository) { r.reportErr = report }
}

// New builds a repository and loads the initial collection from the
// store. A failing initial load yields an empty collection.
func New(store Store, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.reload(context.Background())
	return r
}

// OnChange registers a callback invoked with the new collection after
// every successful reload. Callbacks run on the writing goroutine.
func (r *Repository) OnChange(fn func([]core.Rating)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Today returns the rating recorded for the current date, or an
// unrated, empty-notes default when no record exists yet.
func (r *Repository) Today() core.Rating {
	today := core.DateOf(r.now())

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rating := range r.ratings {
		if rating.Date.Equal(today) {
			return rating
		}
	}
	return core.Rating{Date: today}
}

// SetToday records a severity for the current date, replacing any
// existing record for today, then reloads from the store.
func (r *Repository) SetToday(ctx context.Context, v core.Value) core.Rating {
	rating := core.Rating{Date: core.DateOf(r.now()), Value: v.Ptr()}
	r.Set(ctx, rating)
	return rating
}

// Set upserts the rating for its date. The stored record is replaced
// wholesale; notes and value are never merged with the previous entry.
func (r *Repository) Set(ctx context.Context, rating core.Rating) {
	if err := r.store.Save(ctx, rating); err != nil {
		r.report(err)
	}
	r.reload(ctx)
}

// All returns a copy of the current collection.
func (r *Repository) All() []core.Rating {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.Rating, len(r.ratings))
	copy(out, r.ratings)
	return out
}

// GroupedByMonth returns the history ordering: newest month first,
// dates ascending within each month.
func (r *Repository) GroupedByMonth() [][]core.Rating {
	return core.GroupedByMonth(r.All())
}

// BucketedByMonth returns the month-start keyed buckets.
func (r *Repository) BucketedByMonth() map[core.Date][]core.Rating {
	return core.BucketByMonth(r.All())
}

// WeekdayBuckets returns the seven ISO weekday buckets.
func (r *Repository) WeekdayBuckets() [7][]core.Rating {
	return core.WeekdayBuckets(r.All())
}

// Average returns the mean severity of all rated days, NaN when no day
// has been rated yet.
func (r *Repository) Average() float64 {
	return core.Average(r.All())
}

// ValueTotals returns per-severity counts in canonical order.
func (r *Repository) ValueTotals() []core.ValueCount {
	return core.ValueTotals(r.All())
}

// ExportCSV renders the collection in the CSV interchange form.
func (r *Repository) ExportCSV() string {
	return csvio.Export(r.All())
}

// ImportCSV parses the CSV text, persists every parsed rating and
// replaces the in-memory collection with the parsed set. A malformed
// line fails the whole import and leaves the collection untouched.
// Durable records for dates absent from the import are not removed from
// the store; they reappear on the next reload from disk. Likewise,
// duplicate rows for one date all stay in memory as parsed; the store
// upserts so only the last survives a reload.
func (r *Repository) ImportCSV(ctx context.Context, text string) error {
	ratings, err := csvio.Import(text)
	if err != nil {
		return err
	}

	for _, rating := range ratings {
		if err := r.store.Save(ctx, rating); err != nil {
			r.report(err)
		}
	}

	r.mu.Lock()
	r.ratings = ratings
	listeners, snapshot := r.snapshotLocked()
	r.mu.Unlock()

	notify(listeners, snapshot)

	slog.InfoContext(ctx, "History imported", "count", len(ratings))
	return nil
}

// Reload re-reads the collection from the store. Exposed for callers
// that mutate the store out of band.
func (r *Repository) Reload(ctx context.Context) {
	r.reload(ctx)
}

func (r *Repository) reload(ctx context.Context) {
	ratings, err := r.store.All(ctx)
	if err != nil {
		// Keep the last known collection rather than publishing an
		// empty history over a transient store failure.
		r.report(err)
		return
	}

	r.mu.Lock()
	r.ratings = ratings
	listeners, snapshot := r.snapshotLocked()
	r.mu.Unlock()

	notify(listeners, snapshot)
}

func (r *Repository) snapshotLocked() ([]func([]core.Rating), []core.Rating) {
	listeners := make([]func([]core.Rating), len(r.listeners))
	copy(listeners, r.listeners)
	snapshot := make([]core.Rating, len(r.ratings))
	copy(snapshot, r.ratings)
	return listeners, snapshot
}

func notify(listeners []func([]core.Rating), snapshot []core.Rating) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (r *Repository) report(err error) {
	slog.Error("Rating store failure", "error", err)
	if r.reportErr != nil {
		r.reportErr(err)
	}
}
