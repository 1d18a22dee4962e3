package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"daycheck/internal/core"
)

// checkInterval bounds how late a reminder can fire after its
// wall-clock time.
const checkInterval = 20 * time.Second

// Reminder is an in-process Scheduler. It ticks until the configured
// wall-clock time passes, logs the checkup prompt, and records ratings
// handed back through HandleResponse.
type Reminder struct {
	recorder   RatingRecorder
	authorized bool
	now        func() time.Time

	mu         sync.Mutex
	pending    *pendingSchedule
	categories map[string]core.Value
	lastFired  core.Date
	stop       chan struct{}
}

type pendingSchedule struct {
	hour, minute int
	repeats      bool
}

type ReminderOption func(*Reminder)

// WithAuthorization sets whether the user granted reminder delivery.
// Tests use this to exercise the unauthorized path.
func WithAuthorization(granted bool) ReminderOption {
	return func(r *Reminder) { r.authorized = granted }
}

// WithReminderClock overrides the time source.
func WithReminderClock(now func() time.Time) ReminderOption {
	return func(r *Reminder) { r.now = now }
}

var _ Scheduler = (*Reminder)(nil)

func NewReminder(recorder RatingRecorder, opts ...ReminderOption) *Reminder {
	r := &Reminder{
		recorder:   recorder,
		authorized: true,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Status reports the live reminder state; nothing is cached across
// calls.
func (r *Reminder) Status(ctx context.Context) State {
	if !r.authorized {
		return Unauthorized()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		return Disabled()
	}
	return Enabled(r.pending.hour, r.pending.minute)
}

// Schedule arranges a daily checkup reminder at hour:minute. Any
// previous schedule is replaced.
func (r *Reminder) Schedule(ctx context.Context, hour, minute int, repeats bool) State {
	if !r.authorized {
		return Unauthorized()
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		slog.Warn("Rejecting reminder schedule", "hour", hour, "minute", minute)
		return Unknown()
	}

	r.mu.Lock()
	r.stopLocked()
	r.pending = &pendingSchedule{hour: hour, minute: minute, repeats: repeats}
	stop := make(chan struct{})
	r.stop = stop
	r.mu.Unlock()

	go r.run(stop)

	slog.Info("Daily checkup scheduled", "hour", hour, "minute", minute, "repeats", repeats)
	return Enabled(hour, minute)
}

// Cancel removes the pending reminder, if any.
func (r *Reminder) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.pending = nil
	slog.Info("Daily checkup cancelled")
}

func (r *Reminder) stopLocked() {
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
}

// RegisterCategory declares one reminder action per severity value.
func (r *Reminder) RegisterCategory() {
	categories := make(map[string]core.Value, len(core.Values()))
	for _, v := range core.Values() {
		categories[v.Label()] = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = categories
}

// HandleResponse resolves the selected severity label and persists it
// as today's rating.
func (r *Reminder) HandleResponse(ctx context.Context, label string) (core.Rating, error) {
	r.mu.Lock()
	v, ok := r.categories[label]
	r.mu.Unlock()

	if !ok {
		return core.Rating{}, fmt.Errorf("reminder response %q: %w", label, core.ErrUnknownLabel)
	}

	rating := r.recorder.SetToday(ctx, v)
	slog.InfoContext(ctx, "Rating recorded from reminder", "rating", label)
	return rating, nil
}

func (r *Reminder) run(stop chan struct{}) {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.maybeFire()
		case <-stop:
			return
		}
	}
}

func (r *Reminder) maybeFire() {
	now := r.now()
	today := core.DateOf(now)

	r.mu.Lock()
	p := r.pending
	due := p != nil &&
		!r.lastFired.Equal(today) &&
		(now.Hour() > p.hour || (now.Hour() == p.hour && now.Minute() >= p.minute))
	if due {
		r.lastFired = today
		if !p.repeats {
			r.pending = nil
			r.stopLocked()
		}
	}
	r.mu.Unlock()

	if due {
		// The prompt is the whole notification: the presentation layer
		// watches the log stream (or the repository) for the answer.
		slog.Info("How are your symptoms today?", "date", today.String())
	}
}
