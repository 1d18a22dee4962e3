// Package notify models the daily-checkup reminder collaborator. The
// core treats it as a black box returning a small state enumeration;
// state must be re-read on every application start rather than cached.
package notify

import (
	"context"
	"fmt"

	"daycheck/internal/core"
)

// StateKind discriminates the reminder states.
type StateKind int

const (
	// KindUnknown means the reminder subsystem could not be queried.
	KindUnknown StateKind = iota
	// KindEnabled means a daily reminder is scheduled.
	KindEnabled
	// KindDisabled means reminders are authorized but not scheduled.
	KindDisabled
	// KindUnauthorized means the user denied reminder delivery.
	KindUnauthorized
)

// State is the reminder status. Hour and Minute are meaningful only
// when Kind is KindEnabled.
type State struct {
	Kind   StateKind
	Hour   int
	Minute int
}

func Enabled(hour, minute int) State {
	return State{Kind: KindEnabled, Hour: hour, Minute: minute}
}

func Disabled() State     { return State{Kind: KindDisabled} }
func Unauthorized() State { return State{Kind: KindUnauthorized} }
func Unknown() State      { return State{Kind: KindUnknown} }

func (s State) String() string {
	switch s.Kind {
	case KindEnabled:
		return fmt.Sprintf("enabled at %02d:%02d", s.Hour, s.Minute)
	case KindDisabled:
		return "disabled"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// RatingRecorder is the slice of the repository the reminder needs to
// persist a response.
type RatingRecorder interface {
	SetToday(ctx context.Context, v core.Value) core.Rating
}

// Scheduler is the reminder port consumed by the application shell.
type Scheduler interface {
	// Status reports the current reminder state. Callers must invoke
	// this on every launch and foreground transition; cached state is
	// considered stale.
	Status(ctx context.Context) State

	// Schedule requests a daily reminder at the given wall-clock time
	// and reports the resulting state.
	Schedule(ctx context.Context, hour, minute int, repeats bool) State

	// Cancel removes any pending reminder.
	Cancel()

	// RegisterCategory declares the severity choices offered on a
	// reminder. Must be called before HandleResponse.
	RegisterCategory()

	// HandleResponse records today's rating from a reminder response
	// carrying a severity label.
	HandleResponse(ctx context.Context, label string) (core.Rating, error)
}
