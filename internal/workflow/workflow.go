// Package workflow applies an accent to an application and, when asked,
// restarts the application so the change shows up.
package workflow

import (
	"context"
	"fmt"
	"time"

	"prism/internal/accent"
	"prism/internal/catalog"
	"prism/internal/debug"
	appErrors "prism/internal/errors"
)

var logf = debug.Scoped("workflow")

const (
	// DefaultPollInterval is how often a quitting application is checked.
	DefaultPollInterval = 300 * time.Millisecond
	// DefaultTimeout bounds the wait for an application to quit, measured
	// from the terminate request.
	DefaultTimeout = 7 * time.Second
)

// State is a step of an assignment.
type State int

const (
	Idle State = iota
	Writing
	Succeeded
	Failed
	Terminating
	Relaunching
	Done
)

var stateNames = map[State]string{
	Idle:        "idle",
	Writing:     "writing",
	Succeeded:   "succeeded",
	Failed:      "failed",
	Terminating: "terminating",
	Relaunching: "relaunching",
	Done:        "done",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Writer stores an accent in a preference domain.
type Writer interface {
	Write(ctx context.Context, domain string, v accent.Value) error
}

// Process is a running application.
type Process interface {
	Terminate(ctx context.Context) error
	Terminated() bool
}

// Workspace finds and launches applications.
type Workspace interface {
	Running(ctx context.Context, domain string) (Process, bool)
	Launch(ctx context.Context, path string) error
}

// Clock is the time source for the quit poll.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock is the wall clock.
var RealClock Clock = realClock{}

// Result describes how an assignment ended.
type Result struct {
	State State
	// Written reports that the preference write succeeded.
	Written bool
	// Relaunched reports that the application was quit and opened again.
	Relaunched bool
	// TimedOut reports that the application did not quit in time. The
	// write is kept.
	TimedOut bool
	// Err is the failure that ended the assignment, if any. Relaunch
	// problems are reported here without failing the assignment.
	Err error
}

// Assigner runs accent assignments.
type Assigner struct {
	Writer    Writer
	Workspace Workspace
	// RelaunchEnabled is consulted after every successful write.
	RelaunchEnabled func(ctx context.Context) bool
	PollInterval    time.Duration
	Timeout         time.Duration
	Clock           Clock
	// SelfDomain is never modified.
	SelfDomain string
	// OnTransition, if set, is called on every state change.
	OnTransition func(State)
}

func (a *Assigner) transition(domain string, s State) {
	logf("%s: %s", domain, s)
	if a.OnTransition != nil {
		a.OnTransition(s)
	}
}

func (a *Assigner) clock() Clock {
	if a.Clock != nil {
		return a.Clock
	}
	return RealClock
}

func (a *Assigner) pollInterval() time.Duration {
	if a.PollInterval > 0 {
		return a.PollInterval
	}
	return DefaultPollInterval
}

func (a *Assigner) timeout() time.Duration {
	if a.Timeout > 0 {
		return a.Timeout
	}
	return DefaultTimeout
}

// Assign writes v for app. On success app.Accent is updated; on failure it
// is left alone and the returned error carries errors.CodeWriteFailed.
// Relaunch outcomes never fail the assignment and are reported in Result.
func (a *Assigner) Assign(ctx context.Context, app *catalog.Application, v accent.Value) (Result, error) {
	domain := app.Domain
	if domain == a.SelfDomain {
		return Result{State: Idle}, nil
	}

	a.transition(domain, Writing)
	if err := a.Writer.Write(ctx, domain, v); err != nil {
		if !appErrors.IsCode(err, appErrors.CodeWriteFailed) {
			err = appErrors.New(appErrors.CodeWriteFailed,
				fmt.Sprintf("set %s accent for %s", v.ColorName(), domain), err)
		}
		a.transition(domain, Failed)
		return Result{State: Failed, Err: err}, err
	}
	app.Accent = v
	a.transition(domain, Succeeded)

	res := Result{State: Succeeded, Written: true}
	if a.Workspace == nil || a.RelaunchEnabled == nil || !a.RelaunchEnabled(ctx) {
		return a.finish(domain, res), nil
	}
	proc, running := a.Workspace.Running(ctx, domain)
	if !running {
		return a.finish(domain, res), nil
	}
	return a.relaunch(ctx, app, proc, res)
}

func (a *Assigner) relaunch(ctx context.Context, app *catalog.Application, proc Process, res Result) (Result, error) {
	clock := a.clock()
	a.transition(app.Domain, Terminating)

	requested := clock.Now()
	if err := proc.Terminate(ctx); err != nil {
		logf("%s: terminate request: %v", app.Domain, err)
	}

	for !proc.Terminated() {
		if clock.Now().Sub(requested) >= a.timeout() {
			res.TimedOut = true
			res.Err = appErrors.New(appErrors.CodeQuitTimeout,
				fmt.Sprintf("%s did not quit within %s", app.DisplayName, a.timeout()), nil)
			return a.finish(app.Domain, res), nil
		}
		select {
		case <-ctx.Done():
			res.Err = ctx.Err()
			return a.finish(app.Domain, res), ctx.Err()
		case <-clock.After(a.pollInterval()):
		}
	}

	a.transition(app.Domain, Relaunching)
	if err := a.Workspace.Launch(ctx, app.Path); err != nil {
		logf("%s: relaunch: %v", app.Domain, err)
		res.Err = fmt.Errorf("relaunch %s: %w", app.DisplayName, err)
	} else {
		res.Relaunched = true
	}
	return a.finish(app.Domain, res), nil
}

func (a *Assigner) finish(domain string, res Result) Result {
	res.State = Done
	a.transition(domain, Done)
	return res
}
