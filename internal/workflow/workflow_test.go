package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism/internal/accent"
	"prism/internal/catalog"
	appErrors "prism/internal/errors"
)

// fakeClock advances by the requested duration whenever After is called.
// A blocked clock never fires.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	blocked bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.blocked {
		return nil
	}
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

type fakeWriter struct {
	err   error
	calls int
}

func (w *fakeWriter) Write(context.Context, string, accent.Value) error {
	w.calls++
	return w.err
}

type fakeProcess struct {
	clock        *fakeClock
	quitAfter    int // checks before reporting terminated; <0 never
	checks       int
	terminated   int
	requestedAt  time.Time
	terminateErr error
}

func (p *fakeProcess) Terminate(context.Context) error {
	p.terminated++
	p.requestedAt = p.clock.Now()
	return p.terminateErr
}

func (p *fakeProcess) Terminated() bool {
	p.checks++
	return p.quitAfter >= 0 && p.checks > p.quitAfter
}

type fakeWorkspace struct {
	proc      *fakeProcess
	launched  []string
	launchErr error
	lookups   int
}

func (w *fakeWorkspace) Running(context.Context, string) (Process, bool) {
	w.lookups++
	if w.proc == nil {
		return nil, false
	}
	return w.proc, true
}

func (w *fakeWorkspace) Launch(_ context.Context, path string) error {
	w.launched = append(w.launched, path)
	return w.launchErr
}

type harness struct {
	assigner    *Assigner
	writer      *fakeWriter
	workspace   *fakeWorkspace
	clock       *fakeClock
	transitions []State
	app         *catalog.Application
}

func newHarness(relaunch bool) *harness {
	h := &harness{
		writer:    &fakeWriter{},
		workspace: &fakeWorkspace{},
		clock:     newFakeClock(),
		app: &catalog.Application{
			Identifier:  catalog.Identifier{Domain: "com.example.Foo", Path: "/Applications/Foo.app"},
			Name:        "Foo",
			DisplayName: "Foo",
			Accent:      accent.Blue,
		},
	}
	h.assigner = &Assigner{
		Writer:          h.writer,
		Workspace:       h.workspace,
		RelaunchEnabled: func(context.Context) bool { return relaunch },
		PollInterval:    DefaultPollInterval,
		Timeout:         DefaultTimeout,
		Clock:           h.clock,
		SelfDomain:      "io.github.prism",
		OnTransition:    func(s State) { h.transitions = append(h.transitions, s) },
	}
	return h
}

func (h *harness) running(quitAfter int) *fakeProcess {
	h.workspace.proc = &fakeProcess{clock: h.clock, quitAfter: quitAfter}
	return h.workspace.proc
}

func TestAssign_SelfDomainIsNoop(t *testing.T) {
	h := newHarness(true)
	h.app.Domain = "io.github.prism"

	res, err := h.assigner.Assign(context.Background(), h.app, accent.Red)
	require.NoError(t, err)
	assert.Equal(t, Idle, res.State)
	assert.Zero(t, h.writer.calls)
	assert.Empty(t, h.transitions)
	assert.Equal(t, accent.Blue, h.app.Accent)
}

func TestAssign_WriteFailure(t *testing.T) {
	h := newHarness(true)
	h.running(0)
	h.writer.err = errors.New("exit status 1")

	res, err := h.assigner.Assign(context.Background(), h.app, accent.Red)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeWriteFailed))
	assert.Equal(t, Failed, res.State)
	assert.False(t, res.Written)
	assert.Equal(t, accent.Blue, h.app.Accent)
	assert.Equal(t, []State{Writing, Failed}, h.transitions)
	assert.NotContains(t, h.transitions, Terminating)
	assert.Zero(t, h.workspace.lookups)
}

func TestAssign_WriteFailureKeepsExistingCode(t *testing.T) {
	h := newHarness(false)
	h.writer.err = appErrors.New(appErrors.CodeWriteFailed, "set red accent for com.example.Foo", nil)

	_, err := h.assigner.Assign(context.Background(), h.app, accent.Red)
	assert.Equal(t, "set red accent for com.example.Foo", err.Error())
}

func TestAssign_RelaunchDisabled(t *testing.T) {
	h := newHarness(false)
	h.running(0)

	res, err := h.assigner.Assign(context.Background(), h.app, accent.Purple)
	require.NoError(t, err)
	assert.Equal(t, Done, res.State)
	assert.True(t, res.Written)
	assert.Equal(t, accent.Purple, h.app.Accent)
	assert.Equal(t, []State{Writing, Succeeded, Done}, h.transitions)
	assert.Zero(t, h.workspace.lookups)
}

func TestAssign_NotRunning(t *testing.T) {
	h := newHarness(true)

	res, err := h.assigner.Assign(context.Background(), h.app, accent.Unset)
	require.NoError(t, err)
	assert.Equal(t, Done, res.State)
	assert.Equal(t, accent.Unset, h.app.Accent)
	assert.Equal(t, []State{Writing, Succeeded, Done}, h.transitions)
	assert.Empty(t, h.workspace.launched)
}

func TestAssign_Relaunches(t *testing.T) {
	h := newHarness(true)
	proc := h.running(3)

	res, err := h.assigner.Assign(context.Background(), h.app, accent.Green)
	require.NoError(t, err)
	assert.Equal(t, Done, res.State)
	assert.True(t, res.Relaunched)
	assert.False(t, res.TimedOut)
	assert.NoError(t, res.Err)
	assert.Equal(t, 1, proc.terminated)
	assert.Equal(t, []string{"/Applications/Foo.app"}, h.workspace.launched)
	assert.Equal(t, []State{Writing, Succeeded, Terminating, Relaunching, Done}, h.transitions)
	assert.Equal(t, 3*DefaultPollInterval, h.clock.Now().Sub(proc.requestedAt))
}

func TestAssign_TimesOutWithoutRelaunch(t *testing.T) {
	h := newHarness(true)
	proc := h.running(-1)

	res, err := h.assigner.Assign(context.Background(), h.app, accent.Orange)
	require.NoError(t, err)
	assert.Equal(t, Done, res.State)
	assert.True(t, res.TimedOut)
	assert.True(t, appErrors.IsCode(res.Err, appErrors.CodeQuitTimeout))
	assert.Empty(t, h.workspace.launched)
	assert.Equal(t, accent.Orange, h.app.Accent)
	assert.Equal(t, []State{Writing, Succeeded, Terminating, Done}, h.transitions)

	elapsed := h.clock.Now().Sub(proc.requestedAt)
	assert.GreaterOrEqual(t, elapsed, DefaultTimeout)
	assert.Less(t, elapsed, DefaultTimeout+DefaultPollInterval)
}

func TestAssign_TerminateErrorStillPolls(t *testing.T) {
	h := newHarness(true)
	proc := h.running(1)
	proc.terminateErr = errors.New("osascript failed")

	res, err := h.assigner.Assign(context.Background(), h.app, accent.Green)
	require.NoError(t, err)
	assert.True(t, res.Relaunched)
}

func TestAssign_LaunchFailureIsReported(t *testing.T) {
	h := newHarness(true)
	h.running(0)
	h.workspace.launchErr = errors.New("LSOpenURLsWithRole() failed")

	res, err := h.assigner.Assign(context.Background(), h.app, accent.Green)
	require.NoError(t, err)
	assert.Equal(t, Done, res.State)
	assert.False(t, res.Relaunched)
	assert.Error(t, res.Err)
}

func TestAssign_CancelledWhileWaiting(t *testing.T) {
	h := newHarness(true)
	h.running(-1)
	h.clock.blocked = true

	ctx, cancel := context.WithCancel(context.Background())
	h.assigner.OnTransition = func(s State) {
		h.transitions = append(h.transitions, s)
		if s == Terminating {
			cancel()
		}
	}

	res, err := h.assigner.Assign(ctx, h.app, accent.Green)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Done, res.State)
	assert.True(t, res.Written)
	assert.Empty(t, h.workspace.launched)
}

func TestAssign_DefaultsApplied(t *testing.T) {
	a := &Assigner{}
	assert.Equal(t, DefaultPollInterval, a.pollInterval())
	assert.Equal(t, DefaultTimeout, a.timeout())
	assert.Equal(t, RealClock, a.clock())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "terminating", Terminating.String())
	assert.Equal(t, "State(42)", State(42).String())
}
