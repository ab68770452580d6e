package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"

	"prism/internal/accent"
	"prism/internal/config"
	appErrors "prism/internal/errors"
	"prism/internal/ui"
	"prism/internal/workflow"
)

const testHome = "/Users/tester"

type recordingRunner struct {
	mu      sync.Mutex
	calls   [][]string
	outputs map[string]string
	fail    map[string]bool
}

func newRecordingRunner() *recordingRunner {
	return &recordingRunner{outputs: map[string]string{}, fail: map[string]bool{}}
}

func (r *recordingRunner) Run(_ context.Context, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string(nil), args...))
	key := strings.Join(args, " ")
	if r.fail[key] {
		return nil, errors.New("exit status 1")
	}
	return []byte(r.outputs[key]), nil
}

func (r *recordingRunner) called(args ...string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := strings.Join(args, " ")
	for _, c := range r.calls {
		if strings.Join(c, " ") == want {
			return true
		}
	}
	return false
}

type fixedRunner string

func (f fixedRunner) Run(context.Context, ...string) ([]byte, error) {
	if f == "" {
		return nil, errors.New("exit status 1")
	}
	return []byte(f), nil
}

type quitProcess struct{}

func (quitProcess) Terminate(context.Context) error { return nil }
func (quitProcess) Terminated() bool                { return true }

type fakeWorkspace struct {
	running  bool
	launched []string
}

func (w *fakeWorkspace) Running(context.Context, string) (workflow.Process, bool) {
	if !w.running {
		return nil, false
	}
	return quitProcess{}, true
}

func (w *fakeWorkspace) Launch(_ context.Context, path string) error {
	w.launched = append(w.launched, path)
	return nil
}

type fakeProgram struct {
	app  *ui.App
	runs int
}

func (p *fakeProgram) Run() (tea.Model, error) {
	p.runs++
	return p.app, nil
}

type cliHarness struct {
	app       *cliApp
	fs        billy.Filesystem
	defaults  *recordingRunner
	workspace *fakeWorkspace
	program   *fakeProgram
	out       bytes.Buffer
	errOut    bytes.Buffer
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	t.Cleanup(config.ResetForTesting(t))
	require.NoError(t, config.Set(config.KeyRelaunchPollInterval, time.Millisecond))

	h := &cliHarness{
		fs:        memfs.New(),
		defaults:  newRecordingRunner(),
		workspace: &fakeWorkspace{},
		program:   &fakeProgram{},
	}
	writeBundle(t, h.fs, "/Applications/Safari.app", "com.apple.Safari")
	writeBundle(t, h.fs, "/System/Applications/Notes.app", "com.apple.Notes")

	h.app = &cliApp{
		newServices: func(ctx context.Context, reporter ui.StartupReporter) (*services, error) {
			return newServices(ctx, serviceDeps{
				fs:        h.fs,
				home:      testHome,
				defaults:  h.defaults,
				swVers:    fixedRunner("14.4\n"),
				getconf:   fixedRunner(""),
				workspace: h.workspace,
			}, reporter)
		},
		newProgram: func(app *ui.App) programRunner {
			h.program.app = app
			return h.program
		},
	}
	return h
}

func (h *cliHarness) run(args ...string) error {
	cmd := newRootCmd(h.app)
	cmd.SetArgs(args)
	cmd.SetOut(&h.out)
	cmd.SetErr(&h.errOut)
	return cmd.ExecuteContext(context.Background())
}

func writeBundle(t *testing.T, fs billy.Filesystem, appPath, domain string) {
	t.Helper()
	data, err := plist.Marshal(map[string]any{
		"CFBundleIconFile":   "AppIcon",
		"CFBundleIdentifier": domain,
		"CFBundleName":       strings.TrimSuffix(path.Base(appPath), ".app"),
	}, plist.XMLFormat)
	require.NoError(t, err)
	require.NoError(t, util.WriteFile(fs, appPath+"/Contents/Info.plist", data, 0o644))
}

func storeAccent(t *testing.T, fs billy.Filesystem, domain string, v accent.Value) {
	t.Helper()
	ins := accent.Encode(v, accent.SchemeMulti)
	data, err := plist.Marshal(map[string]any{ins.Key: ins.Int}, plist.BinaryFormat)
	require.NoError(t, err)
	require.NoError(t, util.WriteFile(fs, testHome+"/Library/Preferences/"+domain+".plist", data, 0o644))
}

func TestRoot_VersionFlag(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("--version"))
	assert.Contains(t, h.out.String(), "prism version")
	assert.Zero(t, h.program.runs)
}

func TestRoot_RunsBrowserAndPrintsSummary(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run())
	assert.Equal(t, 1, h.program.runs)
	require.NotNil(t, h.program.app)
	assert.Contains(t, h.out.String(), "No accents changed")
}

func TestRoot_RejectsArguments(t *testing.T) {
	h := newCLIHarness(t)
	assert.Error(t, h.run("bogus"))
}

func TestList_Table(t *testing.T) {
	h := newCLIHarness(t)
	storeAccent(t, h.fs, "com.apple.Safari", accent.Purple)

	require.NoError(t, h.run("list"))
	out := h.out.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "com.apple.Safari")
	assert.Contains(t, out, "purple")
	assert.Contains(t, out, "Notes")
}

func TestList_JSONWithFilters(t *testing.T) {
	h := newCLIHarness(t)
	storeAccent(t, h.fs, "com.apple.Safari", accent.Purple)

	require.NoError(t, h.run("list", "--customized", "--json"))
	var apps []map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, "com.apple.Safari", apps[0]["domain"])
	assert.Equal(t, "purple", apps[0]["accent"])
}

func TestList_SearchWithoutMatches(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("list", "--search", "zzz"))
	assert.Contains(t, h.out.String(), "No applications found")

	h.out.Reset()
	require.NoError(t, h.run("list", "--search", "zzz", "--json"))
	assert.Equal(t, "[]\n", h.out.String())
}

func TestList_UnknownCategory(t *testing.T) {
	h := newCLIHarness(t)
	err := h.run("list", "--category", "favorites")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestGet(t *testing.T) {
	h := newCLIHarness(t)
	storeAccent(t, h.fs, "com.apple.Safari", accent.Orange)

	require.NoError(t, h.run("get", "com.example.Missing"))
	assert.Equal(t, "default\n", h.out.String())

	h.out.Reset()
	require.NoError(t, h.run("get", "com.apple.Safari", "--json"))
	var report map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &report))
	assert.Equal(t, "orange", report["accent"])
}

func TestSet_WritesPreference(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("set", "com.apple.Safari", "purple"))

	want := accent.Encode(accent.Purple, accent.SchemeMulti)
	assert.True(t, h.defaults.called("write", "com.apple.Safari", want.Key, "-int", strconv.Itoa(want.Int)))
	assert.Contains(t, h.out.String(), "Set Safari to purple")
	assert.Empty(t, h.workspace.launched)
}

func TestSet_Relaunches(t *testing.T) {
	h := newCLIHarness(t)
	h.workspace.running = true

	require.NoError(t, h.run("set", "com.apple.Safari", "green", "--relaunch"))
	assert.Equal(t, []string{"/Applications/Safari.app"}, h.workspace.launched)
	assert.Contains(t, h.out.String(), "Relaunched Safari")
}

func TestSet_RelaunchFollowsSavedSetting(t *testing.T) {
	h := newCLIHarness(t)
	h.workspace.running = true
	h.defaults.outputs["read "+config.DefaultDomain+" shouldRelaunchApplications"] = "1\n"

	require.NoError(t, h.run("set", "com.apple.Safari", "green"))
	assert.Len(t, h.workspace.launched, 1)

	h.workspace.launched = nil
	require.NoError(t, h.run("set", "com.apple.Safari", "red", "--relaunch=false"))
	assert.Empty(t, h.workspace.launched)
}

func TestSet_JSONReport(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("set", "com.apple.Notes", "gold", "--json"))

	var report map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &report))
	assert.Equal(t, "gold", report["accent"])
	assert.Equal(t, true, report["written"])
	assert.Equal(t, "done", report["state"])
}

func TestSet_Errors(t *testing.T) {
	h := newCLIHarness(t)

	err := h.run("set", "com.apple.Safari", "magenta")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidAccent))
	assert.Equal(t, 2, exitCode(err))

	err = h.run("set", "com.example.Missing", "red")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeNotFound))
	assert.Equal(t, 1, exitCode(err))

	h.defaults.fail["write com.apple.Safari AppleAccentColor -int "+strconv.Itoa(accent.Encode(accent.Red, accent.SchemeMulti).Int)] = true
	err = h.run("set", "com.apple.Safari", "red")
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeWriteFailed))
}

func TestReset_DeletesKeys(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("reset", "com.apple.Safari"))

	assert.True(t, h.defaults.called("delete", "com.apple.Safari", accent.KeyHighlightColor))
	assert.True(t, h.defaults.called("delete", "com.apple.Safari", accent.KeyAccentColor))
	assert.Contains(t, h.out.String(), "Reset Safari to the system accent")
}

func TestMatch(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("match", "#ff0000"))
	assert.Contains(t, h.out.String(), "red")

	h.out.Reset()
	require.NoError(t, h.run("match", "808080", "--json"))
	var report map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &report))
	assert.Equal(t, "graphite", report["accent"])
	assert.Equal(t, "#808080", report["input"])

	err := h.run("match", "not-a-color")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestRelaunch(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("relaunch"))
	assert.Contains(t, h.out.String(), "Relaunch is off")

	h.defaults.outputs["read "+config.DefaultDomain+" shouldRelaunchApplications"] = "1\n"
	h.out.Reset()
	require.NoError(t, h.run("relaunch", "on"))
	assert.True(t, h.defaults.called("write", config.DefaultDomain, "shouldRelaunchApplications", "-bool", "true"))
	assert.Contains(t, h.out.String(), "Relaunch is on")

	err := h.run("relaunch", "sometimes")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestRelaunch_DomainFlag(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("--domain", "com.example.prism", "relaunch", "off"))
	assert.True(t, h.defaults.called("write", "com.example.prism", "shouldRelaunchApplications", "-bool", "false"))
}

func TestSystem(t *testing.T) {
	h := newCLIHarness(t)
	green := accent.Encode(accent.Green, accent.SchemeMulti)
	h.defaults.outputs["read -g "+green.Key] = strconv.Itoa(green.Int) + "\n"

	require.NoError(t, h.run("system"))
	assert.Contains(t, h.out.String(), "green")
	assert.Contains(t, h.out.String(), "modern-multi")
}

func TestSchemeFlag(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, h.run("--scheme", "binary", "system", "--json"))
	var report map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &report))
	assert.Equal(t, "binary", report["capability"])

	h2 := newCLIHarness(t)
	err := h2.run("--scheme", "rainbow", "system")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, 1, exitCode(appErrors.New(appErrors.CodeWriteFailed, "write", nil)))
	assert.Equal(t, 2, exitCode(appErrors.New(appErrors.CodeInvalidAccent, "bad", nil)))
	assert.Equal(t, 2, exitCode(appErrors.New(appErrors.CodeConfigurationError, "bad", nil)))
}
