package defaults

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"

	"prism/internal/accent"
	appErrors "prism/internal/errors"
)

const testHome = "/Users/tester"

// recordingRunner captures argument vectors and replies from a table keyed by
// the joined arguments.
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
		return nil, appErrors.New(appErrors.CodeCLIFailed, "exit status 1", errors.New("exit status 1"))
	}
	return []byte(r.outputs[key]), nil
}

func writePlist(t *testing.T, fs billy.Filesystem, name string, values map[string]any, format int) {
	t.Helper()
	data, err := plist.Marshal(values, format)
	require.NoError(t, err)
	require.NoError(t, util.WriteFile(fs, name, data, 0o644))
}

func userPlist(domain string) string {
	return testHome + "/Library/Preferences/" + domain + ".plist"
}

func sandboxPlist(domain string) string {
	return testHome + "/Library/Containers/" + domain + "/Data/Library/Preferences/" + domain + ".plist"
}

func TestStoreRead_UserLibrary(t *testing.T) {
	fs := memfs.New()
	writePlist(t, fs, userPlist("com.example.Foo"), map[string]any{accent.KeyAccentColor: 3}, plist.XMLFormat)

	s := NewStore(fs, testHome, newRecordingRunner(), accent.SchemeMulti)
	got := s.Read("com.example.Foo")
	require.NotNil(t, got)
	assert.Equal(t, 3, *got)
	assert.Equal(t, accent.Green, s.Accent("com.example.Foo"))
}

func TestStoreRead_SandboxWins(t *testing.T) {
	fs := memfs.New()
	writePlist(t, fs, userPlist("com.example.Foo"), map[string]any{accent.KeyAccentColor: 3}, plist.XMLFormat)
	writePlist(t, fs, sandboxPlist("com.example.Foo"), map[string]any{accent.KeyAccentColor: -1}, plist.BinaryFormat)

	s := NewStore(fs, testHome, newRecordingRunner(), accent.SchemeMulti)
	assert.Equal(t, accent.Graphite, s.Accent("com.example.Foo"))
}

func TestStoreRead_UnparseableSandboxHidesUserFile(t *testing.T) {
	fs := memfs.New()
	writePlist(t, fs, userPlist("com.example.Foo"), map[string]any{accent.KeyAccentColor: 3}, plist.XMLFormat)
	require.NoError(t, util.WriteFile(fs, sandboxPlist("com.example.Foo"), []byte("not a plist"), 0o644))

	s := NewStore(fs, testHome, newRecordingRunner(), accent.SchemeMulti)
	assert.Nil(t, s.Read("com.example.Foo"))
	assert.Equal(t, accent.Unset, s.Accent("com.example.Foo"))
}

func TestStoreRead_AbsentOrWrongType(t *testing.T) {
	fs := memfs.New()
	writePlist(t, fs, userPlist("com.example.Str"), map[string]any{accent.KeyAccentColor: "3"}, plist.XMLFormat)
	writePlist(t, fs, userPlist("com.example.Other"), map[string]any{"SomethingElse": 1}, plist.XMLFormat)

	s := NewStore(fs, testHome, newRecordingRunner(), accent.SchemeMulti)
	assert.Nil(t, s.Read("com.example.Str"))
	assert.Nil(t, s.Read("com.example.Other"))
	assert.Nil(t, s.Read("com.example.Missing"))
	assert.Equal(t, accent.Unset, s.Accent("com.example.Missing"))
}

func TestStoreRead_BinaryScheme(t *testing.T) {
	fs := memfs.New()
	writePlist(t, fs, userPlist("com.example.Foo"), map[string]any{
		accent.KeyAquaColorVariant: 6,
		accent.KeyAccentColor:      3,
	}, plist.XMLFormat)

	s := NewStore(fs, testHome, newRecordingRunner(), accent.SchemeBinary)
	assert.Equal(t, accent.ClassicGraphite, s.Accent("com.example.Foo"))
}

func TestStoreWrite_ArgumentVectors(t *testing.T) {
	r := newRecordingRunner()
	s := NewStore(memfs.New(), testHome, r, accent.SchemeMulti)

	require.NoError(t, s.Write(context.Background(), "com.example.Foo", accent.Purple))
	require.NoError(t, s.Write(context.Background(), "com.example.Foo", accent.Unset))

	assert.Equal(t, [][]string{
		{"write", "com.example.Foo", "AppleHighlightColor", "0.968627 0.831373 1.000000 Purple"},
		{"write", "com.example.Foo", "AppleAccentColor", "-int", "5"},
		{"delete", "com.example.Foo", "AppleHighlightColor"},
		{"delete", "com.example.Foo", "AppleAccentColor"},
	}, r.calls)
}

func TestStoreWrite_BinaryScheme(t *testing.T) {
	r := newRecordingRunner()
	s := NewStore(memfs.New(), testHome, r, accent.SchemeBinary)

	require.NoError(t, s.Write(context.Background(), "com.example.Foo", accent.ClassicGraphite))
	assert.Equal(t, []string{"write", "com.example.Foo", "AppleAquaColorVariant", "-int", "6"}, r.calls[1])
}

func TestStoreWrite_HighlightFailureIgnored(t *testing.T) {
	r := newRecordingRunner()
	r.fail["delete com.example.Foo AppleHighlightColor"] = true
	s := NewStore(memfs.New(), testHome, r, accent.SchemeMulti)

	assert.NoError(t, s.Write(context.Background(), "com.example.Foo", accent.Unset))
	assert.Len(t, r.calls, 2)
}

func TestStoreWrite_ColorFailureReported(t *testing.T) {
	r := newRecordingRunner()
	r.fail["write com.example.Foo AppleAccentColor -int 0"] = true
	s := NewStore(memfs.New(), testHome, r, accent.SchemeMulti)

	err := s.Write(context.Background(), "com.example.Foo", accent.Red)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeWriteFailed))
}

func TestStoreWrite_RejectsValueOutsideScheme(t *testing.T) {
	r := newRecordingRunner()
	s := NewStore(memfs.New(), testHome, r, accent.SchemeBinary)

	err := s.Write(context.Background(), "com.example.Foo", accent.Red)
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.CodeInvalidAccent))
	assert.Empty(t, r.calls)
}

func TestStoreSystemAccent(t *testing.T) {
	r := newRecordingRunner()
	s := NewStore(memfs.New(), testHome, r, accent.SchemeMulti)

	r.outputs["read -g AppleAccentColor"] = "4\n"
	assert.Equal(t, accent.Blue, s.SystemAccent(context.Background()))

	r.outputs["read -g AppleAccentColor"] = "nonsense"
	assert.Equal(t, accent.Unset, s.SystemAccent(context.Background()))

	r.fail["read -g AppleAccentColor"] = true
	assert.Equal(t, accent.Unset, s.SystemAccent(context.Background()))
}

func TestStoreRelaunch(t *testing.T) {
	r := newRecordingRunner()
	s := NewStore(memfs.New(), testHome, r, accent.SchemeMulti)
	ctx := context.Background()

	assert.False(t, s.RelaunchEnabled(ctx, "io.github.prism"))
	r.outputs["read io.github.prism shouldRelaunchApplications"] = "1\n"
	assert.True(t, s.RelaunchEnabled(ctx, "io.github.prism"))
	r.fail["read io.github.prism shouldRelaunchApplications"] = true
	assert.False(t, s.RelaunchEnabled(ctx, "io.github.prism"))

	require.NoError(t, s.SetRelaunch(ctx, "io.github.prism", true))
	assert.Equal(t, []string{"write", "io.github.prism", "shouldRelaunchApplications", "-bool", "true"}, r.calls[len(r.calls)-1])
}
