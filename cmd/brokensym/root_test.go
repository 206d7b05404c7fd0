package brokensym

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/brokensym/internal/version"
	"github.com/arthur-debert/brokensym/pkg/testutil"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// isolate keeps the command away from the user's config, state and colour
// settings.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{"BROKENSYM_LOG_VERBOSITY", "BROKENSYM_LOG_FILE", "BROKENSYM_OUTPUT_COLOR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func execute(t *testing.T, args ...string) result {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) result {
	t.Helper()
	isolate(t)

	var out, errOut bytes.Buffer
	code := Execute(ctx, args, Streams{Out: &out, Err: &errOut})
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestRoot_ReferenceScenario(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Symlink("a", tree.Path("missing")).
		File("b/c.txt").
		Symlink("b/d", tree.Path("b/c.txt"))

	res := execute(t, tree.Root)

	assert.Equal(t, 0, res.code)
	assert.Equal(t, tree.Path("a")+"\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRoot_EmptyDirectory(t *testing.T) {
	tree := testutil.NewTree(t)

	res := execute(t, tree.Root)

	assert.Equal(t, 0, res.code)
	assert.Empty(t, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRoot_NonexistentSearchDir(t *testing.T) {
	tree := testutil.NewTree(t)
	missing := tree.Path("nope")

	res := execute(t, missing)

	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, missing+": no such file or directory")
	assert.Contains(t, res.stderr, "Usage:")
}

func TestRoot_SearchDirIsAFile(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.File("plain")

	res := execute(t, tree.Path("plain"))

	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Not a directory: "+tree.Path("plain"))
	assert.Contains(t, res.stderr, "Usage:")
}

func TestRoot_Help(t *testing.T) {
	res := execute(t, "-h")

	assert.Equal(t, 0, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Usage:")
	assert.Contains(t, res.stderr, "brokensym recurses search_dir")
}

func TestRoot_UnknownFlag(t *testing.T) {
	res := execute(t, "-x")

	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "invalid usage")
	assert.Contains(t, res.stderr, "Usage:")
}

// captureProcessStderr returns what fn writes to the real os.Stderr.
func captureProcessStderr(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	fn()
	require.NoError(t, w.Close())
	return string(<-done)
}

func TestRoot_EarlyErrorsLogNothingOutsideStreams(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		setup func(t *testing.T)
	}{
		{name: "unknown flag", args: []string{"-x"}},
		{name: "too many arguments", args: []string{"a", "b"}},
		{name: "invalid config", args: []string{t.TempDir()}, setup: func(t *testing.T) {
			t.Setenv("BROKENSYM_OUTPUT_COLOR", "rainbow")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if tt.setup != nil {
				tt.setup(t)
			}

			var out, errOut bytes.Buffer
			var code int
			leaked := captureProcessStderr(t, func() {
				code = Execute(context.Background(), tt.args, Streams{Out: &out, Err: &errOut})
			})

			assert.Equal(t, 1, code)
			assert.Empty(t, leaked)
			assert.Empty(t, out.String())
			assert.NotContains(t, errOut.String(), `"level"`)
		})
	}
}

func TestRoot_MissingFlagArgument(t *testing.T) {
	res := execute(t, "--config")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid usage")
}

func TestRoot_TooManyArguments(t *testing.T) {
	res := execute(t, "one", "two")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "expected at most one search_dir, got 2")
	assert.Contains(t, res.stderr, "Usage:")
}

func TestRoot_DefaultsToHome(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Symlink("stale", "gone")
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Setenv("HOME", tree.Root)

	res := execute(t)

	assert.Equal(t, 0, res.code)
	assert.Equal(t, tree.Path("stale")+"\n", res.stdout)
}

func TestRoot_RelativeSearchDir(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Symlink("sub/stale", "gone")
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tree.Root))
	t.Cleanup(func() { _ = os.Chdir(prev) })

	res := execute(t, "sub")

	assert.Equal(t, 0, res.code)
	assert.Equal(t, tree.Path("sub/stale")+"\n", res.stdout)
}

func TestRoot_RelativeSearchDirMissing(t *testing.T) {
	tree := testutil.NewTree(t)
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tree.Root))
	t.Cleanup(func() { _ = os.Chdir(prev) })

	res := execute(t, "does-not-exist")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "cannot resolve does-not-exist: no such file or directory")
}

func TestRoot_UnreadableSubdirectory(t *testing.T) {
	testutil.SkipIfRoot(t)

	tree := testutil.NewTree(t)
	tree.Dir("locked").Chmod("locked", 0000)

	res := execute(t, tree.Root)

	assert.Equal(t, 1, res.code)
	assert.Equal(t, tree.Path("locked")+": permission denied\n", res.stderr)
}

func TestRoot_DiagnosticsDoNotChangeExitStatus(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Symlink("loop", "loop").Symlink("broken", "gone")

	res := execute(t, tree.Root)

	assert.Equal(t, 0, res.code)
	assert.Equal(t, tree.Path("broken")+"\n", res.stdout)
	assert.Equal(t, tree.Path("loop")+": too many levels of symbolic links\n", res.stderr)
}

func TestRoot_VerboseLogsStayOffStdout(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Symlink("broken", "gone")

	res := execute(t, "-vv", tree.Root)

	assert.Equal(t, 0, res.code)
	assert.Equal(t, tree.Path("broken")+"\n", res.stdout)
	assert.Contains(t, res.stderr, MsgLogSearchComplete)
}

func TestRoot_PrintConfig(t *testing.T) {
	res := execute(t, "--print-config=yaml")

	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "color: auto")
	assert.Empty(t, res.stderr)
}

func TestRoot_PrintConfigRejectsSearchDir(t *testing.T) {
	res := execute(t, "--print-config", "yaml")

	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, `--print-config does not take a search_dir (got "yaml")`)
	assert.Contains(t, res.stderr, "Usage:")
}

func TestRoot_PrintConfigUnknownFormat(t *testing.T) {
	res := execute(t, "--print-config=json")

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown config format")
}

func TestRoot_Version(t *testing.T) {
	res := execute(t, "--version")

	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, version.Version)
}

func TestRoot_Canceled(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.Symlink("broken", "gone")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := executeContext(t, ctx, tree.Root)

	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "traversal canceled")
}
