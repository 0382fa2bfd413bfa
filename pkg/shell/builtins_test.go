package shell

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorkingDir struct {
	dir     string
	chdirs  []string
	getwdOk bool
}

func newFakeWorkingDir(dir string) *fakeWorkingDir {
	return &fakeWorkingDir{dir: dir, getwdOk: true}
}

func (f *fakeWorkingDir) Getwd() (string, error) {
	if !f.getwdOk {
		return "", errors.New("getwd: no such file or directory")
	}
	return f.dir, nil
}

func (f *fakeWorkingDir) Chdir(dir string) error {
	f.chdirs = append(f.chdirs, dir)
	f.dir = dir
	return nil
}

type recordingExecutor struct {
	calls  []Invocation
	status int
	err    error
}

func (r *recordingExecutor) Execute(ctx context.Context, cmd Command, args []string, io IOBindings) (int, error) {
	r.calls = append(r.calls, Invocation{Command: cmd, Args: args})
	return r.status, r.err
}

type testShell struct {
	*Shell
	fs       afero.Fs
	wd       *fakeWorkingDir
	executor *recordingExecutor
	cfg      *Config
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func newTestShell(t *testing.T) *testShell {
	t.Helper()

	fs := newTestFs(t, "/usr/bin/ls", "/bin/ls", "/bin/echo")
	for _, dir := range []string{"/home/user/projects", "/tmp"} {
		require.NoError(t, fs.MkdirAll(dir, 0755))
	}
	require.NoError(t, afero.WriteFile(fs, "/tmp/file.txt", []byte("x"), 0644))

	ts := &testShell{
		fs:       fs,
		wd:       newFakeWorkingDir("/tmp"),
		executor: &recordingExecutor{},
		cfg:      &Config{SearchPaths: []string{"/usr/bin", "/bin"}, Home: "/home/user"},
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
	}

	ts.Shell = New(&bytes.Buffer{}, ts.stdout, ts.stderr, Options{
		Config:     ts.cfg,
		FS:         fs,
		WorkingDir: ts.wd,
		Executor:   ts.executor,
	})

	return ts
}

func (ts *testShell) eval(t *testing.T, line string) error {
	t.Helper()
	ts.stdout.Reset()
	ts.stderr.Reset()
	return ts.Eval(context.Background(), line)
}

func TestEcho(t *testing.T) {
	ts := newTestShell(t)

	require.NoError(t, ts.eval(t, "echo a b c"))
	assert.Equal(t, "a b c\n", ts.stdout.String())

	require.NoError(t, ts.eval(t, "echo"))
	assert.Equal(t, "\n", ts.stdout.String())

	require.NoError(t, ts.eval(t, "echo   spaced    out  "))
	assert.Equal(t, "spaced out\n", ts.stdout.String())
	assert.Empty(t, ts.stderr.String())
}

func TestExit(t *testing.T) {
	cases := []struct {
		line   string
		status int
	}{
		{"exit", 0},
		{"exit 0", 0},
		{"exit 42", 42},
		{"exit -1", -1},
		{"exit 3 extra", 3},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			ts := newTestShell(t)

			err := ts.eval(t, tc.line)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, tc.status, exitErr.Status)
		})
	}
}

func TestExit_InvalidStatus(t *testing.T) {
	for _, arg := range []string{"abc", "1.5", "99999999999"} {
		t.Run(arg, func(t *testing.T) {
			ts := newTestShell(t)

			assert.NoError(t, ts.eval(t, "exit "+arg))
			assert.Equal(t, arg+": invalid status code\n", ts.stderr.String())
			assert.Empty(t, ts.stdout.String())
		})
	}
}

func TestType(t *testing.T) {
	cases := []struct {
		line   string
		stdout string
		stderr string
	}{
		{"type echo", "echo is a shell builtin\n", ""},
		{"type exit", "exit is a shell builtin\n", ""},
		{"type type", "type is a shell builtin\n", ""},
		{"type ls", "ls is /usr/bin/ls\n", ""},
		{"type nonexistent_cmd_xyz", "nonexistent_cmd_xyz: not found\n", ""},
		{"type", "", "type: usage: type NAME\n"},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			ts := newTestShell(t)

			require.NoError(t, ts.eval(t, tc.line))
			assert.Equal(t, tc.stdout, ts.stdout.String())
			assert.Equal(t, tc.stderr, ts.stderr.String())
		})
	}
}

func TestPwd(t *testing.T) {
	ts := newTestShell(t)

	require.NoError(t, ts.eval(t, "pwd"))
	assert.Equal(t, "/tmp\n", ts.stdout.String())

	ts.wd.getwdOk = false
	require.NoError(t, ts.eval(t, "pwd"))
	assert.Empty(t, ts.stdout.String())
	assert.Contains(t, ts.stderr.String(), "pwd: error finding directory")
}

func TestCd(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		wantDir string
		stderr  string
	}{
		{"absolute", "cd /home/user/projects", "/home/user/projects", ""},
		{"no argument goes home", "cd", "/home/user", ""},
		{"tilde", "cd ~", "/home/user", ""},
		{"tilde prefix", "cd ~/projects", "/home/user/projects", ""},
		{"relative", "cd ../home", "/home", ""},
		{"dot", "cd .", "/tmp", ""},
		{"missing", "cd /does/not/exist", "/tmp", "cd: /does/not/exist: No such file or directory\n"},
		{"missing relative", "cd nowhere", "/tmp", "cd: nowhere: No such file or directory\n"},
		{"file", "cd /tmp/file.txt", "/tmp", "cd: /tmp/file.txt: Not a directory\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestShell(t)

			require.NoError(t, ts.eval(t, tc.line))
			assert.Equal(t, tc.stderr, ts.stderr.String())
			assert.Equal(t, tc.wantDir, ts.wd.dir)
			assert.Empty(t, ts.stdout.String())
			if tc.stderr != "" {
				assert.Empty(t, ts.wd.chdirs)
			}
		})
	}
}

func TestCd_NoArgumentMatchesTilde(t *testing.T) {
	bare := newTestShell(t)
	require.NoError(t, bare.eval(t, "cd"))

	tilde := newTestShell(t)
	require.NoError(t, tilde.eval(t, "cd ~"))

	assert.Equal(t, tilde.wd.chdirs, bare.wd.chdirs)
	assert.Equal(t, []string{filepath.Clean("/home/user")}, bare.wd.chdirs)
}

func TestCd_EmptyHome(t *testing.T) {
	for _, line := range []string{"cd", "cd ~"} {
		t.Run(line, func(t *testing.T) {
			ts := newTestShell(t)
			ts.cfg.Home = ""

			require.NoError(t, ts.eval(t, line))
			assert.Equal(t, "cd: : No such file or directory\n", ts.stderr.String())
			assert.Empty(t, ts.wd.chdirs)
			assert.Equal(t, "/tmp", ts.wd.dir)
		})
	}

	t.Run("other builtins unaffected", func(t *testing.T) {
		ts := newTestShell(t)
		ts.cfg.Home = ""

		require.NoError(t, ts.eval(t, "echo still here"))
		assert.Equal(t, "still here\n", ts.stdout.String())

		require.NoError(t, ts.eval(t, "cd /home/user"))
		assert.Equal(t, "/home/user", ts.wd.dir)
	})
}

func TestCd_ColoredMessageKeepsPlainText(t *testing.T) {
	ts := newTestShell(t)
	ts.Shell = New(&bytes.Buffer{}, ts.stdout, ts.stderr, Options{
		Config:     ts.cfg,
		FS:         ts.fs,
		WorkingDir: ts.wd,
		Executor:   ts.executor,
		Color:      true,
	})

	require.NoError(t, ts.eval(t, "cd /does/not/exist"))
	assert.Contains(t, ts.stderr.String(), ": No such file or directory\n")
	assert.Contains(t, ts.stderr.String(), "/does/not/exist")
	assert.NotEqual(t, "cd: /does/not/exist: No such file or directory\n", ts.stderr.String())
}

func TestExternal(t *testing.T) {
	ts := newTestShell(t)

	require.NoError(t, ts.eval(t, "ls -la /tmp"))
	require.Len(t, ts.executor.calls, 1)

	call := ts.executor.calls[0]
	assert.Equal(t, Command{Kind: KindExternal, Name: "ls", Path: "/usr/bin/ls"}, call.Command)
	assert.Equal(t, []string{"-la", "/tmp"}, call.Args)
}

func TestExternal_SpawnFailureIsReported(t *testing.T) {
	ts := newTestShell(t)
	ts.executor.err = errors.New("exec format error")

	require.NoError(t, ts.eval(t, "ls"))
	assert.Equal(t, "ls: exec format error\n", ts.stderr.String())
}

func TestCommandNotFound(t *testing.T) {
	ts := newTestShell(t)

	require.NoError(t, ts.eval(t, "nonexistent_cmd_xyz a b"))
	assert.Equal(t, "nonexistent_cmd_xyz: command not found\n", ts.stderr.String())
	assert.Empty(t, ts.executor.calls)
}

func TestEmptyLine(t *testing.T) {
	ts := newTestShell(t)

	require.NoError(t, ts.eval(t, "   "))
	assert.Empty(t, ts.stdout.String())
	assert.Empty(t, ts.stderr.String())
}

func TestDispatchDoesNotMutateConfig(t *testing.T) {
	ts := newTestShell(t)
	before := ts.cfg.Clone()

	for _, line := range []string{"echo hi", "type ls", "cd ~", "pwd", "ls", "exit nope", "missing"} {
		_ = ts.eval(t, line)
	}

	assert.Equal(t, before, ts.cfg)
}

func TestHighlight(t *testing.T) {
	ts := newTestShell(t)
	assert.Equal(t, "plain", ts.highlight("plain"))

	colored := New(&bytes.Buffer{}, &bytes.Buffer{}, &bytes.Buffer{}, Options{Config: ts.cfg, Color: true})
	assert.NotEqual(t, "plain", colored.highlight("plain"))
	assert.Contains(t, colored.highlight("plain"), "plain")
}
