// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/vtail/internal/testutil"
	"github.com/invowk/vtail/pkg/types"

	"github.com/spf13/afero"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

type cliEnv struct {
	fs        afero.Fs
	stdin     string
	configDir string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	return &cliEnv{fs: afero.NewMemMapFs(), configDir: t.TempDir()}
}

func (e *cliEnv) writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := afero.WriteFile(e.fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func (e *cliEnv) run(t *testing.T, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Fs:        e.fs,
		Stdin:     strings.NewReader(e.stdin),
		Stdout:    &stdout,
		Stderr:    &stderr,
		ConfigDir: e.configDir,
	})
	root := newRootCommand(app)
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.SetArgs(args)

	err := root.ExecuteContext(t.Context())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func exitCode(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}

func TestRoot_TailStdin(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	env.stdin = testutil.NumberedLines("line", 12)

	res := env.run(t)
	if res.err != nil {
		t.Fatalf("run returned error: %v (stderr: %q)", res.err, res.stderr)
	}
	if want := strings.TrimPrefix(testutil.NumberedLines("line", 12), "line1\nline2\n"); res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestRoot_TailCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "last lines", args: []string{"-n", "2"}, want: "d\ne\n"},
		{name: "negative lines", args: []string{"-n", "-1"}, want: "e\n"},
		{name: "from line", args: []string{"-n", "+4"}, want: "d\ne\n"},
		{name: "from zero", args: []string{"-n", "+0"}, want: "a\nb\nc\nd\ne\n"},
		{name: "zero lines", args: []string{"-n", "0"}, want: ""},
		{name: "last bytes", args: []string{"-c", "3"}, want: "\ne\n"},
		{name: "from byte", args: []string{"--bytes", "+9"}, want: "e\n"},
		{name: "dash is stdin", args: []string{"-n", "1", "-"}, want: "e\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newCLIEnv(t)
			env.stdin = "a\nb\nc\nd\ne\n"
			res := env.run(t, tt.args...)
			if res.err != nil {
				t.Fatalf("run returned error: %v", res.err)
			}
			if res.stdout != tt.want {
				t.Errorf("stdout = %q, want %q", res.stdout, tt.want)
			}
		})
	}
}

func TestRoot_MultipleFilesHeaders(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	env.writeFile(t, "/logs/a.log", "a1\na2\n")
	env.writeFile(t, "/logs/b.log", "b1\nb2\n")

	res := env.run(t, "-n", "1", "/logs/a.log", "/logs/b.log")
	if res.err != nil {
		t.Fatalf("run returned error: %v", res.err)
	}
	want := "==> /logs/a.log <==\na2\n\n==> /logs/b.log <==\nb2\n"
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}

	res = env.run(t, "-q", "-n", "1", "/logs/a.log", "/logs/b.log")
	if res.stdout != "a2\nb2\n" {
		t.Errorf("quiet stdout = %q, want %q", res.stdout, "a2\nb2\n")
	}
}

func TestRoot_MissingFileIsWarning(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	env.writeFile(t, "/ok.txt", "fine\n")

	res := env.run(t, "/missing.txt", "/ok.txt")
	if res.err != nil {
		t.Fatalf("missing file should not fail the run: %v", res.err)
	}
	if !strings.Contains(res.stderr, "/missing.txt: ") {
		t.Errorf("stderr = %q, want a warning naming /missing.txt", res.stderr)
	}
	if !strings.Contains(res.stdout, "==> /ok.txt <==\nfine\n") {
		t.Errorf("stdout = %q, want the readable file", res.stdout)
	}
}

func TestRoot_IllegalCount(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	env.writeFile(t, "/a.txt", "a\n")

	res := env.run(t, "-n", "ten", "/a.txt")
	if code := exitCode(res.err); code != types.ExitFailure {
		t.Fatalf("exit code = %d, want %d", code, types.ExitFailure)
	}
	var exitErr *ExitError
	if errors.As(res.err, &exitErr) && exitErr.Err != nil {
		t.Errorf("illegal count should already be reported, got cause %v", exitErr.Err)
	}
	if res.stderr != "vtail: illegal line count -- ten\n" {
		t.Errorf("stderr = %q", res.stderr)
	}
	if res.stdout != "" {
		t.Errorf("nothing should be printed, got %q", res.stdout)
	}

	res = env.run(t, "-c", "1k", "/a.txt")
	if !strings.Contains(res.stderr, "illegal byte count -- 1k") {
		t.Errorf("stderr = %q, want the byte count message", res.stderr)
	}
}

func TestRoot_LinesAndBytesConflict(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	res := env.run(t, "-n", "1", "-c", "1")
	if res.err == nil {
		t.Fatal("expected an error for -n with -c")
	}
	if !strings.Contains(res.err.Error(), "lines") || !strings.Contains(res.err.Error(), "bytes") {
		t.Errorf("error = %v, want it to name both flags", res.err)
	}
}

func TestRoot_ConfigDefaults(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	testutil.MustWriteFile(t, env.configDir, "config.cue", `lines: "+2"
quiet: true
`)
	env.writeFile(t, "/a", "a1\na2\na3\n")
	env.writeFile(t, "/b", "b1\nb2\n")

	res := env.run(t, "/a", "/b")
	if res.err != nil {
		t.Fatalf("run returned error: %v (stderr: %q)", res.err, res.stderr)
	}
	if res.stdout != "a2\na3\nb2\n" {
		t.Errorf("stdout = %q, want config count and no headers", res.stdout)
	}

	// Flags win over the file.
	res = env.run(t, "-n", "1", "/a")
	if res.stdout != "a3\n" {
		t.Errorf("stdout = %q, want %q", res.stdout, "a3\n")
	}

	// -c replaces the configured line count.
	res = env.run(t, "-c", "3", "/a")
	if res.stdout != "a3\n" {
		t.Errorf("stdout = %q, want %q", res.stdout, "a3\n")
	}
}

func TestRoot_BrokenConfigFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	testutil.MustWriteFile(t, env.configDir, "config.cue", `lines: "ten"`)
	env.stdin = testutil.NumberedLines("l", 11)

	res := env.run(t)
	if res.err != nil {
		t.Fatalf("run returned error: %v", res.err)
	}
	if !strings.Contains(res.stderr, "Warning") {
		t.Errorf("stderr = %q, want a config warning", res.stderr)
	}
	if strings.Contains(res.stdout, "l1\n") || !strings.HasSuffix(res.stdout, "l11\n") {
		t.Errorf("stdout = %q, want the default 10 lines", res.stdout)
	}
}

func TestRoot_UnquotedConfigCountIsRejected(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	testutil.MustWriteFile(t, env.configDir, "config.cue", "lines: +2\n")
	env.writeFile(t, "/five", "a1\na2\na3\na4\na5\n")

	res := env.run(t, "/five")
	if res.err != nil {
		t.Fatalf("run returned error: %v", res.err)
	}
	if !strings.Contains(res.stderr, "Warning") {
		t.Errorf("stderr = %q, want a config warning", res.stderr)
	}
	// Defaults apply, so all five lines print rather than the last two.
	if res.stdout != "a1\na2\na3\na4\na5\n" {
		t.Errorf("stdout = %q, want the whole file", res.stdout)
	}

	testutil.MustWriteFile(t, env.configDir, "config.cue", `lines: "+2"`+"\n")
	res = env.run(t, "/five")
	if res.stdout != "a2\na3\na4\na5\n" {
		t.Errorf("stdout = %q, want from line 2", res.stdout)
	}
}

func TestRoot_VerboseLogging(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	env.stdin = "x\n"

	res := env.run(t, "-v")
	if res.err != nil {
		t.Fatalf("run returned error: %v", res.err)
	}
	if !strings.Contains(res.stderr, "parsed count") {
		t.Errorf("stderr = %q, want debug records", res.stderr)
	}

	res = env.run(t)
	if strings.Contains(res.stderr, "parsed count") {
		t.Errorf("debug records leaked without -v: %q", res.stderr)
	}
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	res := env.run(t, "--log-level", "loud")
	if res.err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
}

func TestRoot_ExplicitConfigFile(t *testing.T) {
	t.Parallel()

	env := newCLIEnv(t)
	path := testutil.MustWriteFile(t, t.TempDir(), "custom.cue", `lines: "1"`)
	env.stdin = "a\nb\n"

	res := env.run(t, "--config", path)
	if res.err != nil {
		t.Fatalf("run returned error: %v", res.err)
	}
	if res.stdout != "b\n" {
		t.Errorf("stdout = %q, want %q", res.stdout, "b\n")
	}

	res = env.run(t, "--config", filepath.Join(t.TempDir(), "absent.cue"))
	if !strings.Contains(res.stderr, "Warning") {
		t.Errorf("stderr = %q, want a warning for the missing file", res.stderr)
	}
}

func TestGetVersionString(t *testing.T) {
	// Mutates package variables.
	oldVersion, oldCommit, oldDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = oldVersion, oldCommit, oldDate })

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}

	Version, Commit, BuildDate = "v1.2.3", "abc123", "2026-01-02"
	if got := getVersionString(); got != "v1.2.3 (commit: abc123, built: 2026-01-02)" {
		t.Errorf("getVersionString() = %q", got)
	}
}
