package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CLI provides a clean interface for running CLI commands in tests.
// It manages a temp directory and environment variables.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI with a temp directory. XDG_CONFIG_HOME is
// pointed inside the temp dir so a developer's real global config cannot
// leak into tests.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()

	return &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{"XDG_CONFIG_HOME": filepath.Join(dir, ".xdg")},
	}
}

// Run executes the CLI with the given args and returns stdout, stderr, and exit code.
// Args should not include "ck" or "--cwd" - those are added automatically.
func (r *CLI) Run(args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"ck", "--cwd", r.Dir}, args...)
	code := Run(nil, &outBuf, &errBuf, fullArgs, r.Env)

	return outBuf.String(), errBuf.String(), code
}

// RunWithInput executes the CLI with stdin and returns stdout, stderr, and exit code.
// stdin must be a string or io.Reader; panics otherwise.
func (r *CLI) RunWithInput(stdin any, args ...string) (string, string, int) {
	var inReader io.Reader
	switch v := stdin.(type) {
	case string:
		inReader = strings.NewReader(v)
	case io.Reader:
		inReader = v
	default:
		panic(fmt.Sprintf("stdin must be string or io.Reader, got %T", stdin))
	}

	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"ck", "--cwd", r.Dir}, args...)
	code := Run(inReader, &outBuf, &errBuf, fullArgs, r.Env)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if the command returns non-zero.
// Returns trimmed stdout on success.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail executes the CLI and fails the test if the command succeeds.
// Returns trimmed stderr.
func (r *CLI) MustFail(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code == 0 {
		r.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// LibraryDir returns the path to the default library directory.
func (r *CLI) LibraryDir() string {
	return filepath.Join(r.Dir, "library")
}

// TagDir returns the path to the default tag directory.
func (r *CLI) TagDir() string {
	return filepath.Join(r.LibraryDir(), "tags")
}

// AddEntry writes a pdf and bib pair for key directly into the library
// directory, bypassing the add command.
func (r *CLI) AddEntry(key string) {
	r.t.Helper()

	mkdirErr := os.MkdirAll(r.LibraryDir(), 0o750)
	if mkdirErr != nil {
		r.t.Fatalf("failed to create library dir: %v", mkdirErr)
	}

	pdf := filepath.Join(r.LibraryDir(), key+".pdf")

	writeErr := os.WriteFile(pdf, []byte("%PDF-1.4 stub for "+key), 0o600)
	if writeErr != nil {
		r.t.Fatalf("failed to write pdf for %s: %v", key, writeErr)
	}

	bib := filepath.Join(r.LibraryDir(), key+".bib")
	record := fmt.Sprintf("@article{%s,\n  title = {Paper %s},\n}\n", key, key)

	writeErr = os.WriteFile(bib, []byte(record), 0o600)
	if writeErr != nil {
		r.t.Fatalf("failed to write bib for %s: %v", key, writeErr)
	}
}

// ReadBib reads and returns the content of a key's bib record.
func (r *CLI) ReadBib(key string) string {
	r.t.Helper()

	content, err := os.ReadFile(filepath.Join(r.LibraryDir(), key+".bib"))
	if err != nil {
		r.t.Fatalf("failed to read bib for %s: %v", key, err)
	}

	return string(content)
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
