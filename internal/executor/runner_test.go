package executor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/aish/internal/parse"
)

func testRunner() *Runner {
	r := NewRunner()
	r.LiveEcho = false
	return r
}

func runTokens(t *testing.T, tokens ...string) Result {
	t.Helper()
	p, err := parse.Parse(tokens)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return testRunner().Run(p)
}

func TestRun_SingleCommand(t *testing.T) {
	res := runTokens(t, "echo", "hi")
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %q)", res.ExitCode, res.Stderr)
	}
	if got := strings.TrimSpace(res.Stdout); got != "hi" {
		t.Errorf("expected stdout 'hi', got %q", got)
	}
}

func TestRun_Pipeline(t *testing.T) {
	res := runTokens(t, "echo", "hi", "|", "cat")
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %q)", res.ExitCode, res.Stderr)
	}
	if got := strings.TrimSpace(res.Stdout); got != "hi" {
		t.Errorf("expected stdout 'hi', got %q", got)
	}
}

func TestRun_ThreeStagePipeline(t *testing.T) {
	res := runTokens(t, "printf", "b\\na\\nc\\n", "|", "sort", "|", "head", "-1")
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %q)", res.ExitCode, res.Stderr)
	}
	if got := strings.TrimSpace(res.Stdout); got != "a" {
		t.Errorf("expected stdout 'a', got %q", got)
	}
}

func TestRun_ExitStatusOfLastStage(t *testing.T) {
	res := runTokens(t, "false", "|", "true")
	if res.ExitCode != 0 {
		t.Errorf("pipeline status should be the last stage's, got %d", res.ExitCode)
	}
	res = runTokens(t, "true", "|", "false")
	if res.ExitCode != 1 {
		t.Errorf("expected exit 1, got %d", res.ExitCode)
	}
}

func TestRun_FalseHasEmptyOutput(t *testing.T) {
	res := runTokens(t, "false")
	if res.ExitCode != 1 {
		t.Errorf("expected exit 1, got %d", res.ExitCode)
	}
	if res.Stdout != "" || res.Stderr != "" {
		t.Errorf("expected empty output, got stdout=%q stderr=%q", res.Stdout, res.Stderr)
	}
}

func TestRun_StderrCaptured(t *testing.T) {
	res := runTokens(t, "sh", "-c", "echo out; echo err >&2")
	if strings.TrimSpace(res.Stdout) != "out" {
		t.Errorf("expected stdout 'out', got %q", res.Stdout)
	}
	if strings.TrimSpace(res.Stderr) != "err" {
		t.Errorf("expected stderr 'err', got %q", res.Stderr)
	}
}

func TestRun_CommandNotFound(t *testing.T) {
	res := runTokens(t, "definitely-not-a-command-xyzzy")
	if res.ExitCode != ExitNotFound {
		t.Errorf("expected exit %d, got %d", ExitNotFound, res.ExitCode)
	}
	if res.Stderr == "" {
		t.Error("expected a diagnostic on stderr")
	}
	if !strings.HasPrefix(res.Stderr, "aish: ") {
		t.Errorf("diagnostic not shell-prefixed: %q", res.Stderr)
	}
	if res.Stdout != "" {
		t.Errorf("diagnostics must not reach stdout, got %q", res.Stdout)
	}
}

func TestRun_PermissionDenied(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noexec")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	res := runTokens(t, path)
	if res.ExitCode != ExitNotExecutable {
		t.Errorf("expected exit %d, got %d (stderr: %q)", ExitNotExecutable, res.ExitCode, res.Stderr)
	}
}

func TestRun_RedirectOverwriteAndAppend(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out")

	res := runTokens(t, "echo", "hi", ">", file)
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %q)", res.ExitCode, res.Stderr)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read redirect target: %v", err)
	}
	if string(data) != "hi\n" {
		t.Errorf("expected file content 'hi\\n', got %q", data)
	}

	res = runTokens(t, "echo", "bye", ">>", file)
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d", res.ExitCode)
	}
	data, err = os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read redirect target: %v", err)
	}
	if string(data) != "hi\nbye\n" {
		t.Errorf("expected both lines in order, got %q", data)
	}
}

func TestRun_RedirectStdin(t *testing.T) {
	file := filepath.Join(t.TempDir(), "in")
	if err := os.WriteFile(file, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("failed to write input file: %v", err)
	}

	res := runTokens(t, "wc", "-l", "<", file)
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %q)", res.ExitCode, res.Stderr)
	}
	if got := strings.TrimSpace(res.Stdout); got != "2" {
		t.Errorf("expected '2', got %q", got)
	}
}

func TestRun_RedirectMissingInputFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	res := runTokens(t, "cat", "<", missing)
	if res.ExitCode != 1 {
		t.Errorf("expected exit 1, got %d", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, missing) {
		t.Errorf("diagnostic should name the file, got %q", res.Stderr)
	}
}

func TestRun_InteriorRedirectRefused(t *testing.T) {
	file := filepath.Join(t.TempDir(), "out")
	res := runTokens(t, "echo", "hi", ">", file, "|", "cat")
	if res.ExitCode == 0 {
		t.Error("expected interior-stage redirect to be refused")
	}
}

func TestRun_RedirectIntoPipe(t *testing.T) {
	file := filepath.Join(t.TempDir(), "in")
	if err := os.WriteFile(file, []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("failed to write input file: %v", err)
	}

	res := runTokens(t, "cat", "<", file, "|", "tr", "a-z", "A-Z")
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %q)", res.ExitCode, res.Stderr)
	}
	if got := strings.TrimSpace(res.Stdout); got != "HELLO" {
		t.Errorf("expected 'HELLO', got %q", got)
	}
}
