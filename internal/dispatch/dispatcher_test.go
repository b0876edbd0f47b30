package dispatch

import (
	"os"
	"strings"
	"testing"

	"github.com/dshills/aish/internal/executor"
	"github.com/dshills/aish/internal/parse"
)

// fakeRunner records the pipeline it was handed and returns a canned
// result.
type fakeRunner struct {
	ran    *parse.Pipeline
	result Result
}

func (f *fakeRunner) Run(p *parse.Pipeline) Result {
	f.ran = p
	return f.result
}

func mustParse(t *testing.T, tokens ...string) *parse.Pipeline {
	t.Helper()
	p, err := parse.Parse(tokens)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return p
}

func TestRoute_BuiltinSingleStage(t *testing.T) {
	runner := &fakeRunner{}
	d := New(runner)

	res := d.Route(mustParse(t, "pwd"))
	if res.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d", res.ExitCode)
	}
	wd, _ := os.Getwd()
	if strings.TrimSpace(res.Stdout) != wd {
		t.Errorf("expected %q, got %q", wd, res.Stdout)
	}
	if runner.ran != nil {
		t.Error("builtin invocation must not spawn a process")
	}
}

func TestRoute_ExternalGoesToRunner(t *testing.T) {
	runner := &fakeRunner{result: Result{ExitCode: 3}}
	d := New(runner)

	res := d.Route(mustParse(t, "somecmd", "-x"))
	if runner.ran == nil {
		t.Fatal("expected runner to receive the pipeline")
	}
	if res.ExitCode != 3 {
		t.Errorf("expected runner result passed through, got %d", res.ExitCode)
	}
}

func TestRoute_SingleStageWithRedirectSkipsBuiltins(t *testing.T) {
	runner := &fakeRunner{}
	d := New(runner)

	d.Route(mustParse(t, "pwd", ">", "out.txt"))
	if runner.ran == nil {
		t.Error("a stage with redirects must go to the executor")
	}
}

func TestRoute_BuiltinHeadOfPipeline(t *testing.T) {
	runner := &fakeRunner{}
	d := New(runner)

	d.Route(mustParse(t, "pwd", "|", "cat"))
	if runner.ran == nil {
		t.Fatal("expected rewritten pipeline to reach the runner")
	}
	head := runner.ran.First()
	if head.Program != "printf" {
		t.Errorf("expected synthetic printf stage, got %q", head.Program)
	}
	wd, _ := os.Getwd()
	if len(head.Args) != 2 || head.Args[0] != "%s" || strings.TrimSpace(head.Args[1]) != wd {
		t.Errorf("synthetic stage should carry the builtin's stdout, got %v", head.Args)
	}
	if runner.ran.Last().Program != "cat" {
		t.Errorf("tail stages should be preserved, got %q", runner.ran.Last().Program)
	}
}

func TestRoute_BuiltinHeadWithRedirectGoesToRunner(t *testing.T) {
	runner := &fakeRunner{}
	d := New(runner)

	d.Route(mustParse(t, "pwd", ">", "out.txt", "|", "cat"))
	if runner.ran == nil {
		t.Fatal("a redirect-bearing head must reach the executor, not the builtin")
	}
	head := runner.ran.First()
	if head.Program != "pwd" || len(head.Redirects) != 1 {
		t.Errorf("head stage must pass through unchanged, got %+v", head)
	}
}

func TestRoute_FailingBuiltinHeadShortCircuits(t *testing.T) {
	runner := &fakeRunner{}
	d := New(runner)

	res := d.Route(mustParse(t, "cd", "/definitely/not/a/dir", "|", "cat"))
	if res.ExitCode == 0 {
		t.Fatal("expected builtin failure")
	}
	if runner.ran != nil {
		t.Error("failing builtin head must not spawn the rest of the pipeline")
	}
}

func TestTryBuiltin(t *testing.T) {
	d := New(&fakeRunner{})

	if _, ok := d.TryBuiltin("what's the weather like?"); ok {
		t.Error("non-builtin first word must return false without parsing")
	}

	res, ok := d.TryBuiltin("pwd")
	if !ok {
		t.Fatal("expected pwd to be handled as a builtin")
	}
	if res.ExitCode != 0 {
		t.Errorf("expected exit 0, got %d", res.ExitCode)
	}
}

func TestBuiltin_ExitControl(t *testing.T) {
	d := New(&fakeRunner{})

	res := d.Route(mustParse(t, "exit"))
	if res.Control != executor.ControlExit {
		t.Error("expected ControlExit")
	}

	res = d.Route(mustParse(t, "exit", "3"))
	if res.ExitCode != 3 || res.Control != executor.ControlExit {
		t.Errorf("expected exit 3 with ControlExit, got %+v", res)
	}

	res = d.Route(mustParse(t, "exit", "nope"))
	if res.Control == executor.ControlExit || res.ExitCode == 0 {
		t.Error("bad numeric argument should fail without exiting")
	}
}

func TestBuiltin_CdAndPwd(t *testing.T) {
	d := New(&fakeRunner{})
	dir := t.TempDir()
	prevDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prevDir); err != nil {
			t.Fatal(err)
		}
	})

	res := d.Route(mustParse(t, "cd", dir))
	if res.ExitCode != 0 {
		t.Fatalf("cd failed: %q", res.Stderr)
	}

	res = d.Route(mustParse(t, "pwd"))
	wd, _ := os.Getwd()
	if strings.TrimSpace(res.Stdout) != wd {
		t.Errorf("expected %q, got %q", wd, res.Stdout)
	}

	res = d.Route(mustParse(t, "cd", "/no/such/dir/anywhere"))
	if res.ExitCode == 0 || !strings.HasPrefix(res.Stderr, "aish: cd: ") {
		t.Errorf("expected shell-prefixed cd error, got %+v", res)
	}
}

func TestBuiltin_ExportTriggersPathHook(t *testing.T) {
	t.Setenv("PATH", os.Getenv("PATH"))
	t.Setenv("AISH_TEST_EXPORT", "")

	reloads := 0
	d := New(&fakeRunner{}, WithPathChangeHook(func() { reloads++ }))

	res := d.Route(mustParse(t, "export", "AISH_TEST_EXPORT=1"))
	if res.ExitCode != 0 {
		t.Fatalf("export failed: %q", res.Stderr)
	}
	if os.Getenv("AISH_TEST_EXPORT") != "1" {
		t.Error("export did not set the variable")
	}
	if reloads != 0 {
		t.Error("non-PATH export must not trigger a reload")
	}

	d.Route(mustParse(t, "export", "PATH="+os.Getenv("PATH")))
	if reloads != 1 {
		t.Errorf("expected 1 reload after PATH export, got %d", reloads)
	}

	d.Route(mustParse(t, "unset", "AISH_TEST_EXPORT"))
	if _, ok := os.LookupEnv("AISH_TEST_EXPORT"); ok {
		t.Error("unset did not remove the variable")
	}
}

func TestBuiltin_Aliases(t *testing.T) {
	runner := &fakeRunner{}
	d := New(runner)

	res := d.Route(mustParse(t, "alias", "ll=ls -la"))
	if res.ExitCode != 0 {
		t.Fatalf("alias failed: %q", res.Stderr)
	}

	// Alias expands at dispatch time.
	d.Route(mustParse(t, "ll", "/tmp"))
	if runner.ran == nil {
		t.Fatal("expected expanded alias to reach the runner")
	}
	stage := runner.ran.First()
	if stage.Program != "ls" {
		t.Errorf("expected program 'ls', got %q", stage.Program)
	}
	if len(stage.Args) != 2 || stage.Args[0] != "-la" || stage.Args[1] != "/tmp" {
		t.Errorf("unexpected args: %v", stage.Args)
	}

	// Listing shows the alias.
	res = d.Route(mustParse(t, "alias"))
	if !strings.Contains(res.Stdout, "alias ll='ls -la'") {
		t.Errorf("alias listing missing entry: %q", res.Stdout)
	}

	res = d.Route(mustParse(t, "unalias", "ll"))
	if res.ExitCode != 0 {
		t.Fatalf("unalias failed: %q", res.Stderr)
	}
	if _, ok := d.Aliases().Get("ll"); ok {
		t.Error("alias still defined after unalias")
	}
}

type fakeHistory struct{ lines []string }

func (f *fakeHistory) Recent(n int) ([]string, error) {
	if n > len(f.lines) {
		n = len(f.lines)
	}
	return f.lines[:n], nil
}

func TestBuiltin_History(t *testing.T) {
	d := New(&fakeRunner{}, WithHistory(&fakeHistory{lines: []string{"pwd", "echo hi"}}))

	res := d.Route(mustParse(t, "history"))
	if res.ExitCode != 0 {
		t.Fatalf("history failed: %q", res.Stderr)
	}
	if !strings.Contains(res.Stdout, "echo hi") || !strings.Contains(res.Stdout, "pwd") {
		t.Errorf("history output incomplete: %q", res.Stdout)
	}

	bare := New(&fakeRunner{})
	res = bare.Route(mustParse(t, "history"))
	if res.ExitCode == 0 {
		t.Error("history without a store should fail")
	}
}

func TestBuiltin_Help(t *testing.T) {
	d := New(&fakeRunner{})
	res := d.Route(mustParse(t, "help"))
	for _, name := range []string{"exit", "cd", "pwd", "alias", "export", "history"} {
		if !strings.Contains(res.Stdout, name) {
			t.Errorf("help output missing %q", name)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if r.Has("x") {
		t.Error("empty registry should not have entries")
	}
	r.Register("x", "x - test", func(*Dispatcher, []string) Result { return Result{} })
	if !r.Has("x") || r.Get("x") == nil {
		t.Error("registered builtin not found")
	}
	if r.Help("x") != "x - test" {
		t.Errorf("unexpected help: %q", r.Help("x"))
	}
	r.Unregister("x")
	if r.Has("x") {
		t.Error("builtin still present after unregister")
	}
}
