package parse

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse_SingleStage(t *testing.T) {
	p, err := Parse([]string{"ls", "-la", "/tmp"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Stages) != 1 {
		t.Fatalf("expected 1 stage, got %d", len(p.Stages))
	}
	if p.First().Program != "ls" {
		t.Errorf("expected program 'ls', got %q", p.First().Program)
	}
	if !reflect.DeepEqual(p.First().Args, []string{"-la", "/tmp"}) {
		t.Errorf("unexpected args: %v", p.First().Args)
	}
}

func TestParse_MultiStage(t *testing.T) {
	p, err := Parse([]string{"cat", "file", "|", "grep", "x", "|", "wc", "-l"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Stages) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(p.Stages))
	}
	want := []string{"cat", "grep", "wc"}
	for i, prog := range want {
		if p.Stages[i].Program != prog {
			t.Errorf("stage %d: expected program %q, got %q", i, prog, p.Stages[i].Program)
		}
	}
}

func TestParse_Redirects(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		kind   RedirectKind
		path   string
		args   []string
	}{
		{"overwrite", []string{"echo", "hi", ">", "out.txt"}, RedirectStdout, "out.txt", []string{"hi"}},
		{"append", []string{"echo", "hi", ">>", "out.txt"}, RedirectAppend, "out.txt", []string{"hi"}},
		{"stdin", []string{"wc", "-l", "<", "in.txt"}, RedirectStdin, "in.txt", []string{"-l"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.tokens)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			stage := p.First()
			if len(stage.Redirects) != 1 {
				t.Fatalf("expected 1 redirect, got %d", len(stage.Redirects))
			}
			r := stage.Redirects[0]
			if r.Kind != tt.kind || r.Path != tt.path {
				t.Errorf("expected %v %q, got %v %q", tt.kind, tt.path, r.Kind, r.Path)
			}
			if !reflect.DeepEqual(stage.Args, tt.args) {
				t.Errorf("expected args %v, got %v", tt.args, stage.Args)
			}
		})
	}
}

func TestParse_RedirectOrderPreserved(t *testing.T) {
	p, err := Parse([]string{"sort", "<", "in", ">", "out"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rs := p.First().Redirects
	if len(rs) != 2 {
		t.Fatalf("expected 2 redirects, got %d", len(rs))
	}
	if rs[0].Kind != RedirectStdin || rs[1].Kind != RedirectStdout {
		t.Errorf("redirect encounter order not preserved: %v", rs)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   error
	}{
		{"empty", []string{}, ErrEmptyInput},
		{"leading pipe", []string{"|", "x"}, ErrEmptyStage},
		{"trailing pipe", []string{"x", "|"}, ErrEmptyStage},
		{"adjacent pipes", []string{"x", "|", "|", "y"}, ErrEmptyStage},
		{"dangling redirect", []string{"x", ">"}, ErrMissingRedirectTarget},
		{"dangling stdin", []string{"x", "<"}, ErrMissingRedirectTarget},
		{"only redirect", []string{">", "out"}, ErrEmptyStage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.tokens)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParse_DanglingRedirectNamesOperator(t *testing.T) {
	_, err := Parse([]string{"x", ">>"})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Token != ">>" {
		t.Errorf("expected offending token %q, got %q", ">>", perr.Token)
	}
}

// Rejoining program+args of every stage reconstructs the original
// positional tokens minus consumed operator/target pairs.
func TestParse_Roundtrip(t *testing.T) {
	tokens := []string{"cat", "a", "<", "in", "|", "tr", "x", "y", "|", "tee", ">", "out"}
	p, err := Parse(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rejoined []string
	for i, stage := range p.Stages {
		if i > 0 {
			rejoined = append(rejoined, "|")
		}
		rejoined = append(rejoined, stage.Argv()...)
	}
	want := []string{"cat", "a", "|", "tr", "x", "y", "|", "tee"}
	if !reflect.DeepEqual(rejoined, want) {
		t.Errorf("expected %v, got %v", want, rejoined)
	}
}
