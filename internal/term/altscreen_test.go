package term

import "testing"

func TestAltScreenScanner_SingleChunk(t *testing.T) {
	var s AltScreenScanner

	keep := s.Scan([]byte("hello\x1b[?1049hredraw"))
	if !s.Detected() {
		t.Fatal("expected detection")
	}
	if keep != len("hello") {
		t.Errorf("expected keep=5, got %d", keep)
	}

	// Latched: later chunks contribute nothing to the capture.
	if keep := s.Scan([]byte("more")); keep != 0 {
		t.Errorf("expected keep=0 after detection, got %d", keep)
	}
}

func TestAltScreenScanner_SplitAcrossChunks(t *testing.T) {
	var s AltScreenScanner

	first := s.Scan([]byte("out\x1b[?10"))
	if s.Detected() {
		t.Fatal("incomplete sequence must not trigger detection")
	}
	if first != len("out\x1b[?10") {
		t.Errorf("expected whole chunk kept, got %d", first)
	}

	second := s.Scan([]byte("49htui"))
	if !s.Detected() {
		t.Fatal("expected detection across chunk boundary")
	}
	if second != 0 {
		t.Errorf("expected keep=0 for chunk completing the sequence, got %d", second)
	}
}

func TestAltScreenScanner_Variants(t *testing.T) {
	for _, seq := range []string{"\x1b[?1049h", "\x1b[?1047h", "\x1b[?47h"} {
		var s AltScreenScanner
		s.Scan([]byte("x" + seq))
		if !s.Detected() {
			t.Errorf("sequence %q not detected", seq)
		}
	}
}

func TestAltScreenScanner_NoFalsePositive(t *testing.T) {
	var s AltScreenScanner
	// Disable sequence and unrelated escapes must not latch.
	for _, chunk := range []string{"plain text", "\x1b[?1049l", "\x1b[2J\x1b[H"} {
		if keep := s.Scan([]byte(chunk)); keep != len(chunk) {
			t.Errorf("Scan(%q): expected keep=%d, got %d", chunk, len(chunk), keep)
		}
	}
	if s.Detected() {
		t.Error("unexpected detection")
	}
}
