package term

import "bytes"

// Alternate-screen enable sequences. 1049 is the modern xterm form
// with cursor save/restore; 1047 and 47 are older variants still
// emitted by some full-screen programs.
var altScreenSequences = [][]byte{
	[]byte("\x1b[?1049h"),
	[]byte("\x1b[?1047h"),
	[]byte("\x1b[?47h"),
}

// maxAltSeqLen bounds the carry-over tail kept between chunks.
const maxAltSeqLen = 8

// AltScreenScanner detects the alternate-screen enable sequence in a
// byte stream, handling sequences split across read chunks. Once the
// sequence is seen the scanner stays latched.
type AltScreenScanner struct {
	detected bool
	tail     []byte
}

// Detected reports whether the sequence has been seen.
func (s *AltScreenScanner) Detected() bool {
	return s.detected
}

// Scan inspects the next chunk of child output. It returns the number
// of leading bytes of chunk that belong to the capture buffer: all of
// them when the sequence has not been seen, the bytes preceding the
// sequence start when it is first seen in this chunk, and zero on
// every chunk after detection.
func (s *AltScreenScanner) Scan(chunk []byte) int {
	if s.detected {
		return 0
	}

	// Prepend the undelivered tail of the previous chunk so a
	// sequence split across reads is still found.
	search := chunk
	tailLen := len(s.tail)
	if tailLen > 0 {
		search = append(append([]byte{}, s.tail...), chunk...)
	}

	for _, seq := range altScreenSequences {
		if i := bytes.Index(search, seq); i >= 0 {
			s.detected = true
			s.tail = nil
			keep := i - tailLen
			if keep < 0 {
				keep = 0
			}
			return keep
		}
	}

	// Keep the last few bytes in case a sequence starts at the chunk
	// boundary.
	if len(search) >= maxAltSeqLen {
		s.tail = append(s.tail[:0], search[len(search)-maxAltSeqLen+1:]...)
	} else {
		s.tail = append(s.tail[:0], search...)
	}
	return len(chunk)
}
