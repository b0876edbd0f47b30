package executor

import (
	"bytes"
	"io"
)

// relayBufSize is the chunk size for relay reads.
const relayBufSize = 4096

// relay copies chunks from r to the live writer and the capture
// buffer until EOF or a read/write failure. Bytes reach the live
// writer in arrival order; a mid-stream error terminates only this
// relay, leaving whatever was captured so far intact.
func relay(r io.Reader, live io.Writer, capture *bytes.Buffer) {
	chunk := make([]byte, relayBufSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			if live != nil {
				if _, werr := live.Write(chunk[:n]); werr != nil {
					live = nil // keep capturing even if the terminal write fails
				}
			}
			capture.Write(chunk[:n])
		}
		if err != nil {
			return
		}
	}
}
