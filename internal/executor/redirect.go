package executor

import (
	"os"

	"github.com/dshills/aish/internal/parse"
)

// stageFiles holds the opened redirect targets for one stage. Either
// field may be nil when the stage has no redirect in that direction.
type stageFiles struct {
	stdin  *os.File
	stdout *os.File
}

func (f *stageFiles) close() {
	if f.stdin != nil {
		f.stdin.Close()
	}
	if f.stdout != nil {
		f.stdout.Close()
	}
}

// openRedirects resolves a stage's redirect list into open files.
// Only the first stage's stdin and the last stage's stdout are
// eligible for file redirection; interior stages always connect
// pipe-to-pipe, so a redirect there is refused rather than silently
// dropped. On failure the returned Result carries the offending path.
func openRedirects(stage *parse.SimpleCommand, first, last bool) (stageFiles, *Result) {
	var files stageFiles

	if r, ok := stage.StdinRedirect(); ok {
		if !first {
			res := Errorf(1, "%s: input redirection only allowed on the first pipeline stage", stage.Program)
			return files, &res
		}
		f, err := os.Open(r.Path)
		if err != nil {
			res := Errorf(1, "%s: %v", r.Path, err)
			return files, &res
		}
		files.stdin = f
	}

	if r, ok := stage.StdoutRedirect(); ok {
		if !last {
			files.close()
			res := Errorf(1, "%s: output redirection only allowed on the last pipeline stage", stage.Program)
			return files, &res
		}
		flags := os.O_WRONLY | os.O_CREATE
		if r.Kind == parse.RedirectAppend {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(r.Path, flags, 0o644)
		if err != nil {
			files.close()
			res := Errorf(1, "%s: %v", r.Path, err)
			return files, &res
		}
		files.stdout = f
	}

	return files, nil
}
