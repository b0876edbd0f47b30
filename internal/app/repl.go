package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	isatty "github.com/mattn/go-isatty"

	"github.com/dshills/aish/internal/classify"
	"github.com/dshills/aish/internal/executor"
)

// assistantContextLines is how much command history accompanies a
// natural-language line.
const assistantContextLines = 10

// Run reads lines from stdin until EOF or a farewell. The classifier
// gates every line: commands go through the execution core, natural
// language goes to the assistant, goodbyes end the loop.
func (s *Shell) Run() error {
	in := bufio.NewReader(os.Stdin)
	interactive := isatty.IsTerminal(os.Stdin.Fd())

	for {
		if interactive {
			fmt.Fprint(os.Stdout, s.prompt())
		}

		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		eof := err == io.EOF
		line = strings.TrimRight(line, "\r\n")
		if eof && line == "" {
			return nil
		}

		switch s.Classify(line) {
		case classify.KindGoodbye:
			if interactive {
				fmt.Fprintln(os.Stdout, "goodbye")
			}
			return nil

		case classify.KindNaturalLanguage:
			// A builtin first word still wins, so "help" or
			// "history?" style lines never waste an assistant call.
			if res, ok := s.ExecuteBuiltin(line); ok {
				s.printResult(res)
				if res.Control == executor.ControlExit {
					return nil
				}
				continue
			}
			if stop := s.askAssistant(line); stop {
				return nil
			}

		case classify.KindCommand:
			res := s.Execute(line)
			s.printResult(res)
			if res.Control == executor.ControlExit {
				return nil
			}
		}

		if eof {
			return nil
		}
	}
}

func (s *Shell) prompt() string {
	wd, err := os.Getwd()
	if err != nil {
		return "aish> "
	}
	if home, herr := os.UserHomeDir(); herr == nil && strings.HasPrefix(wd, home) {
		wd = "~" + wd[len(home):]
	}
	return wd + " aish> "
}

// printResult writes a result's streams to the terminal unless a relay
// already mirrored them live.
func (s *Shell) printResult(res executor.Result) {
	if res.Echoed {
		return
	}
	if res.Stdout != "" {
		fmt.Fprint(os.Stdout, res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprint(os.Stderr, res.Stderr)
	}
}

// askAssistant routes a natural-language line to the assistant. It
// reports true when the assistant's reply ends the session.
func (s *Shell) askAssistant(line string) bool {
	if s.assistant == nil {
		fmt.Fprintln(os.Stderr, "aish: no assistant configured; set one up or phrase this as a command")
		return false
	}

	reply, err := s.assistant.Respond(context.Background(), line, s.RecentContext(assistantContextLines))
	if err != nil {
		s.log.Error("assistant: %v", err)
		fmt.Fprintf(os.Stderr, "aish: assistant: %v\n", err)
		return false
	}

	fmt.Fprintln(os.Stdout, reply)
	return classify.IsFarewellResponse(reply)
}
