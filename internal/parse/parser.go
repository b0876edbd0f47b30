package parse

// Parse turns a flat token sequence into a structured pipeline.
//
// The token stream is split on literal "|" tokens into stages; every
// split point must have at least one token on each side. Within a
// stage, ">", ">>" and "<" consume the following token as their target
// path and are removed from the positional stream in encounter order.
// The remaining tokens form the program (first) and its arguments.
func Parse(tokens []string) (*Pipeline, error) {
	if len(tokens) == 0 {
		return nil, newParseError("", ErrEmptyInput)
	}

	var stages []SimpleCommand
	start := 0
	for i := 0; i <= len(tokens); i++ {
		if i < len(tokens) && tokens[i] != "|" {
			continue
		}
		segment := tokens[start:i]
		if len(segment) == 0 {
			return nil, newParseError("|", ErrEmptyStage)
		}
		stage, err := parseStage(segment)
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
		start = i + 1
	}

	return &Pipeline{Stages: stages}, nil
}

// ParseLine tokenizes, expands, and parses a raw line in one call.
func ParseLine(line string) (*Pipeline, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, newParseError(line, err)
	}
	return Parse(ExpandAll(tokens))
}

func parseStage(segment []string) (SimpleCommand, error) {
	var cmd SimpleCommand
	var positional []string

	for i := 0; i < len(segment); i++ {
		tok := segment[i]
		kind, isRedirect := redirectKind(tok)
		if !isRedirect {
			positional = append(positional, tok)
			continue
		}
		if i+1 >= len(segment) {
			return SimpleCommand{}, newParseError(tok, ErrMissingRedirectTarget)
		}
		i++
		cmd.Redirects = append(cmd.Redirects, Redirect{Kind: kind, Path: segment[i]})
	}

	if len(positional) == 0 {
		return SimpleCommand{}, newParseError("", ErrEmptyStage)
	}

	cmd.Program = positional[0]
	cmd.Args = positional[1:]
	return cmd, nil
}

func redirectKind(tok string) (RedirectKind, bool) {
	switch tok {
	case ">":
		return RedirectStdout, true
	case ">>":
		return RedirectAppend, true
	case "<":
		return RedirectStdin, true
	default:
		return 0, false
	}
}
