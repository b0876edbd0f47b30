package parse

import (
	"os"
	"path/filepath"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

// Tokenize splits a raw line into shell tokens, honoring single and
// double quotes and backslash escapes. Operators ("|", ">", ">>", "<")
// come out as their own tokens when whitespace-separated.
//
// Environment and tilde expansion are NOT performed here; see Expand.
func Tokenize(line string) ([]string, error) {
	p := shellwords.NewParser()
	p.ParseEnv = false
	p.ParseBacktick = false
	return p.Parse(line)
}

// Expand applies home-directory and environment-variable substitution
// to a single token. A leading "~" or "~/" resolves to the current
// user's home directory; "$NAME" and "${NAME}" resolve against the
// process environment, with unset variables expanding to "".
func Expand(token string) string {
	token = expandHome(token)
	if strings.ContainsRune(token, '$') {
		token = os.Expand(token, os.Getenv)
	}
	return token
}

// ExpandAll expands every token in place and returns the slice.
func ExpandAll(tokens []string) []string {
	for i, tok := range tokens {
		tokens[i] = Expand(tok)
	}
	return tokens
}

func expandHome(token string) string {
	if token == "" || token[0] != '~' {
		return token
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return token
	}
	if token == "~" {
		return home
	}
	if strings.HasPrefix(token, "~/") {
		return filepath.Join(home, token[2:])
	}
	// ~user form is not supported; leave it alone.
	return token
}
