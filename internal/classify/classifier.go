package classify

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the classification of a raw input line.
type Kind int

const (
	// KindCommand routes the line to the parser and dispatcher.
	KindCommand Kind = iota
	// KindNaturalLanguage routes the line to the assistant.
	KindNaturalLanguage
	// KindGoodbye ends the interactive session.
	KindGoodbye
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindNaturalLanguage:
		return "natural-language"
	case KindGoodbye:
		return "goodbye"
	default:
		return "unknown"
	}
}

// Question and request words that suggest natural language when they
// lead a multi-word line and are not themselves executables.
var questionWords = map[string]struct{}{
	"what": {}, "whats": {}, "what's": {},
	"how": {}, "why": {}, "when": {}, "where": {},
	"who": {}, "whos": {}, "who's": {},
	"which": {}, "whose": {},
	"can": {}, "could": {}, "would": {}, "should": {},
	"is": {}, "are": {}, "was": {}, "were": {},
	"do": {}, "does": {}, "did": {},
	"please": {}, "explain": {}, "tell": {},
}

// Japanese sentence-final interrogative particles.
var trailingParticles = []string{"か", "かな", "の", "でしょう"}

var assignmentPattern = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*=`)

// Classifier decides what a raw line is. It holds a reference to the
// shared path index; it never executes anything.
type Classifier struct {
	index *PathIndex
	names []string // assistant address names, lowercased
}

// New creates a classifier over the given path index. The assistant
// names are the address prefixes recognized in rules 2 and 3
// ("aish, do something").
func New(index *PathIndex, assistantNames ...string) *Classifier {
	names := make([]string, 0, len(assistantNames))
	for _, n := range assistantNames {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			names = append(names, n)
		}
	}
	return &Classifier{index: index, names: names}
}

// Index returns the shared path index, for completion consumers.
func (c *Classifier) Index() *PathIndex {
	return c.index
}

// Classify runs the decision chain; first match wins.
func (c *Classifier) Classify(line string) Kind {
	trimmed := strings.TrimSpace(line)

	// 1. Empty lines are no-op commands.
	if trimmed == "" {
		return KindCommand
	}

	// 2. Farewell, with any assistant address prefix stripped.
	body, addressed := c.stripAddress(trimmed)
	if isFarewell(body) {
		return KindGoodbye
	}

	// 3. Addressing the assistant by name is always for the assistant.
	if addressed {
		return KindNaturalLanguage
	}

	fields := strings.Fields(trimmed)
	first := fields[0]

	// 4. Natural-language surface patterns.
	if strings.HasSuffix(trimmed, "?") || strings.HasSuffix(trimmed, "？") {
		return KindNaturalLanguage
	}
	if len(fields) > 1 {
		if _, ok := questionWords[strings.ToLower(first)]; ok && !c.index.Has(first) {
			return KindNaturalLanguage
		}
	}
	// No word-count gate here: Japanese is written without spaces, so
	// a particle-final question is usually a single field.
	for _, particle := range trailingParticles {
		if strings.HasSuffix(trimmed, particle) {
			return KindNaturalLanguage
		}
	}

	// 5. Explicit path execution.
	for _, prefix := range []string{"./", "../", "/", "~/"} {
		if strings.HasPrefix(first, prefix) {
			return KindCommand
		}
	}

	// 6. Known executable.
	if c.index.Has(filepath.Base(first)) {
		return KindCommand
	}

	// 7. Shell-syntax signals anywhere in the line.
	if strings.Contains(trimmed, "|") ||
		strings.Contains(trimmed, "&&") ||
		strings.Contains(trimmed, ";") ||
		strings.HasPrefix(trimmed, "$") ||
		assignmentPattern.MatchString(first) {
		return KindCommand
	}

	// 8. Everything else goes to the assistant.
	return KindNaturalLanguage
}

// stripAddress removes a leading assistant address ("aish," / "aish:")
// and reports whether one was present.
func (c *Classifier) stripAddress(line string) (string, bool) {
	for _, name := range c.names {
		rest, ok := cutFold(line, name)
		if !ok {
			continue
		}
		if rest == "" {
			return "", true
		}
		switch rest[0] {
		case ' ', '\t', ',', ':':
			return strings.TrimLeft(rest, " \t,:"), true
		}
	}
	return line, false
}

// cutFold strips a case-insensitive prefix from s and returns the
// remainder. Matching is rune-by-rune so the cut point stays correct
// when upper and lower case forms differ in byte length.
func cutFold(s, prefix string) (string, bool) {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return "", false
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if sr != pr && unicode.ToLower(sr) != unicode.ToLower(pr) {
			return "", false
		}
		i += size
	}
	return s[i:], true
}
