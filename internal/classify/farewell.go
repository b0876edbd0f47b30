package classify

import "strings"

// Farewell vocabulary. Short phrases compared exact, prefix, and
// suffix against the stripped line body. English plus Japanese.
var farewellPhrases = []string{
	"bye",
	"bye bye",
	"goodbye",
	"good bye",
	"good night",
	"see you",
	"see ya",
	"farewell",
	"quit chatting",
	"さようなら",
	"さよなら",
	"バイバイ",
	"ばいばい",
	"またね",
	"じゃあね",
	"おやすみ",
	"おつかれ",
	"お疲れ様",
}

// maxFarewellWords guards against matching a farewell mentioned
// mid-sentence ("say goodbye to the old config and update").
const maxFarewellWords = 4

// isFarewell reports whether body (already stripped of any assistant
// address prefix) is a farewell phrase.
func isFarewell(body string) bool {
	body = strings.ToLower(strings.TrimSpace(body))
	body = strings.TrimRight(body, ".!！。　 ")
	if body == "" {
		return false
	}
	if len(strings.Fields(body)) > maxFarewellWords {
		return false
	}
	for _, phrase := range farewellPhrases {
		if body == phrase ||
			strings.HasPrefix(body, phrase+" ") ||
			strings.HasSuffix(body, " "+phrase) ||
			(isCJK(phrase) && (strings.HasPrefix(body, phrase) || strings.HasSuffix(body, phrase))) {
			return true
		}
	}
	return false
}

// IsFarewellResponse reports whether an assistant's free-form reply
// ends the session. Only the last three lines are inspected so a
// farewell mentioned early in a long reply does not falsely end it.
func IsFarewellResponse(text string) bool {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	for _, line := range lines {
		if isFarewell(line) {
			return true
		}
	}
	return false
}

// isCJK reports whether the phrase is written without word spacing,
// so prefix/suffix matching cannot rely on surrounding spaces.
func isCJK(phrase string) bool {
	for _, r := range phrase {
		if r >= 0x3000 {
			return true
		}
	}
	return false
}
