package agent

import (
	"regexp"
	"strings"
)

// thinkPattern matches a <think>...</think> span lazily across newlines.
// Tags are case-sensitive.
var thinkPattern = regexp.MustCompile(`(?s)<think>(.*?)</think>`)

// ExtractThink splits model output into the content of the first think span
// and the text that remains once every span is removed. Both are trimmed.
func ExtractThink(text string) (thought, residue string) {
	match := thinkPattern.FindStringSubmatch(text)
	if match == nil {
		return "", strings.TrimSpace(text)
	}
	thought = strings.TrimSpace(match[1])
	residue = strings.TrimSpace(thinkPattern.ReplaceAllLiteralString(text, ""))
	return thought, residue
}
