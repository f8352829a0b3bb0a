package insights

import "strings"

// StripMarkdownFence removes a leading/trailing triple-backtick fence from a
// model reply, with or without a "json" language tag. Models are told to
// return bare JSON but routinely fence it anyway. A reply with no fence, or
// with only one side of a fence, loses just the markers that are present.
func StripMarkdownFence(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}

	if strings.HasSuffix(strings.TrimSpace(s), "```") {
		s = strings.TrimSpace(s)
		s = s[:len(s)-len("```")]
	}

	return strings.TrimSpace(s)
}
