package recipe

import "strings"

// ReplacePhrase slides a window of len(match) across tokens and, wherever
// the window's joined text equals the joined match phrase, substitutes the
// replacement as a single token. Consumed window tokens are removed rather
// than blanked, so the result never carries empty tokens. The input slice is
// not modified.
func ReplacePhrase(tokens []string, match []string, replacement string) []string {
	if len(match) == 0 || len(tokens) < len(match) {
		return append([]string(nil), tokens...)
	}

	phrase := strings.Join(match, " ")
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if i+len(match) <= len(tokens) &&
			strings.Join(tokens[i:i+len(match)], " ") == phrase {
			out = append(out, replacement)
			i += len(match)
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}
