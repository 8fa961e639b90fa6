package tagger

import (
	"regexp"
	"strings"
	"unicode"
)

// numberPattern matches cardinal tokens: integers, decimals, and a/b fractions.
var numberPattern = regexp.MustCompile(`^\d+([./]\d+)?$`)

// closedClass maps function words to their tags. These are unambiguous in
// recipe text and short-circuit the suffix rules.
var closedClass = map[string]string{
	"of": "IN", "in": "IN", "on": "IN", "with": "IN", "for": "IN",
	"into": "IN", "over": "IN", "until": "IN", "at": "IN", "by": "IN",
	"from": "IN", "about": "IN",
	"the": "DT", "a": "DT", "an": "DT", "each": "DT",
	"and": "CC", "or": "CC", "but": "CC",
	"to": "TO",
}

// adjectives lists describing words common on ingredient lines that the
// suffix rules would otherwise mistake for nouns or verbs.
var adjectives = map[string]bool{
	"fresh": true, "large": true, "small": true, "medium": true,
	"extra-virgin": true, "boneless": true, "skinless": true, "whole": true,
	"low-fat": true, "nonfat": true, "unsalted": true, "sweet": true,
	"hot": true, "cold": true, "warm": true, "ripe": true, "raw": true,
	"lean": true, "thin": true, "thick": true, "fine": true, "dry": true,
	"uncooked": true, "plain": true, "light": true, "dark": true,
}

// verbs lists preparation verbs whose base form carries no telling suffix.
var verbs = map[string]bool{
	"chop": true, "dice": true, "mince": true, "slice": true, "shred": true,
	"grate": true, "peel": true, "crush": true, "cut": true, "trim": true,
	"drain": true, "rinse": true, "melt": true, "beat": true, "whisk": true,
	"cube": true, "halve": true, "core": true, "taste": true,
}

// RuleTagger assigns part-of-speech tags from a closed-class lexicon and
// suffix heuristics. It is deterministic and needs no model files, which is
// all the ingredient and instruction micro-grammars require.
type RuleTagger struct{}

// NewRuleTagger creates the default rule-based tagger.
func NewRuleTagger() *RuleTagger {
	return &RuleTagger{}
}

// Tag tokenizes the phrase and tags each token.
func (t *RuleTagger) Tag(phrase string) []TaggedToken {
	tokens := Tokenize(phrase)
	tagged := make([]TaggedToken, 0, len(tokens))
	for i, tok := range tokens {
		tagged = append(tagged, TaggedToken{Text: tok, Tag: tagToken(tok, i)})
	}
	return tagged
}

func tagToken(tok string, position int) string {
	lower := strings.ToLower(tok)

	switch {
	case isPunct(tok):
		return "."
	case numberPattern.MatchString(tok):
		return "CD"
	}

	if tag, ok := closedClass[lower]; ok {
		return tag
	}
	if adjectives[lower] {
		return "JJ"
	}
	if verbs[lower] {
		return "VB"
	}

	switch {
	case strings.HasSuffix(lower, "ly"):
		return "RB"
	case strings.HasSuffix(lower, "ed"):
		return "VBD"
	case strings.HasSuffix(lower, "ing") && len(lower) > 4:
		return "VBG"
	case position > 0 && isTitle(tok):
		return "NNP"
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss"):
		return "NNS"
	default:
		return "NN"
	}
}

func isPunct(tok string) bool {
	return len(tok) == 1 && strings.ContainsRune(punctuation, rune(tok[0]))
}

func isTitle(tok string) bool {
	r := []rune(tok)
	return len(r) > 0 && unicode.IsUpper(r[0])
}
