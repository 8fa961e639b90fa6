// Package tagger provides word tokenization and part-of-speech tagging for
// recipe text. The Tagger interface is the seam for plugging in an external
// POS tagger; the package ships a lexicon-and-suffix rule tagger that covers
// the recipe micro-grammar well enough for field extraction.
//
// Tags follow the Penn Treebank conventions used by the rest of the module:
//
//   - NN / NNS / NNP  noun, plural noun, proper noun
//   - JJ              adjective
//   - RB              adverb
//   - VB / VBD / VBG  verb, past tense, gerund
//   - CD              cardinal number (including a/b fraction tokens)
//   - IN / DT / CC    preposition, determiner, conjunction
//   - .               punctuation
package tagger

import "strings"

// TaggedToken is one token of a phrase together with its part-of-speech tag.
type TaggedToken struct {
	Text string
	Tag  string
}

// Tagger maps a string to an ordered sequence of (token, tag) pairs.
type Tagger interface {
	Tag(phrase string) []TaggedToken
}

// punctuation runes that are split into standalone tokens.
const punctuation = ".,;:!?()\"'"

// Tokenize splits a sentence into word tokens. Leading and trailing
// punctuation becomes standalone tokens so that phrase windows align with
// ingredient names regardless of sentence position. Interior characters
// (hyphens, slashes in fractions) are kept intact.
func Tokenize(s string) []string {
	var tokens []string
	for _, field := range strings.Fields(s) {
		tokens = append(tokens, splitField(field)...)
	}
	return tokens
}

// splitField peels punctuation off both ends of a whitespace-delimited field.
func splitField(field string) []string {
	var lead, trail []string
	for len(field) > 0 && strings.ContainsRune(punctuation, rune(field[0])) {
		lead = append(lead, string(field[0]))
		field = field[1:]
	}
	for len(field) > 0 && strings.ContainsRune(punctuation, rune(field[len(field)-1])) {
		trail = append([]string{string(field[len(field)-1])}, trail...)
		field = field[:len(field)-1]
	}
	var out []string
	out = append(out, lead...)
	if field != "" {
		out = append(out, field)
	}
	out = append(out, trail...)
	return out
}
