package recipe

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/platechange/platechange/tagger"
)

// Vocabulary patterns for instruction parsing.
var (
	toolPattern    = regexp.MustCompile(`(?i)(pan|skillet|pot|sheet|grate|whisk|griddle|bowl|oven|dish)`)
	methodPattern  = regexp.MustCompile(`(?i)(boil|bake|baking|simmer|stir|roast|fry)`)
	preheatPattern = regexp.MustCompile(`(?i)preheat`)
	timePattern    = regexp.MustCompile(`(?i)(min|hour)`)
	hourPattern    = regexp.MustCompile(`(?i)hour`)
	degreesPattern = regexp.MustCompile(`(?i)degrees`)
)

// Instruction is one cooking step. The token list backing Text is retained
// so ingredient substitution can do window surgery without re-tokenizing.
type Instruction struct {
	// Text is the current step text; rewritten in place by substitution.
	Text string

	// Tools are tool words detected in the step.
	Tools []string

	// Methods are cooking-method words, with "preheat" implying "bake".
	Methods []string

	// Minutes is the elapsed time summed from numeric tokens preceding a
	// time unit. A step mentioning "degrees" is forced to zero.
	Minutes int

	// Ingredients holds names of recipe ingredients referenced by the
	// step text. Populated and refreshed by the owning Recipe.
	Ingredients []string

	words []string
}

// ParseInstruction converts one instruction sentence into an Instruction.
// The ingredient reference set starts empty; the Recipe aggregate fills it.
func ParseInstruction(sentence string) *Instruction {
	words := tagger.Tokenize(sentence)
	return &Instruction{
		Text:    sentence,
		Tools:   findTools(words),
		Methods: findMethods(words),
		Minutes: findMinutes(words),
		words:   words,
	}
}

// Words returns a copy of the step's token list.
func (in *Instruction) Words() []string {
	out := make([]string, len(in.words))
	copy(out, in.words)
	return out
}

// clone returns a deep copy with value semantics.
func (in *Instruction) clone() *Instruction {
	out := &Instruction{
		Text:    in.Text,
		Tools:   append([]string(nil), in.Tools...),
		Methods: append([]string(nil), in.Methods...),
		Minutes: in.Minutes,
		words:   append([]string(nil), in.words...),
	}
	if in.Ingredients != nil {
		out.Ingredients = append([]string(nil), in.Ingredients...)
	}
	return out
}

// findTools collects tokens matching the tool vocabulary, de-duplicated
// case-insensitively with the titlecase form preferred when both occur.
func findTools(words []string) []string {
	var tools []string
	for _, word := range words {
		if toolPattern.MatchString(word) {
			tools = append(tools, word)
		}
	}
	return dedupeCaseFold(tools)
}

// findMethods collects cooking-verb tokens, adding "bake" whenever the step
// mentions preheating.
func findMethods(words []string) []string {
	var methods []string
	for _, word := range words {
		if methodPattern.MatchString(word) {
			methods = append(methods, word)
		}
		if preheatPattern.MatchString(word) {
			methods = append(methods, "bake")
		}
	}
	return dedupeCaseFold(methods)
}

// dedupeCaseFold removes case-variant duplicates, keeping an entry when it
// is titlecase or when its titlecase form is not separately present.
func dedupeCaseFold(words []string) []string {
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[w] = true
	}
	var out []string
	emitted := make(map[string]bool, len(words))
	for _, w := range words {
		title := titleCase(w)
		if w != title && seen[title] {
			continue
		}
		if emitted[w] {
			continue
		}
		emitted[w] = true
		out = append(out, w)
	}
	return out
}

// titleCase uppercases the first letter of a single word.
func titleCase(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

// findMinutes sums numeric tokens that immediately precede a time unit,
// scaling hours by 60. Digits in a step that mentions "degrees" are oven
// temperatures, never minutes, so such steps are forced to zero.
func findMinutes(words []string) int {
	minutes := 0
	for i, word := range words {
		if degreesPattern.MatchString(word) {
			return 0
		}
		if !timePattern.MatchString(word) || i == 0 {
			continue
		}
		n, err := strconv.Atoi(words[i-1])
		if err != nil {
			continue
		}
		if hourPattern.MatchString(word) {
			minutes += n * 60
		} else {
			minutes += n
		}
	}
	return minutes
}
