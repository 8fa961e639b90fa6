package recipe

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/platechange/platechange/tagger"
	"github.com/platechange/platechange/taxonomy"
)

// Vocabulary patterns for ingredient field extraction. These are searched
// against individual tokens, so partial matches ("cups" vs "cup") count.
var (
	measurePattern = regexp.MustCompile(`(?i)(cup|spoon|fluid|ounce|pinch|gill|pint|quart|gallon|pound|drops|recipe|slices|pods|package|can|head|halves)`)

	// Last-resort vocabularies for words the tagger mis-handles.
	descriptorPattern  = regexp.MustCompile(`(?i)(color|mini|container|skin|bone|halves|fine|parts|leftover|style|frying)`)
	preparationPattern = regexp.MustCompile(`(?i)(room|temperature|divided|sliced|dice|mince|chopped|quartered|cored|shredded|seperated|pieces)`)

	// knownNamePattern is the curated allowlist of ingredient nouns that
	// always count toward the name, even when tagged as something else.
	knownNamePattern = regexp.MustCompile(`(?i)(garlic|poppy|baking|sour|cream|broth|chicken|olive|mushroom|green|vegetable|bell)`)

	wholePattern    = regexp.MustCompile(`^(\d+)\s`)
	fractionPattern = regexp.MustCompile(`(\d+)/(\d+)`)
)

// Ingredient is one line item of a recipe, parsed into typed fields.
type Ingredient struct {
	// Name is the canonical noun phrase. Never empty: parsing falls back
	// to the final token when no noun is found.
	Name string

	// Quantity is the amount, summed from a leading whole number and an
	// a/b fraction token. Zero means unspecified.
	Quantity float64

	// Measurement is the unit phrase ("cups", "(8 ounce) package(s)").
	Measurement string

	// Descriptor lists modifier words not claimed by other fields.
	Descriptor []string

	// Preparation lists prep actions ("chopped", "to taste").
	Preparation []string

	// Type is the resolved food domain tag.
	Type taxonomy.DomainType
}

// Equal reports whether two ingredients have identical fields. Used for
// diffing against the pristine snapshot, not for identity.
func (ing Ingredient) Equal(other Ingredient) bool {
	if ing.Name != other.Name || ing.Quantity != other.Quantity ||
		ing.Measurement != other.Measurement || ing.Type != other.Type {
		return false
	}
	return equalStrings(ing.Descriptor, other.Descriptor) &&
		equalStrings(ing.Preparation, other.Preparation)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String returns the ingredient's name.
func (ing Ingredient) String() string { return ing.Name }

// ParseIngredient converts one natural-language ingredient line into an
// Ingredient. Parsing fails softly: fields that cannot be detected are left
// at their zero values, never reported as errors.
func ParseIngredient(phrase string, tg tagger.Tagger, tax *taxonomy.Taxonomy) Ingredient {
	tagged := tg.Tag(phrase)

	ing := Ingredient{
		Name:        findName(tagged),
		Quantity:    findQuantity(phrase),
		Measurement: findMeasurement(tagged, phrase),
		Descriptor:  findDescriptor(tagged),
		Preparation: findPreparation(tagged),
	}
	ing.Type = tax.Resolve(ing.Name)
	return ing
}

// findName collects noun tokens that are not measurements and not on the
// descriptor/preparation vocabularies, plus anything on the known-name
// allowlist regardless of tag. Falls back to the final token.
func findName(tagged []tagger.TaggedToken) string {
	var name []string
	for _, tok := range tagged {
		isNoun := tok.Tag == "NN" || tok.Tag == "NNS" || tok.Tag == "NNP"
		keep := isNoun &&
			!measurePattern.MatchString(tok.Text) &&
			!descriptorPattern.MatchString(tok.Text) &&
			!preparationPattern.MatchString(tok.Text)
		if keep || knownNamePattern.MatchString(tok.Text) {
			name = append(name, tok.Text)
		}
	}
	if len(name) == 0 && len(tagged) > 0 {
		return tagged[len(tagged)-1].Text
	}
	return strings.Join(name, " ")
}

// findQuantity runs an independent regex pass over the untagged phrase:
// a leading whole number plus an a/b fraction anywhere, summed. This is
// decoupled from tagging because fraction tokens are not reliably tokenized.
func findQuantity(phrase string) float64 {
	var total float64
	if m := wholePattern.FindStringSubmatch(phrase); m != nil {
		whole, _ := strconv.Atoi(m[1])
		total += float64(whole)
	}
	if m := fractionPattern.FindStringSubmatch(phrase); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		denom, _ := strconv.ParseFloat(m[2], 64)
		if denom != 0 {
			total += num / denom
		}
	}
	return total
}

// findMeasurement joins unit-word tokens in order. Package and can units are
// replaced with the parenthetical size string from the source phrase; a
// parenthetical containing a digit is returned verbatim when no unit word
// matched it.
func findMeasurement(tagged []tagger.TaggedToken, phrase string) string {
	var units []string
	for _, tok := range tagged {
		if measurePattern.MatchString(tok.Text) {
			units = append(units, tok.Text)
		}
	}
	joined := strings.Join(units, " ")

	lower := strings.ToLower(joined)
	if strings.Contains(lower, "package") {
		return parenthetical(phrase) + " package(s)"
	}
	if strings.Contains(lower, "can") {
		return parenthetical(phrase) + " can(s)"
	}
	if strings.Contains(phrase, "(") && strings.ContainsAny(phrase, "0123456789") {
		return parenthetical(phrase)
	}
	return joined
}

// parenthetical extracts the text between the first "(" and the first ")".
func parenthetical(phrase string) string {
	open := strings.Index(phrase, "(")
	if open < 0 {
		return ""
	}
	closed := strings.Index(phrase, ")")
	if closed < open {
		return phrase[open+1:]
	}
	return phrase[open+1 : closed]
}

// findDescriptor collects adjectives and adverbs that are not measurements
// and not allowlisted name tokens, plus any token on the descriptor
// vocabulary regardless of tag.
func findDescriptor(tagged []tagger.TaggedToken) []string {
	var descriptors []string
	for _, tok := range tagged {
		isModifier := (tok.Tag == "JJ" || tok.Tag == "RB") &&
			!measurePattern.MatchString(tok.Text) &&
			!knownNamePattern.MatchString(tok.Text)
		if isModifier || descriptorPattern.MatchString(tok.Text) {
			descriptors = append(descriptors, tok.Text)
		}
	}
	return descriptors
}

// findPreparation collects action words (base and past tense verbs, plus the
// preparation vocabulary) that are not allowlisted name tokens. The literal
// "taste" token is normalized to "to taste".
func findPreparation(tagged []tagger.TaggedToken) []string {
	var preparations []string
	for _, tok := range tagged {
		isAction := tok.Tag == "VB" || tok.Tag == "VBD" ||
			preparationPattern.MatchString(tok.Text)
		if isAction && !knownNamePattern.MatchString(tok.Text) {
			preparations = append(preparations, tok.Text)
		}
	}
	for i, p := range preparations {
		if p == "taste" {
			preparations[i] = "to taste"
		}
	}
	return preparations
}
