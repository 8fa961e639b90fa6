// Package recipe implements the typed recipe model: ingredient and
// instruction parsing, the aggregate that keeps both collections mutually
// consistent, the ingredient substitution primitive, and the diff report
// against the pristine snapshot taken at construction time.
package recipe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/platechange/platechange/tagger"
	"github.com/platechange/platechange/taxonomy"
)

// SourceData is the input contract from the scraping collaborator: raw
// strings for one recipe plus nutrition facts as numeric strings (grams for
// carbs/fat/protein, milligrams for cholesterol/sodium).
type SourceData struct {
	Name         string   `json:"name"`
	PrepTime     int      `json:"preptime"`
	CookTime     int      `json:"cooktime"`
	TotalTime    int      `json:"totaltime"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Calories     string   `json:"calories"`
	Carbs        string   `json:"carbs"`
	Fat          string   `json:"fat"`
	Protein      string   `json:"protein"`
	Cholesterol  string   `json:"cholesterol"`
	Sodium       string   `json:"sodium"`
}

// Validate checks the required fields. Nutrition and time fields may be
// absent (zero); name, ingredients and instructions may not.
func (d SourceData) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("source data: name is required")
	}
	if len(d.Ingredients) == 0 {
		return fmt.Errorf("source data: at least one ingredient is required")
	}
	if len(d.Instructions) == 0 {
		return fmt.Errorf("source data: at least one instruction is required")
	}
	return nil
}

// Nutrition holds per-recipe nutrition facts. Values are carried through
// transformation unchanged.
type Nutrition struct {
	Calories    float64
	Carbs       float64
	Fat         float64
	Protein     float64
	Cholesterol float64
	Sodium      float64
}

// Recipe is the aggregate root: the ordered ingredient and instruction
// sequences for one recipe plus derived cooking tool and method sets.
// Sequence order is cooking order.
type Recipe struct {
	Name      string
	PrepTime  int
	CookTime  int
	TotalTime int

	Ingredients  []Ingredient
	Instructions []*Instruction

	CookingTools   []string
	CookingMethods []string

	Nutrition Nutrition

	original *Recipe
}

// New parses raw source data into a Recipe. Instructions whose text is empty
// are dropped. A deep-copied pristine snapshot is retained for later diffing.
func New(data SourceData, tg tagger.Tagger, tax *taxonomy.Taxonomy) (*Recipe, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	r := &Recipe{
		Name:      data.Name,
		PrepTime:  data.PrepTime,
		CookTime:  data.CookTime,
		TotalTime: data.TotalTime,
		Nutrition: Nutrition{
			Calories:    parseNumeric(data.Calories),
			Carbs:       parseNumeric(data.Carbs),
			Fat:         parseNumeric(data.Fat),
			Protein:     parseNumeric(data.Protein),
			Cholesterol: parseNumeric(data.Cholesterol),
			Sodium:      parseNumeric(data.Sodium),
		},
	}

	for _, phrase := range data.Ingredients {
		if strings.TrimSpace(phrase) == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, ParseIngredient(phrase, tg, tax))
	}
	for _, sentence := range data.Instructions {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		r.Instructions = append(r.Instructions, ParseInstruction(sentence))
	}

	r.RefreshCookingSets()
	r.UpdateInstructions()
	r.original = r.clone()
	return r, nil
}

// parseNumeric extracts a float from a numeric string that may carry unit
// suffixes ("24.3 g"). Absent or malformed values become zero.
func parseNumeric(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// clone returns a deep copy with value semantics. The copy carries no
// snapshot of its own.
func (r *Recipe) clone() *Recipe {
	out := &Recipe{
		Name:           r.Name,
		PrepTime:       r.PrepTime,
		CookTime:       r.CookTime,
		TotalTime:      r.TotalTime,
		CookingTools:   append([]string(nil), r.CookingTools...),
		CookingMethods: append([]string(nil), r.CookingMethods...),
		Nutrition:      r.Nutrition,
	}
	for _, ing := range r.Ingredients {
		copied := ing
		copied.Descriptor = append([]string(nil), ing.Descriptor...)
		copied.Preparation = append([]string(nil), ing.Preparation...)
		out.Ingredients = append(out.Ingredients, copied)
	}
	for _, in := range r.Instructions {
		out.Instructions = append(out.Instructions, in.clone())
	}
	return out
}

// Original returns the pristine snapshot taken at construction time.
func (r *Recipe) Original() *Recipe {
	return r.original
}

// RefreshCookingSets recomputes the recipe-level tool and method sets as the
// union over all instructions.
func (r *Recipe) RefreshCookingSets() {
	var tools, methods []string
	for _, in := range r.Instructions {
		tools = append(tools, in.Tools...)
		methods = append(methods, in.Methods...)
	}
	r.CookingTools = uniqueStrings(tools)
	r.CookingMethods = uniqueStrings(methods)
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// UpdateInstructions recomputes each instruction's ingredient reference set:
// the names of recipe ingredients appearing as substrings of the step text.
// Substitutions refresh these sets lazily through this method rather than on
// every swap.
func (r *Recipe) UpdateInstructions() {
	for _, in := range r.Instructions {
		var refs []string
		for _, ing := range r.Ingredients {
			if ing.Name != "" && strings.Contains(in.Text, ing.Name) {
				refs = append(refs, ing.Name)
			}
		}
		in.Ingredients = uniqueStrings(refs)
	}
}

// SwapIngredient replaces every ingredient whose name equals current's name
// with replacement, then rewrites each instruction by window-matching the
// current name's words and substituting the replacement name. Duplicate
// ingredient names are all replaced. Steps where the name never occurs
// verbatim are left unchanged; no fuzzy matching is attempted.
func (r *Recipe) SwapIngredient(current, replacement Ingredient) {
	for i, ing := range r.Ingredients {
		if ing.Name == current.Name {
			r.Ingredients[i] = replacement
		}
	}

	match := strings.Fields(current.Name)
	if len(match) == 0 {
		return
	}
	for _, in := range r.Instructions {
		rewritten := ReplacePhrase(in.words, match, replacement.Name)
		if len(rewritten) == len(in.words) && equalStrings(rewritten, in.words) {
			continue
		}
		in.words = rewritten
		in.Text = strings.Join(rewritten, " ")
	}
}

// AppendIngredient adds an ingredient to the end of the sequence.
func (r *Recipe) AppendIngredient(ing Ingredient) {
	r.Ingredients = append(r.Ingredients, ing)
}

// InsertInstruction inserts a step at the given position, clamped to the
// valid range. Negative positions count from the end the way transforms
// bracket the final step: -1 inserts before the last instruction.
func (r *Recipe) InsertInstruction(pos int, in *Instruction) {
	if pos < 0 {
		pos = len(r.Instructions) + pos
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(r.Instructions) {
		pos = len(r.Instructions)
	}
	r.Instructions = append(r.Instructions, nil)
	copy(r.Instructions[pos+1:], r.Instructions[pos:])
	r.Instructions[pos] = in
}

// IngredientNames returns the current ingredient names in order.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
	}
	return names
}

// FirstOfType returns the index of the first ingredient with the given
// domain type, or -1 when none exists.
func (r *Recipe) FirstOfType(domain taxonomy.DomainType) int {
	for i, ing := range r.Ingredients {
		if ing.Type == domain {
			return i
		}
	}
	return -1
}

// OfType returns all ingredients with the given domain type.
func (r *Recipe) OfType(domain taxonomy.DomainType) []Ingredient {
	var out []Ingredient
	for _, ing := range r.Ingredients {
		if ing.Type == domain {
			out = append(out, ing)
		}
	}
	return out
}
