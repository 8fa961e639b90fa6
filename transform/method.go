package transform

import (
	"fmt"
	"strings"

	"github.com/platechange/platechange/recipe"
	"github.com/platechange/platechange/taxonomy"
)

// replacement is one ordered literal rewrite applied to instruction text.
type replacement struct {
	from, to string
}

// Per-method rewrite tables. Order matters: longer literals sit before their
// prefixes so "baked" is not mangled by the "bake" rule.
var (
	fryReplacements = []replacement{
		{"preheated", ""},
		{"preheat", ""},
		{"oven", ""},
		{"degree", ""},
		{"baking sheet", "skillet"},
		{"baked", "fried"},
		{"bake", "fry"},
	}
	bakeReplacements = []replacement{
		{"skillet", "baking sheet"},
		{"fry", "place in oven"},
		{"drain", "dry"},
		{"paper towel", ""},
		{"dry", "remove from oven"},
	}
	stirFryReplacements = []replacement{
		{"preheated", ""},
		{"preheat", ""},
		{"oven", ""},
		{"degree", ""},
		{"baking sheet", "skillet"},
		{"baked", "cooked"},
		{"bake", "cook"},
		{"fry", "cook until crisp"},
		{"drain", "pour over rice and vegetables"},
		{"paper towel", ""},
	}
)

// ToMethod rewrites the recipe for a target cooking method: fry, stir-fry or
// bake. Instruction vocabulary tied to the previous method is rewritten
// through the method's table, staple ingredients are ensured, and templated
// steps are inserted. An unsupported method leaves the recipe untouched and
// returns ErrUnsupportedMethod.
func (e *Engine) ToMethod(r *recipe.Recipe, method string) error {
	switch method {
	case "fry":
		e.toFry(r)
	case "stir-fry":
		e.toStirFry(r)
	case "bake":
		e.toBake(r)
	default:
		e.logger.Warn("unsupported cooking method", "method", method)
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
	r.Name += " (" + method + ")"
	r.UpdateInstructions()
	return nil
}

func (e *Engine) toFry(r *recipe.Recipe) {
	if !hasNameWord(r, "flour") {
		r.AppendIngredient(e.parse("1 1/2 cups of flour"))
	}
	if !hasNameWord(r, "oil") {
		r.AppendIngredient(e.parse("2 quarts of vegetable oil"))
	}

	// Frying needs a protein. Reuse the first meat or add one.
	var meat recipe.Ingredient
	if idx := r.FirstOfType(taxonomy.Meat); idx >= 0 {
		meat = r.Ingredients[idx]
	} else {
		name, ok := e.choose(e.tax.Entries(taxonomy.Meat))
		if !ok {
			name = "chicken"
		}
		meat = e.parse(fmt.Sprintf("10 ounces of %s", name))
		r.AppendIngredient(meat)
	}

	stripLeadingPreheat(r)
	rewriteInstructions(r, fryReplacements)

	frying := fmt.Sprintf("In a large skillet, heat oil over medium heat. "+
		"Salt and pepper %s to taste, then roll in flour to coat. "+
		"Place %s in skillet and fry on medium heat until one side is golden brown, "+
		"then turn and brown other side until %s is no longer pink inside and its juices run clear.",
		meat.Name, meat.Name, meat.Name)
	r.InsertInstruction(-1, recipe.ParseInstruction(frying))

	r.CookingTools = []string{"skillet"}
	r.CookingMethods = []string{"fry"}

	last := r.Instructions[len(r.Instructions)-1]
	if !strings.Contains(strings.ToLower(last.Text), "serve") {
		serving := fmt.Sprintf("Remove %s from the skillet. Dry on paper towels and serve!", meat.Name)
		r.InsertInstruction(len(r.Instructions), recipe.ParseInstruction(serving))
	}
}

func (e *Engine) toStirFry(r *recipe.Recipe) {
	for len(r.OfType(taxonomy.Vegetable)) < 5 {
		vegetable, ok := e.choose(e.tax.Entries(taxonomy.Vegetable))
		if !ok {
			break
		}
		r.AppendIngredient(e.parse(fmt.Sprintf("%d cups of %s", 1+e.rng.Intn(4), vegetable)))
	}

	r.AppendIngredient(e.parse("1 tablespoon of sesame oil"))
	r.AppendIngredient(e.parse("2 tablespoons of soy sauce"))
	r.AppendIngredient(e.parse("1 1/2 cups of uncooked rice"))

	stripLeadingPreheat(r)
	rewriteInstructions(r, stirFryReplacements)

	var vegetableNames []string
	for _, ing := range r.OfType(taxonomy.Vegetable) {
		vegetableNames = append(vegetableNames, ing.Name)
	}
	vegetables := fmt.Sprintf("Heat 1 tablespoon sesame oil in a large skillet over medium-high heat. "+
		"Cook and stir %s until just tender, about 5 minutes. "+
		"Remove vegetables from skillet and keep warm.", strings.Join(vegetableNames, " and "))
	rice := "Heat 4 quarts of water to a boil and then place the rice in and let it cook for 8 minutes"

	r.InsertInstruction(-1, recipe.ParseInstruction(vegetables))
	r.InsertInstruction(-1, recipe.ParseInstruction(rice))

	r.CookingTools = []string{"skillet"}
	r.CookingMethods = []string{"stir-fry"}
}

func (e *Engine) toBake(r *recipe.Recipe) {
	// Remember where the skillet work happened; the bake step lands there
	// once the preheat step shifts everything down one.
	bakeIdx := 1
	for i, in := range r.Instructions {
		if strings.Contains(strings.ToLower(in.Text), "skillet") {
			bakeIdx = i
		}
	}

	rewriteInstructions(r, bakeReplacements)

	begin := recipe.ParseInstruction("Preheat oven to 350 degrees F (175 degrees C). Grease a 9x13-inch baking dish.")
	bake := recipe.ParseInstruction("Bake in the preheated oven until the ensemble is crisp, about 30 minutes. " +
		"Remove from the oven and drizzle with sauce.")

	r.InsertInstruction(0, begin)
	last := r.Instructions[len(r.Instructions)-1]
	if !strings.Contains(strings.ToLower(last.Text), "serve") {
		r.InsertInstruction(bakeIdx, bake)
	}

	r.CookingTools = []string{"pan", "oven", "dish", "bowl"}
	r.CookingMethods = []string{"Bake"}
}

// hasNameWord reports whether any ingredient name contains word as a
// whitespace-separated token.
func hasNameWord(r *recipe.Recipe, word string) bool {
	for _, ing := range r.Ingredients {
		for _, w := range strings.Fields(strings.ToLower(ing.Name)) {
			if w == word {
				return true
			}
		}
	}
	return false
}

// stripLeadingPreheat drops a leading oven-preheat step, which only makes
// sense for baking.
func stripLeadingPreheat(r *recipe.Recipe) {
	if len(r.Instructions) > 0 && strings.HasPrefix(r.Instructions[0].Text, "Preheat oven to") {
		r.Instructions = r.Instructions[1:]
	}
}

// rewriteInstructions applies the table to every instruction mentioning one
// of its literals and reparses the rewritten text so tools, methods and time
// stay in sync.
func rewriteInstructions(r *recipe.Recipe, table []replacement) {
	for i, in := range r.Instructions {
		if !mentionsAny(in.Text, table) {
			continue
		}
		text := in.Text
		for _, rep := range table {
			text = replaceFold(text, rep.from, rep.to)
		}
		text = strings.Join(strings.Fields(text), " ")
		r.Instructions[i] = recipe.ParseInstruction(text)
	}
}

func mentionsAny(text string, table []replacement) bool {
	lower := strings.ToLower(text)
	for _, rep := range table {
		if strings.Contains(lower, rep.from) {
			return true
		}
	}
	return false
}

// replaceFold replaces every case-insensitive occurrence of from with to,
// preserving the casing of untouched text.
func replaceFold(s, from, to string) string {
	lower := strings.ToLower(s)
	from = strings.ToLower(from)
	var b strings.Builder
	for {
		i := strings.Index(lower, from)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(to)
		s = s[i+len(from):]
		lower = lower[i+len(from):]
	}
}
