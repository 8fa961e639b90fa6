package transform

import (
	"fmt"
	"strings"

	"github.com/platechange/platechange/recipe"
	"github.com/platechange/platechange/taxonomy"
)

// healthySubstitutes maps an ingredient name word to the phrase parsed into
// its healthier replacement. The phrase quantities are parsing defaults; the
// replacement inherits the quantity of the ingredient it displaces.
var healthySubstitutes = map[string]string{
	"oil":      "2 tablespoons of Prune Puree",
	"cheese":   "3 tablespoons of Nutritional Yeast",
	"pasta":    "8 ounces of shredded zucchini",
	"flour":    "1 cup of whole-wheat flour",
	"butter":   "3 tablespoons of unsweetened applesauce",
	"cream":    "3 cups of greek yogurt",
	"eggs":     "3 egg whites",
	"milk":     "4 ounces of skim milk",
	"potatoes": "4 handfuls of arugula",
	"yogurt":   "2 cups of low-fat cottage cheese",
}

// dairySubstitutes maps a dairy name word to its non-dairy replacement
// phrase, used by the vegan transform.
var dairySubstitutes = map[string]string{
	"butter": "2 tablespoons of olive oil",
	"cheese": "3 tablespoons of yeast flakes",
	"milk":   "12 ounces of soy milk",
	"cream":  "2 cups of almond milk yogurt",
	"yogurt": "2 cups of coconut yogurt",
}

// meatSubstitutes are the vegetarian protein phrases chosen uniformly at
// random when displacing a meat ingredient.
var meatSubstitutes = []string{
	"12 ounces of Tofu",
	"12 ounces of Tempeh",
	"12 ounces of grilled Seitan",
	"8 ounces of textured vegetable protein",
	"4 cups of Jackfruit",
	"3 large portobello mushrooms",
	"4 cups of lentils",
	"4 cups of legumes",
}

// unhealthySubstitutes are indulgent replacements tagged with the domain
// type they displace.
var unhealthySubstitutes = []struct {
	phrase string
	domain taxonomy.DomainType
}{
	{"1 pound of fried chicken", taxonomy.Meat},
	{"4 pieces of milanesa", taxonomy.Meat},
	{"3 fried eggplants", taxonomy.Vegetable},
	{"10 fried pickles", taxonomy.Vegetable},
}

// toVegetarian replaces every meat ingredient with a randomly chosen
// vegetarian protein, preserving the displaced quantity.
func (e *Engine) toVegetarian(r *recipe.Recipe) {
	for i := range r.Ingredients {
		if r.Ingredients[i].Type != taxonomy.Meat {
			continue
		}
		phrase, _ := e.choose(meatSubstitutes)
		sub := e.parse(phrase)
		sub.Quantity = r.Ingredients[i].Quantity
		r.SwapIngredient(r.Ingredients[i], sub)
	}
	r.Name += " (vegetarian)"
}

// fromVegetarian adds a random meat from the taxonomy, with a boiling step
// at the front and a shred-and-stir step bracketing the final step.
func (e *Engine) fromVegetarian(r *recipe.Recipe) {
	meat, ok := e.choose(e.tax.Entries(taxonomy.Meat))
	if !ok {
		e.logger.Warn("no meat entries in taxonomy, skipping augmentation")
		return
	}
	r.AppendIngredient(e.parse(fmt.Sprintf("3 cups of boiled %s", meat)))

	boiling := fmt.Sprintf("Place the %s in a non-stick pan and fill the pan with water until the %s are covered. "+
		"Simmer uncovered for 5 minutes. "+
		"Then, turn off the heat and cover for 15 minutes. Remove the %s and set aside.", meat, meat, meat)
	adding := fmt.Sprintf("Shred the %s by pulling the meat apart into thin slices by hand. Stir in the shredded %s.", meat, meat)

	r.InsertInstruction(0, recipe.ParseInstruction(boiling))
	r.InsertInstruction(-1, recipe.ParseInstruction(adding))
	r.Name += " (non-vegetarian)"
}

// toVegan makes the recipe vegetarian, then displaces dairy ingredients with
// substitutes from the dairy table, keyed by name word.
func (e *Engine) toVegan(r *recipe.Recipe) {
	e.toVegetarian(r)

	for i := range r.Ingredients {
		if r.Ingredients[i].Type != taxonomy.Dairy {
			continue
		}
		phrase, ok := lookupByNameWord(r.Ingredients[i].Name, dairySubstitutes)
		if !ok {
			continue
		}
		sub := e.parse(phrase)
		sub.Quantity = r.Ingredients[i].Quantity
		r.SwapIngredient(r.Ingredients[i], sub)
	}
	r.Name = strings.Replace(r.Name, " (vegetarian)", "", 1) + " (vegan)"
}

// fromVegan adds meat the way fromVegetarian does, then a random dairy from
// the taxonomy.
func (e *Engine) fromVegan(r *recipe.Recipe) {
	e.fromVegetarian(r)

	if dairy, ok := e.choose(e.tax.Entries(taxonomy.Dairy)); ok {
		r.AppendIngredient(e.parse(fmt.Sprintf("3 cups of %s", dairy)))
	}
	r.Name = strings.Replace(r.Name, " (non-vegetarian)", "", 1) + " (non-vegan)"
}

// toPescatarian replaces meat with randomly chosen seafood. A recipe with no
// meat is augmented instead: a seafood ingredient plus grill and serve steps
// bracketing the final step.
func (e *Engine) toPescatarian(r *recipe.Recipe) {
	swapped := false
	for i := range r.Ingredients {
		if r.Ingredients[i].Type != taxonomy.Meat {
			continue
		}
		seafood, ok := e.choose(e.tax.Entries(taxonomy.Seafood))
		if !ok {
			continue
		}
		sub := e.parse(fmt.Sprintf("3 cups of %s", seafood))
		sub.Quantity = r.Ingredients[i].Quantity
		r.SwapIngredient(r.Ingredients[i], sub)
		swapped = true
	}

	if !swapped {
		seafood, ok := e.choose(e.tax.Entries(taxonomy.Seafood))
		if !ok {
			e.logger.Warn("no seafood entries in taxonomy, skipping augmentation")
			return
		}
		ing := e.parse(fmt.Sprintf("3 cups of %s", seafood))
		r.AppendIngredient(ing)

		grilling := fmt.Sprintf("Place the %s in a non-stick pan and fill the pan with oil. "+
			"Grill both sides until charred, takes about 7 minutes. "+
			"Then, turn off the heat and cover for 15 minutes.", ing.Name)
		serving := fmt.Sprintf("Flip the %s onto the plate over the other ingredients.", ing.Name)

		r.InsertInstruction(0, recipe.ParseInstruction(grilling))
		r.InsertInstruction(-1, recipe.ParseInstruction(serving))
	}
	r.Name += " (pescatarian)"
}

// fromPescatarian replaces seafood ingredients with a randomly chosen meat,
// preserving quantities.
func (e *Engine) fromPescatarian(r *recipe.Recipe) {
	for i := range r.Ingredients {
		if r.Ingredients[i].Type != taxonomy.Seafood {
			continue
		}
		meat, ok := e.choose(e.tax.Entries(taxonomy.Meat))
		if !ok {
			continue
		}
		sub := e.parse(fmt.Sprintf("3 cups of %s", meat))
		sub.Quantity = r.Ingredients[i].Quantity
		r.SwapIngredient(r.Ingredients[i], sub)
	}
	r.Name += " (non-pescatarian)"
}

// toHealthy displaces ingredients found in the healthy substitute table,
// keyed by name word, preserving quantities.
func (e *Engine) toHealthy(r *recipe.Recipe) {
	for i := range r.Ingredients {
		phrase, ok := lookupByNameWord(r.Ingredients[i].Name, healthySubstitutes)
		if !ok {
			continue
		}
		sub := e.parse(phrase)
		sub.Quantity = r.Ingredients[i].Quantity
		r.SwapIngredient(r.Ingredients[i], sub)
	}
	r.Name += " (healthy)"
}

// fromHealthy replaces vegetable and meat ingredients with indulgent
// substitutes of the same domain type.
func (e *Engine) fromHealthy(r *recipe.Recipe) {
	for i := range r.Ingredients {
		domain := r.Ingredients[i].Type
		if domain != taxonomy.Vegetable && domain != taxonomy.Meat {
			continue
		}
		var candidates []string
		for _, sub := range unhealthySubstitutes {
			if sub.domain == domain {
				candidates = append(candidates, sub.phrase)
			}
		}
		phrase, ok := e.choose(candidates)
		if !ok {
			continue
		}
		r.SwapIngredient(r.Ingredients[i], e.parse(phrase))
	}
	r.Name += " (unhealthy)"
}

// lookupByNameWord finds the first word of name present in the table and
// returns its substitute phrase.
func lookupByNameWord(name string, table map[string]string) (string, bool) {
	for _, word := range strings.Fields(strings.ToLower(name)) {
		if phrase, ok := table[word]; ok {
			return phrase, true
		}
	}
	return "", false
}
