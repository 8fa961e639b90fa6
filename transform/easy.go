package transform

import (
	"strings"

	"github.com/platechange/platechange/recipe"
)

// toEasy simplifies preparation: fresh ingredients become store-bought,
// "finely" preparation work is dropped, and duplicate cheeses collapse into
// the first one, each duplicate keeping its own quantity and measurement.
func (e *Engine) toEasy(r *recipe.Recipe) {
	for i := range r.Ingredients {
		desc := r.Ingredients[i].Descriptor
		if containsString(desc, "freshly") {
			desc = removeString(desc, "freshly")
			desc = append(desc, "store-bought")
		}
		desc = removeString(desc, "finely")
		r.Ingredients[i].Descriptor = desc
	}

	var cheeses []recipe.Ingredient
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), "cheese") {
			cheeses = append(cheeses, ing)
		}
	}
	for i := 1; i < len(cheeses); i++ {
		first := cheeses[0]
		first.Descriptor = append([]string(nil), cheeses[0].Descriptor...)
		first.Preparation = append([]string(nil), cheeses[0].Preparation...)
		first.Quantity = cheeses[i].Quantity
		first.Measurement = cheeses[i].Measurement
		r.SwapIngredient(cheeses[i], first)
	}
}

func containsString(in []string, s string) bool {
	for _, v := range in {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(in []string, s string) []string {
	var out []string
	for _, v := range in {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
