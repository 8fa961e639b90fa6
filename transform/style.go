package transform

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/platechange/platechange/recipe"
	"github.com/platechange/platechange/taxonomy"
)

// CorpusSource supplies same-style recipes for the style transform. The
// scrape package provides web and local-directory implementations.
type CorpusSource interface {
	Recipes(ctx context.Context, style string) ([]*recipe.Recipe, error)
}

// stylePriority orders the domain types considered when picking one
// representative corpus ingredient per type.
var stylePriority = []taxonomy.DomainType{
	taxonomy.Meat, taxonomy.Vegetable, taxonomy.Sauce, taxonomy.Grain,
	taxonomy.Herb, taxonomy.Dairy, taxonomy.Fruit,
}

// ToStyle nudges the recipe toward a cuisine style. It builds a frequency
// distribution of ingredient names over the corpus recipes, keeps the ten
// most common names not already in the recipe, picks one representative
// ingredient per domain type among them, truncates that list to
// round(7*threshold) entries, and swaps each representative into the first
// current ingredient of its type. Types with no current match are skipped.
func (e *Engine) ToStyle(ctx context.Context, r *recipe.Recipe, src CorpusSource, style string, threshold float64) error {
	corpus, err := src.Recipes(ctx, style)
	if err != nil {
		return fmt.Errorf("loading %q style corpus: %w", style, err)
	}
	e.logger.Info("loaded style corpus", "style", style, "recipes", len(corpus))

	var pool []recipe.Ingredient
	for _, cr := range corpus {
		pool = append(pool, cr.Ingredients...)
	}

	current := make(map[string]bool, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		current[ing.Name] = true
	}

	var names []string
	for _, ing := range pool {
		names = append(names, ing.Name)
	}
	keyNames := make(map[string]bool, 10)
	kept := 0
	for _, name := range freqDist(names) {
		if current[name] {
			continue
		}
		keyNames[name] = true
		if kept++; kept == 10 {
			break
		}
	}

	// One representative ingredient object per key name, first occurrence
	// wins so measurement and preparation travel with the name.
	seen := make(map[string]bool, len(keyNames))
	var representatives []recipe.Ingredient
	for _, ing := range pool {
		if !keyNames[ing.Name] || seen[ing.Name] {
			continue
		}
		seen[ing.Name] = true
		representatives = append(representatives, ing)
	}

	var picks []recipe.Ingredient
	for _, domain := range stylePriority {
		for _, ing := range representatives {
			if ing.Type == domain {
				picks = append(picks, ing)
				break
			}
		}
	}
	if limit := int(math.Round(7 * threshold)); limit < len(picks) {
		picks = picks[:limit]
	}

	for _, pick := range picks {
		idx := r.FirstOfType(pick.Type)
		if idx < 0 {
			continue
		}
		r.SwapIngredient(r.Ingredients[idx], pick)
	}

	r.Name += " (" + style + ")"
	r.UpdateInstructions()
	return nil
}

// freqDist returns the distinct values of data ordered by descending count,
// ties broken by first appearance.
func freqDist(data []string) []string {
	counts := make(map[string]int, len(data))
	var order []string
	for _, d := range data {
		if counts[d] == 0 {
			order = append(order, d)
		}
		counts[d]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order
}
