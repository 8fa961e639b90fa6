package transform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platechange/platechange/recipe"
)

type stubCorpus struct {
	recipes []*recipe.Recipe
	err     error
}

func (s stubCorpus) Recipes(ctx context.Context, style string) ([]*recipe.Recipe, error) {
	return s.recipes, s.err
}

func TestToStyle(t *testing.T) {
	e := testEngine(9)
	r := mustRecipe(t,
		[]string{"2 pounds of chicken", "1 cup of rice"},
		[]string{"Cook the chicken.", "Serve over rice."})

	corpus := stubCorpus{recipes: []*recipe.Recipe{
		mustRecipe(t,
			[]string{"1 pound of chorizo", "2 cups of salsa"},
			[]string{"Cook everything.", "Serve."}),
		mustRecipe(t,
			[]string{"1 pound of chorizo"},
			[]string{"Cook everything.", "Serve."}),
	}}

	require.NoError(t, e.ToStyle(context.Background(), r, corpus, "mexican", 1.0))

	assert.Equal(t, "Test Dish (mexican)", r.Name)

	// The meat representative displaces the first meat ingredient; the
	// sauce representative has no counterpart and is skipped.
	assert.Equal(t, "chorizo", r.Ingredients[0].Name)
	assert.Equal(t, "rice", r.Ingredients[1].Name)
	assert.Len(t, r.Ingredients, 2)

	// Step text follows the swap.
	assert.Contains(t, r.Instructions[0].Text, "chorizo")
}

func TestToStyleSkipsNamesAlreadyPresent(t *testing.T) {
	e := testEngine(9)
	r := mustRecipe(t,
		[]string{"2 pounds of chicken"},
		[]string{"Cook the chicken.", "Serve."})

	corpus := stubCorpus{recipes: []*recipe.Recipe{
		mustRecipe(t,
			[]string{"1 pound of chicken"},
			[]string{"Cook everything.", "Serve."}),
	}}

	require.NoError(t, e.ToStyle(context.Background(), r, corpus, "american", 1.0))
	assert.Equal(t, "chicken", r.Ingredients[0].Name)
}

func TestToStyleZeroThreshold(t *testing.T) {
	e := testEngine(9)
	r := mustRecipe(t,
		[]string{"2 pounds of chicken"},
		[]string{"Cook the chicken.", "Serve."})

	corpus := stubCorpus{recipes: []*recipe.Recipe{
		mustRecipe(t,
			[]string{"1 pound of chorizo"},
			[]string{"Cook everything.", "Serve."}),
	}}

	require.NoError(t, e.ToStyle(context.Background(), r, corpus, "mexican", 0))

	// Zero strength still tags the name but swaps nothing.
	assert.Equal(t, "Test Dish (mexican)", r.Name)
	assert.Equal(t, "chicken", r.Ingredients[0].Name)
}

func TestToStyleCorpusError(t *testing.T) {
	e := testEngine(9)
	r := mustRecipe(t,
		[]string{"2 pounds of chicken"},
		[]string{"Cook the chicken.", "Serve."})

	corpus := stubCorpus{err: errors.New("search unreachable")}

	err := e.ToStyle(context.Background(), r, corpus, "mexican", 1.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "style corpus")
	assert.Equal(t, "Test Dish", r.Name)
}

func TestFreqDist(t *testing.T) {
	assert.Equal(t,
		[]string{"a", "b", "c"},
		freqDist([]string{"b", "a", "a", "c", "b", "a"}))

	// Ties keep first-appearance order.
	assert.Equal(t, []string{"x", "y"}, freqDist([]string{"x", "y"}))

	assert.Nil(t, freqDist(nil))
}
