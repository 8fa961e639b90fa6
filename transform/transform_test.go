package transform

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platechange/platechange/recipe"
	"github.com/platechange/platechange/tagger"
	"github.com/platechange/platechange/taxonomy"
)

func testEngine(seed int64) *Engine {
	return NewEngine(taxonomy.Default(), tagger.NewRuleTagger(),
		WithRand(rand.New(rand.NewSource(seed))))
}

func mustRecipe(t *testing.T, ingredients, instructions []string) *recipe.Recipe {
	t.Helper()
	r, err := recipe.New(recipe.SourceData{
		Name:         "Test Dish",
		Ingredients:  ingredients,
		Instructions: instructions,
	}, tagger.NewRuleTagger(), taxonomy.Default())
	require.NoError(t, err)
	return r
}

func TestParseTransformation(t *testing.T) {
	for _, known := range Transformations() {
		parsed, err := ParseTransformation(string(known))
		require.NoError(t, err)
		assert.Equal(t, known, parsed)
	}

	_, err := ParseTransformation("to_raw")
	assert.Error(t, err)
}

func TestApplyUnknownTransformation(t *testing.T) {
	e := testEngine(1)
	r := mustRecipe(t,
		[]string{"2 pounds of chicken"},
		[]string{"Cook the chicken.", "Serve warm."})

	err := e.Apply(r, Transformation("to_nothing"))
	assert.Error(t, err)
	assert.Equal(t, "Test Dish", r.Name)
	assert.Len(t, r.Ingredients, 1)
}

func TestChoose(t *testing.T) {
	e := testEngine(1)

	_, ok := e.choose(nil)
	assert.False(t, ok)

	got, ok := e.choose([]string{"only"})
	require.True(t, ok)
	assert.Equal(t, "only", got)
}
