package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEasyFreshBecomesStoreBought(t *testing.T) {
	e := testEngine(5)
	r := mustRecipe(t,
		[]string{
			"1 cup of freshly squeezed orange juice",
			"2 cups of finely chopped spinach",
		},
		[]string{"Combine everything and serve."})

	require.NoError(t, e.Apply(r, ToEasy))

	// No name suffix for the simplification transform.
	assert.Equal(t, "Test Dish", r.Name)

	assert.Equal(t, []string{"store-bought"}, r.Ingredients[0].Descriptor)
	assert.Empty(t, r.Ingredients[1].Descriptor)
}

func TestToEasyCollapsesCheeses(t *testing.T) {
	e := testEngine(5)
	r := mustRecipe(t,
		[]string{
			"1 cup of cheddar cheese",
			"2 pounds of chicken",
			"2 cups of mozzarella cheese",
		},
		[]string{"Top with the mozzarella cheese.", "Serve."})

	require.NoError(t, e.Apply(r, ToEasy))

	// Duplicate cheeses collapse into the first, each keeping its own
	// quantity and measurement.
	assert.Equal(t, "cheddar cheese", r.Ingredients[0].Name)
	assert.Equal(t, 1.0, r.Ingredients[0].Quantity)
	assert.Equal(t, "cheddar cheese", r.Ingredients[2].Name)
	assert.Equal(t, 2.0, r.Ingredients[2].Quantity)

	// The step mentioning the collapsed cheese follows the rename.
	assert.Contains(t, r.Instructions[0].Text, "cheddar cheese")
}
