package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platechange/platechange/tagger"
	"github.com/platechange/platechange/taxonomy"
)

func TestParseIngredient(t *testing.T) {
	tg := tagger.NewRuleTagger()
	tax := taxonomy.Default()

	tests := []struct {
		name        string
		phrase      string
		wantName    string
		wantQty     float64
		wantMeasure string
		wantType    taxonomy.DomainType
	}{
		{
			name:        "whole plus fraction quantity",
			phrase:      "1 3/4 cups of flour",
			wantName:    "flour",
			wantQty:     1.75,
			wantMeasure: "cups",
			wantType:    taxonomy.Grain,
		},
		{
			name:        "package measurement from parenthetical",
			phrase:      "2 (8 ounce) packages of cream cheese, softened",
			wantName:    "cream cheese",
			wantQty:     2,
			wantMeasure: "8 ounce package(s)",
			wantType:    taxonomy.Dairy,
		},
		{
			name:        "simple meat",
			phrase:      "1 pound of chicken",
			wantName:    "chicken",
			wantQty:     1,
			wantMeasure: "pound",
			wantType:    taxonomy.Meat,
		},
		{
			name:        "sauce substring wins typing",
			phrase:      "2 tablespoons of soy sauce",
			wantName:    "soy sauce",
			wantQty:     2,
			wantMeasure: "tablespoons",
			wantType:    taxonomy.Sauce,
		},
		{
			name:        "no quantity",
			phrase:      "salt and pepper to taste",
			wantName:    "salt pepper",
			wantQty:     0,
			wantMeasure: "",
			wantType:    taxonomy.Vegetable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := ParseIngredient(tt.phrase, tg, tax)
			assert.Equal(t, tt.wantName, ing.Name)
			assert.Equal(t, tt.wantQty, ing.Quantity)
			assert.Equal(t, tt.wantMeasure, ing.Measurement)
			assert.Equal(t, tt.wantType, ing.Type)
		})
	}
}

func TestParseIngredientDescriptorAndPreparation(t *testing.T) {
	tg := tagger.NewRuleTagger()
	tax := taxonomy.Default()

	ing := ParseIngredient("2 cups of fresh basil, chopped", tg, tax)
	assert.Equal(t, "basil", ing.Name)
	assert.Equal(t, []string{"fresh"}, ing.Descriptor)
	assert.Equal(t, []string{"chopped"}, ing.Preparation)

	ing = ParseIngredient("salt to taste", tg, tax)
	assert.Contains(t, ing.Preparation, "to taste")
}

func TestParseIngredientNameFallback(t *testing.T) {
	tg := tagger.NewRuleTagger()
	tax := taxonomy.Default()

	// Every token is claimed by another field; the final token still
	// becomes the name so Name is never empty.
	ing := ParseIngredient("chopped", tg, tax)
	assert.Equal(t, "chopped", ing.Name)
}

func TestFindQuantityMidPhraseDigitIgnored(t *testing.T) {
	// The leading-number rule is anchored: digits later in the phrase
	// (sizes, parentheticals) do not contribute.
	assert.Equal(t, 0.0, findQuantity("cake pan 9 inch"))
	assert.Equal(t, 12.0, findQuantity("12 ounces of Tofu"))
}

func TestIngredientEqual(t *testing.T) {
	a := Ingredient{Name: "flour", Quantity: 1.5, Measurement: "cups", Type: taxonomy.Grain}
	b := a
	assert.True(t, a.Equal(b))

	b.Quantity = 2
	assert.False(t, a.Equal(b))

	b = a
	b.Descriptor = []string{"sifted"}
	assert.False(t, a.Equal(b))
}
