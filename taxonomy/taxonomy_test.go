package taxonomy

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tax := Default()

	tests := []struct {
		name       string
		ingredient string
		want       DomainType
	}{
		{"meat", "boneless chicken breasts", Meat},
		{"vegetable", "red onion", Vegetable},
		{"dairy", "sour cream", Dairy},
		{"grain", "all-purpose flour", Grain},
		{"seafood", "smoked salmon", Seafood},
		{"herb", "dried basil", Herb},
		{"fruit", "lemon zest", Fruit},
		{"unknown", "xanthan gum", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tax.Resolve(tt.ingredient))
		})
	}
}

func TestResolveSauceAlwaysWins(t *testing.T) {
	tax := Default()

	// "chicken" is a meat word, but the sauce substring takes priority
	// over every word-list lookup.
	assert.Equal(t, Sauce, tax.Resolve("chicken wing sauce"))
	assert.Equal(t, Sauce, tax.Resolve("Worcestershire Sauce"))

	// Even an empty taxonomy resolves sauces.
	empty := New(Lists{})
	assert.Equal(t, Sauce, empty.Resolve("soy sauce"))
}

func TestResolvePrecedence(t *testing.T) {
	// A name carrying both a meat word and a vegetable word resolves to
	// meat, the highest-precedence domain.
	tax := New(Lists{
		Meats:      []string{"chicken"},
		Vegetables: []string{"pepper"},
	})
	assert.Equal(t, Meat, tax.Resolve("chicken pepper stew"))
}

func TestResolveEmptyTaxonomy(t *testing.T) {
	tax := New(Lists{})
	assert.Equal(t, Unknown, tax.Resolve("chicken"))
}

func TestSeafoodStaysDistinctFromMeat(t *testing.T) {
	tax := Default()
	assert.Equal(t, Seafood, tax.Resolve("shrimp"))
	assert.Equal(t, Seafood, tax.Resolve("grilled tuna fillet"))
}

func TestClean(t *testing.T) {
	raw := []string{
		"Carrot",
		"x",
		"vitamin b12",
		"multi\nline entry",
		"  Spinach  ",
		"",
	}
	assert.Equal(t, []string{"carrot", "spinach"}, Clean(raw))
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists", "taxonomy.yaml")
	lists := Lists{
		Meats:      []string{"chicken", "beef"},
		Vegetables: []string{"onion"},
		Sauces:     []string{"pesto"},
	}

	require.NoError(t, SaveFile(path, lists))

	tax, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, Meat, tax.Resolve("chicken"))
	assert.Equal(t, Vegetable, tax.Resolve("onion"))
	assert.Equal(t, 4, tax.Len())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
