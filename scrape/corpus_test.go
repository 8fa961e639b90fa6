package scrape

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platechange/platechange/recipe"
	"github.com/platechange/platechange/tagger"
	"github.com/platechange/platechange/taxonomy"
)

func TestRecipeLinks(t *testing.T) {
	page := `<html><body>
<a href="/recipe/123/chicken-tacos/">Chicken Tacos</a>
<a href="/recipe/123/chicken-tacos/">Chicken Tacos (again)</a>
<a href="https://www.allrecipes.com/recipe/456/salsa/#reviews">Salsa</a>
<a href="/article/how-to-chop/">How to chop</a>
<a href="https://other.example.com/recipe/789/">Offsite</a>
</body></html>`

	links, err := RecipeLinks("https://www.allrecipes.com/search/results/?wt=tacos", []byte(page))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.allrecipes.com/recipe/123/chicken-tacos/",
		"https://www.allrecipes.com/recipe/456/salsa/",
		"https://other.example.com/recipe/789/",
	}, links)
}

func TestRecipeLinksEmptyPage(t *testing.T) {
	links, err := RecipeLinks("https://www.allrecipes.com/search", []byte("<html></html>"))
	require.NoError(t, err)
	assert.Empty(t, links)
}

func writeCorpusFile(t *testing.T, path string, data recipe.SourceData) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0644))
}

func TestDirCorpus(t *testing.T) {
	root := t.TempDir()

	writeCorpusFile(t, filepath.Join(root, "mexican", "tacos.json"), recipe.SourceData{
		Name:         "Tacos",
		Ingredients:  []string{"1 pound of chorizo"},
		Instructions: []string{"Cook the chorizo.", "Serve."},
	})
	writeCorpusFile(t, filepath.Join(root, "italian", "pasta.json"), recipe.SourceData{
		Name:         "Pasta",
		Ingredients:  []string{"8 ounces of spaghetti"},
		Instructions: []string{"Boil the spaghetti.", "Serve."},
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, "mexican", "broken.json"), []byte("{not json"), 0644))

	corpus := NewDirCorpus(root, "", tagger.NewRuleTagger(), taxonomy.Default(), nil)

	recipes, err := corpus.Recipes(context.Background(), "mexican")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tacos", recipes[0].Name)

	recipes, err = corpus.Recipes(context.Background(), "french")
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestDirCorpusCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeCorpusFile(t, filepath.Join(root, "thai", "curry.json"), recipe.SourceData{
		Name:         "Curry",
		Ingredients:  []string{"1 cup of rice"},
		Instructions: []string{"Cook.", "Serve."},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	corpus := NewDirCorpus(root, "", tagger.NewRuleTagger(), taxonomy.Default(), nil)
	_, err := corpus.Recipes(ctx, "thai")
	assert.ErrorIs(t, err, context.Canceled)
}
