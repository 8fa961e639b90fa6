package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structuredPage = `<html><head><title>Chicken Parmesan Recipe</title></head><body>
<h1 itemprop="name">Chicken Parmesan</h1>
<time itemprop="prepTime">15 m</time>
<time itemprop="cookTime">30 m</time>
<time itemprop="totalTime">45 m</time>
<ul>
  <li><span class="recipe-ingred_txt">2 pounds of chicken</span></li>
  <li><span class="recipe-ingred_txt">1 cup of flour</span></li>
  <li><span class="recipe-ingred_txt added">Add all ingredients to list</span></li>
</ul>
<ol>
  <li><span class="recipe-directions__list--item">Cook the chicken.</span></li>
  <li><span class="recipe-directions__list--item">Serve warm.</span></li>
</ol>
<span itemprop="calories">520</span>
<span itemprop="fatContent">24 g</span>
<span itemprop="sodiumContent">480 mg</span>
</body></html>`

func TestPageParserStructured(t *testing.T) {
	p := NewPageParser()

	data, err := p.Parse("https://www.allrecipes.com/recipe/123/", []byte(structuredPage))
	require.NoError(t, err)

	assert.Equal(t, "Chicken Parmesan", data.Name)
	assert.Equal(t, 15, data.PrepTime)
	assert.Equal(t, 30, data.CookTime)
	assert.Equal(t, 45, data.TotalTime)
	assert.Equal(t, []string{
		"2 pounds of chicken",
		"1 cup of flour",
		"Add all ingredients to list",
	}, data.Ingredients)
	assert.Equal(t, []string{"Cook the chicken.", "Serve warm."}, data.Instructions)
	assert.Equal(t, "520", data.Calories)
	assert.Equal(t, "24 g", data.Fat)
	assert.Equal(t, "480 mg", data.Sodium)
}

func TestPageParserRejectsNonRecipePage(t *testing.T) {
	p := NewPageParser()

	_, err := p.Parse("https://example.com/about",
		[]byte(`<html><head><title>About Us</title></head><body><p>Hello.</p></body></html>`))
	assert.Error(t, err)
}

func TestSplitMarkdownLists(t *testing.T) {
	markdown := `# Tacos

Some intro text.

- 2 pounds of chicken
* 1 cup of salsa

1. Cook the chicken.
2. Assemble the tacos.

Not a list line.`

	ingredients, instructions := splitMarkdownLists(markdown)
	assert.Equal(t, []string{"2 pounds of chicken", "1 cup of salsa"}, ingredients)
	assert.Equal(t, []string{"Cook the chicken.", "Assemble the tacos."}, instructions)
}

func TestNodeTextNormalizesWhitespace(t *testing.T) {
	p := NewPageParser()

	data, err := p.Parse("https://www.allrecipes.com/recipe/9/",
		[]byte(`<html><body>
<h1 itemprop="name">  Slow
		Cooker   Chili  </h1>
<span class="recipe-ingred_txt">1 pound of beef</span>
<span class="recipe-directions__list--item">Simmer for 2 hours.</span>
</body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Slow Cooker Chili", data.Name)
}
