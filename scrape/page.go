package scrape

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/platechange/platechange/recipe"
)

var nonNumericPattern = regexp.MustCompile(`[^0-9]`)

// PageParser extracts recipe source data from a recipe page. Structured
// markup (itemprop attributes and the recipe list classes) is tried first;
// pages without it fall back to a readability extraction of the article
// body converted to markdown list items.
type PageParser struct {
	converter *md.Converter
}

// NewPageParser builds a parser with a GitHub-flavored markdown converter
// for the fallback path.
func NewPageParser() *PageParser {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &PageParser{converter: converter}
}

// Parse builds SourceData from a fetched recipe page.
func (p *PageParser) Parse(pageURL string, body []byte) (recipe.SourceData, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return recipe.SourceData{}, fmt.Errorf("parsing recipe page: %w", err)
	}

	data := recipe.SourceData{
		Name:         nodeText(findByAttr(doc, "h1", "itemprop", "name")),
		PrepTime:     numericText(findByAttr(doc, "time", "itemprop", "prepTime")),
		CookTime:     numericText(findByAttr(doc, "time", "itemprop", "cookTime")),
		TotalTime:    numericText(findByAttr(doc, "time", "itemprop", "totalTime")),
		Ingredients:  textsByClass(doc, "span", "recipe-ingred_txt"),
		Instructions: textsByClass(doc, "span", "recipe-directions__list--item"),
		Calories:     nodeText(findByAttr(doc, "span", "itemprop", "calories")),
		Carbs:        nodeText(findByAttr(doc, "span", "itemprop", "carbohydrateContent")),
		Fat:          nodeText(findByAttr(doc, "span", "itemprop", "fatContent")),
		Protein:      nodeText(findByAttr(doc, "span", "itemprop", "proteinContent")),
		Cholesterol:  nodeText(findByAttr(doc, "span", "itemprop", "cholesterolContent")),
		Sodium:       nodeText(findByAttr(doc, "span", "itemprop", "sodiumContent")),
	}

	if data.Name == "" || len(data.Ingredients) == 0 || len(data.Instructions) == 0 {
		p.fallback(pageURL, body, &data)
	}

	if err := data.Validate(); err != nil {
		return recipe.SourceData{}, err
	}
	return data, nil
}

// fallback fills missing fields from a readability pass over the page. List
// items before the first numbered item are taken as ingredients, numbered
// items as instructions.
func (p *PageParser) fallback(pageURL string, body []byte, data *recipe.SourceData) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return
	}
	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return
	}

	if data.Name == "" {
		data.Name = strings.TrimSpace(article.Title)
	}
	if len(data.Ingredients) > 0 && len(data.Instructions) > 0 {
		return
	}

	markdown, err := p.converter.ConvertString(article.Content)
	if err != nil {
		return
	}
	ingredients, instructions := splitMarkdownLists(markdown)
	if len(data.Ingredients) == 0 {
		data.Ingredients = ingredients
	}
	if len(data.Instructions) == 0 {
		data.Instructions = instructions
	}
}

// splitMarkdownLists separates bulleted items (ingredients) from numbered
// items (instructions) in converted article markdown.
func splitMarkdownLists(markdown string) (ingredients, instructions []string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			ingredients = append(ingredients, strings.TrimSpace(trimmed[2:]))
		case numberedItemPattern.MatchString(trimmed):
			instructions = append(instructions, numberedItemPattern.ReplaceAllString(trimmed, ""))
		}
	}
	return ingredients, instructions
}

var numberedItemPattern = regexp.MustCompile(`^\d+\.\s+`)

// findByAttr returns the first tag element carrying the attribute value.
func findByAttr(n *html.Node, tag, key, value string) *html.Node {
	var result *html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if result != nil {
			return
		}
		if node.Type == html.ElementNode && node.Data == tag && attrValue(node, key) == value {
			result = node
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return result
}

// textsByClass collects the text of every tag element whose class list
// contains the given class.
func textsByClass(n *html.Node, tag, class string) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			for _, c := range strings.Fields(attrValue(node, "class")) {
				if c == class {
					if text := nodeText(node); text != "" {
						out = append(out, text)
					}
					break
				}
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText returns the trimmed concatenation of all text beneath n.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// numericText strips non-digits from a node's text and parses the rest,
// zero when absent or empty.
func numericText(n *html.Node) int {
	cleaned := nonNumericPattern.ReplaceAllString(nodeText(n), "")
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return v
}
