package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/net/html"

	"github.com/platechange/platechange/recipe"
	"github.com/platechange/platechange/tagger"
	"github.com/platechange/platechange/taxonomy"
)

// RecipeLinks extracts absolute links to recipe pages from a search results
// page: every anchor whose path starts with /recipe/, resolved against the
// base URL and de-duplicated in first-seen order.
func RecipeLinks(baseURL string, body []byte) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing search page: %w", err)
	}

	seen := make(map[string]bool)
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attrValue(n, "href"); href != "" {
				if resolved, ok := resolveRecipeLink(base, href); ok && !seen[resolved] {
					seen[resolved] = true
					links = append(links, resolved)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func resolveRecipeLink(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if !strings.HasPrefix(resolved.Path, "/recipe/") {
		return "", false
	}
	resolved.Fragment = ""
	return resolved.String(), true
}

// WebCorpus builds a style corpus by searching the recipe site and parsing
// the linked recipe pages.
type WebCorpus struct {
	fetcher   *Fetcher
	parser    *PageParser
	tg        tagger.Tagger
	tax       *taxonomy.Taxonomy
	searchURL string // format string taking the style query
	limit     int
	logger    *slog.Logger
}

// NewWebCorpus wires a web corpus source. searchURL must contain one %s verb
// for the style query; limit caps the recipe pages fetched per search.
func NewWebCorpus(fetcher *Fetcher, parser *PageParser, tg tagger.Tagger, tax *taxonomy.Taxonomy, searchURL string, limit int, logger *slog.Logger) *WebCorpus {
	if logger == nil {
		logger = slog.Default()
	}
	if limit <= 0 {
		limit = 20
	}
	return &WebCorpus{
		fetcher:   fetcher,
		parser:    parser,
		tg:        tg,
		tax:       tax,
		searchURL: searchURL,
		limit:     limit,
		logger:    logger,
	}
}

// Recipes searches for the style and parses each linked recipe page. Pages
// that fail to fetch or parse are skipped with a warning; an empty corpus is
// a valid result.
func (w *WebCorpus) Recipes(ctx context.Context, style string) ([]*recipe.Recipe, error) {
	searchURL := fmt.Sprintf(w.searchURL, url.QueryEscape(style))
	body, err := w.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("style search: %w", err)
	}
	links, err := RecipeLinks(searchURL, body)
	if err != nil {
		return nil, err
	}
	if len(links) > w.limit {
		links = links[:w.limit]
	}
	w.logger.Info("style search complete", "style", style, "links", len(links))

	var recipes []*recipe.Recipe
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return recipes, err
		}
		page, err := w.fetcher.Fetch(ctx, link)
		if err != nil {
			w.logger.Warn("recipe page fetch failed", "url", link, "error", err)
			continue
		}
		data, err := w.parser.Parse(link, page)
		if err != nil {
			w.logger.Warn("recipe page parse failed", "url", link, "error", err)
			continue
		}
		r, err := recipe.New(data, w.tg, w.tax)
		if err != nil {
			w.logger.Warn("recipe build failed", "url", link, "error", err)
			continue
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// DirCorpus serves style recipes from local JSON source-data files. Files
// are matched with a doublestar pattern under the root and filtered to those
// whose path mentions the style.
type DirCorpus struct {
	root    string
	pattern string
	tg      tagger.Tagger
	tax     *taxonomy.Taxonomy
	logger  *slog.Logger
}

// NewDirCorpus wires a local corpus rooted at dir. pattern defaults to
// "**/*.json".
func NewDirCorpus(dir, pattern string, tg tagger.Tagger, tax *taxonomy.Taxonomy, logger *slog.Logger) *DirCorpus {
	if pattern == "" {
		pattern = "**/*.json"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DirCorpus{root: dir, pattern: pattern, tg: tg, tax: tax, logger: logger}
}

// Recipes loads every matching file whose path contains the style string,
// case-insensitively. Unreadable or invalid files are skipped with a warning.
func (d *DirCorpus) Recipes(ctx context.Context, style string) ([]*recipe.Recipe, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(d.root, d.pattern))
	if err != nil {
		return nil, fmt.Errorf("corpus glob: %w", err)
	}

	styleLower := strings.ToLower(style)
	var recipes []*recipe.Recipe
	for _, path := range matches {
		if err := ctx.Err(); err != nil {
			return recipes, err
		}
		if !strings.Contains(strings.ToLower(path), styleLower) {
			continue
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			d.logger.Warn("corpus file read failed", "path", path, "error", err)
			continue
		}
		var data recipe.SourceData
		if err := json.Unmarshal(raw, &data); err != nil {
			d.logger.Warn("corpus file decode failed", "path", path, "error", err)
			continue
		}
		r, err := recipe.New(data, d.tg, d.tax)
		if err != nil {
			d.logger.Warn("corpus recipe build failed", "path", path, "error", err)
			continue
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}
