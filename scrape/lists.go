package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/platechange/platechange/taxonomy"
)

// ListItems extracts the text of every <li> beneath the document, stopping
// when an item equals the stop marker. Reference pages end their food lists
// with a navigation item ("Category", "Lists of vegetables"), so everything
// after the marker is chrome, not data.
func ListItems(body []byte, stop string) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing reference page: %w", err)
	}

	var items []string
	stopped := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if stopped {
			return
		}
		if n.Type == html.ElementNode && n.Data == "li" {
			text := nodeText(n)
			if stop != "" && text == stop {
				stopped = true
				return
			}
			items = append(items, text)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return items, nil
}

// ListSource names one reference page feeding one taxonomy domain.
type ListSource struct {
	Domain taxonomy.DomainType `yaml:"domain"`
	URL    string              `yaml:"url"`
	Stop   string              `yaml:"stop,omitempty"`
}

// ListBuilder assembles taxonomy word lists from reference pages.
type ListBuilder struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

// NewListBuilder creates a builder over the given fetcher.
func NewListBuilder(fetcher *Fetcher, logger *slog.Logger) *ListBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListBuilder{fetcher: fetcher, logger: logger}
}

// Build fetches every source page and returns cleaned word lists. A failed
// source leaves its domain list empty rather than failing the whole build;
// resolution degrades to Unknown for that domain.
func (b *ListBuilder) Build(ctx context.Context, sources []ListSource) taxonomy.Lists {
	var lists taxonomy.Lists
	for _, src := range sources {
		body, err := b.fetcher.Fetch(ctx, src.URL)
		if err != nil {
			b.logger.Warn("reference page fetch failed", "domain", src.Domain, "url", src.URL, "error", err)
			continue
		}
		items, err := ListItems(body, src.Stop)
		if err != nil {
			b.logger.Warn("reference page parse failed", "domain", src.Domain, "url", src.URL, "error", err)
			continue
		}
		cleaned := taxonomy.Clean(items)
		b.logger.Info("built taxonomy list", "domain", src.Domain, "entries", len(cleaned))
		appendDomain(&lists, src.Domain, cleaned)
	}
	return lists
}

func appendDomain(lists *taxonomy.Lists, domain taxonomy.DomainType, entries []string) {
	switch domain {
	case taxonomy.Vegetable:
		lists.Vegetables = append(lists.Vegetables, entries...)
	case taxonomy.Herb:
		lists.Herbs = append(lists.Herbs, entries...)
	case taxonomy.Sauce:
		lists.Sauces = append(lists.Sauces, entries...)
	case taxonomy.Dairy:
		lists.Dairy = append(lists.Dairy, entries...)
	case taxonomy.Meat:
		lists.Meats = append(lists.Meats, entries...)
	case taxonomy.Seafood:
		lists.Seafood = append(lists.Seafood, entries...)
	case taxonomy.Grain:
		lists.Grains = append(lists.Grains, entries...)
	case taxonomy.Fruit:
		lists.Fruits = append(lists.Fruits, entries...)
	}
}
