// Package taxonomy resolves ingredient names to food domain types using
// reference word lists. A Taxonomy is built once per run, before any
// ingredient is typed, and is read-only thereafter.
package taxonomy

import "strings"

// Lists holds the eight reference word lists, one per domain. Entries are
// full terms ("sour cream", "portobello mushrooms"); matching is done on
// their individual words.
type Lists struct {
	Vegetables []string `yaml:"vegetables"`
	Herbs      []string `yaml:"herbs"`
	Sauces     []string `yaml:"sauces"`
	Dairy      []string `yaml:"dairy"`
	Meats      []string `yaml:"meats"`
	Seafood    []string `yaml:"seafood"`
	Grains     []string `yaml:"grains"`
	Fruits     []string `yaml:"fruits"`
}

// Taxonomy is an immutable view over the domain word lists with a per-domain
// word index for name resolution.
type Taxonomy struct {
	entries map[DomainType][]string
	words   map[DomainType]map[string]bool
}

// New builds a Taxonomy from cleaned word lists. The eight lists are kept
// distinct; in particular seafood is not folded into meat, so the Seafood
// domain stays reachable during resolution.
func New(lists Lists) *Taxonomy {
	t := &Taxonomy{
		entries: make(map[DomainType][]string),
		words:   make(map[DomainType]map[string]bool),
	}
	t.add(Vegetable, lists.Vegetables)
	t.add(Herb, lists.Herbs)
	t.add(Sauce, lists.Sauces)
	t.add(Dairy, lists.Dairy)
	t.add(Meat, lists.Meats)
	t.add(Seafood, lists.Seafood)
	t.add(Grain, lists.Grains)
	t.add(Fruit, lists.Fruits)
	return t
}

func (t *Taxonomy) add(domain DomainType, entries []string) {
	if t.words[domain] == nil {
		t.words[domain] = make(map[string]bool)
	}
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		t.entries[domain] = append(t.entries[domain], entry)
		for _, word := range strings.Fields(entry) {
			t.words[domain][word] = true
		}
	}
}

// Resolve classifies an ingredient name. A name containing "sauce" is always
// Sauce; otherwise the first domain in precedence order whose word index
// intersects the name's words wins. A partially populated taxonomy yields
// Unknown rather than an error.
func (t *Taxonomy) Resolve(name string) DomainType {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "sauce") {
		return Sauce
	}
	nameWords := strings.Fields(lower)
	for _, domain := range precedence {
		index := t.words[domain]
		for _, word := range nameWords {
			if index[word] {
				return domain
			}
		}
	}
	return Unknown
}

// Entries returns the full term list for a domain, in load order. The
// returned slice must not be modified.
func (t *Taxonomy) Entries(domain DomainType) []string {
	return t.entries[domain]
}

// Len reports the total number of entries across all domains.
func (t *Taxonomy) Len() int {
	n := 0
	for _, entries := range t.entries {
		n += len(entries)
	}
	return n
}
