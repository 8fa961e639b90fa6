package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Clean normalizes a raw word list per the taxonomy input contract:
// entries are lower-cased and trimmed; single-character entries and entries
// containing digits or embedded newlines are dropped.
func Clean(raw []string) []string {
	cleaned := make([]string, 0, len(raw))
	for _, entry := range raw {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if len(entry) <= 1 {
			continue
		}
		if strings.ContainsAny(entry, "0123456789") {
			continue
		}
		if strings.Contains(entry, "\n") {
			continue
		}
		cleaned = append(cleaned, entry)
	}
	return cleaned
}

// CleanLists applies Clean to every list.
func CleanLists(lists Lists) Lists {
	return Lists{
		Vegetables: Clean(lists.Vegetables),
		Herbs:      Clean(lists.Herbs),
		Sauces:     Clean(lists.Sauces),
		Dairy:      Clean(lists.Dairy),
		Meats:      Clean(lists.Meats),
		Seafood:    Clean(lists.Seafood),
		Grains:     Clean(lists.Grains),
		Fruits:     Clean(lists.Fruits),
	}
}

// LoadFile reads word lists from a YAML file and builds a Taxonomy.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	var lists Lists
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("parse taxonomy file: %w", err)
	}
	return New(CleanLists(lists)), nil
}

// SaveFile writes word lists to a YAML file, creating parent directories.
func SaveFile(path string, lists Lists) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create taxonomy directory: %w", err)
	}
	data, err := yaml.Marshal(lists)
	if err != nil {
		return fmt.Errorf("marshal taxonomy: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write taxonomy file: %w", err)
	}
	return nil
}
