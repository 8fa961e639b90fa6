// Package config provides configuration loading and management for
// platechange.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/platechange/platechange/scrape"
	"github.com/platechange/platechange/taxonomy"
	"github.com/platechange/platechange/watch"
)

// Config represents the complete platechange configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Taxonomy TaxonomyConfig `yaml:"taxonomy"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Service  ServiceConfig  `yaml:"service"`
	Watch    watch.Config   `yaml:"watch"`
}

// HTTPConfig configures the outbound page fetcher.
type HTTPConfig struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration `yaml:"timeout"`
	// UserAgent is sent with every request.
	UserAgent string `yaml:"user_agent"`
	// MaxContentSize caps fetched body sizes in bytes.
	MaxContentSize int64 `yaml:"max_content_size"`
}

// TaxonomyConfig configures where the food word lists come from.
type TaxonomyConfig struct {
	// File is a YAML word-list file. When set it wins over Sources and
	// the built-in lists.
	File string `yaml:"file"`
	// Sources are reference pages to mine for word lists with the
	// taxonomy build command.
	Sources []scrape.ListSource `yaml:"sources"`
}

// CorpusConfig configures the style corpus.
type CorpusConfig struct {
	// SearchURL is the style search URL with one %s verb for the query.
	SearchURL string `yaml:"search_url"`
	// Limit caps recipe pages fetched per style search.
	Limit int `yaml:"limit"`
	// Dir switches to a local JSON corpus rooted here when set.
	Dir string `yaml:"dir"`
	// Pattern is the doublestar glob for local corpus files.
	Pattern string `yaml:"pattern"`
}

// ServiceConfig configures the HTTP service.
type ServiceConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr"`
	// Store selects the record store: "memory" or "nats".
	Store string `yaml:"store"`
	// NATSURL is the NATS server URL for the nats store.
	NATSURL string `yaml:"nats_url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:        10 * time.Second,
			UserAgent:      "platechange/1.0",
			MaxContentSize: 5 << 20, // 5 MB
		},
		Taxonomy: TaxonomyConfig{
			Sources: []scrape.ListSource{
				{Domain: taxonomy.Vegetable, URL: "https://simple.wikipedia.org/wiki/List_of_vegetables", Stop: "Lists of vegetables"},
				{Domain: taxonomy.Herb, URL: "https://en.wikipedia.org/wiki/List_of_culinary_herbs_and_spices", Stop: "Category"},
				{Domain: taxonomy.Sauce, URL: "https://en.wikipedia.org/wiki/List_of_sauces", Stop: "Category"},
				{Domain: taxonomy.Dairy, URL: "https://en.wikipedia.org/wiki/List_of_dairy_products", Stop: "Category"},
				{Domain: taxonomy.Meat, URL: "https://en.wikipedia.org/wiki/List_of_meat_dishes", Stop: "Category"},
				{Domain: taxonomy.Seafood, URL: "https://en.wikipedia.org/wiki/List_of_types_of_seafood", Stop: "Category"},
				{Domain: taxonomy.Grain, URL: "https://en.wikipedia.org/wiki/List_of_cereals", Stop: "Category"},
				{Domain: taxonomy.Fruit, URL: "https://simple.wikipedia.org/wiki/List_of_fruits", Stop: "Category"},
			},
		},
		Corpus: CorpusConfig{
			SearchURL: "https://www.allrecipes.com/search/results/?wt=%s&sort=re",
			Limit:     20,
			Pattern:   "**/*.json",
		},
		Service: ServiceConfig{
			Addr:    ":8080",
			Store:   "memory",
			NATSURL: "nats://127.0.0.1:4222",
		},
		Watch: watch.DefaultConfig(),
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	if c.HTTP.MaxContentSize <= 0 {
		return fmt.Errorf("http.max_content_size must be positive")
	}
	if c.Corpus.Limit < 0 {
		return fmt.Errorf("corpus.limit must not be negative")
	}
	switch c.Service.Store {
	case "memory", "nats":
	default:
		return fmt.Errorf("service.store must be \"memory\" or \"nats\", got %q", c.Service.Store)
	}
	if c.Service.Store == "nats" && c.Service.NATSURL == "" {
		return fmt.Errorf("service.nats_url is required for the nats store")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.HTTP.Timeout != 0 {
		c.HTTP.Timeout = other.HTTP.Timeout
	}
	if other.HTTP.UserAgent != "" {
		c.HTTP.UserAgent = other.HTTP.UserAgent
	}
	if other.HTTP.MaxContentSize != 0 {
		c.HTTP.MaxContentSize = other.HTTP.MaxContentSize
	}

	if other.Taxonomy.File != "" {
		c.Taxonomy.File = other.Taxonomy.File
	}
	if len(other.Taxonomy.Sources) > 0 {
		c.Taxonomy.Sources = other.Taxonomy.Sources
	}

	if other.Corpus.SearchURL != "" {
		c.Corpus.SearchURL = other.Corpus.SearchURL
	}
	if other.Corpus.Limit != 0 {
		c.Corpus.Limit = other.Corpus.Limit
	}
	if other.Corpus.Dir != "" {
		c.Corpus.Dir = other.Corpus.Dir
	}
	if other.Corpus.Pattern != "" {
		c.Corpus.Pattern = other.Corpus.Pattern
	}

	if other.Service.Addr != "" {
		c.Service.Addr = other.Service.Addr
	}
	if other.Service.Store != "" {
		c.Service.Store = other.Service.Store
	}
	if other.Service.NATSURL != "" {
		c.Service.NATSURL = other.Service.NATSURL
	}

	if other.Watch.Dir != "" {
		c.Watch.Dir = other.Watch.Dir
	}
	if other.Watch.DebounceDelay != 0 {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
	if len(other.Watch.FileExtensions) > 0 {
		c.Watch.FileExtensions = other.Watch.FileExtensions
	}
}
