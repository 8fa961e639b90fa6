package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.HTTP.Timeout != 10*time.Second {
		t.Errorf("expected default timeout 10s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.Service.Store != "memory" {
		t.Errorf("expected default store memory, got %s", cfg.Service.Store)
	}
	if len(cfg.Taxonomy.Sources) != 8 {
		t.Errorf("expected 8 taxonomy sources, got %d", len(cfg.Taxonomy.Sources))
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.HTTP.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "zero content size",
			modify:  func(c *Config) { c.HTTP.MaxContentSize = 0 },
			wantErr: true,
		},
		{
			name:    "negative corpus limit",
			modify:  func(c *Config) { c.Corpus.Limit = -1 },
			wantErr: true,
		},
		{
			name:    "unknown store",
			modify:  func(c *Config) { c.Service.Store = "redis" },
			wantErr: true,
		},
		{
			name: "nats store without url",
			modify: func(c *Config) {
				c.Service.Store = "nats"
				c.Service.NATSURL = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
http:
  timeout: 30s
  user_agent: "custom/2.0"
corpus:
  dir: "local-corpus"
  limit: 5
service:
  addr: ":9090"
  store: "nats"
  nats_url: "nats://test:4222"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.UserAgent != "custom/2.0" {
		t.Errorf("expected user agent custom/2.0, got %s", cfg.HTTP.UserAgent)
	}
	if cfg.Corpus.Dir != "local-corpus" {
		t.Errorf("expected corpus dir local-corpus, got %s", cfg.Corpus.Dir)
	}
	if cfg.Service.NATSURL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.Service.NATSURL)
	}
	// Fields absent from the file keep their defaults.
	if cfg.HTTP.MaxContentSize != 5<<20 {
		t.Errorf("expected default max content size, got %d", cfg.HTTP.MaxContentSize)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		HTTP: HTTPConfig{
			UserAgent: "override/1.0",
		},
		Corpus: CorpusConfig{
			Dir: "/override/corpus",
		},
	}

	base.Merge(override)

	if base.HTTP.UserAgent != "override/1.0" {
		t.Errorf("expected user agent override/1.0, got %s", base.HTTP.UserAgent)
	}
	if base.Corpus.Dir != "/override/corpus" {
		t.Errorf("expected corpus dir /override/corpus, got %s", base.Corpus.Dir)
	}
	// Timeout should remain from base since override didn't set it
	if base.HTTP.Timeout != 10*time.Second {
		t.Errorf("expected timeout to remain default, got %v", base.HTTP.Timeout)
	}
	if base.Service.Addr != ":8080" {
		t.Errorf("expected addr to remain default, got %s", base.Service.Addr)
	}
}

func TestConfigMergeNil(t *testing.T) {
	base := DefaultConfig()
	base.Merge(nil)
	if err := base.Validate(); err != nil {
		t.Errorf("merging nil should not change the config, got %v", err)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Service.Addr = ":7070"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Service.Addr != ":7070" {
		t.Errorf("expected addr :7070, got %s", loaded.Service.Addr)
	}
}
