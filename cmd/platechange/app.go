package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"

	"github.com/platechange/platechange/config"
	"github.com/platechange/platechange/recipe"
	"github.com/platechange/platechange/scrape"
	"github.com/platechange/platechange/service"
	"github.com/platechange/platechange/storage"
	"github.com/platechange/platechange/tagger"
	"github.com/platechange/platechange/taxonomy"
	"github.com/platechange/platechange/transform"
	"github.com/platechange/platechange/watch"
)

// appOptions carries root command flags and lazily wired collaborators.
type appOptions struct {
	url            string
	file           string
	transformation string
	style          string
	threshold      float64
	method         string
	seed           int64
	jsonOut        bool
}

// app is the wired pipeline shared by the commands.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	tg      tagger.Tagger
	tax     *taxonomy.Taxonomy
	engine  *transform.Engine
	fetcher *scrape.Fetcher
	pages   *scrape.PageParser
	corpus  transform.CorpusSource
}

// buildApp loads configuration and wires the pipeline.
func buildApp(opts *appOptions) (*app, error) {
	logger := slog.Default()

	cfg, err := config.NewLoader(logger).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	tax, err := loadTaxonomy(cfg)
	if err != nil {
		return nil, err
	}

	tg := tagger.NewRuleTagger()

	engineOpts := []transform.Option{transform.WithLogger(logger)}
	if opts.seed != 0 {
		engineOpts = append(engineOpts, transform.WithRand(rand.New(rand.NewSource(opts.seed))))
	}
	engine := transform.NewEngine(tax, tg, engineOpts...)

	fetcher := scrape.NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxContentSize)
	pages := scrape.NewPageParser()

	var corpus transform.CorpusSource
	if cfg.Corpus.Dir != "" {
		corpus = scrape.NewDirCorpus(cfg.Corpus.Dir, cfg.Corpus.Pattern, tg, tax, logger)
	} else {
		corpus = scrape.NewWebCorpus(fetcher, pages, tg, tax, cfg.Corpus.SearchURL, cfg.Corpus.Limit, logger)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		tg:      tg,
		tax:     tax,
		engine:  engine,
		fetcher: fetcher,
		pages:   pages,
		corpus:  corpus,
	}, nil
}

// loadTaxonomy prefers the configured word-list file, falling back to the
// built-in lists.
func loadTaxonomy(cfg *config.Config) (*taxonomy.Taxonomy, error) {
	if cfg.Taxonomy.File != "" {
		tax, err := taxonomy.LoadFile(cfg.Taxonomy.File)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
		return tax, nil
	}
	return taxonomy.Default(), nil
}

// runTransform is the root command: load one recipe, apply one
// transformation, print the result and the change report.
func (opts *appOptions) runTransform(ctx context.Context) error {
	selected := 0
	for _, v := range []string{opts.transformation, opts.style, opts.method} {
		if v != "" {
			selected++
		}
	}
	if selected != 1 {
		return fmt.Errorf("exactly one of --transformation, --style or --method is required")
	}
	if opts.url == "" && opts.file == "" {
		return fmt.Errorf("either --url or --file is required")
	}

	a, err := buildApp(opts)
	if err != nil {
		return err
	}

	r, err := a.loadRecipe(ctx, opts.url, opts.file)
	if err != nil {
		return err
	}

	switch {
	case opts.transformation != "":
		t, err := transform.ParseTransformation(opts.transformation)
		if err != nil {
			return err
		}
		if err := a.engine.Apply(r, t); err != nil {
			return err
		}
	case opts.style != "":
		if err := a.engine.ToStyle(ctx, r, a.corpus, opts.style, opts.threshold); err != nil {
			return err
		}
	default:
		if err := a.engine.ToMethod(r, opts.method); err != nil {
			return err
		}
	}

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r.Document())
	}

	fmt.Println(r.Pretty())
	fmt.Println(r.ChangeReport())
	return nil
}

// loadRecipe builds the recipe from a URL or a local JSON source file.
func (a *app) loadRecipe(ctx context.Context, url, file string) (*recipe.Recipe, error) {
	var data recipe.SourceData
	switch {
	case url != "":
		body, err := a.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch recipe: %w", err)
		}
		data, err = a.pages.Parse(url, body)
		if err != nil {
			return nil, fmt.Errorf("parse recipe page: %w", err)
		}
	default:
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read recipe file: %w", err)
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode recipe file: %w", err)
		}
	}
	return recipe.New(data, a.tg, a.tax)
}

func serveCmd(opts *appOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the transformation HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(opts)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Service.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, cleanup, err := buildStore(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := service.New(a.engine, a.corpus, a.fetcher, a.pages, a.tg, a.tax, store, a.logger)
			return svc.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to service.addr from config)")
	return cmd
}

// buildStore creates the configured record store.
func buildStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	if cfg.Service.Store != "nats" {
		return storage.NewMemoryStore(), func() {}, nil
	}

	nc, err := nats.Connect(cfg.Service.NATSURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("create JetStream context: %w", err)
	}
	store, err := storage.NewKVStore(ctx, js)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}
	return store, nc.Close, nil
}

func watchCmd(opts *appOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a drop directory and transform recipe files as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.transformation == "" && opts.method == "" {
				return fmt.Errorf("--transformation or --method is required for watch mode")
			}

			a, err := buildApp(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w, err := watch.New(a.cfg.Watch, a.logger)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			if err := w.Start(ctx); err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer w.Stop()

			for event := range w.Events() {
				if event.Operation == watch.OpDelete {
					continue
				}
				if strings.HasSuffix(event.Path, ".transformed.json") {
					continue
				}
				if err := a.transformFile(ctx, opts, event.AbsPath); err != nil {
					a.logger.Error("transforming dropped recipe failed", "path", event.Path, "error", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.transformation, "transformation", "t", "", "Transformation to apply to dropped recipes")
	cmd.Flags().StringVar(&opts.method, "method", "", "Cooking method to apply to dropped recipes")
	return cmd
}

// transformFile applies the configured transformation to a dropped recipe
// file, writing the result next to it.
func (a *app) transformFile(ctx context.Context, opts *appOptions, path string) error {
	r, err := a.loadRecipe(ctx, "", path)
	if err != nil {
		return err
	}

	if opts.transformation != "" {
		t, err := transform.ParseTransformation(opts.transformation)
		if err != nil {
			return err
		}
		if err := a.engine.Apply(r, t); err != nil {
			return err
		}
	} else if err := a.engine.ToMethod(r, opts.method); err != nil {
		return err
	}

	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".transformed.json"
	data, err := json.MarshalIndent(r.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transformed recipe: %w", err)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write transformed recipe: %w", err)
	}

	a.logger.Info("transformed dropped recipe", "in", path, "out", out)
	return nil
}

func taxonomyCmd(opts *appOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Build taxonomy word lists from the configured reference pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			builder := scrape.NewListBuilder(a.fetcher, a.logger)
			lists := taxonomy.CleanLists(builder.Build(ctx, a.cfg.Taxonomy.Sources))
			if err := taxonomy.SaveFile(out, lists); err != nil {
				return err
			}

			a.logger.Info("taxonomy written", "path", out, "entries", taxonomy.New(lists).Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "taxonomy.yaml", "Output word-list file")
	return cmd
}
