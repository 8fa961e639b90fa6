// Package main provides the platechange binary entry point. Platechange
// parses recipes into a typed model and rewrites them along diet, style,
// method and simplicity axes.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "platechange"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string
	app := &appOptions{}

	cmd := &cobra.Command{
		Use:   "platechange",
		Short: "Recipe parsing and transformation engine",
		Long: `Platechange parses recipes into ingredients and instructions, classifies
ingredients against a food taxonomy, and rewrites recipes along defined
axes: diet (vegetarian, vegan, pescatarian, healthy, and their reverses),
cuisine style, cooking method (fry, stir-fry, bake), and simplicity.

Recipes come from a recipe page URL or a local JSON file. The transformed
recipe is printed with a report of every change made to the original.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTransform(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.Flags().StringVar(&app.url, "url", "", "Recipe page URL")
	cmd.Flags().StringVar(&app.file, "file", "", "Recipe source JSON file")
	cmd.Flags().StringVarP(&app.transformation, "transformation", "t", "", "Diet or simplicity transformation (e.g. to_vegetarian)")
	cmd.Flags().StringVar(&app.style, "style", "", "Cuisine style to transform toward (e.g. mexican)")
	cmd.Flags().Float64Var(&app.threshold, "threshold", 1.0, "Style transformation strength (0..1)")
	cmd.Flags().StringVar(&app.method, "method", "", "Cooking method to transform toward (fry, stir-fry, bake)")
	cmd.Flags().Int64Var(&app.seed, "seed", 0, "Random seed for substitute selection (0 = time-based)")
	cmd.Flags().BoolVar(&app.jsonOut, "json", false, "Print the transformed recipe as JSON")

	cmd.AddCommand(serveCmd(app))
	cmd.AddCommand(watchCmd(app))
	cmd.AddCommand(taxonomyCmd(app))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
