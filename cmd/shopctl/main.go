// Package main implements shopctl, an operator CLI that runs the storefront services in-process.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/javajoker/library-shop/internal/catalog"
	"github.com/javajoker/library-shop/internal/config"
	"github.com/javajoker/library-shop/internal/inference"
	"github.com/javajoker/library-shop/internal/services"
)

var (
	catalogPath string
	verbose     bool
	timeout     time.Duration
)

// newGenerator builds the model backend. Tests replace it.
var newGenerator = func(ctx context.Context, cfg *config.Config) (inference.Generator, error) {
	return inference.NewGemini(ctx, inference.GeminiConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	})
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Browse, search and chat with the library shop catalog",
	Long: `shopctl runs the library shop services without the HTTP server.

Commands:
  products  - List catalog products, optionally by category
  search    - Run an AI text search
  chat      - Talk to the Digital Librarian`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			logrus.SetLevel(logrus.WarnLevel)
		}
		return nil
	},
}

// app bundles the services one command invocation works with.
type app struct {
	catalog *catalog.Catalog
	session *services.Session
	search  *services.SearchService
	chat    *services.ChatService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	path := cfg.Catalog.Path
	if catalogPath != "" {
		path = catalogPath
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}

	generator, err := newGenerator(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize model client: %w", err)
	}

	client := inference.NewClient(generator, cat)
	return &app{
		catalog: cat,
		session: services.NewSessionStore(cfg.Session.TTL).Create(),
		search:  services.NewSearchService(client, cat, cfg.Upload.ImageMaxBytes),
		chat:    services.NewChatService(client, cat),
	}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog YAML file (default: built-in catalog)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Timeout for each model call")

	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
