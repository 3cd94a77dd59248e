package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sternrassler/game-likes-proxy/pkg/cache"
	"github.com/Sternrassler/game-likes-proxy/pkg/catalog"
	"github.com/Sternrassler/game-likes-proxy/pkg/config"
	"github.com/Sternrassler/game-likes-proxy/pkg/logging"
	"github.com/Sternrassler/game-likes-proxy/pkg/proxy"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "likes-proxy",
		Short:         "Caching HTTP proxy for game favorite counts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger := setupLogging(cfg, cmd.ErrOrStderr())

			handler, err := buildHandler(cfg, logger)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to build proxy")
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info().
				Str("version", version).
				Str("upstream", cfg.Upstream.URL).
				Dur("cache_ttl", cfg.Cache.TTL).
				Int("cache_capacity", cfg.Cache.Capacity).
				Msg("Likes proxy configured")

			srv := proxy.NewServer(cfg.Address(), handler, logging.NewLogger("server"))
			return srv.ListenAndServe(ctx)
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file (optional)")

	root.AddCommand(newConfigCmd(&configPath))

	return root
}

// newConfigCmd prints the effective configuration after file and environment overrides.
func newConfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			settings := []struct {
				key   string
				value any
			}{
				{"listen", cfg.Address()},
				{"cache.ttl", cfg.Cache.TTL},
				{"cache.capacity", cfg.Cache.Capacity},
				{"upstream.url", cfg.Upstream.URL},
				{"upstream.timeout", cfg.Upstream.Timeout},
				{"log.level", cfg.Log.Level},
			}

			out := cmd.OutOrStdout()
			for _, s := range settings {
				fmt.Fprintf(out, "%-17s %v\n", s.key+":", s.value)
			}
			return nil
		},
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config, out io.Writer) zerolog.Logger {
	return logging.Setup(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: out,
	})
}

// buildHandler wires cache, catalog client and service into the HTTP handler.
func buildHandler(cfg *config.Config, logger zerolog.Logger) (*proxy.Handler, error) {
	manager, err := cache.NewManager(cfg.CacheManagerConfig(), cache.SystemClock{})
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	client, err := catalog.New(cfg.CatalogConfig())
	if err != nil {
		return nil, fmt.Errorf("create catalog client: %w", err)
	}

	proxyLogger := logger.With().Str("component", "proxy").Logger()
	service := proxy.NewService(manager, client, proxyLogger)
	return proxy.NewHandler(service, proxyLogger), nil
}
