package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quote-desk/catalog"
	"quote-desk/config"
	httpLayer "quote-desk/http"
	"quote-desk/repository"
	"quote-desk/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.CatalogPath)
}

// stores holds the backing stores picked from the storage config.
type stores struct {
	cache    repository.CacheRepository
	sessions repository.SessionRepository
	users    repository.UserRepository
	closers  []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	s := &stores{
		cache:    repository.NewMemoryCache(),
		sessions: repository.NewMemorySessionStore(),
		users:    repository.NewUserRepositoryMemory(),
	}

	if addr := cfg.Storage.RedisAddr; addr != "" {
		client, err := repository.NewRedisClient(ctx, addr)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = client.Close() })
		s.cache = repository.NewRedisCache(client)
		s.sessions = repository.NewRedisSessionStore(client)
		logger.Info("using redis", zap.String("addr", addr))
	}

	if url := cfg.Storage.DatabaseURL; url != "" {
		pool, err := repository.NewPostgresPool(ctx, url)
		if err != nil {
			s.close()
			return nil, err
		}
		s.closers = append(s.closers, pool.Close)
		users := repository.NewUserRepositoryPostgres(pool)
		if err := users.Migrate(ctx); err != nil {
			s.close()
			return nil, err
		}
		s.users = users
		logger.Info("using postgres for users")
	}
	return s, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	auth, err := service.NewAuthService(
		service.Credentials{Email: cfg.Admin.Email, Password: cfg.Admin.Password},
		config.Duration(cfg.Admin.SessionTTL),
		st.sessions,
		logger,
	)
	if err != nil {
		return err
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.Limits.RateLimit, config.Duration(cfg.Limits.RateWindow))
	defer rateLimiter.Stop()

	handler := httpLayer.NewRouter(httpLayer.Services{
		Catalog: cat,
		Quotes: service.NewQuoteService(cat,
			repository.NewQuoteRepositoryMemory(repository.SeedQuotes),
			st.cache,
			config.Duration(cfg.Storage.QuoteCacheTTL),
			logger,
		),
		Users: service.NewUserService(st.users, logger),
		Auth:  auth,
	}, rateLimiter, logger)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  config.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: config.Duration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Duration(cfg.Server.IdleTimeout),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("quote desk listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Duration(cfg.Server.ShutdownTimeout))
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}
