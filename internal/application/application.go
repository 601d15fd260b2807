package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/summit-pack/internal/api"
	"github.com/eugenenazirov/summit-pack/internal/catalog"
	"github.com/eugenenazirov/summit-pack/internal/condition"
	"github.com/eugenenazirov/summit-pack/internal/config"
	"github.com/eugenenazirov/summit-pack/internal/session"
	"github.com/eugenenazirov/summit-pack/internal/storage"
	"github.com/eugenenazirov/summit-pack/web"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	catalog    *catalog.Catalog
	generator  *condition.Generator
	storage    storage.Storage
	limiter    *api.KeyedLimiter
	newSession api.SessionFactory
	handler    *api.Handler
	router     http.Handler
	logger     *zap.Logger
	server     *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	items, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	generator := condition.NewGenerator(
		condition.WithSeed(cfg.ConditionSeed),
		condition.WithMaxAttempts(cfg.GeneratorMaxAttempts),
		condition.WithLogger(logger.Named("condition")),
	)
	var limiter *api.KeyedLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = api.NewKeyedLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	storeLogger := logger.Named("storage")
	store := storage.NewMemoryStorage(
		storage.WithIdleTTL(cfg.SessionIdleTTL),
		storage.WithEvictHook(func(id string) {
			limiter.ForgetSession(id)
			storeLogger.Debug("session evicted", zap.String("session_id", id))
		}),
	)
	factory := NewSessionFactory(items, generator, cfg.DefaultCapacity, logger.Named("session"))

	handler := api.NewHandler(items, store, factory, api.WithHandlerLogger(logger))
	routerOpts := []api.RouterOption{api.WithLogging(cfg.EnableRequestLogging)}
	if limiter != nil {
		routerOpts = append(routerOpts, api.WithRateLimiter(limiter))
	} else {
		routerOpts = append(routerOpts, api.WithRateLimit(0, 0))
	}
	apiRouter := api.NewRouter(handler, logger, routerOpts...)

	rootHandler, err := BuildRootHandler(apiRouter)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP handler: %w", err)
	}

	logger.Info("application initialized",
		zap.Int("catalog_items", items.Len()),
		zap.Int("default_capacity", cfg.DefaultCapacity),
		zap.Bool("seeded", cfg.ConditionSeed != 0),
		zap.Duration("session_idle_ttl", cfg.SessionIdleTTL),
	)

	return &App{
		catalog:    items,
		generator:  generator,
		storage:    store,
		limiter:    limiter,
		newSession: factory,
		handler:    handler,
		router:     apiRouter,
		logger:     logger,
		server:     NewServer(cfg, rootHandler),
	}, nil
}

// NewSessionFactory returns the constructor the API uses for new sessions.
// A zero capacity falls back to defaultCapacity.
func NewSessionFactory(items *catalog.Catalog, conditions session.ConditionSource, defaultCapacity int, logger *zap.Logger) api.SessionFactory {
	return func(capacity int) (*session.Session, error) {
		if capacity == 0 {
			capacity = defaultCapacity
		}
		return session.New(items, conditions,
			session.WithCapacity(capacity),
			session.WithLogger(logger),
		)
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

// BuildRootHandler constructs the root HTTP handler that serves the embedded UI and routes API requests.
func BuildRootHandler(apiHandler http.Handler) (http.Handler, error) {
	static, err := web.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("open static assets: %w", err)
	}
	index, err := web.Index()
	if err != nil {
		return nil, fmt.Errorf("read index template: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", indexHandler(index))

	return mux, nil
}

func indexHandler(index []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(index)
	})
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx
// expires, then force-closes the server.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server", zap.Int("active_sessions", a.storage.Len()))

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := a.server.Close(); closeErr != nil {
			return errors.Join(err, closeErr)
		}
		return err
	}
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
