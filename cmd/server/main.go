package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/smartdrive/voicebot-backend/internal/brain"
	"github.com/smartdrive/voicebot-backend/internal/config"
	"github.com/smartdrive/voicebot-backend/internal/handlers"
	"github.com/smartdrive/voicebot-backend/internal/lexicon"
	"github.com/smartdrive/voicebot-backend/internal/menu"
	"github.com/smartdrive/voicebot-backend/internal/middleware"
	"github.com/smartdrive/voicebot-backend/internal/policy"
	"github.com/smartdrive/voicebot-backend/internal/pos"
	"github.com/smartdrive/voicebot-backend/internal/service"
	"github.com/smartdrive/voicebot-backend/internal/stock"
	"github.com/smartdrive/voicebot-backend/pkg/logger"
)

func main() {
	// Load configuration from .env and environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting drive-through voice ordering server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	index, err := loadMenu(cfg.Menu)
	if err != nil {
		log.Error("failed to load menu", "path", cfg.Menu.Path, "error", err)
		os.Exit(1)
	}
	log.Info("menu loaded", "items", index.Len())

	ctx := context.Background()
	oos, backend, closeStock, err := openStock(ctx, cfg.Redis)
	if err != nil {
		log.Error("failed to open out-of-stock store", "addr", cfg.Redis.Addr, "error", err)
		os.Exit(1)
	}
	defer closeStock()

	// Initialize services
	parser := brain.New(index, lexicon.Default())
	validator := policy.New(policy.Limits{
		MaxQtyPerLine: cfg.Policy.MaxQtyPerLine,
		MaxTotalItems: cfg.Policy.MaxTotalItems,
	})
	menuService := service.NewMenuService(index)
	orderService := service.NewOrderService(parser, validator, index, oos, pos.NewSimulatedAdapter(), log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log, index, oos, backend)
	menuHandler := handlers.NewMenuHandler(menuService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	stockHandler := handlers.NewStockHandler(oos, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log, "/ping", "/health"))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.APIKeyHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)
	r.Get("/ping", healthHandler.Ping)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", menuHandler.ListItems)
		r.Get("/menu/drinks", menuHandler.Drinks)
		r.Get("/menu/{sku}", menuHandler.GetItem)

		r.Post("/nlu", orderHandler.Interpret)
		r.Post("/pos/order", orderHandler.Submit)

		// Crew-only out-of-stock administration
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))
			r.Get("/oos", stockHandler.List)
			r.Post("/oos/{sku}", stockHandler.MarkUnavailable)
			r.Delete("/oos/{sku}", stockHandler.MarkAvailable)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

func loadMenu(cfg config.MenuConfig) (*menu.Index, error) {
	if cfg.Path == "" {
		return menu.Default()
	}
	return menu.LoadFile(cfg.Path)
}

// openStock returns the shared Redis set when configured, otherwise a per-process set,
// along with the backend name reported by /health
func openStock(ctx context.Context, cfg config.RedisConfig) (stock.Store, string, func(), error) {
	if cfg.Addr == "" {
		return stock.NewMemoryStore(), "memory", func() {}, nil
	}

	store, err := stock.NewRedisStore(ctx, cfg.Addr, cfg.Password, cfg.DB, cfg.OOSKey)
	if err != nil {
		return nil, "", nil, err
	}
	slog.Info("using redis out-of-stock store", "addr", cfg.Addr, "key", cfg.OOSKey)
	return store, "redis", func() { _ = store.Close() }, nil
}
