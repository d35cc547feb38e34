package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/yoga28042005/carekart-server/pkg/config"
	"github.com/yoga28042005/carekart-server/pkg/idempotency"
	"github.com/yoga28042005/carekart-server/pkg/logging"
	"github.com/yoga28042005/carekart-server/pkg/middleware"
	"github.com/yoga28042005/carekart-server/pkg/outbox"
	"github.com/yoga28042005/carekart-server/pkg/shutdown"
	"github.com/yoga28042005/carekart-server/pkg/tracing"

	"github.com/yoga28042005/carekart-server/internal/database"

	authapp "github.com/yoga28042005/carekart-server/internal/auth/application"
	authhttp "github.com/yoga28042005/carekart-server/internal/auth/infrastructure/http"
	authpg "github.com/yoga28042005/carekart-server/internal/auth/infrastructure/postgres"
	catalogapp "github.com/yoga28042005/carekart-server/internal/catalog/application"
	catalogfs "github.com/yoga28042005/carekart-server/internal/catalog/infrastructure/fs"
	cataloghttp "github.com/yoga28042005/carekart-server/internal/catalog/infrastructure/http"
	catalogpg "github.com/yoga28042005/carekart-server/internal/catalog/infrastructure/postgres"
	catalogcache "github.com/yoga28042005/carekart-server/internal/catalog/infrastructure/redis"
	invapp "github.com/yoga28042005/carekart-server/internal/inventory/application"
	invhttp "github.com/yoga28042005/carekart-server/internal/inventory/infrastructure/http"
	invpg "github.com/yoga28042005/carekart-server/internal/inventory/infrastructure/postgres"
	orderapp "github.com/yoga28042005/carekart-server/internal/order/application"
	orderhttp "github.com/yoga28042005/carekart-server/internal/order/infrastructure/http"
	orderkafka "github.com/yoga28042005/carekart-server/internal/order/infrastructure/kafka"
	orderpg "github.com/yoga28042005/carekart-server/internal/order/infrastructure/postgres"
	payapp "github.com/yoga28042005/carekart-server/internal/payment/application"
	payhttp "github.com/yoga28042005/carekart-server/internal/payment/infrastructure/http"
	userapp "github.com/yoga28042005/carekart-server/internal/user/application"
	userhttp "github.com/yoga28042005/carekart-server/internal/user/infrastructure/http"
	userpg "github.com/yoga28042005/carekart-server/internal/user/infrastructure/postgres"
	"github.com/yoga28042005/carekart-server/internal/wishlist"
)

func main() {
	log := logging.New("carekart-server")

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "err", err)
		os.Exit(1)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	tp, err := tracing.Init(ctx, "carekart-server", cfg.OTLPEndpoint, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	// Postgres
	pool, err := database.Connect(ctx, cfg.PostgresURL)
	if err != nil {
		log.Error("pg connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	// Kafka producer and outbox relay
	writer := orderkafka.NewWriter(cfg.KafkaBrokers)
	defer writer.Close()

	outboxStore := orderpg.NewOutboxStore(log, pool)
	dispatch := outbox.NewDispatcher(log, writer, cfg.OrderTopic)
	relay := outbox.NewRelay(log, outboxStore, dispatch, "carekart-relay")

	// Auth
	tokens := authapp.NewTokenManager(cfg.JWTSecret, time.Hour)
	authSvc := authapp.NewService(log, authpg.NewUserRepository(pool), tokens)
	authHandler := authhttp.NewHandler(log, authSvc)

	// Catalog, with redis cache-aside in front of postgres
	products := catalogcache.NewCachedProductRepository(catalogpg.NewProductRepository(pool), rdb, log)
	catalogSvc := catalogapp.NewService(log, products, catalogfs.NewImageStore(cfg.ImagesDir))
	catalogHandler := cataloghttp.NewHandler(log, catalogSvc)

	// Inventory
	invSvc := invapp.NewService(log, invpg.NewRepository(log, pool))
	invHandler := invhttp.NewHandler(log, invSvc)

	// Order
	idem := idempotency.NewStore(rdb, 24*time.Hour)
	orderSvc := orderapp.NewService(log, orderpg.NewRepository(log, pool))
	orderHandler := orderhttp.NewHandler(log, orderSvc, idem)

	// Payment
	paySvc := payapp.NewService(log, payapp.Config{
		KeyID:    cfg.GatewayID,
		MaxPaise: cfg.GatewayMaxAmount,
		UPIVPA:   cfg.UPIVPA,
		UPIPayee: cfg.UPIPayee,
	})
	payHandler := payhttp.NewHandler(log, paySvc)

	// User profile + addresses
	userRepo := userpg.NewRepository(pool)
	userSvc := userapp.NewService(log, userRepo, userRepo)
	userHandler := userhttp.NewHandler(log, userSvc)

	// Wishlist
	wishlistHandler := wishlist.NewHandler(log, wishlist.NewRepository(pool))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))

	authHandler.Register(r)
	catalogHandler.Register(r)
	invHandler.Register(r)
	orderHandler.Register(r)
	payHandler.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		orderHandler.RegisterAccount(r)
		userHandler.Register(r)
		wishlistHandler.Register(r)
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	if cfg.OutboxRelay {
		go func() {
			if err := relay.Run(ctx); err != nil {
				log.Error("relay stopped with error", "err", err)
			}
		}()
	}

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("server shutdown complete")
}
