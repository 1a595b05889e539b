package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/eightball/internal/api"
	"github.com/playmatatu/eightball/internal/config"
	"github.com/playmatatu/eightball/internal/database"
	"github.com/playmatatu/eightball/internal/game"
	"github.com/playmatatu/eightball/internal/migrations"
	"github.com/playmatatu/eightball/internal/redis"
	"github.com/playmatatu/eightball/internal/session"
	"github.com/playmatatu/eightball/internal/tuning"
	"github.com/playmatatu/eightball/internal/ws"
)

func main() {
	// Initialize configuration (also loads .env)
	cfg := config.Load()

	if level, err := log.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
		log.SetLevel(level)
	}
	log.SetReportTimestamp(true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Physics: YAML file over defaults, then database overrides
	params, err := config.LoadPhysics(cfg.PhysicsConfigPath)
	if err != nil {
		log.Fatalf("Failed to load physics config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if db != nil {
		defer db.Close()

		if cfg.MigrateOnStart {
			log.Info("[MIGRATE] Running DB migrations on startup...")
			if err := migrations.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}

		if tuned, err := tuning.Load(db, params); err != nil {
			log.Warnf("[TUNING] Runtime config not applied: %v", err)
		} else {
			params = tuned
		}
	} else {
		log.Info("[TUNING] DATABASE_URL not set; runtime tuning disabled")
	}

	rdb, err := redis.Connect(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Info("[REDIS] REDIS_URL not set; snapshot cache and event relay disabled")
	}

	tables := game.NewTableManager(rdb, game.ManagerConfig{
		Params:         params,
		IdleTimeout:    cfg.TableIdleTimeout(),
		SnapshotTTL:    cfg.SnapshotTTL(),
		InputQueue:     cfg.InputQueueSize,
		BroadcastEvery: cfg.BroadcastEvery,
	})

	hub := ws.NewHub(tables)
	tables.SetSink(hub.Publish)
	go hub.Run(ctx)
	hub.StartEventRelay(ctx, rdb)

	tables.StartIdleReaper(ctx, time.Minute)

	tokens := session.NewIssuer(cfg.JWTSecret, cfg.TableTokenTTL())

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	api.SetupRoutes(router, cfg, tables, tokens, hub)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Starting table server on port %s (tick %v)", cfg.Port, params.TickInterval())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP shutdown: %v", err)
	}
	tables.Shutdown()
}
