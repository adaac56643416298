package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"go-kiezmap/cache"
	"go-kiezmap/config"
	"go-kiezmap/cronjobs"
	"go-kiezmap/crimedata"
	"go-kiezmap/dashboard"
	"go-kiezmap/gateway"
	"go-kiezmap/geocode"
	"go-kiezmap/logger"
	"go-kiezmap/routes"
	"go-kiezmap/session"
	"go-kiezmap/telemetry"
)

func main() {
	// Load .env file
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	mode := config.String("APP_MODE", "dev")
	appLog, err := logger.New(mode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	cfg := config.Load(appLog)
	if cfg.Mode == "prod" || cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := telemetry.Init(cfg.TraceStdout, appLog)
	if err != nil {
		appLog.Fatal("Failed to initialize tracing", "error", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			appLog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	// Memo store: Redis when configured, in-process otherwise
	var store cache.Store = cache.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisStore, err := cache.NewRedisStore(cfg.RedisAddr, appLog)
		if err != nil {
			appLog.Warn("redis unavailable, using in-process memo store", "error", err)
		} else {
			store = redisStore
		}
	}
	defer store.Close()
	memo := cache.NewMemo(store, appLog)

	loader := crimedata.NewLoader(crimedata.OptionsFromProfile(cfg.Profile), memo, appLog)
	gw := gateway.New(cfg, memo, appLog)
	geocoder := geocode.New(cfg, memo, appLog)
	assistant := gateway.NewAssistant(cfg, appLog)
	sessions := session.NewStore(cfg.SessionTTL, cfg.Profile.Center)
	svc := dashboard.New(cfg, loader, gw, geocoder, assistant, appLog)

	// Warm caches once, then on schedule
	cronjobs.Warmup(context.Background(), gw, svc, appLog)
	scheduler, err := cronjobs.InitCronJobs(cfg.WarmupSchedule, gw, svc, appLog)
	if err != nil {
		appLog.Warn("cache warm-up not scheduled", "error", err)
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	r, err := routes.SetupRouter(cfg, svc, sessions)
	if err != nil {
		appLog.Fatal("Failed to set up router", "error", err)
	}

	appLog.Info("server starting", "city", cfg.Profile.City, "port", cfg.Port)
	if err := r.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		appLog.Fatal("Failed to start server", "error", err)
	}
}
