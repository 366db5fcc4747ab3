package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/KaushikNaik2/Schedulix/config"
	"github.com/KaushikNaik2/Schedulix/internal/api/handler"
	"github.com/KaushikNaik2/Schedulix/internal/api/router"
	"github.com/KaushikNaik2/Schedulix/internal/repository"
	"github.com/KaushikNaik2/Schedulix/internal/service"
	"github.com/KaushikNaik2/Schedulix/pkg/database"
	"github.com/KaushikNaik2/Schedulix/pkg/jwt"
	applogger "github.com/KaushikNaik2/Schedulix/pkg/logger"
	"github.com/KaushikNaik2/Schedulix/pkg/mq"
	"github.com/KaushikNaik2/Schedulix/pkg/redis"
	"github.com/KaushikNaik2/Schedulix/pkg/storage"
	"github.com/KaushikNaik2/Schedulix/pkg/validation"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ./config/config.yaml)")
	flag.Parse()

	// 1. .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}

	// 2. configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 3. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting schedulix",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("campus_timezone", cfg.Campus.Timezone),
	)

	// 4. database + migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 5. optional infrastructure; every piece degrades when unavailable
	deps := service.Deps{}

	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable: no token blacklist, timetable cache or shared rate limit", zap.Error(err))
		rdb = nil
	}
	deps.Redis = rdb

	if cfg.Storage.Enabled {
		objects, err := storage.NewMinio(context.Background(), &cfg.Storage, logger)
		if err != nil {
			logger.Warn("object storage unavailable: profile pictures disabled", zap.Error(err))
		} else {
			deps.Storage = objects
		}
	}

	var publisher *mq.RabbitPublisher
	if cfg.Queue.Enabled {
		publisher, err = mq.NewRabbitPublisher(&cfg.Queue, logger)
		if err != nil {
			logger.Warn("message queue unavailable: notifications are stored only", zap.Error(err))
			publisher = nil
		} else {
			deps.Publisher = publisher
		}
	}

	// 6. request validation tags
	if err := validation.Register(); err != nil {
		logger.Fatal("register validators failed", zap.Error(err))
	}

	// 7. Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc, err := service.NewService(cfg, repo, jwtMgr, deps, logger)
	if err != nil {
		logger.Fatal("init services failed", zap.Error(err))
	}
	h := handler.NewHandler(svc, &cfg.Upload)

	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if publisher != nil {
		publisher.Close()
	}
	if rdb != nil {
		rdb.Close()
	}
	sqlDB.Close()

	logger.Info("server stopped")
}
