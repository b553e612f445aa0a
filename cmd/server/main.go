package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/multiblog/internal/cache"
	"github.com/multiblog/internal/config"
	"github.com/multiblog/internal/db"
	"github.com/multiblog/internal/logging"
	"github.com/multiblog/internal/metrics"
	"github.com/multiblog/internal/router"
	"github.com/sirupsen/logrus"
)

func main() {
	// 加载 .env（可选）
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	logging.Init(cfg.Log)
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(db.Options{Driver: cfg.DatabaseDriver, Path: cfg.DatabasePath, DSN: cfg.DatabaseDSN}); err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}
	if err := db.EnsureUser(db.DB, cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		logrus.WithError(err).Fatal("failed to ensure admin user")
	}

	store, err := newStore(cfg.Redis)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to cache")
	}
	defer store.Close()

	r, err := router.SetupRouter(router.Options{
		DB:                   db.DB,
		Store:                store,
		Metrics:              metrics.New(),
		SessionSecret:        cfg.SessionSecret,
		SiteName:             cfg.SiteName,
		CommentRatePerMinute: cfg.CommentRatePerMinute,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to set up router")
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithField("addr", cfg.ListenAddr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("failed to run server")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}

// newStore uses redis when an address is configured and the in-process store otherwise.
func newStore(cfg config.RedisConfig) (cache.Store, error) {
	if cfg.Addr == "" {
		logrus.Info("engagement cache: in-process memory store")
		return cache.NewMemoryStore(), nil
	}

	store, err := cache.NewRedisStore(cache.RedisOptions{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err != nil {
		return nil, err
	}
	logrus.WithField("addr", cfg.Addr).Info("engagement cache: redis")
	return store, nil
}
