package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/devlink/devlink/docs"
	"github.com/devlink/devlink/internal/config"
	"github.com/devlink/devlink/internal/github"
	"github.com/devlink/devlink/internal/httpapi"
	"github.com/devlink/devlink/internal/log"
	"github.com/devlink/devlink/internal/metrics"
	"github.com/devlink/devlink/internal/queue"
	"github.com/devlink/devlink/internal/repo"
)

// @title devlink API
// @version 1.0.0
// @description Developer social network: users, profiles, posts.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.Env == "prod")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	var cache *repo.Redis
	if cfg.RedisAddr != "" {
		cache = repo.NewRedis(cfg.RedisAddr)
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, github cache disabled", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	pub := queue.NewNoop()
	if cfg.RabbitURL != "" {
		rp, err := queue.NewRabbit(cfg.RabbitURL, queue.Exchange)
		if err != nil {
			logger.Fatal("rabbit connect", zap.Error(err))
		}
		pub = rp
	}
	defer pub.Close()

	gh := github.NewClient(cache, cfg.GithubToken,
		time.Duration(cfg.GithubCacheSeconds)*time.Second)

	docs.SwaggerInfo.BasePath = "/"

	h := httpapi.NewHandler(store, cfg.JWTSecret,
		time.Duration(cfg.TokenTTLSeconds)*time.Second, pub, gh)
	r := httpapi.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	logger.Info("devlink listening", zap.String("port", cfg.Port))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}
}
