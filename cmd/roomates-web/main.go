package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/UnibsMatt/roomates/internal/api"
	"github.com/UnibsMatt/roomates/internal/config"
	"github.com/UnibsMatt/roomates/internal/logger"
	"github.com/UnibsMatt/roomates/internal/session"
	"github.com/UnibsMatt/roomates/internal/store"
	"github.com/UnibsMatt/roomates/internal/web"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "roomates-web")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)

	client := api.NewClient(cfg.API.BaseURL, log)

	sessions := session.NewManager(client, session.NewKVStore(kv, cfg.Session.TTL), log)
	adminPw := session.NewAdminCache(kv, cfg.Session.AdminTTL)
	cookies := session.NewCookieNotice(kv)

	handler := web.NewHandler(client, sessions, adminPw, cookies, log)
	router := web.NewRouter(log)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("api_base_url", cfg.API.BaseURL))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = redisClient.Close()
}
