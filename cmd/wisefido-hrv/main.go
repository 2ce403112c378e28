package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"wisefido-hrv/internal/config"
	"wisefido-hrv/internal/database"
	httpapi "wisefido-hrv/internal/http"
	"wisefido-hrv/internal/logger"
	"wisefido-hrv/internal/repository"
	"wisefido-hrv/internal/service"
	"wisefido-hrv/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "wisefido-hrv")
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

	// Optional DB: 连接失败时降级为纯分析模式（不保存报告历史，不影响分析接口）
	var db *sql.DB
	var repo *repository.ReportsRepository
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			repo = repository.NewReportsRepository(db, log)
			log.Info("DB enabled for wisefido-hrv")
		} else {
			log.Warn("DB enabled but connection failed, running in analyze-only mode", zap.Error(err))
		}
	}

	device := service.NewDeviceClient(
		cfg.Device.HTTPAddress,
		time.Duration(cfg.Device.Timeout)*time.Second,
		log,
	)

	svc := service.NewReportService(repo, kv, device, log)
	handler := httpapi.NewReportHandler(svc, log)

	router := httpapi.NewRouter(log)
	router.RegisterReportRoutes(handler)

	server := service.NewServer(cfg.HTTP.Addr, router, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	// 等待退出信号，优雅关闭
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Error("Failed to stop server gracefully", zap.Error(err))
	}
	if db != nil {
		_ = database.Close(db)
	}
	_ = redisClient.Close()
}
