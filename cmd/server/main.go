package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/csko24143-droid/nust-room-search/config"
	"github.com/csko24143-droid/nust-room-search/internal/api/handler"
	"github.com/csko24143-droid/nust-room-search/internal/api/router"
	"github.com/csko24143-droid/nust-room-search/internal/repository"
	"github.com/csko24143-droid/nust-room-search/internal/service"
	"github.com/csko24143-droid/nust-room-search/pkg/database"
	applogger "github.com/csko24143-droid/nust-room-search/pkg/logger"
	"github.com/csko24143-droid/nust-room-search/pkg/redis"
)

func main() {
	// 1. 設定の読み込み
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗: %v\n", err)
		os.Exit(1)
	}

	// 2. ログの初期化
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ログの初期化に失敗: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("起動中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("source_type", cfg.Source.Type),
	)

	// 3. データベース接続とスキーマ同期
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("データベース接続に失敗", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("スキーマ同期に失敗", zap.Error(err))
	}

	// 4. Redis 接続（任意。失敗時はキャッシュなしで降格運用）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 接続に失敗。キャッシュなしで稼働します", zap.Error(err))
		rdb = nil
	}

	// 5. ワークブック取得元
	source, err := service.NewWorkbookSource(&cfg.Source)
	if err != nil {
		logger.Fatal("ワークブック取得元の初期化に失敗", zap.Error(err))
	}

	// 6. 依存注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, source, rdb, logger)
	h := handler.NewHandler(svc)

	// 7. 起動時取込（失敗しても旧世代のデータで稼働を続ける）
	if cfg.Timetable.IngestOnStartup {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if result, err := svc.Ingest.Ingest(ctx); err != nil {
			logger.Warn("起動時取込に失敗。既存データのまま稼働します", zap.Error(err))
		} else {
			logger.Info("起動時取込完了",
				zap.String("source", result.SourceName),
				zap.Int("classrooms", result.Classrooms),
				zap.Int("schedule_entries", result.ScheduleEntries),
			)
		}
		cancel()
	}

	// 8. ルーターと HTTP サーバー（graceful shutdown）
	engine := router.Setup(cfg, h, rdb, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP サーバー起動", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP サーバー異常終了", zap.Error(err))
		}
	}()

	// 9. シグナル待ちとシャットダウン
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("終了シグナル受信", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("サーバー停止時にエラー", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("停止完了")
}
