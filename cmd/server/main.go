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

	"github.com/apoi01/risyusupport/config"
	"github.com/apoi01/risyusupport/internal/api/handler"
	"github.com/apoi01/risyusupport/internal/api/router"
	"github.com/apoi01/risyusupport/internal/repository"
	"github.com/apoi01/risyusupport/internal/service"
	"github.com/apoi01/risyusupport/pkg/database"
	applogger "github.com/apoi01/risyusupport/pkg/logger"
)

func main() {
	// 1. 設定の読み込み
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗: %v\n", err)
		os.Exit(1)
	}

	// 2. ロガーの初期化
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ロガーの初期化に失敗: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("アプリ起動中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("db_path", cfg.Database.Path),
	)

	// 3. データベース接続
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("データベース接続に失敗", zap.Error(err))
	}

	// 3.1 マイグレーションの実行
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("内部 sql.DB の取得に失敗", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("マイグレーションに失敗", zap.Error(err))
	}

	// 4. 依存注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, logger)
	h := handler.NewHandler(cfg, svc)

	// 5. 講義カタログの初期投入（冪等。重複コードは読み飛ばす）
	if err := svc.Ingest.SeedCatalog(context.Background()); err != nil {
		logger.Fatal("講義カタログの投入に失敗", zap.Error(err))
	}

	// 6. ルータの初期化
	engine := router.Setup(cfg, h, logger)

	// 7. HTTP サーバ起動（グレースフルシャットダウン）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP サーバを起動", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP サーバ異常終了", zap.Error(err))
		}
	}()

	// 8. シグナル待ち受けとグレースフルシャットダウン
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("終了シグナルを受信、シャットダウン開始...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("サーバ停止時にエラー", zap.Error(err))
	}

	// データベース接続のクローズ
	if closeDB, err := db.DB(); err == nil && closeDB != nil {
		closeDB.Close()
	}

	logger.Info("サーバを停止しました")
}
