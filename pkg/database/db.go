package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/csko24143-droid/nust-room-search/config"
	"github.com/csko24143-droid/nust-room-search/internal/model"
)

// NewDB データベース接続を初期化する
// 既定は SQLite（単一ファイル）。db.driver=postgres で PostgreSQL に切替。
func NewDB(cfg *config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	default:
		db, err = gorm.Open(sqlite.Open(cfg.Path), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB の取得に失敗: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	if cfg.Driver == "sqlite" {
		// SQLite は書き込みが単一コネクション前提
		maxOpen = 1
		maxIdle = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("データベース ping に失敗: %w", err)
	}

	logger.Info("データベース接続成功",
		zap.String("driver", cfg.Driver),
	)

	return db, nil
}

// AutoMigrate 教室マスタと授業コマのスキーマを作成・更新する
// 両テーブルは取込のたびに全行置換されるため、バージョン付き
// マイグレーションは持たずスキーマ同期のみ行う。
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Classroom{}, &model.ScheduleEntry{}); err != nil {
		return fmt.Errorf("スキーマ同期に失敗: %w", err)
	}
	return nil
}
