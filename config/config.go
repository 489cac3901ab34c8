package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config アプリ全体の設定
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Source    SourceConfig    `mapstructure:"source"`
	Timetable TimetableConfig `mapstructure:"timetable"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig HTTP サーバー設定
type ServerConfig struct {
	Port         int             `mapstructure:"port"`
	CORS         CORSConfig      `mapstructure:"cors"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
	MaxBodyBytes int64           `mapstructure:"max_body_bytes"`
}

// CORSConfig 許可オリジン設定
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateLimitConfig 取込系エンドポイントのレート制限
type RateLimitConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// DatabaseConfig データベース設定
// driver は sqlite（既定）または postgres
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Path            string `mapstructure:"path"` // sqlite 用ファイルパス
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 分
}

// DSN PostgreSQL 接続文字列を生成する
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig キャッシュ用 Redis 設定（任意。未接続でも稼働する）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SourceConfig ワークブック取得元の設定
// type は local（既定）または minio
type SourceConfig struct {
	Type    string      `mapstructure:"type"`
	Dir     string      `mapstructure:"dir"`     // local: 探索ディレクトリ
	Pattern string      `mapstructure:"pattern"` // local: glob パターン
	MinIO   MinIOConfig `mapstructure:"minio"`
}

// MinIOConfig MinIO をワークブック取得元にする場合の設定
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
}

// TimetableConfig 時間割ドメインの設定
// ActiveTerms は「現在開講中」と見なす履修期ラベルの閉じた集合。
// 起動時に確定し以後変更しないため、並行クエリからロックなしで参照できる。
type TimetableConfig struct {
	ActiveTerms     []string      `mapstructure:"active_terms"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	IngestOnStartup bool          `mapstructure:"ingest_on_startup"`
}

// LogConfig ログ設定
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 設定ファイルと環境変数から設定を読み込む
// 優先順位: 環境変数 > 設定ファイル > 既定値
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 既定値 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.rate_limit.limit", 10)
	v.SetDefault("server.rate_limit.window", "1m")
	v.SetDefault("server.max_body_bytes", 10*1024*1024) // 10MB

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "schedule_final.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "room_search")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Tokyo")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("source.type", "local")
	v.SetDefault("source.dir", ".")
	v.SetDefault("source.pattern", "*.xlsx")
	v.SetDefault("source.minio.endpoint", "localhost:9000")
	v.SetDefault("source.minio.use_ssl", false)
	v.SetDefault("source.minio.bucket", "timetables")
	v.SetDefault("source.minio.prefix", "")

	v.SetDefault("timetable.active_terms", []string{
		"後期", "年間", "後期隔週", "年間隔週",
		"後期集中(資)", "年間集中(資)", "年隔集中(資)",
	})
	v.SetDefault("timetable.cache_ttl", "10m")
	v.SetDefault("timetable.ingest_on_startup", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 設定ファイル ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 環境変数 ──
	v.SetEnvPrefix("ROOMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
		}
		// 設定ファイルがない場合は既定値と環境変数のみで動く
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定の解析に失敗: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 重要な設定項目を検証する
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("設定エラー: server.port は 1-65535 の範囲で指定してください")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("設定エラー: db.driver は sqlite または postgres を指定してください (got %q)", c.Database.Driver)
	}
	switch c.Source.Type {
	case "local", "minio":
	default:
		return fmt.Errorf("設定エラー: source.type は local または minio を指定してください (got %q)", c.Source.Type)
	}
	if len(c.Timetable.ActiveTerms) == 0 {
		return fmt.Errorf("設定エラー: timetable.active_terms が空です")
	}
	return nil
}
