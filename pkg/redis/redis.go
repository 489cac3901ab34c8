package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/csko24143-droid/nust-room-search/config"
)

// Client Redis クライアントの薄いラッパー
// 用途は空き教室クエリ結果のキャッシュとレート制限カウンタ。
// 呼び出し側は nil クライアントを「キャッシュなし運用」として扱う。
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient Redis に接続し Ping で疎通確認する
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 接続に失敗: %w", err)
	}

	logger.Info("Redis 接続成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 空き教室クエリキャッシュ ──

const availabilityPrefix = "availability:"

// GetAvailability キャッシュ済みのクエリ結果(JSON)を取得する
func (c *Client) GetAvailability(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, availabilityPrefix+key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// SetAvailability クエリ結果(JSON)をキャッシュする
func (c *Client) SetAvailability(ctx context.Context, key, payload string, ttl time.Duration) error {
	return c.rdb.Set(ctx, availabilityPrefix+key, payload, ttl).Err()
}

// FlushAvailability 空き教室キャッシュを全削除する
// 取込成功後に呼び、旧世代の結果が返らないようにする。
func (c *Client) FlushAvailability(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, availabilityPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// ── レート制限 ──

// CheckRateLimit 固定ウィンドウのレート制限判定
// ウィンドウ内の呼び出し回数が limit 以下なら true を返す。
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// Close Redis 接続を閉じる
func (c *Client) Close() error {
	return c.rdb.Close()
}
