package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/csko24143-droid/nust-room-search/pkg/redis"
	"github.com/csko24143-droid/nust-room-search/pkg/response"
)

// RateLimit Redis カウンタによる取込エンドポイントのレート制限
// rdb が nil（キャッシュなし運用）または Redis エラー時は制限せず通す。
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.TooManyRequests(c, 10004, "リクエストが多すぎます。しばらくしてから再試行してください")
			c.Abort()
			return
		}

		c.Next()
	}
}
