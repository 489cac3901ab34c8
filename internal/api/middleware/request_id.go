package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen 外部から渡される Request-ID の最大長（ログ注入対策）
const requestIDMaxLen = 64

// RequestID リクエスト追跡 ID ミドルウェア
// X-Request-ID ヘッダを読み、なければ UUID を生成して
// gin.Context とレスポンスヘッダに載せる。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
