package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/csko24143-droid/nust-room-search/config"
	"github.com/csko24143-droid/nust-room-search/internal/api/handler"
	"github.com/csko24143-droid/nust-room-search/internal/api/middleware"
	"github.com/csko24143-droid/nust-room-search/pkg/redis"
)

// Setup Gin ルーターを初期化して返す
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── グローバルミドルウェア ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())

	// ── ヘルスチェック ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 空き教室検索
		v1.GET("/availability", h.Availability.GetAvailability)

		// 教室マスタ
		classrooms := v1.Group("/classrooms")
		{
			classrooms.GET("", h.Classroom.ListClassrooms)
			classrooms.GET("/:name/calendar.ics", h.Export.ExportClassroomCalendar)
		}

		// 取込（頻度は低い想定なのでレート制限をかける）
		ingest := v1.Group("/ingest")
		ingest.Use(middleware.RateLimit(rdb, cfg.Server.RateLimit.Limit, cfg.Server.RateLimit.Window))
		{
			ingest.POST("", h.Ingest.Ingest)
			ingest.POST("/upload", middleware.BodyLimit(cfg.Server.MaxBodyBytes), h.Ingest.Upload)
		}

		// 出力
		v1.GET("/export/availability", h.Export.ExportAvailabilityBook)
	}

	return r
}
