package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/csko24143-droid/nust-room-search/internal/dto"
	"github.com/csko24143-droid/nust-room-search/internal/service"
	"github.com/csko24143-droid/nust-room-search/pkg/response"
)

// AvailabilityHandler 空き教室検索の HTTP ハンドラ
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler AvailabilityHandler を生成する
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// GetAvailability 空き教室を検索する
// GET /api/v1/availability?day=月&period=1&building=all
// day / period が未指定のときは現在時刻（JST）から導出する。
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	if req.Day == "" || req.Period == 0 {
		day, period := h.availabilitySvc.DefaultQuery(time.Now())
		if req.Day == "" {
			req.Day = day
		}
		if req.Period == 0 {
			req.Period = period
		}
	}

	result, err := h.availabilitySvc.Query(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
