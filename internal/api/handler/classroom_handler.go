package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/csko24143-droid/nust-room-search/internal/dto"
	"github.com/csko24143-droid/nust-room-search/internal/service"
	"github.com/csko24143-droid/nust-room-search/pkg/response"
)

// ClassroomHandler 教室マスタの HTTP ハンドラ
type ClassroomHandler struct {
	classroomSvc service.ClassroomService
}

// NewClassroomHandler ClassroomHandler を生成する
func NewClassroomHandler(classroomSvc service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomSvc: classroomSvc}
}

// ListClassrooms 教室一覧を返す
// GET /api/v1/classrooms?building=tower
func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	var req dto.ClassroomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "パラメータが不正です")
		return
	}

	rooms, err := h.classroomSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rooms, "count": len(rooms)})
}
