package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/csko24143-droid/nust-room-search/internal/service"
	"github.com/csko24143-droid/nust-room-search/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 出力の HTTP ハンドラ
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler ExportHandler を生成する
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAvailabilityBook 週間の空き教室数グリッドを Excel でダウンロードさせる
// GET /api/v1/export/availability
func (h *ExportHandler) ExportAvailabilityBook(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportAvailabilityBook(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	setAttachment(c, filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportClassroomCalendar 教室の週間コマを iCalendar でダウンロードさせる
// GET /api/v1/classrooms/:name/calendar.ics
func (h *ExportHandler) ExportClassroomCalendar(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.BadRequest(c, 10001, "教室名を指定してください")
		return
	}

	body, filename, err := h.exportSvc.ExportClassroomCalendar(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrClassroomNotFound) {
			response.NotFound(c, 15001, "教室が見つかりません")
			return
		}
		response.InternalError(c)
		return
	}

	setAttachment(c, filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// setAttachment 非 ASCII ファイル名も扱える Content-Disposition を付ける
func setAttachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
}
