package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/csko24143-droid/nust-room-search/internal/service"
	"github.com/csko24143-droid/nust-room-search/pkg/response"
)

// IngestHandler 取込の HTTP ハンドラ
type IngestHandler struct {
	ingestSvc service.IngestService
}

// NewIngestHandler IngestHandler を生成する
func NewIngestHandler(ingestSvc service.IngestService) *IngestHandler {
	return &IngestHandler{ingestSvc: ingestSvc}
}

// Ingest 設定された取得元からワークブックを取り込む
// POST /api/v1/ingest
// 冪等で、失敗時は既存データが温存される。
func (h *IngestHandler) Ingest(c *gin.Context) {
	result, err := h.ingestSvc.Ingest(c.Request.Context())
	if err != nil {
		h.handleIngestError(c, err)
		return
	}

	response.OK(c, result)
}

// Upload アップロードされたワークブックを取り込む
// POST /api/v1/ingest/upload (multipart/form-data, field: file)
func (h *IngestHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "file フィールドにワークブックを指定してください")
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		response.BadRequest(c, 10002, "xlsx ファイルのみ受け付けます")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer f.Close()

	result, err := h.ingestSvc.IngestFromReader(c.Request.Context(), f, fileHeader.Filename)
	if err != nil {
		h.handleIngestError(c, err)
		return
	}

	response.OK(c, result)
}

// handleIngestError 取込モジュールの業務エラーを HTTP へ対応付ける
func (h *IngestHandler) handleIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDataSourceNotFound):
		response.NotFound(c, 14001, "時間割ワークブックが見つかりません")
	case errors.Is(err, service.ErrMissingRequiredSheet):
		response.UnprocessableEntity(c, 14002, "教室一覧シートまたは時間割シートを特定できません")
	case errors.Is(err, service.ErrStoreWriteFailure):
		response.InternalError(c)
	default:
		response.UnprocessableEntity(c, 14003, "ワークブックを処理できません")
	}
}
