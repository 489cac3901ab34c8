package handler

import "github.com/csko24143-droid/nust-room-search/internal/service"

// Handler 全 Handler の集約
type Handler struct {
	Availability *AvailabilityHandler
	Classroom    *ClassroomHandler
	Ingest       *IngestHandler
	Export       *ExportHandler
}

// NewHandler Handler 集約を生成する
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Availability: NewAvailabilityHandler(svc.Availability),
		Classroom:    NewClassroomHandler(svc.Classroom),
		Ingest:       NewIngestHandler(svc.Ingest),
		Export:       NewExportHandler(svc.Export),
	}
}
