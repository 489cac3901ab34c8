package service

import (
	"go.uber.org/zap"

	"github.com/csko24143-droid/nust-room-search/config"
	"github.com/csko24143-droid/nust-room-search/internal/repository"
	"github.com/csko24143-droid/nust-room-search/pkg/redis"
)

// Service 全 Service の集約
type Service struct {
	Ingest       IngestService
	Availability AvailabilityService
	Classroom    ClassroomService
	Export       ExportService
}

// NewService Service 集約を生成する
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	source WorkbookSource,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Ingest:       NewIngestService(source, repo, cache, logger),
		Availability: NewAvailabilityService(&cfg.Timetable, repo, cache, logger),
		Classroom:    NewClassroomService(repo, logger),
		Export:       NewExportService(repo, cfg.Timetable.ActiveTerms, logger),
	}
}
