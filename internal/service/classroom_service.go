package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/csko24143-droid/nust-room-search/internal/dto"
	"github.com/csko24143-droid/nust-room-search/internal/repository"
)

// ClassroomService 教室マスタの参照インターフェース
type ClassroomService interface {
	List(ctx context.Context, req *dto.ClassroomListRequest) ([]dto.ClassroomResponse, error)
}

type classroomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassroomService ClassroomService を生成する
func NewClassroomService(repo *repository.Repository, logger *zap.Logger) ClassroomService {
	return &classroomService{repo: repo, logger: logger}
}

func (s *classroomService) List(ctx context.Context, req *dto.ClassroomListRequest) ([]dto.ClassroomResponse, error) {
	rooms, err := s.repo.Classroom.List(ctx, buildingOf(req.Building))
	if err != nil {
		s.logger.Error("教室一覧の取得に失敗", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClassroomResponse, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, dto.ClassroomResponse{
			Name:     room.Name,
			Building: room.Building,
			Capacity: room.Capacity,
		})
	}
	return result, nil
}
