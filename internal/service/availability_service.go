package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/csko24143-droid/nust-room-search/config"
	"github.com/csko24143-droid/nust-room-search/internal/dto"
	"github.com/csko24143-droid/nust-room-search/internal/model"
	"github.com/csko24143-droid/nust-room-search/internal/repository"
	"github.com/csko24143-droid/nust-room-search/pkg/redis"
)

// jst 既定クエリ導出に使う固定オフセット（UTC+9）
var jst = time.FixedZone("JST", 9*60*60)

// AvailabilityService 空き教室検索の業務インターフェース
// 公開済み世代への純粋な読み取りで、整形式の入力に対して失敗しない
// （空の結果は正常）。複数呼び出し側から同時に呼んでよい。
type AvailabilityService interface {
	// Query 指定スロットの空き教室を返す
	Query(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error)
	// DefaultQuery 現在時刻（JST）から曜日と時限を導出する
	DefaultQuery(now time.Time) (day string, period int)
}

type availabilityService struct {
	repo        *repository.Repository
	cache       *redis.Client
	activeTerms []string
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewAvailabilityService AvailabilityService を生成する
func NewAvailabilityService(cfg *config.TimetableConfig, repo *repository.Repository, cache *redis.Client, logger *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:        repo,
		cache:       cache,
		activeTerms: cfg.ActiveTerms,
		cacheTTL:    cfg.CacheTTL,
		logger:      logger,
	}
}

// buildingOf フィルタ指定値を校舎名へ解決する。all は空文字（無制限）。
func buildingOf(filter string) string {
	switch filter {
	case dto.BuildingFilterTower:
		return model.BuildingTower
	case dto.BuildingFilterMain:
		return model.BuildingMain
	default:
		return ""
	}
}

func (s *availabilityService) DefaultQuery(now time.Time) (string, int) {
	t := now.In(jst)
	return model.WeekdayOf(t), model.PeriodAt(t.Format("15:04"))
}

func (s *availabilityService) Query(ctx context.Context, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	filter := req.Building
	if filter == "" {
		filter = dto.BuildingFilterAll
	}

	cacheKey := fmt.Sprintf("%s:%d:%s", req.Day, req.Period, filter)
	if s.cache != nil {
		if payload, ok, err := s.cache.GetAvailability(ctx, cacheKey); err == nil && ok {
			var resp dto.AvailabilityResponse
			if json.Unmarshal([]byte(payload), &resp) == nil {
				return &resp, nil
			}
		}
	}

	// 1. 占有集合: 指定スロットに開講中の履修期のコマが入っている教室名。
	//    開講外の履修期しかないスロットはこの時限では空きとして扱う。
	names, err := s.repo.ScheduleEntry.ListOccupiedNames(ctx, req.Day, req.Period, s.activeTerms)
	if err != nil {
		s.logger.Error("占有教室の取得に失敗", zap.Error(err))
		return nil, err
	}
	occupied := make(map[string]bool, len(names))
	for _, n := range names {
		occupied[n] = true
	}

	// 2. 候補集合: 校舎フィルタを適用した教室マスタ
	rooms, err := s.repo.Classroom.List(ctx, buildingOf(filter))
	if err != nil {
		s.logger.Error("教室一覧の取得に失敗", zap.Error(err))
		return nil, err
	}

	// 3. 空き集合 = 候補集合 − 占有集合（教室名で比較）
	free := make([]dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		if occupied[room.Name] {
			continue
		}
		free = append(free, dto.RoomResponse{Name: room.Name, Building: room.Building})
	}

	// 4. 整列: タワースコラを先に、同一校舎内は教室名の辞書順。
	//    表示上の契約なので順序をここで確定させる。
	sort.SliceStable(free, func(i, j int) bool {
		ti := free[i].Building == model.BuildingTower
		tj := free[j].Building == model.BuildingTower
		if ti != tj {
			return ti
		}
		return free[i].Name < free[j].Name
	})

	resp := &dto.AvailabilityResponse{
		Day:      req.Day,
		Period:   req.Period,
		Building: filter,
		Count:    len(free),
		Rooms:    free,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.cache.SetAvailability(ctx, cacheKey, string(payload), s.cacheTTL); err != nil {
				s.logger.Warn("クエリ結果のキャッシュに失敗", zap.Error(err))
			}
		}
	}

	return resp, nil
}
