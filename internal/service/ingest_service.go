package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/csko24143-droid/nust-room-search/internal/dto"
	"github.com/csko24143-droid/nust-room-search/internal/repository"
	"github.com/csko24143-droid/nust-room-search/pkg/redis"
)

// ── 取込モジュールの業務エラー ──

var (
	// ErrDataSourceNotFound ワークブックが発見できない
	ErrDataSourceNotFound = errors.New("時間割ワークブックが見つかりません")
	// ErrMissingRequiredSheet 教室一覧・時間割のどちらかのシートを特定できない
	ErrMissingRequiredSheet = errors.New("教室一覧シートまたは時間割シートを特定できません")
	// ErrStoreWriteFailure 世代の置換が完了しなかった
	ErrStoreWriteFailure = errors.New("データストアの置換に失敗しました")
)

// IngestService ワークブック取込の業務インターフェース
// 失敗時は既存データに一切触れない。成功時のみ教室マスタと授業コマを
// 単一トランザクションで全置換する（冪等、何度呼んでも安全）。
type IngestService interface {
	// Ingest 設定された取得元からワークブックを読み込んで取り込む
	Ingest(ctx context.Context) (*dto.IngestResult, error)
	// IngestFromReader アップロード等で渡されたワークブックを取り込む
	IngestFromReader(ctx context.Context, r io.Reader, sourceName string) (*dto.IngestResult, error)
}

type ingestService struct {
	source WorkbookSource
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger

	// 取込は同時に 1 本だけ走らせる
	mu sync.Mutex
}

// NewIngestService IngestService を生成する
func NewIngestService(source WorkbookSource, repo *repository.Repository, cache *redis.Client, logger *zap.Logger) IngestService {
	return &ingestService{
		source: source,
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (s *ingestService) Ingest(ctx context.Context) (*dto.IngestResult, error) {
	rc, name, err := s.source.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return s.IngestFromReader(ctx, rc, name)
}

func (s *ingestService) IngestFromReader(ctx context.Context, r io.Reader, sourceName string) (*dto.IngestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("ワークブックを開けません: %w", err)
	}
	defer f.Close()

	sheets, err := readWorkbook(f)
	if err != nil {
		return nil, fmt.Errorf("シートの読み込みに失敗: %w", err)
	}

	inventory, timetable := pickSheets(sheets)
	if inventory == nil || timetable == nil {
		return nil, ErrMissingRequiredSheet
	}

	classrooms := buildClassrooms(inventory)
	entries, skipped := buildScheduleEntries(timetable)

	if err := s.repo.Generation.Replace(ctx, classrooms, entries); err != nil {
		s.logger.Error("世代の置換に失敗", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStoreWriteFailure, err)
	}

	// 旧世代のクエリ結果が返らないようキャッシュを破棄（失敗しても取込は成功扱い）
	if s.cache != nil {
		if err := s.cache.FlushAvailability(ctx); err != nil {
			s.logger.Warn("空き教室キャッシュの破棄に失敗", zap.Error(err))
		}
	}

	s.logger.Info("取込完了",
		zap.String("source", sourceName),
		zap.Int("classrooms", len(classrooms)),
		zap.Int("schedule_entries", len(entries)),
		zap.Int("skipped_rows", skipped),
	)

	return &dto.IngestResult{
		SourceName:      sourceName,
		Classrooms:      len(classrooms),
		ScheduleEntries: len(entries),
		SkippedRows:     skipped,
	}, nil
}
