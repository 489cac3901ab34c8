package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/csko24143-droid/nust-room-search/internal/model"
)

// ScheduleEntryRepository 授業コマのデータアクセス
type ScheduleEntryRepository interface {
	// ListOccupiedNames 指定の曜日・時限で、開講中の履修期に属する
	// コマが入っている教室名を重複なしで返す。
	ListOccupiedNames(ctx context.Context, day string, period int, terms []string) ([]string, error)
	// ListByClassroom 教室単位の週間コマ（開講中の履修期のみ）
	ListByClassroom(ctx context.Context, name string, terms []string) ([]model.ScheduleEntry, error)
	// ListByTerms 開講中の履修期に属する全コマ
	ListByTerms(ctx context.Context, terms []string) ([]model.ScheduleEntry, error)
}

type scheduleEntryRepo struct {
	db *gorm.DB
}

// NewScheduleEntryRepo ScheduleEntryRepository を生成する
func NewScheduleEntryRepo(db *gorm.DB) ScheduleEntryRepository {
	return &scheduleEntryRepo{db: db}
}

func (r *scheduleEntryRepo) ListOccupiedNames(ctx context.Context, day string, period int, terms []string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Distinct("classroom_name").
		Where("day = ? AND period = ? AND term IN ?", day, period, terms).
		Pluck("classroom_name", &names).Error
	return names, err
}

func (r *scheduleEntryRepo) ListByClassroom(ctx context.Context, name string, terms []string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("classroom_name = ? AND term IN ?", name, terms).
		Order("day ASC, period ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleEntryRepo) ListByTerms(ctx context.Context, terms []string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("term IN ?", terms).
		Find(&entries).Error
	return entries, err
}
