package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/csko24143-droid/nust-room-search/internal/model"
)

// GenerationRepository 取込世代の置換
// 教室マスタと授業コマは常に対で生成され、単一トランザクションで
// 全置換される。読み手が旧世代と新世代の混在を観測することはない。
type GenerationRepository interface {
	Replace(ctx context.Context, classrooms []model.Classroom, entries []model.ScheduleEntry) error
}

type generationRepo struct {
	db *gorm.DB
}

// NewGenerationRepo GenerationRepository を生成する
func NewGenerationRepo(db *gorm.DB) GenerationRepository {
	return &generationRepo{db: db}
}

const insertBatchSize = 500

func (r *generationRepo) Replace(ctx context.Context, classrooms []model.Classroom, entries []model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.ScheduleEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.Classroom{}).Error; err != nil {
			return err
		}
		if len(classrooms) > 0 {
			if err := tx.CreateInBatches(&classrooms, insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(entries) > 0 {
			if err := tx.CreateInBatches(&entries, insertBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
