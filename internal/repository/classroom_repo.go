package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/csko24143-droid/nust-room-search/internal/model"
)

// ClassroomRepository 教室マスタのデータアクセス
type ClassroomRepository interface {
	// List 校舎でフィルタして教室を列挙する。building が空なら全件。
	List(ctx context.Context, building string) ([]model.Classroom, error)
	GetByName(ctx context.Context, name string) (*model.Classroom, error)
}

type classroomRepo struct {
	db *gorm.DB
}

// NewClassroomRepo ClassroomRepository を生成する
func NewClassroomRepo(db *gorm.DB) ClassroomRepository {
	return &classroomRepo{db: db}
}

func (r *classroomRepo) List(ctx context.Context, building string) ([]model.Classroom, error) {
	var rooms []model.Classroom
	db := r.db.WithContext(ctx)

	if building != "" {
		db = db.Where("building = ?", building)
	}

	err := db.Order("name ASC").Find(&rooms).Error
	return rooms, err
}

func (r *classroomRepo) GetByName(ctx context.Context, name string) (*model.Classroom, error) {
	var room model.Classroom
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}
