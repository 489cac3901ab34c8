package repository

import "gorm.io/gorm"

// Repository 全 Repository の集約
type Repository struct {
	Classroom     ClassroomRepository
	ScheduleEntry ScheduleEntryRepository
	Generation    GenerationRepository
}

// NewRepository Repository 集約を生成する
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Classroom:     NewClassroomRepo(db),
		ScheduleEntry: NewScheduleEntryRepo(db),
		Generation:    NewGenerationRepo(db),
	}
}
