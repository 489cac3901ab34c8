package model

// ScheduleEntry 授業コマ（schedule_entries テーブル）
// ある履修期の (曜日, 時限, 教室) が埋まっていることを表す。
// ClassroomName は弱参照で、取込データが不整合なら classrooms に
// 存在しない教室名を持ちうる（外部キー制約は張らない）。
type ScheduleEntry struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"                     json:"-"`
	Day           string `gorm:"type:varchar(10);not null;index:idx_entry_slot" json:"day"`
	Period        int    `gorm:"not null;index:idx_entry_slot"                json:"period"`
	ClassroomName string `gorm:"type:varchar(100);not null;index"             json:"classroom_name"`
	Term          string `gorm:"type:varchar(50);not null"                    json:"term"`
	SubjectCode   string `gorm:"type:varchar(50);not null;default:''"         json:"subject_code"`
}

// TableName 指定テーブル名
func (ScheduleEntry) TableName() string { return "schedule_entries" }
