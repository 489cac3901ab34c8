package model

import "strings"

// ── 校舎分類 ──
//
// 教室名の命名規約（S 始まりはタワースコラ棟）に基づく 2 値の分類。
// 対応表ではなくプレフィックス規約なので、ここを変えると既存データと
// 検索フィルタの両方がずれる。

const (
	// BuildingTower タワースコラ（S棟）
	BuildingTower = "タワースコラ"
	// BuildingMain 駿河台校舎（1号館等）
	BuildingMain = "駿河台校舎"
)

// ClassifyBuilding 教室名から校舎を分類する純関数
func ClassifyBuilding(name string) string {
	if strings.HasPrefix(name, "S") {
		return BuildingTower
	}
	return BuildingMain
}

// Classroom 教室マスタ（classrooms テーブル）
// 取込のたびに全行置換され、部分更新されることはない。
type Classroom struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"          json:"-"`
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Building string `gorm:"type:varchar(50);not null"         json:"building"`
	Capacity int    `gorm:"not null;default:0"                json:"capacity"`
}

// TableName 指定テーブル名
func (Classroom) TableName() string { return "classrooms" }
