package model

import "time"

// ── 時限表 ──
//
// 1〜6 限の固定の時間帯。データからは導出しない静的設定で、
// 取込側（時限の有効判定）と検索側（現在時限の導出）の両方が参照する。

// PeriodWindow 時限の開始・終了（24時間表記の壁時計文字列）
type PeriodWindow struct {
	Start string
	End   string
}

// MinPeriod / MaxPeriod 時限番号の範囲
const (
	MinPeriod = 1
	MaxPeriod = 6
)

// PeriodTable 時限番号 → 時間帯。キーは MinPeriod..MaxPeriod で連続。
var PeriodTable = map[int]PeriodWindow{
	1: {Start: "09:00", End: "10:30"},
	2: {Start: "10:40", End: "12:10"},
	3: {Start: "13:00", End: "14:30"},
	4: {Start: "14:40", End: "16:10"},
	5: {Start: "16:20", End: "17:50"},
	6: {Start: "18:00", End: "19:30"},
}

// ValidPeriod p が時限表に存在するか
func ValidPeriod(p int) bool {
	_, ok := PeriodTable[p]
	return ok
}

// PeriodAt 壁時計文字列 "HH:MM" を含む時限を返す（両端含む）。
// どの時限にも入らない時刻（1限前・6限後・昼休み等）は 1 を返す。
func PeriodAt(hhmm string) int {
	for p := MinPeriod; p <= MaxPeriod; p++ {
		w := PeriodTable[p]
		if w.Start <= hhmm && hhmm <= w.End {
			return p
		}
	}
	return MinPeriod
}

// ── 曜日 ──

// Weekdays 月曜始まりの曜日ラベル（データソースの表記に合わせる）
var Weekdays = []string{"月", "火", "水", "木", "金", "土", "日"}

// WeekdayOf t の曜日ラベルを返す
func WeekdayOf(t time.Time) string {
	// time.Weekday は日曜=0。月曜始まりの添字に変換する。
	return Weekdays[(int(t.Weekday())+6)%7]
}
