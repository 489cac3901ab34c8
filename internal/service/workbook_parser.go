package service

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/csko24143-droid/nust-room-search/internal/model"
)

// ── ワークブックの正規化 ──
//
// 人手で維持されている不揃いなワークブックを 2 つの正規化レコード集合
// （教室マスタ・授業コマ）へ変換する。シートの役割は列名の有無で判定し、
// 行単位の欠損は取込エラーにせず既定値で埋めるか読み飛ばす。

// データソース側の列名
const (
	colDay        = "曜日"
	colPeriod     = "時限"
	colRoomClean  = "Classroom_Clean"
	colClassCount = "Class_Count"
	colRoomRaw    = "教室"
	colTerm       = "履修期名"
	colSubject    = "時間割CD"
)

// defaultTerm 履修期が取れない行に与えるラベル
const defaultTerm = "通年"

// sheetTable 名前付き列の表として読んだ 1 シート
// Columns は先頭行、Rows はそれ以降。セルの欠損は空文字として扱う。
type sheetTable struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// columnIndex 列名の完全一致で位置を探す。見つからなければ -1。
func (t *sheetTable) columnIndex(name string) int {
	for i, c := range t.Columns {
		if strings.TrimSpace(c) == name {
			return i
		}
	}
	return -1
}

// cell 行の idx 列目。行が短い場合や idx<0 は空文字。
func (t *sheetTable) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// readWorkbook ワークブック全シートを sheetTable へ読み込む
// シート順はソースの提供順を維持する（先勝ち判定の前提）。
func readWorkbook(f *excelize.File) ([]sheetTable, error) {
	var sheets []sheetTable
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, err
		}
		t := sheetTable{Name: name}
		if len(rows) > 0 {
			t.Columns = rows[0]
			t.Rows = rows[1:]
		}
		sheets = append(sheets, t)
	}
	return sheets, nil
}

// ── シート分類 ──

type sheetRole int

const (
	roleUnrecognized sheetRole = iota
	roleInventory
	roleTimetable
)

// classifierRule 列名集合に対する述語と役割の組
type classifierRule struct {
	role  sheetRole
	match func(cols map[string]bool) bool
}

// classifierRules 順に評価して最初に一致した規則の役割を採用する
var classifierRules = []classifierRule{
	{roleTimetable, func(cols map[string]bool) bool {
		return cols[colDay] && cols[colPeriod]
	}},
	{roleInventory, func(cols map[string]bool) bool {
		return cols[colRoomClean] || cols[colClassCount]
	}},
}

// classifySheet 列名からシートの役割を判定する
func classifySheet(t *sheetTable) sheetRole {
	cols := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		cols[strings.TrimSpace(c)] = true
	}
	for _, rule := range classifierRules {
		if rule.match(cols) {
			return rule.role
		}
	}
	return roleUnrecognized
}

// pickSheets 各役割の最初に一致したシートを選ぶ
// 複数シートが同じ役割に一致しても先勝ちでエラーにはしない。
func pickSheets(sheets []sheetTable) (inventory, timetable *sheetTable) {
	for i := range sheets {
		switch classifySheet(&sheets[i]) {
		case roleInventory:
			if inventory == nil {
				inventory = &sheets[i]
			}
		case roleTimetable:
			if timetable == nil {
				timetable = &sheets[i]
			}
		}
	}
	return inventory, timetable
}

// ── レコード構築 ──

// buildClassrooms 教室一覧シートから教室マスタを構築する
// 教室名列は Classroom_Clean、なければ先頭列。収容数は Class_Count、
// なければ 0。空文字の教室名も行として保持する。
// 同名の行は後勝ちで 1 件に畳む（世代内で name を一意に保つ）。
func buildClassrooms(t *sheetTable) []model.Classroom {
	if len(t.Columns) == 0 {
		return nil
	}

	nameIdx := t.columnIndex(colRoomClean)
	if nameIdx < 0 {
		nameIdx = 0
	}
	countIdx := t.columnIndex(colClassCount)

	var rooms []model.Classroom
	seen := make(map[string]int) // name → rooms 内の位置

	for _, row := range t.Rows {
		name := t.cell(row, nameIdx)
		room := model.Classroom{
			Name:     name,
			Building: model.ClassifyBuilding(name),
			Capacity: parseIntCell(t.cell(row, countIdx)),
		}
		if i, ok := seen[name]; ok {
			rooms[i] = room // 後勝ち。初出の並び位置は保つ
		} else {
			seen[name] = len(rooms)
			rooms = append(rooms, room)
		}
	}
	return rooms
}

// buildScheduleEntries 時間割シートから授業コマを構築する
// 教室名列は Classroom_Clean、なければ「教室」。どちらの列もない
// シートでは全行を読み飛ばす（エラーにしない）。履修期は欠損時
// defaultTerm、科目コードは欠損時空文字。
func buildScheduleEntries(t *sheetTable) (entries []model.ScheduleEntry, skipped int) {
	roomIdx := t.columnIndex(colRoomClean)
	if roomIdx < 0 {
		roomIdx = t.columnIndex(colRoomRaw)
	}
	dayIdx := t.columnIndex(colDay)
	periodIdx := t.columnIndex(colPeriod)
	termIdx := t.columnIndex(colTerm)
	subjectIdx := t.columnIndex(colSubject)

	for _, row := range t.Rows {
		if roomIdx < 0 {
			skipped++
			continue
		}

		term := t.cell(row, termIdx)
		if term == "" {
			term = defaultTerm
		}

		entries = append(entries, model.ScheduleEntry{
			Day:           t.cell(row, dayIdx),
			Period:        parseIntCell(t.cell(row, periodIdx)),
			ClassroomName: t.cell(row, roomIdx),
			Term:          term,
			SubjectCode:   t.cell(row, subjectIdx),
		})
	}
	return entries, skipped
}

// parseIntCell セル文字列を整数として解釈する
// Excel 由来の "3" / "3.0" の両方を受け、解釈できなければ 0。
// 時限の 0 は時限表に存在しないため占有計算から自然に外れる。
func parseIntCell(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
