package service

import (
	"testing"

	"github.com/csko24143-droid/nust-room-search/internal/model"
)

func TestClassifySheet(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    sheetRole
	}{
		{"曜日と時限で時間割", []string{"曜日", "時限", "教室"}, roleTimetable},
		{"曜日だけでは不足", []string{"曜日", "教室"}, roleUnrecognized},
		{"Classroom_Clean で教室一覧", []string{"Classroom_Clean", "Class_Count"}, roleInventory},
		{"Class_Count 単独でも教室一覧", []string{"部屋", "Class_Count"}, roleInventory},
		{"両役割の列を持つ場合は時間割が先勝ち", []string{"曜日", "時限", "Classroom_Clean"}, roleTimetable},
		{"列名は完全一致で判定する", []string{"曜日別", "時限数"}, roleUnrecognized},
		{"前後の空白は無視する", []string{" 曜日 ", " 時限 "}, roleTimetable},
		{"列なし", nil, roleUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := sheetTable{Name: "test", Columns: tt.columns}
			if got := classifySheet(&sheet); got != tt.want {
				t.Errorf("classifySheet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPickSheets(t *testing.T) {
	sheets := []sheetTable{
		{Name: "メモ", Columns: []string{"備考"}},
		{Name: "教室A", Columns: []string{"Classroom_Clean"}},
		{Name: "時間割A", Columns: []string{"曜日", "時限"}},
		{Name: "教室B", Columns: []string{"Classroom_Clean"}},
		{Name: "時間割B", Columns: []string{"曜日", "時限"}},
	}

	inventory, timetable := pickSheets(sheets)
	if inventory == nil || inventory.Name != "教室A" {
		t.Errorf("教室一覧は最初に一致したシートを選ぶべき: got %+v", inventory)
	}
	if timetable == nil || timetable.Name != "時間割A" {
		t.Errorf("時間割は最初に一致したシートを選ぶべき: got %+v", timetable)
	}
}

func TestPickSheets_Missing(t *testing.T) {
	sheets := []sheetTable{
		{Name: "時間割", Columns: []string{"曜日", "時限"}},
	}

	inventory, timetable := pickSheets(sheets)
	if inventory != nil {
		t.Errorf("教室一覧シートがないのに選ばれた: %+v", inventory)
	}
	if timetable == nil {
		t.Error("時間割シートが選ばれるべき")
	}
}

func TestBuildClassrooms(t *testing.T) {
	sheet := sheetTable{
		Name:    "教室一覧",
		Columns: []string{"Classroom_Clean", "Class_Count"},
		Rows: [][]string{
			{"S101", "12"},
			{"1021", "5"},
			{"S205", "3.0"},
			{"", "2"},     // 空の教室名も保持する
			{"S101", "9"}, // 同名は後勝ち
		},
	}

	rooms := buildClassrooms(&sheet)
	if len(rooms) != 4 {
		t.Fatalf("教室数 = %d, want 4", len(rooms))
	}

	// 初出の並び位置を保ったまま後勝ちで上書きされる
	if rooms[0].Name != "S101" || rooms[0].Capacity != 9 {
		t.Errorf("重複行は後勝ちで畳まれるべき: got %+v", rooms[0])
	}
	if rooms[0].Building != model.BuildingTower {
		t.Errorf("S 始まりはタワースコラ: got %q", rooms[0].Building)
	}
	if rooms[1].Name != "1021" || rooms[1].Building != model.BuildingMain {
		t.Errorf("S 以外は駿河台校舎: got %+v", rooms[1])
	}
	if rooms[2].Capacity != 3 {
		t.Errorf("\"3.0\" は 3 として解釈すべき: got %d", rooms[2].Capacity)
	}
	if rooms[3].Name != "" {
		t.Errorf("空の教室名の行は保持すべき: got %+v", rooms[3])
	}
}

func TestBuildClassrooms_FallbackColumns(t *testing.T) {
	// Classroom_Clean がなければ先頭列、Class_Count がなければ 0
	sheet := sheetTable{
		Name:    "教室一覧",
		Columns: []string{"部屋名", "Class_Count"},
		Rows: [][]string{
			{"S301", "7"},
		},
	}

	rooms := buildClassrooms(&sheet)
	if len(rooms) != 1 {
		t.Fatalf("教室数 = %d, want 1", len(rooms))
	}
	if rooms[0].Name != "S301" {
		t.Errorf("教室名は先頭列から取るべき: got %q", rooms[0].Name)
	}

	sheet2 := sheetTable{
		Name:    "教室一覧",
		Columns: []string{"Classroom_Clean"},
		Rows:    [][]string{{"1101"}},
	}
	rooms2 := buildClassrooms(&sheet2)
	if rooms2[0].Capacity != 0 {
		t.Errorf("Class_Count なしの収容数は 0: got %d", rooms2[0].Capacity)
	}
}

func TestBuildScheduleEntries(t *testing.T) {
	sheet := sheetTable{
		Name:    "時間割",
		Columns: []string{"曜日", "時限", "Classroom_Clean", "履修期名", "時間割CD"},
		Rows: [][]string{
			{"月", "1", "S101", "後期", "CS101"},
			{"火", "2.0", "1021", "", "MA201"}, // 履修期の欠損は既定値
			{"水", "x", "S205", "前期"},          // 解釈不能な時限は 0
		},
	}

	entries, skipped := buildScheduleEntries(&sheet)
	if skipped != 0 {
		t.Errorf("読み飛ばし行数 = %d, want 0", skipped)
	}
	if len(entries) != 3 {
		t.Fatalf("コマ数 = %d, want 3", len(entries))
	}

	if entries[0].Day != "月" || entries[0].Period != 1 || entries[0].SubjectCode != "CS101" {
		t.Errorf("1 行目の解釈が不正: %+v", entries[0])
	}
	if entries[1].Period != 2 {
		t.Errorf("\"2.0\" は時限 2 として解釈すべき: got %d", entries[1].Period)
	}
	if entries[1].Term != "通年" {
		t.Errorf("履修期の欠損は通年で埋めるべき: got %q", entries[1].Term)
	}
	if entries[2].Period != 0 {
		t.Errorf("解釈不能な時限は 0: got %d", entries[2].Period)
	}
	if entries[2].SubjectCode != "" {
		t.Errorf("科目コードの欠損は空文字: got %q", entries[2].SubjectCode)
	}
}

func TestBuildScheduleEntries_RoomColumnFallback(t *testing.T) {
	// Classroom_Clean がなければ「教室」列にフォールバック
	sheet := sheetTable{
		Name:    "時間割",
		Columns: []string{"曜日", "時限", "教室"},
		Rows: [][]string{
			{"木", "3", "S402"},
		},
	}

	entries, skipped := buildScheduleEntries(&sheet)
	if skipped != 0 || len(entries) != 1 {
		t.Fatalf("entries=%d skipped=%d, want 1/0", len(entries), skipped)
	}
	if entries[0].ClassroomName != "S402" {
		t.Errorf("教室列から名前を取るべき: got %q", entries[0].ClassroomName)
	}
}

func TestBuildScheduleEntries_NoRoomColumn(t *testing.T) {
	// 教室名の列がまったくない場合は全行を読み飛ばす
	sheet := sheetTable{
		Name:    "時間割",
		Columns: []string{"曜日", "時限"},
		Rows: [][]string{
			{"月", "1"},
			{"火", "2"},
		},
	}

	entries, skipped := buildScheduleEntries(&sheet)
	if len(entries) != 0 {
		t.Errorf("コマ数 = %d, want 0", len(entries))
	}
	if skipped != 2 {
		t.Errorf("読み飛ばし行数 = %d, want 2", skipped)
	}
}

func TestParseIntCell(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"3.0", 3},
		{"3.9", 3},
		{"", 0},
		{"abc", 0},
		{"-1", -1},
	}

	for _, tt := range tests {
		if got := parseIntCell(tt.in); got != tt.want {
			t.Errorf("parseIntCell(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
