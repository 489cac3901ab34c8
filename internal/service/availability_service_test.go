package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/csko24143-droid/nust-room-search/config"
	"github.com/csko24143-droid/nust-room-search/internal/dto"
	"github.com/csko24143-droid/nust-room-search/internal/model"
)

var testActiveTerms = []string{"後期", "年間", "後期隔週", "年間隔週"}

func newTestAvailabilityService(store *mockStore) AvailabilityService {
	cfg := &config.TimetableConfig{
		ActiveTerms: testActiveTerms,
		CacheTTL:    time.Minute,
	}
	return NewAvailabilityService(cfg, newMockRepo(store), nil, zap.NewNop())
}

func testRooms() []model.Classroom {
	return []model.Classroom{
		{Name: "1021", Building: model.BuildingMain},
		{Name: "1132", Building: model.BuildingMain},
		{Name: "S101", Building: model.BuildingTower},
		{Name: "S205", Building: model.BuildingTower},
	}
}

func TestQuery_ExcludesOccupiedRooms(t *testing.T) {
	store := &mockStore{
		classrooms: testRooms(),
		entries: []model.ScheduleEntry{
			{Day: "月", Period: 1, ClassroomName: "S101", Term: "後期"},
			{Day: "月", Period: 2, ClassroomName: "S205", Term: "後期"}, // 別時限は無関係
		},
	}
	svc := newTestAvailabilityService(store)

	resp, err := svc.Query(context.Background(), &dto.AvailabilityRequest{Day: "月", Period: 1})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if resp.Count != 3 {
		t.Errorf("空き教室数 = %d, want 3", resp.Count)
	}
	for _, room := range resp.Rooms {
		if room.Name == "S101" {
			t.Error("開講中の履修期で占有されている S101 が空き扱いになっている")
		}
	}
	if resp.Building != dto.BuildingFilterAll {
		t.Errorf("フィルタ未指定は all として返すべき: got %q", resp.Building)
	}
}

func TestQuery_InactiveTermDoesNotOccupy(t *testing.T) {
	store := &mockStore{
		classrooms: testRooms(),
		entries: []model.ScheduleEntry{
			{Day: "月", Period: 1, ClassroomName: "S101", Term: "前期"}, // 開講外
		},
	}
	svc := newTestAvailabilityService(store)

	resp, err := svc.Query(context.Background(), &dto.AvailabilityRequest{Day: "月", Period: 1})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if resp.Count != 4 {
		t.Errorf("開講外のコマは占有に数えないべき: count = %d, want 4", resp.Count)
	}
}

func TestQuery_EmptySlotReturnsAllRoomsOrdered(t *testing.T) {
	store := &mockStore{classrooms: testRooms()}
	svc := newTestAvailabilityService(store)

	resp, err := svc.Query(context.Background(), &dto.AvailabilityRequest{Day: "水", Period: 3})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	want := []string{"S101", "S205", "1021", "1132"}
	if len(resp.Rooms) != len(want) {
		t.Fatalf("空き教室数 = %d, want %d", len(resp.Rooms), len(want))
	}
	for i, name := range want {
		if resp.Rooms[i].Name != name {
			t.Errorf("並び順[%d] = %q, want %q (タワースコラ先頭・校舎内は名前順)", i, resp.Rooms[i].Name, name)
		}
	}
}

func TestQuery_BuildingFilter(t *testing.T) {
	store := &mockStore{classrooms: testRooms()}
	svc := newTestAvailabilityService(store)

	tests := []struct {
		filter string
		want   []string
	}{
		{dto.BuildingFilterTower, []string{"S101", "S205"}},
		{dto.BuildingFilterMain, []string{"1021", "1132"}},
		{dto.BuildingFilterAll, []string{"S101", "S205", "1021", "1132"}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			resp, err := svc.Query(context.Background(), &dto.AvailabilityRequest{
				Day: "月", Period: 1, Building: tt.filter,
			})
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if len(resp.Rooms) != len(tt.want) {
				t.Fatalf("空き教室数 = %d, want %d", len(resp.Rooms), len(tt.want))
			}
			for i, name := range tt.want {
				if resp.Rooms[i].Name != name {
					t.Errorf("rooms[%d] = %q, want %q", i, resp.Rooms[i].Name, name)
				}
			}
		})
	}
}

func TestQuery_Partition(t *testing.T) {
	// 空き集合と占有集合は教室マスタを重複なく分割する
	store := &mockStore{
		classrooms: testRooms(),
		entries: []model.ScheduleEntry{
			{Day: "金", Period: 5, ClassroomName: "S101", Term: "年間"},
			{Day: "金", Period: 5, ClassroomName: "1021", Term: "後期隔週"},
			{Day: "金", Period: 5, ClassroomName: "1132", Term: "前期"}, // 開講外なので空き
		},
	}
	svc := newTestAvailabilityService(store)

	resp, err := svc.Query(context.Background(), &dto.AvailabilityRequest{Day: "金", Period: 5})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	free := make(map[string]bool)
	for _, room := range resp.Rooms {
		if free[room.Name] {
			t.Errorf("空き教室に重複がある: %q", room.Name)
		}
		free[room.Name] = true
	}

	if free["S101"] || free["1021"] {
		t.Error("占有中の教室が空き集合に混入している")
	}
	if !free["1132"] || !free["S205"] {
		t.Error("空いている教室が空き集合から漏れている")
	}
	if resp.Count != len(resp.Rooms) {
		t.Errorf("count = %d と rooms の件数 %d が一致しない", resp.Count, len(resp.Rooms))
	}
}

func TestDefaultQuery(t *testing.T) {
	svc := newTestAvailabilityService(&mockStore{})

	tests := []struct {
		name       string
		now        time.Time
		wantDay    string
		wantPeriod int
	}{
		{
			"JST 月曜 1 限中",
			time.Date(2026, 8, 31, 10, 0, 0, 0, jst),
			"月", 1,
		},
		{
			"時限の境界は両端を含む",
			time.Date(2026, 8, 31, 10, 30, 0, 0, jst),
			"月", 1,
		},
		{
			"UTC 入力も JST へ変換される",
			time.Date(2026, 8, 31, 5, 0, 0, 0, time.UTC), // JST 14:00 = 3 限
			"月", 3,
		},
		{
			"どの時限にも入らない時刻は 1 限に倒す",
			time.Date(2026, 9, 1, 8, 0, 0, 0, jst),
			"火", 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, period := svc.DefaultQuery(tt.now)
			if day != tt.wantDay || period != tt.wantPeriod {
				t.Errorf("DefaultQuery() = (%q, %d), want (%q, %d)", day, period, tt.wantDay, tt.wantPeriod)
			}
		})
	}
}
