package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/csko24143-droid/nust-room-search/internal/model"
	"github.com/csko24143-droid/nust-room-search/internal/repository"
)

// ── 出力モジュールの業務エラー ──

var (
	ErrClassroomNotFound  = errors.New("教室が見つかりません")
	ErrExportGenerateFail = errors.New("Excel ファイルの生成に失敗しました")
)

// ExportService 出力業務インターフェース
//
// 設計メモ:
//   - Excel は bytes.Buffer で返し、Handler 層がレスポンスヘッダを付けて書き出す
//   - iCal は RFC 5545 のテキストをそのまま返す
//   - どちらも開講中の履修期（ActiveTerms）のコマだけを対象にする
type ExportService interface {
	// ExportAvailabilityBook 週間の空き教室数グリッドを Excel で返す
	ExportAvailabilityBook(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportClassroomCalendar 教室の週間コマを iCalendar で返す
	ExportClassroomCalendar(ctx context.Context, name string) (string, string, error)
}

type exportService struct {
	repo        *repository.Repository
	activeTerms []string
	logger      *zap.Logger
}

// NewExportService ExportService を生成する
func NewExportService(repo *repository.Repository, activeTerms []string, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, activeTerms: activeTerms, logger: logger}
}

// exportDays グリッドに出す曜日（日曜は開講がないため出さない）
var exportDays = []string{"月", "火", "水", "木", "金", "土"}

func (s *exportService) ExportAvailabilityBook(ctx context.Context) (*bytes.Buffer, string, error) {
	rooms, err := s.repo.Classroom.List(ctx, "")
	if err != nil {
		s.logger.Error("教室一覧の取得に失敗", zap.Error(err))
		return nil, "", err
	}
	entries, err := s.repo.ScheduleEntry.ListByTerms(ctx, s.activeTerms)
	if err != nil {
		s.logger.Error("授業コマの取得に失敗", zap.Error(err))
		return nil, "", err
	}

	// スロット別の占有教室名集合: "曜日:時限" → {教室名}
	occupied := make(map[string]map[string]bool)
	for _, e := range entries {
		if !model.ValidPeriod(e.Period) {
			continue
		}
		key := fmt.Sprintf("%s:%d", e.Day, e.Period)
		if occupied[key] == nil {
			occupied[key] = make(map[string]bool)
		}
		occupied[key][e.ClassroomName] = true
	}

	f := excelize.NewFile()
	defer f.Close()

	const gridSheet = "空き教室数"
	idx, err := f.NewSheet(gridSheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(gridSheet, "A", "A", 8)
	f.SetColWidth(gridSheet, "B", "B", 14)
	for i := range exportDays {
		col, _ := excelize.ColumnNumberToName(3 + i)
		f.SetColWidth(gridSheet, col, col, 10)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表頭: | 時限 | 時間 | 月 … 土 |
	f.SetCellValue(gridSheet, "A1", "時限")
	f.SetCellValue(gridSheet, "B1", "時間")
	for i, day := range exportDays {
		col, _ := excelize.ColumnNumberToName(3 + i)
		f.SetCellValue(gridSheet, col+"1", day)
	}
	lastCol, _ := excelize.ColumnNumberToName(2 + len(exportDays))
	f.SetCellStyle(gridSheet, "A1", lastCol+"1", headerStyle)

	// データ行: 各時限 × 各曜日の空き教室数
	row := 2
	for p := model.MinPeriod; p <= model.MaxPeriod; p++ {
		w := model.PeriodTable[p]
		f.SetCellValue(gridSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%d限", p))
		f.SetCellValue(gridSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%s-%s", w.Start, w.End))
		for i, day := range exportDays {
			freeCount := 0
			slot := occupied[fmt.Sprintf("%s:%d", day, p)]
			for _, room := range rooms {
				if !slot[room.Name] {
					freeCount++
				}
			}
			col, _ := excelize.ColumnNumberToName(3 + i)
			f.SetCellValue(gridSheet, fmt.Sprintf("%s%d", col, row), freeCount)
		}
		row++
	}

	// 教室マスタのシートも添える
	const roomSheet = "教室マスタ"
	if _, err := f.NewSheet(roomSheet); err == nil {
		f.SetColWidth(roomSheet, "A", "A", 14)
		f.SetColWidth(roomSheet, "B", "B", 16)
		f.SetCellValue(roomSheet, "A1", "教室名")
		f.SetCellValue(roomSheet, "B1", "校舎")
		f.SetCellValue(roomSheet, "C1", "収容数")
		f.SetCellStyle(roomSheet, "A1", "C1", headerStyle)
		for i, room := range rooms {
			r := i + 2
			f.SetCellValue(roomSheet, fmt.Sprintf("A%d", r), room.Name)
			f.SetCellValue(roomSheet, fmt.Sprintf("B%d", r), room.Building)
			f.SetCellValue(roomSheet, fmt.Sprintf("C%d", r), room.Capacity)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("Excel の書き出しに失敗", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, "空き教室一覧.xlsx", nil
}

// icalByDay 曜日ラベル → RRULE の BYDAY 値
var icalByDay = map[string]string{
	"月": "MO", "火": "TU", "水": "WE", "木": "TH",
	"金": "FR", "土": "SA", "日": "SU",
}

func (s *exportService) ExportClassroomCalendar(ctx context.Context, name string) (string, string, error) {
	room, err := s.repo.Classroom.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrClassroomNotFound
		}
		s.logger.Error("教室の取得に失敗", zap.String("name", name), zap.Error(err))
		return "", "", err
	}

	entries, err := s.repo.ScheduleEntry.ListByClassroom(ctx, room.Name, s.activeTerms)
	if err != nil {
		s.logger.Error("授業コマの取得に失敗", zap.String("name", name), zap.Error(err))
		return "", "", err
	}

	now := time.Now().In(jst)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//nust-room-search//JP")

	for i, e := range entries {
		window, ok := model.PeriodTable[e.Period]
		if !ok {
			continue // 時限表にない時限は出力しない
		}
		byDay, ok := icalByDay[e.Day]
		if !ok {
			continue
		}

		start := nextOccurrence(now, e.Day, window.Start)
		end := nextOccurrence(now, e.Day, window.End)

		summary := "授業"
		if e.SubjectCode != "" {
			summary = fmt.Sprintf("授業 %s", e.SubjectCode)
		}

		evt := cal.AddEvent(fmt.Sprintf("%s-%s-%d-%d@nust-room-search", room.Name, e.Day, e.Period, i))
		evt.SetCreatedTime(now)
		evt.SetDtStampTime(now)
		evt.SetStartAt(start)
		evt.SetEndAt(end)
		evt.SetSummary(summary)
		evt.SetLocation(room.Name)
		evt.SetDescription(fmt.Sprintf("履修期: %s / %d限", e.Term, e.Period))
		evt.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", byDay))
	}

	filename := fmt.Sprintf("%s.ics", room.Name)
	return cal.Serialize(), filename, nil
}

// nextOccurrence now 以降で最初に訪れる指定曜日の hh:mm（JST）
func nextOccurrence(now time.Time, day, hhmm string) time.Time {
	target := 0
	for i, d := range model.Weekdays {
		if d == day {
			target = i
			break
		}
	}
	current := (int(now.Weekday()) + 6) % 7 // 月曜始まりへ変換
	delta := (target - current + 7) % 7

	parts := strings.SplitN(hhmm, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute := 0
	if len(parts) == 2 {
		minute, _ = strconv.Atoi(parts[1])
	}

	d := now.AddDate(0, 0, delta)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, jst)
}
