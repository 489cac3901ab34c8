package dto

// IngestResult 取込 1 回分のサマリ
type IngestResult struct {
	SourceName      string `json:"source_name"`
	Classrooms      int    `json:"classrooms"`
	ScheduleEntries int    `json:"schedule_entries"`
	SkippedRows     int    `json:"skipped_rows"`
}
