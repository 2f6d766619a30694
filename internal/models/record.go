package models

// TimingRecord is one stopwatch session against a project.
type TimingRecord struct {
	ID          string `json:"id,omitempty"`
	ProjectName string `json:"project_name"`
	StartTime   string `json:"start_time"` // YYYY-MM-DD HH:MM:SS
	StopTime    string `json:"stop_time"`  // YYYY-MM-DD HH:MM:SS
	OverallTime string `json:"overall_time"` // hh:mm:ss
}

// CompletedRecord archives a finished project with its final cumulative total.
type CompletedRecord struct {
	ProjectName   string `json:"project_name"`
	TotalTime     string `json:"total_time"`     // hh:mm:ss
	CompletedDate string `json:"completed_date"` // YYYY-MM-DD
}

// IsPlaceholder reports whether the record is the single empty row kept to
// preserve column headers when the Timing table has no sessions.
func (r TimingRecord) IsPlaceholder() bool {
	return r.ProjectName == "" && r.StartTime == "" && r.StopTime == "" && r.OverallTime == ""
}
