package dto

// ProgressPoint is one sample of a member's progress line chart.
type ProgressPoint struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// LeaderboardRow is one entry of a room's certification leaderboard. Rank,
// CertDaysCount and AverageWeek render as null when the source row carried no
// value, matching the blank cells of the original table.
type LeaderboardRow struct {
	Rank          *int     `json:"rank"`
	Nickname      string   `json:"nickname"`
	CertDaysCount *int     `json:"cert_days_count"`
	AverageWeek   *float64 `json:"average_week"`
}

// LeaderboardResponse carries the top entries plus the room's total
// member count.
type LeaderboardResponse struct {
	RoomLabel string           `json:"room_label"`
	Total     int              `json:"total"`
	Rows      []LeaderboardRow `json:"rows"`
}

// CalendarCell is one cell of the 42-cell activity calendar. Cells outside
// the displayed month are inert and never carry activity indicators.
type CalendarCell struct {
	Date        string `json:"date"`
	Day         int    `json:"day"`
	InMonth     bool   `json:"in_month"`
	Today       bool   `json:"today"`
	OutOfRange  bool   `json:"out_of_range"`
	HasCert     bool   `json:"has_cert"`
	HasProgress bool   `json:"has_progress"`
}

// CalendarResponse is one month of a member's activity calendar.
type CalendarResponse struct {
	Year   int            `json:"year"`
	Month  int            `json:"month"`
	Title  string         `json:"title"`
	Status string         `json:"status"`
	Cells  []CalendarCell `json:"cells"`
}
