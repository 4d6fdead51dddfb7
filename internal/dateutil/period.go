package dateutil

import (
	"fmt"
	"regexp"
)

// DefaultLookbackDays is the nominal rolling window used by the 4-week
// statistics.
const DefaultLookbackDays = 28

// TrailingWeekCount is the number of weekly windows the dashboard charts.
const TrailingWeekCount = 4

// WeekWindow is one closed 7-day window in ISO date-string form. Start and
// End are both inclusive.
type WeekWindow struct {
	Start string
	End   string
	Label string
}

// Contains reports whether the ISO date string falls inside the window.
// Lexicographic comparison is date-correct for zero-padded ISO dates.
func (w WeekWindow) Contains(isoDate string) bool {
	return isoDate >= w.Start && isoDate <= w.End
}

// TrailingWeeks returns the four back-to-back 7-day windows ending today, in
// chronological order: 3주 전, 2주 전, 1주 전, 이번주.
func TrailingWeeks(today Date) []WeekWindow {
	windows := make([]WeekWindow, 0, TrailingWeekCount)
	for week := TrailingWeekCount - 1; week >= 0; week-- {
		label := "이번주"
		if week > 0 {
			label = fmt.Sprintf("%d주 전", week)
		}
		windows = append(windows, WeekWindow{
			Start: today.AddDays(-week*7 - 6).String(),
			End:   today.AddDays(-week * 7).String(),
			Label: label,
		})
	}
	return windows
}

// EffectiveStart resolves the start boundary for rolling statistics: a group
// cannot be credited with activity before it existed, so its start date wins
// over the nominal lookback boundary whenever it is later. groupStart may be
// empty or unparseable, in which case the nominal boundary stands.
func EffectiveStart(nominal Date, groupStart string) Date {
	start, ok := Parse(groupStart)
	if ok && start.After(nominal) {
		return start
	}
	return nominal
}

var groupCodePattern = regexp.MustCompile(`^(\d{2})(\d{2})(.*)$`)

// courseNames maps the suffix key of a group code to its course display name.
var courseNames = map[string]string{
	"기초": "기초 영어회화 100",
	"영어": "영어회화 100",
	"구동": "구동사 100",
}

// PeriodLabel extracts the "YY년 MM월" label encoded in a group code prefix.
func PeriodLabel(groupCode string) (string, bool) {
	m := groupCodePattern.FindStringSubmatch(groupCode)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("%s년 %s월", m[1], m[2]), true
}

// RoomLabel renders a group code as its human room name. Codes that do not
// carry the YYMM prefix pass through unchanged.
func RoomLabel(groupCode string) string {
	if groupCode == "" {
		return ""
	}
	m := groupCodePattern.FindStringSubmatch(groupCode)
	if m == nil || m[3] == "" {
		if m == nil {
			return groupCode
		}
		return fmt.Sprintf("%s년 %s월 단톡방", m[1], m[2])
	}
	course := m[3]
	if name, ok := courseNames[course]; ok {
		course = name
	}
	return fmt.Sprintf("%s년 %s월 %s 단톡방", m[1], m[2], course)
}

// FormatDateLabel renders an ISO date as MM/DD(요일). Invalid input passes
// through unchanged so a bad row degrades its own label, nothing more.
func FormatDateLabel(iso string) string {
	d, ok := Parse(iso)
	if !ok {
		return iso
	}
	weekdays := [...]string{"일", "월", "화", "수", "목", "금", "토"}
	return fmt.Sprintf("%02d/%02d(%s)", int(d.Month()), d.Day(), weekdays[d.Weekday()])
}
