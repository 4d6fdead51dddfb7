// Package stats derives the cohort metrics shown on the dashboard. Every
// function is pure over the in-memory row collections; none mutates input.
package stats

import (
	"sort"
	"strings"

	"github.com/skhan-ssq/studianclass-dashboard/internal/dateutil"
	"github.com/skhan-ssq/studianclass-dashboard/internal/models"
)

// DefaultMinWeeklyCerts is the qualification threshold for the weekly cert
// chart when the caller does not supply one.
const DefaultMinWeeklyCerts = 3

// MinWeeklyImprovement is the progress delta, in percentage points, a user
// must gain within one window to count as improved.
const MinWeeklyImprovement = 1.0

// WeeklyCount is one labeled point of a weekly chart series.
type WeeklyCount struct {
	Label string
	Count int
}

// Growth carries a user's latest progress value and the clamped gain over the
// evaluated period. Regressions report a gain of zero, never a negative.
type Growth struct {
	Current float64
	Growth  float64
}

// TotalUsersFromStart reports the cohort size across all groups together with
// the earliest "YY년 MM월" period encoded in the group codes. One CertRecord
// row is one user by construction of that dataset.
func TotalUsersFromStart(certs []models.CertRecord) (int, string) {
	if len(certs) == 0 {
		return 0, ""
	}

	start := ""
	for _, r := range certs {
		label, ok := dateutil.PeriodLabel(r.GroupCode)
		if !ok {
			continue
		}
		// Lexicographic order of zero-padded YY년 MM월 labels matches
		// calendar order.
		if start == "" || label < start {
			start = label
		}
	}
	return len(certs), start
}

// ActiveGroupUsers counts cohort members belonging to groups currently
// flagged active.
func ActiveGroupUsers(certs []models.CertRecord, groups []models.GroupMeta) int {
	if len(certs) == 0 || len(groups) == 0 {
		return 0
	}

	active := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if g.Active() {
			active[g.GroupCode] = struct{}{}
		}
	}

	count := 0
	for _, r := range certs {
		if _, ok := active[r.GroupCode]; ok {
			count++
		}
	}
	return count
}

// WeeklyCertCounts counts, for each window, the users whose certifications
// within that window sum to at least minCerts. Output order follows the
// window order.
func WeeklyCertCounts(daily []models.CertDailyRecord, windows []dateutil.WeekWindow, minCerts int) []WeeklyCount {
	if minCerts <= 0 {
		minCerts = DefaultMinWeeklyCerts
	}

	counts := make([]WeeklyCount, 0, len(windows))
	for _, window := range windows {
		totals := make(map[models.UserKey]float64)
		for _, r := range daily {
			if window.Contains(r.CertDate) {
				totals[r.Key()] += r.CertCount.Float64()
			}
		}

		qualified := 0
		for _, total := range totals {
			if total >= float64(minCerts) {
				qualified++
			}
		}
		counts = append(counts, WeeklyCount{Label: window.Label, Count: qualified})
	}
	return counts
}

// WeeklyProgressCounts counts, for each window, the users whose progress grew
// by at least MinWeeklyImprovement within that window. A user needs two
// in-window samples to be evaluated at all: growth is a within-window signal,
// never credited from data preceding the window.
func WeeklyProgressCounts(progress []models.ProgressRecord, windows []dateutil.WeekWindow) []WeeklyCount {
	byUser := make(map[models.UserKey][]models.ProgressRecord)
	for _, r := range progress {
		key := models.UserKey{GroupCode: r.GroupCode, DisplayName: strings.TrimSpace(r.Nickname)}
		byUser[key] = append(byUser[key], r)
	}

	counts := make([]WeeklyCount, 0, len(windows))
	for _, window := range windows {
		improved := 0
		for _, rows := range byUser {
			inWindow := make([]models.ProgressRecord, 0, len(rows))
			for _, r := range rows {
				if window.Contains(r.ProgressDate) {
					inWindow = append(inWindow, r)
				}
			}
			if len(inWindow) < 2 {
				continue
			}
			sortByProgressDate(inWindow)
			delta := inWindow[len(inWindow)-1].Progress.Float64() - inWindow[0].Progress.Float64()
			if delta >= MinWeeklyImprovement {
				improved++
			}
		}
		counts = append(counts, WeeklyCount{Label: window.Label, Count: improved})
	}
	return counts
}

// FourWeekAvgCerts computes a user's weekly certification rate over the
// trailing 28 days, shortened to the group's start date when the group is
// younger than the window. The divisor is the elapsed day count clamped to
// 28; a zero-day span yields 0, never a division error.
func FourWeekAvgCerts(daily []models.CertDailyRecord, groups []models.GroupMeta, groupCode, displayName string, today dateutil.Date) float64 {
	nominal := today.AddDays(-dateutil.DefaultLookbackDays)
	start := dateutil.EffectiveStart(nominal, groupStartDate(groups, groupCode))

	total := sumCerts(daily, groupCode, displayName, start.String(), today.String())

	days := today.DaysSince(start)
	if days > dateutil.DefaultLookbackDays {
		days = dateutil.DefaultLookbackDays
	}
	if days <= 0 {
		return 0
	}
	return total / float64(days) * 7
}

// PeriodAvgCerts computes a user's average certifications per week over an
// explicit period. Unlike FourWeekAvgCerts this divides by the literal
// requested span in weeks; the two normalization policies are intentionally
// distinct.
func PeriodAvgCerts(daily []models.CertDailyRecord, groupCode, displayName, start, end string) float64 {
	startDate, startOK := dateutil.Parse(start)
	endDate, endOK := dateutil.Parse(end)
	if !startOK || !endOK {
		return 0
	}

	total := sumCerts(daily, groupCode, displayName, start, end)

	days := endDate.DaysSince(startDate) + 1
	if days <= 0 {
		return 0
	}
	return total / (float64(days) / 7)
}

// FourWeekProgressGrowth reports a user's current progress and the gain since
// the effective start of the trailing 28-day window. The baseline is the
// first sample on or after the effective start; when none exists the current
// value is still reported with zero growth.
func FourWeekProgressGrowth(progress []models.ProgressRecord, groups []models.GroupMeta, groupCode, nickname string, today dateutil.Date) Growth {
	rows := userProgress(progress, groupCode, nickname)
	if len(rows) == 0 {
		return Growth{}
	}
	sortByProgressDate(rows)

	current := rows[len(rows)-1].Progress.Float64()

	nominal := today.AddDays(-dateutil.DefaultLookbackDays)
	start := dateutil.EffectiveStart(nominal, groupStartDate(groups, groupCode)).String()

	baseline := -1.0
	for _, r := range rows {
		if r.ProgressDate >= start {
			baseline = r.Progress.Float64()
			break
		}
	}
	if baseline < 0 {
		return Growth{Current: current}
	}

	return Growth{Current: current, Growth: clampGain(current - baseline)}
}

// PeriodProgressGrowth reports growth strictly within [start, end]: it needs
// at least two samples inside the period and compares the last against the
// first. Group metadata never overrides the requested boundary here.
func PeriodProgressGrowth(progress []models.ProgressRecord, groupCode, nickname, start, end string) Growth {
	rows := userProgress(progress, groupCode, nickname)
	inRange := rows[:0:0]
	for _, r := range rows {
		if r.ProgressDate >= start && r.ProgressDate <= end {
			inRange = append(inRange, r)
		}
	}
	if len(inRange) < 2 {
		return Growth{}
	}
	sortByProgressDate(inRange)

	first := inRange[0].Progress.Float64()
	last := inRange[len(inRange)-1].Progress.Float64()
	return Growth{Current: last, Growth: clampGain(last - first)}
}

func sumCerts(daily []models.CertDailyRecord, groupCode, displayName, start, end string) float64 {
	total := 0.0
	for _, r := range daily {
		if r.GroupCode != groupCode || r.DisplayName() != displayName {
			continue
		}
		if r.CertDate >= start && r.CertDate <= end {
			total += r.CertCount.Float64()
		}
	}
	return total
}

func userProgress(progress []models.ProgressRecord, groupCode, nickname string) []models.ProgressRecord {
	nickname = strings.TrimSpace(nickname)
	rows := make([]models.ProgressRecord, 0)
	for _, r := range progress {
		if r.GroupCode == groupCode && strings.TrimSpace(r.Nickname) == nickname {
			rows = append(rows, r)
		}
	}
	return rows
}

func sortByProgressDate(rows []models.ProgressRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ProgressDate < rows[j].ProgressDate
	})
}

func groupStartDate(groups []models.GroupMeta, groupCode string) string {
	for _, g := range groups {
		if g.GroupCode == groupCode {
			return g.StartDate
		}
	}
	return ""
}

func clampGain(delta float64) float64 {
	if delta > 0 {
		return delta
	}
	return 0
}
