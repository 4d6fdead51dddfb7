package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skhan-ssq/studianclass-dashboard/internal/dateutil"
	"github.com/skhan-ssq/studianclass-dashboard/internal/models"
)

func daily(code, nickname, date string, count float64) models.CertDailyRecord {
	return models.CertDailyRecord{GroupCode: code, Nickname: nickname, CertDate: date, CertCount: models.Number(count)}
}

func progress(code, nickname, date string, value float64) models.ProgressRecord {
	return models.ProgressRecord{GroupCode: code, Nickname: nickname, ProgressDate: date, Progress: models.Number(value)}
}

func activeGroup(code, start, end string) models.GroupMeta {
	return models.GroupMeta{
		GroupCode: code,
		StartDate: start,
		EndDate:   end,
		IsActive:  models.NullInt{Value: 1, Valid: true},
	}
}

func TestTotalUsersFromStart(t *testing.T) {
	count, period := TotalUsersFromStart(nil)
	require.Zero(t, count)
	require.Empty(t, period)

	certs := []models.CertRecord{
		{GroupCode: "2509기초", Nickname: "가은"},
		{GroupCode: "2411영어", Nickname: "나훈"},
		{GroupCode: "2503구동", Nickname: "다미"},
		{GroupCode: "nonsense", Nickname: "라준"},
	}
	count, period = TotalUsersFromStart(certs)
	require.Equal(t, 4, count, "one cert row is one user")
	require.Equal(t, "24년 11월", period)
}

func TestActiveGroupUsers(t *testing.T) {
	certs := []models.CertRecord{
		{GroupCode: "2509기초"},
		{GroupCode: "2509기초"},
		{GroupCode: "2405영어"},
	}
	groups := []models.GroupMeta{
		activeGroup("2509기초", "2025-09-01", "2025-12-01"),
		{GroupCode: "2405영어", IsActive: models.NullInt{Value: 0, Valid: true}},
	}

	require.Equal(t, 2, ActiveGroupUsers(certs, groups))
	require.Zero(t, ActiveGroupUsers(nil, groups))
	require.Zero(t, ActiveGroupUsers(certs, nil))
}

func TestWeeklyCertCountsThreshold(t *testing.T) {
	today := dateutil.New(2025, time.September, 20)
	windows := dateutil.TrailingWeeks(today)

	rows := []models.CertDailyRecord{
		// 2+2 on two days inside this week: qualifies at threshold 3.
		daily("2509기초", "가은", "2025-09-15", 2),
		daily("2509기초", "가은", "2025-09-17", 2),
		// 1+1 in the same week: does not qualify.
		daily("2509기초", "나훈", "2025-09-15", 1),
		daily("2509기초", "나훈", "2025-09-16", 1),
		// Identity fallback: nickname empty, name carries the identity.
		{GroupCode: "2509기초", Name: "다미", CertDate: "2025-09-02", CertCount: models.Number(5)},
	}

	counts := WeeklyCertCounts(rows, windows, 3)
	require.Len(t, counts, 4)
	require.Equal(t, "3주 전", counts[0].Label)
	require.Equal(t, "이번주", counts[3].Label)

	require.Equal(t, 1, counts[3].Count)
	require.Equal(t, 1, counts[1].Count, "fallback-named user qualifies two weeks back")
	require.Zero(t, counts[0].Count)
}

func TestWeeklyCertCountsDefaultsThreshold(t *testing.T) {
	today := dateutil.New(2025, time.September, 20)
	windows := dateutil.TrailingWeeks(today)

	rows := []models.CertDailyRecord{
		daily("2509기초", "가은", "2025-09-18", 2),
	}

	counts := WeeklyCertCounts(rows, windows, 0)
	require.Zero(t, counts[3].Count, "threshold falls back to 3")
}

func TestWeeklyProgressCountsIsWithinWindowOnly(t *testing.T) {
	today := dateutil.New(2025, time.September, 20)
	windows := dateutil.TrailingWeeks(today)

	rows := []models.ProgressRecord{
		// Gains 5 points inside this week, samples arrive unsorted.
		progress("2509기초", "가은", "2025-09-19", 45),
		progress("2509기초", "가은", "2025-09-15", 40),
		// Huge all-time gain but only one sample inside any window.
		progress("2509기초", "나훈", "2025-06-01", 10),
		progress("2509기초", "나훈", "2025-09-16", 90),
		// Two samples but below the 1.0 point floor.
		progress("2509기초", "다미", "2025-09-15", 30),
		progress("2509기초", "다미", "2025-09-18", 30.5),
	}

	counts := WeeklyProgressCounts(rows, windows)
	require.Equal(t, 1, counts[3].Count)
	require.Zero(t, counts[0].Count+counts[1].Count+counts[2].Count)
}

func TestFourWeekAvgCertsUsesGroupStart(t *testing.T) {
	today := dateutil.New(2025, time.September, 20)
	groups := []models.GroupMeta{activeGroup("2509ABC", "2025-09-01", "2025-12-01")}

	// 10 certs spread over the first 14 days after the group opened.
	rows := []models.CertDailyRecord{
		daily("2509ABC", "가은", "2025-09-01", 3),
		daily("2509ABC", "가은", "2025-09-05", 3),
		daily("2509ABC", "가은", "2025-09-10", 2),
		daily("2509ABC", "가은", "2025-09-14", 2),
	}

	// Nominal boundary 2025-08-23 predates the group start, so the divisor is
	// the 19 days elapsed since 2025-09-01.
	avg := FourWeekAvgCerts(rows, groups, "2509ABC", "가은", today)
	require.InDelta(t, 10.0/19.0*7, avg, 1e-9)
}

func TestFourWeekAvgCertsClampsAndNeverDividesByZero(t *testing.T) {
	today := dateutil.New(2025, time.September, 20)

	// No group metadata: full 28-day window.
	rows := []models.CertDailyRecord{daily("2509ABC", "가은", "2025-09-01", 14)}
	require.InDelta(t, 14.0/28.0*7, FourWeekAvgCerts(rows, nil, "2509ABC", "가은", today), 1e-9)

	// Group opened today: zero elapsed days yields zero, not NaN or Inf.
	groups := []models.GroupMeta{activeGroup("2509ABC", "2025-09-20", "2025-12-01")}
	require.Zero(t, FourWeekAvgCerts(rows, groups, "2509ABC", "가은", today))

	// No matching records at all.
	require.Zero(t, FourWeekAvgCerts(nil, nil, "2509ABC", "가은", today))
}

func TestPeriodAvgCertsUsesExactSpan(t *testing.T) {
	rows := []models.CertDailyRecord{
		daily("2509ABC", "가은", "2025-09-03", 4),
		daily("2509ABC", "가은", "2025-09-10", 3),
		// Outside the requested period.
		daily("2509ABC", "가은", "2025-08-01", 9),
	}

	// 14 inclusive days = 2 weeks; 7 certs over 2 weeks.
	avg := PeriodAvgCerts(rows, "2509ABC", "가은", "2025-09-01", "2025-09-14")
	require.InDelta(t, 3.5, avg, 1e-9)

	require.Zero(t, PeriodAvgCerts(rows, "2509ABC", "가은", "bogus", "2025-09-14"))
}

func TestFourWeekProgressGrowth(t *testing.T) {
	today := dateutil.New(2025, time.September, 20)
	groups := []models.GroupMeta{activeGroup("2509ABC", "2025-09-01", "2025-12-01")}

	rows := []models.ProgressRecord{
		progress("2509ABC", "가은", "2025-09-18", 42),
		progress("2509ABC", "가은", "2025-09-02", 30),
		progress("2509ABC", "가은", "2025-08-01", 5),
	}

	g := FourWeekProgressGrowth(rows, groups, "2509ABC", "가은", today)
	require.InDelta(t, 42, g.Current, 1e-9)
	require.InDelta(t, 12, g.Growth, 1e-9)

	// Regression clamps to zero rather than reporting a loss.
	declining := []models.ProgressRecord{
		progress("2509ABC", "나훈", "2025-09-02", 50),
		progress("2509ABC", "나훈", "2025-09-18", 40),
	}
	g = FourWeekProgressGrowth(declining, groups, "2509ABC", "나훈", today)
	require.InDelta(t, 40, g.Current, 1e-9)
	require.Zero(t, g.Growth)

	// All samples precede the effective start: current still reported.
	stale := []models.ProgressRecord{progress("2509ABC", "다미", "2025-08-01", 77)}
	g = FourWeekProgressGrowth(stale, groups, "2509ABC", "다미", today)
	require.InDelta(t, 77, g.Current, 1e-9)
	require.Zero(t, g.Growth)

	require.Zero(t, FourWeekProgressGrowth(nil, groups, "2509ABC", "라준", today).Current)
}

func TestPeriodProgressGrowthNeedsTwoSamplesInRange(t *testing.T) {
	rows := []models.ProgressRecord{
		progress("2509ABC", "가은", "2025-09-05", 20),
		progress("2509ABC", "가은", "2025-09-12", 35),
		progress("2509ABC", "가은", "2025-08-01", 1),
	}

	g := PeriodProgressGrowth(rows, "2509ABC", "가은", "2025-09-01", "2025-09-14")
	require.InDelta(t, 35, g.Current, 1e-9)
	require.InDelta(t, 15, g.Growth, 1e-9)

	// Only one sample inside the period.
	g = PeriodProgressGrowth(rows, "2509ABC", "가은", "2025-09-10", "2025-09-14")
	require.Zero(t, g.Current)
	require.Zero(t, g.Growth)
}

func TestRankingsExcludeZeroAndSortDescending(t *testing.T) {
	today := dateutil.New(2025, time.September, 20)
	cohort := []models.CertRecord{
		{GroupCode: "2509ABC", Nickname: "가은"},
		{GroupCode: "2509ABC", Nickname: "나훈"},
		{GroupCode: "2509ABC", Nickname: "쉬는사람"},
	}
	rows := []models.CertDailyRecord{
		daily("2509ABC", "가은", "2025-09-10", 4),
		daily("2509ABC", "나훈", "2025-09-10", 9),
	}

	ranked := CertRanking(cohort, rows, nil, today)
	require.Len(t, ranked, 2)
	require.Equal(t, "나훈", ranked[0].DisplayName)
	require.Equal(t, "가은", ranked[1].DisplayName)

	progressRows := []models.ProgressRecord{
		progress("2509ABC", "가은", "2025-09-01", 10),
		progress("2509ABC", "가은", "2025-09-18", 20),
		progress("2509ABC", "나훈", "2025-09-01", 50),
		progress("2509ABC", "나훈", "2025-09-18", 45),
	}
	growthRanked := ProgressRanking(cohort, progressRows, nil, today)
	require.Len(t, growthRanked, 1, "regressions and absentees are not shown")
	require.Equal(t, "가은", growthRanked[0].DisplayName)

	periodRanked := PeriodCertRanking(cohort, rows, "2025-09-01", "2025-09-14")
	require.Len(t, periodRanked, 2)
	require.Equal(t, "나훈", periodRanked[0].DisplayName)

	periodGrowth := PeriodProgressRanking(cohort, progressRows, "2025-09-01", "2025-09-30")
	require.Len(t, periodGrowth, 1)
	require.Equal(t, "가은", periodGrowth[0].DisplayName)
}
