package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTruncatesTimestamps(t *testing.T) {
	d, ok := Parse("2025-09-20T14:03:00+09:00")
	require.True(t, ok)
	require.Equal(t, "2025-09-20", d.String())

	_, ok = Parse("not a date")
	require.False(t, ok)

	_, ok = Parse("")
	require.False(t, ok)
}

func TestDateArithmeticIsImmutable(t *testing.T) {
	d := New(2025, time.September, 20)
	shifted := d.AddDays(-28)

	require.Equal(t, "2025-09-20", d.String())
	require.Equal(t, "2025-08-23", shifted.String())
	require.Equal(t, 28, d.DaysSince(shifted))
	require.Equal(t, -28, shifted.DaysSince(d))
}

func TestTrailingWeeksCoverExactlyFourClosedWindows(t *testing.T) {
	today := New(2025, time.September, 20)
	windows := TrailingWeeks(today)
	require.Len(t, windows, 4)

	require.Equal(t, "3주 전", windows[0].Label)
	require.Equal(t, "이번주", windows[3].Label)
	require.Equal(t, "2025-09-20", windows[3].End)
	require.Equal(t, "2025-09-14", windows[3].Start)

	for i := 0; i < len(windows)-1; i++ {
		end, ok := Parse(windows[i].End)
		require.True(t, ok)
		next, ok := Parse(windows[i+1].Start)
		require.True(t, ok)
		require.Equal(t, 1, next.DaysSince(end), "windows must be back-to-back")
	}

	for _, w := range windows {
		start, _ := Parse(w.Start)
		end, _ := Parse(w.End)
		require.Equal(t, 6, end.DaysSince(start), "each window spans 7 days inclusive")
		require.True(t, w.Contains(w.Start))
		require.True(t, w.Contains(w.End))
	}
}

func TestEffectiveStartPrefersLaterGroupStart(t *testing.T) {
	nominal := New(2025, time.August, 23)

	require.Equal(t, "2025-09-01", EffectiveStart(nominal, "2025-09-01").String())
	require.Equal(t, "2025-08-23", EffectiveStart(nominal, "2025-07-01").String())
	require.Equal(t, "2025-08-23", EffectiveStart(nominal, "").String())
	require.Equal(t, "2025-08-23", EffectiveStart(nominal, "garbage").String())
}

func TestPeriodAndRoomLabels(t *testing.T) {
	label, ok := PeriodLabel("2509기초")
	require.True(t, ok)
	require.Equal(t, "25년 09월", label)

	_, ok = PeriodLabel("abc")
	require.False(t, ok)

	require.Equal(t, "25년 09월 기초 영어회화 100 단톡방", RoomLabel("2509기초"))
	require.Equal(t, "25년 09월 ABC 단톡방", RoomLabel("2509ABC"))
	require.Equal(t, "unparsed", RoomLabel("unparsed"))
	require.Equal(t, "", RoomLabel(""))
}

func TestFormatDateLabel(t *testing.T) {
	// 2025-09-20 is a Saturday.
	require.Equal(t, "09/20(토)", FormatDateLabel("2025-09-20"))
	require.Equal(t, "bogus", FormatDateLabel("bogus"))
}

func TestMonthGridIsMondayFirstWith42Cells(t *testing.T) {
	cells := MonthGrid(2025, time.September)
	require.Len(t, cells, 42)

	// September 2025 starts on a Monday, so the grid opens on the 1st.
	require.Equal(t, "2025-09-01", cells[0].Date.String())
	require.True(t, cells[0].InMonth)
	require.Equal(t, time.Monday, cells[0].Date.Weekday())

	// Trailing October days fill the sixth row and stay inert.
	last := cells[41]
	require.Equal(t, time.October, last.Date.Month())
	require.False(t, last.InMonth)

	inMonth := 0
	for _, c := range cells {
		if c.InMonth {
			inMonth++
		}
	}
	require.Equal(t, 30, inMonth)
}
