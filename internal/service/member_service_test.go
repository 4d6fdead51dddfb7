package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skhan-ssq/studianclass-dashboard/internal/dataset"
	"github.com/skhan-ssq/studianclass-dashboard/internal/models"
)

func newMemberService(store *dataset.Store) *memberService {
	svc := NewMemberService(store, testLogger()).(*memberService)
	svc.now = fixedNow
	return svc
}

func TestMemberNicknames(t *testing.T) {
	svc := newMemberService(testStore())

	names := svc.Nicknames(context.Background(), "2509기초")
	require.Equal(t, []string{"가은"}, names)

	require.Empty(t, svc.Nicknames(context.Background(), "0000없음"))
}

func TestMemberProgressSeries(t *testing.T) {
	svc := newMemberService(testStore())

	points := svc.ProgressSeries(context.Background(), "2509기초", "가은")
	require.Len(t, points, 2)
	require.Equal(t, "2025-09-15", points[0].Date)
	require.Equal(t, "09/15(월)", points[0].Label)
	require.InDelta(t, 40, points[0].Value, 1e-9)
	require.Equal(t, "2025-09-19", points[1].Date)

	require.Empty(t, svc.ProgressSeries(context.Background(), "2509기초", "없는사람"))
}

func TestMemberLeaderboard(t *testing.T) {
	store := dataset.NewStore()
	certs := make([]models.CertRecord, 0, 25)
	for i := 1; i <= 24; i++ {
		certs = append(certs, models.CertRecord{
			GroupCode:     "2509기초",
			Nickname:      nickname(i),
			UserRank:      models.NullInt{Value: 25 - i, Valid: true},
			CertDaysCount: models.NullInt{Value: i, Valid: true},
			AverageWeek:   models.NullNumber{Value: float64(i) + 0.55, Valid: true},
		})
	}
	// A member with no rank sorts behind everyone ranked.
	certs = append(certs, models.CertRecord{GroupCode: "2509기초", Name: "무순위"})
	store.Replace(&dataset.Snapshot{Certs: certs})

	svc := newMemberService(store)
	board, err := svc.Leaderboard(context.Background(), "2509기초")
	require.NoError(t, err)

	require.Equal(t, 25, board.Total)
	require.Len(t, board.Rows, 20, "leaderboard caps at the top 20")
	require.NotNil(t, board.Rows[0].Rank)
	require.Equal(t, 1, *board.Rows[0].Rank)
	require.NotNil(t, board.Rows[0].AverageWeek)
	require.InDelta(t, 24.6, *board.Rows[0].AverageWeek, 1e-9, "average rounds to one decimal")

	_, err = svc.Leaderboard(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingRoom)
}

func nickname(i int) string {
	return string(rune('가'+i)) + "씨"
}

func TestMemberCalendar(t *testing.T) {
	svc := newMemberService(testStore())

	cal, err := svc.Calendar(context.Background(), "2509기초", "가은", 2025, 9)
	require.NoError(t, err)
	require.Equal(t, 2025, cal.Year)
	require.Equal(t, 9, cal.Month)
	require.Equal(t, "2025년 9월", cal.Title)
	require.Len(t, cal.Cells, 42)
	require.Equal(t, "2025-09-01 ~ 2025-12-01 (진행중)", cal.Status)

	byDate := make(map[string]int)
	for i, cell := range cal.Cells {
		byDate[cell.Date] = i
	}

	// Activity dots from the snapshot's cert and progress rows.
	require.True(t, cal.Cells[byDate["2025-09-15"]].HasCert)
	require.True(t, cal.Cells[byDate["2025-09-15"]].HasProgress)
	require.True(t, cal.Cells[byDate["2025-09-19"]].HasProgress)
	require.False(t, cal.Cells[byDate["2025-09-19"]].HasCert)

	require.True(t, cal.Cells[byDate["2025-09-20"]].Today)

	// Adjacent-month cells are inert.
	require.False(t, cal.Cells[41].InMonth)
	require.False(t, cal.Cells[41].HasCert)
}

func TestMemberCalendarOutOfRangeAndDefaults(t *testing.T) {
	svc := newMemberService(testStore())

	// August predates the group's operating window entirely.
	cal, err := svc.Calendar(context.Background(), "2509기초", "가은", 2025, 8)
	require.NoError(t, err)
	for _, cell := range cal.Cells {
		if cell.InMonth {
			require.True(t, cell.OutOfRange)
			require.False(t, cell.HasCert)
		}
	}

	// Omitted year/month default to the group's start month.
	cal, err = svc.Calendar(context.Background(), "2509기초", "가은", 0, 0)
	require.NoError(t, err)
	require.Equal(t, 2025, cal.Year)
	require.Equal(t, 9, cal.Month)

	// Without group metadata the room code prefix decides.
	store := dataset.NewStore()
	store.Replace(&dataset.Snapshot{})
	bare := newMemberService(store)
	cal, err = bare.Calendar(context.Background(), "2311영어", "가은", 0, 0)
	require.NoError(t, err)
	require.Equal(t, 2023, cal.Year)
	require.Equal(t, 11, cal.Month)
	require.Empty(t, cal.Status, "no metadata, no status line")

	_, err = svc.Calendar(context.Background(), "2509기초", "가은", 2025, 13)
	require.ErrorIs(t, err, ErrInvalidMonth)

	_, err = svc.Calendar(context.Background(), "", "가은", 2025, 9)
	require.ErrorIs(t, err, ErrMissingRoom)
}
