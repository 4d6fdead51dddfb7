package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skhan-ssq/studianclass-dashboard/internal/dataset"
	"github.com/skhan-ssq/studianclass-dashboard/internal/dateutil"
	"github.com/skhan-ssq/studianclass-dashboard/internal/dto"
	"github.com/skhan-ssq/studianclass-dashboard/internal/models"
	"github.com/skhan-ssq/studianclass-dashboard/internal/query"
)

// leaderboardSize caps the room leaderboard at the top entries by rank.
const leaderboardSize = 20

// unrankedSortKey sorts members without a rank behind everyone ranked.
const unrankedSortKey = 9999

// MemberService serves the individual-lookup tab: a member's progress line,
// the room leaderboard, and the monthly activity calendar.
type MemberService interface {
	Nicknames(ctx context.Context, roomCode string) []string
	ProgressSeries(ctx context.Context, roomCode, nickname string) []dto.ProgressPoint
	Leaderboard(ctx context.Context, roomCode string) (dto.LeaderboardResponse, error)
	Calendar(ctx context.Context, roomCode, nickname string, year, month int) (dto.CalendarResponse, error)
}

type memberService struct {
	store  *dataset.Store
	logger zerolog.Logger
	now    func() time.Time
}

// NewMemberService constructs the member service.
func NewMemberService(store *dataset.Store, logger zerolog.Logger) MemberService {
	return &memberService{
		store:  store,
		logger: logger.With().Str("component", "member_service").Logger(),
		now:    time.Now,
	}
}

func (s *memberService) Nicknames(_ context.Context, roomCode string) []string {
	snap := s.store.Current()
	return query.NicknamesForRoom(snap.Progress, snap.Certs, roomCode)
}

func (s *memberService) ProgressSeries(_ context.Context, roomCode, nickname string) []dto.ProgressPoint {
	rows := query.ProgressForUser(s.store.Current().Progress, roomCode, nickname)

	points := make([]dto.ProgressPoint, 0, len(rows))
	for _, r := range rows {
		if r.ProgressDate == "" {
			continue
		}
		points = append(points, dto.ProgressPoint{
			Date:  r.ProgressDate,
			Label: dateutil.FormatDateLabel(r.ProgressDate),
			Value: round1(r.Progress.Float64()),
		})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

func (s *memberService) Leaderboard(_ context.Context, roomCode string) (dto.LeaderboardResponse, error) {
	if strings.TrimSpace(roomCode) == "" {
		return dto.LeaderboardResponse{}, ErrMissingRoom
	}

	all := query.CertsForRoom(s.store.Current().Certs, roomCode)

	ranked := append([]models.CertRecord(nil), all...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankSortKey(ranked[i]) < rankSortKey(ranked[j])
	})
	if len(ranked) > leaderboardSize {
		ranked = ranked[:leaderboardSize]
	}

	rows := make([]dto.LeaderboardRow, 0, len(ranked))
	for _, r := range ranked {
		row := dto.LeaderboardRow{Nickname: r.DisplayName()}
		if r.UserRank.Valid {
			rank := r.UserRank.Value
			row.Rank = &rank
		}
		if r.CertDaysCount.Valid {
			days := r.CertDaysCount.Value
			row.CertDaysCount = &days
		}
		if r.AverageWeek.Valid {
			avg := round1(r.AverageWeek.Value)
			row.AverageWeek = &avg
		}
		rows = append(rows, row)
	}

	return dto.LeaderboardResponse{
		RoomLabel: dateutil.RoomLabel(roomCode),
		Total:     len(all),
		Rows:      rows,
	}, nil
}

func (s *memberService) Calendar(_ context.Context, roomCode, nickname string, year, month int) (dto.CalendarResponse, error) {
	if strings.TrimSpace(roomCode) == "" {
		return dto.CalendarResponse{}, ErrMissingRoom
	}

	snap := s.store.Current()
	today := dateutil.FromTime(s.now())

	if year == 0 || month == 0 {
		year, month = defaultCalendarMonth(snap, roomCode, today)
	}
	if month < 1 || month > 12 {
		return dto.CalendarResponse{}, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}

	group, hasGroup := query.GroupFor(snap.Groups, roomCode)

	certDates := make(map[string]bool)
	for _, r := range query.DailyForUser(snap.CertDaily, roomCode, nickname) {
		if r.CertCount.Float64() > 0 {
			certDates[r.CertDate] = true
		}
	}
	progressDates := make(map[string]bool)
	for _, r := range query.ProgressForUser(snap.Progress, roomCode, nickname) {
		if r.Progress.Float64() > 0 {
			progressDates[r.ProgressDate] = true
		}
	}

	cells := make([]dto.CalendarCell, 0, 42)
	for _, gc := range dateutil.MonthGrid(year, time.Month(month)) {
		date := gc.Date.String()
		cell := dto.CalendarCell{
			Date:    date,
			Day:     gc.Date.Day(),
			InMonth: gc.InMonth,
		}
		if gc.InMonth {
			cell.Today = gc.Date.Equal(today)
			cell.OutOfRange = hasGroup && (date < group.StartDate || date > group.EndDate)
			if !cell.OutOfRange {
				cell.HasCert = certDates[date]
				cell.HasProgress = progressDates[date]
			}
		}
		cells = append(cells, cell)
	}

	return dto.CalendarResponse{
		Year:   year,
		Month:  month,
		Title:  fmt.Sprintf("%d년 %d월", year, month),
		Status: groupStatusLine(group, hasGroup, nickname, today),
		Cells:  cells,
	}, nil
}

// defaultCalendarMonth opens the calendar on the group's start month,
// falling back to the YYMM prefix of the room code, then to today.
func defaultCalendarMonth(snap *dataset.Snapshot, roomCode string, today dateutil.Date) (int, int) {
	if group, ok := query.GroupFor(snap.Groups, roomCode); ok {
		if start, ok := dateutil.Parse(group.StartDate); ok {
			return start.Year(), int(start.Month())
		}
	}
	if len(roomCode) >= 4 {
		var yy, mm int
		if _, err := fmt.Sscanf(roomCode[:4], "%2d%2d", &yy, &mm); err == nil && mm >= 1 && mm <= 12 {
			return 2000 + yy, mm
		}
	}
	return today.Year(), int(today.Month())
}

func groupStatusLine(group models.GroupMeta, hasGroup bool, nickname string, today dateutil.Date) string {
	if !hasGroup || strings.TrimSpace(nickname) == "" {
		return ""
	}

	status := "종료"
	if group.Active() {
		status = "진행중"
		if end, ok := dateutil.Parse(group.EndDate); ok && today.After(end) {
			status = "종료 (기간 만료)"
		}
	}
	return fmt.Sprintf("%s ~ %s (%s)", group.StartDate, group.EndDate, status)
}

func rankSortKey(r models.CertRecord) int {
	if r.UserRank.Valid {
		return r.UserRank.Value
	}
	return unrankedSortKey
}
