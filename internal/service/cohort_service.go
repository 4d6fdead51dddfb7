package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/skhan-ssq/studianclass-dashboard/internal/dataset"
	"github.com/skhan-ssq/studianclass-dashboard/internal/dateutil"
	"github.com/skhan-ssq/studianclass-dashboard/internal/dto"
	"github.com/skhan-ssq/studianclass-dashboard/internal/models"
	"github.com/skhan-ssq/studianclass-dashboard/internal/query"
	"github.com/skhan-ssq/studianclass-dashboard/internal/stats"
)

// CohortService narrows the cohort by course, room, or explicit period and
// produces ranked tables over the selection.
type CohortService interface {
	Courses(ctx context.Context) []string
	Rooms(ctx context.Context, courseTitle string) []dto.RoomOption
	CertRanking(ctx context.Context, courseTitle, roomCode string) []dto.RankedCertRow
	ProgressRanking(ctx context.Context, courseTitle, roomCode string) []dto.RankedProgressRow
	PeriodCertRanking(ctx context.Context, period dto.PeriodQuery) ([]dto.RankedCertRow, error)
	PeriodProgressRanking(ctx context.Context, period dto.PeriodQuery) ([]dto.RankedProgressRow, error)
}

type cohortService struct {
	store    *dataset.Store
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

// NewCohortService constructs the cohort service.
func NewCohortService(store *dataset.Store, validate *validator.Validate, logger zerolog.Logger) CohortService {
	return &cohortService{
		store:    store,
		validate: validate,
		logger:   logger.With().Str("component", "cohort_service").Logger(),
		now:      time.Now,
	}
}

func (s *cohortService) Courses(_ context.Context) []string {
	return query.CourseTitles(s.store.Current().Progress)
}

func (s *cohortService) Rooms(_ context.Context, courseTitle string) []dto.RoomOption {
	codes := query.RoomsForCourse(s.store.Current().Progress, courseTitle)
	options := make([]dto.RoomOption, 0, len(codes))
	for _, code := range codes {
		options = append(options, dto.RoomOption{Code: code, Label: dateutil.RoomLabel(code)})
	}
	return options
}

func (s *cohortService) CertRanking(_ context.Context, courseTitle, roomCode string) []dto.RankedCertRow {
	snap := s.store.Current()
	cohort := selectCohort(snap, courseTitle, roomCode)
	ranked := stats.CertRanking(cohort, snap.CertDaily, snap.Groups, dateutil.FromTime(s.now()))
	return toCertRows(ranked)
}

func (s *cohortService) ProgressRanking(_ context.Context, courseTitle, roomCode string) []dto.RankedProgressRow {
	snap := s.store.Current()
	cohort := selectCohort(snap, courseTitle, roomCode)
	ranked := stats.ProgressRanking(cohort, snap.Progress, snap.Groups, dateutil.FromTime(s.now()))
	return toProgressRows(ranked)
}

func (s *cohortService) PeriodCertRanking(_ context.Context, period dto.PeriodQuery) ([]dto.RankedCertRow, error) {
	if err := s.checkPeriod(period); err != nil {
		return nil, err
	}
	snap := s.store.Current()
	ranked := stats.PeriodCertRanking(snap.Certs, snap.CertDaily, period.Start, period.End)
	return toCertRows(ranked), nil
}

func (s *cohortService) PeriodProgressRanking(_ context.Context, period dto.PeriodQuery) ([]dto.RankedProgressRow, error) {
	if err := s.checkPeriod(period); err != nil {
		return nil, err
	}
	snap := s.store.Current()
	ranked := stats.PeriodProgressRanking(snap.Certs, snap.Progress, period.Start, period.End)
	return toProgressRows(ranked), nil
}

func (s *cohortService) checkPeriod(period dto.PeriodQuery) error {
	if err := s.validate.Struct(period); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}
	if period.Start > period.End {
		return fmt.Errorf("%w: start date is after end date", ErrInvalidPeriod)
	}
	return nil
}

func selectCohort(snap *dataset.Snapshot, courseTitle, roomCode string) []models.CertRecord {
	if roomCode != "" {
		return query.CertsForRoom(snap.Certs, roomCode)
	}
	return query.CertsForCourse(snap.Certs, snap.Progress, courseTitle)
}

func toCertRows(ranked []stats.RankedCert) []dto.RankedCertRow {
	rows := make([]dto.RankedCertRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, dto.RankedCertRow{
			GroupCode: r.GroupCode,
			RoomLabel: dateutil.RoomLabel(r.GroupCode),
			Nickname:  r.DisplayName,
			AvgCerts:  round1(r.AvgCerts),
		})
	}
	return rows
}

func toProgressRows(ranked []stats.RankedGrowth) []dto.RankedProgressRow {
	rows := make([]dto.RankedProgressRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, dto.RankedProgressRow{
			GroupCode: r.GroupCode,
			RoomLabel: dateutil.RoomLabel(r.GroupCode),
			Nickname:  r.DisplayName,
			Current:   round1(r.Current),
			Growth:    round1(r.Growth),
		})
	}
	return rows
}
