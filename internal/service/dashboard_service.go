package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skhan-ssq/studianclass-dashboard/internal/dataset"
	"github.com/skhan-ssq/studianclass-dashboard/internal/dateutil"
	"github.com/skhan-ssq/studianclass-dashboard/internal/dto"
	"github.com/skhan-ssq/studianclass-dashboard/internal/stats"
)

// DashboardService aggregates the whole-cohort numbers and weekly chart
// series for the overview tab.
type DashboardService interface {
	Summary(ctx context.Context) (dto.DashboardSummaryResponse, error)
	WeeklyCerts(ctx context.Context, minCerts int) []dto.WeeklyCountPoint
	WeeklyProgress(ctx context.Context) []dto.WeeklyCountPoint
}

type dashboardService struct {
	store    *dataset.Store
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewDashboardService constructs the dashboard service. cache may be nil to
// disable summary caching.
func NewDashboardService(store *dataset.Store, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		store:    store,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
		now:      time.Now,
	}
}

func (s *dashboardService) Summary(ctx context.Context) (dto.DashboardSummaryResponse, error) {
	snap := s.store.Current()

	// Keying the cache by load time means a snapshot reload invalidates the
	// summary without explicit eviction.
	cacheKey := fmt.Sprintf("dashboard:summary:%d", snap.LoadedAt.UnixNano())

	tracer := otel.Tracer("github.com/skhan-ssq/studianclass-dashboard/internal/service/dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.summary")
	span.SetAttributes(attribute.String("dashboard.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.DashboardSummaryResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read summary cache")
			span.RecordError(err)
		}
	}

	total, startPeriod := stats.TotalUsersFromStart(snap.Certs)
	summary := dto.DashboardSummaryResponse{
		TotalUsers:       total,
		StartPeriod:      startPeriod,
		ActiveGroupUsers: stats.ActiveGroupUsers(snap.Certs, snap.Groups),
		LastUpdatedAt:    snap.GeneratedAt,
	}
	span.SetAttributes(
		attribute.Int("dashboard.total_users", summary.TotalUsers),
		attribute.Int("dashboard.active_users", summary.ActiveGroupUsers),
	)

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store summary cache")
				span.RecordError(err)
			}
		}
	}

	return summary, nil
}

func (s *dashboardService) WeeklyCerts(_ context.Context, minCerts int) []dto.WeeklyCountPoint {
	snap := s.store.Current()
	windows := dateutil.TrailingWeeks(dateutil.FromTime(s.now()))
	return toPoints(stats.WeeklyCertCounts(snap.CertDaily, windows, minCerts))
}

func (s *dashboardService) WeeklyProgress(_ context.Context) []dto.WeeklyCountPoint {
	snap := s.store.Current()
	windows := dateutil.TrailingWeeks(dateutil.FromTime(s.now()))
	return toPoints(stats.WeeklyProgressCounts(snap.Progress, windows))
}

func toPoints(counts []stats.WeeklyCount) []dto.WeeklyCountPoint {
	points := make([]dto.WeeklyCountPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, dto.WeeklyCountPoint{Label: c.Label, Count: c.Count})
	}
	return points
}
