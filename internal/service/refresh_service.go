package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/skhan-ssq/studianclass-dashboard/internal/dataset"
)

// RefreshResult summarises one manual snapshot reload.
type RefreshResult struct {
	ProgressRows  int       `json:"progress_rows"`
	CertRows      int       `json:"cert_rows"`
	CertDailyRows int       `json:"cert_daily_rows"`
	GroupRows     int       `json:"group_rows"`
	GeneratedAt   string    `json:"generated_at"`
	LoadedAt      time.Time `json:"loaded_at"`
}

// RefreshService re-runs the full load-and-replace sequence on demand. An
// in-flight previous load is not cancelled; the last published snapshot wins,
// which is acceptable since both describe the same source documents.
type RefreshService interface {
	Refresh(ctx context.Context) (RefreshResult, error)
}

type refreshService struct {
	loader *dataset.Loader
	store  *dataset.Store
	logger zerolog.Logger
}

// NewRefreshService constructs the refresh service.
func NewRefreshService(loader *dataset.Loader, store *dataset.Store, logger zerolog.Logger) RefreshService {
	return &refreshService{
		loader: loader,
		store:  store,
		logger: logger.With().Str("component", "refresh_service").Logger(),
	}
}

func (s *refreshService) Refresh(ctx context.Context) (RefreshResult, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("snapshot refresh failed")
		return RefreshResult{}, err
	}

	s.store.Replace(snap)

	return RefreshResult{
		ProgressRows:  len(snap.Progress),
		CertRows:      len(snap.Certs),
		CertDailyRows: len(snap.CertDaily),
		GroupRows:     len(snap.Groups),
		GeneratedAt:   snap.GeneratedAt,
		LoadedAt:      snap.LoadedAt,
	}, nil
}
