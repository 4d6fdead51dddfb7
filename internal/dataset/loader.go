package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/skhan-ssq/studianclass-dashboard/internal/observability"
)

// Loader fetches the four snapshot documents from the static data host.
type Loader struct {
	baseURL string
	version string
	client  *http.Client
	logger  zerolog.Logger
	now     func() time.Time
}

// NewLoader constructs a loader. version is appended to every document URL as
// a cache-busting query parameter.
func NewLoader(baseURL, version string, timeout time.Duration, logger zerolog.Logger) *Loader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Loader{
		baseURL: strings.TrimRight(baseURL, "/"),
		version: version,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "dataset_loader").Logger(),
		now:     time.Now,
	}
}

// Load fetches all four documents concurrently and joins all-or-nothing: a
// transport failure on any document fails the whole load. A document that
// arrives but fails to parse degrades to an empty dataset instead.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	started := l.now()

	bodies := make([][]byte, len(Datasets))
	g, ctx := errgroup.WithContext(ctx)
	for i, d := range Datasets {
		g.Go(func() error {
			body, err := l.fetch(ctx, d)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", d.Name, err)
			}
			bodies[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		observability.DatasetLoads().WithLabelValues("failure").Inc()
		return nil, err
	}

	progress, generatedAt := NormalizeProgress(bodies[0])
	snap := &Snapshot{
		Progress:    progress,
		Certs:       NormalizeCerts(bodies[1]),
		CertDaily:   NormalizeCertDaily(bodies[2]),
		Groups:      NormalizeGroupMeta(bodies[3]),
		GeneratedAt: resolveGeneratedAt(generatedAt, progress),
		LoadedAt:    l.now(),
	}

	observability.DatasetLoads().WithLabelValues("success").Inc()
	observability.DatasetLoadDuration().Observe(l.now().Sub(started).Seconds())
	observability.DatasetRows().WithLabelValues(ProgressDataset.Name).Set(float64(len(snap.Progress)))
	observability.DatasetRows().WithLabelValues(CertDataset.Name).Set(float64(len(snap.Certs)))
	observability.DatasetRows().WithLabelValues(CertDailyDataset.Name).Set(float64(len(snap.CertDaily)))
	observability.DatasetRows().WithLabelValues(GroupMetaDataset.Name).Set(float64(len(snap.Groups)))

	l.logger.Info().
		Int("progress_rows", len(snap.Progress)).
		Int("cert_rows", len(snap.Certs)).
		Int("cert_daily_rows", len(snap.CertDaily)).
		Int("group_rows", len(snap.Groups)).
		Str("generated_at", snap.GeneratedAt).
		Msg("snapshot loaded")

	return snap, nil
}

func (l *Loader) fetch(ctx context.Context, d Descriptor) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s?v=%s", l.baseURL, d.File, url.QueryEscape(l.version))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
