package dataset

import (
	"sync/atomic"
	"time"

	"github.com/skhan-ssq/studianclass-dashboard/internal/models"
)

// Snapshot is one immutable load of all four datasets. It is replaced
// wholesale on reload and never mutated afterwards.
type Snapshot struct {
	Progress  []models.ProgressRecord
	Certs     []models.CertRecord
	CertDaily []models.CertDailyRecord
	Groups    []models.GroupMeta
	// GeneratedAt is the progress document's generated_at, falling back to
	// the latest progress_date when the document carries none.
	GeneratedAt string
	LoadedAt    time.Time
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Progress:  []models.ProgressRecord{},
		Certs:     []models.CertRecord{},
		CertDaily: []models.CertDailyRecord{},
		Groups:    []models.GroupMeta{},
	}
}

// resolveGeneratedAt applies the last-updated fallback chain.
func resolveGeneratedAt(generatedAt string, progress []models.ProgressRecord) string {
	if generatedAt != "" {
		return generatedAt
	}
	latest := ""
	for _, r := range progress {
		if r.ProgressDate > latest {
			latest = r.ProgressDate
		}
	}
	return latest
}

// Store publishes the current snapshot. Replace is one atomic assignment, so
// readers can never observe a half-updated snapshot mid-aggregation.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store seeded with an empty snapshot, so Current is safe
// to call before the first load completes.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(emptySnapshot())
	return s
}

// Current returns the live snapshot. Never nil.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Replace publishes a new snapshot. Concurrent loads race benignly: the last
// write wins and both candidates describe the same source documents.
func (s *Store) Replace(snap *Snapshot) {
	if snap == nil {
		snap = emptySnapshot()
	}
	s.current.Store(snap)
}
