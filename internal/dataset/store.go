// Package dataset holds the session's current set of scored company records.
package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/presence-audit/internal/audit"
	"github.com/sells-group/presence-audit/internal/model"
	"github.com/sells-group/presence-audit/internal/source"
)

// Dataset is one immutable load of the spreadsheet.
type Dataset struct {
	ID        uuid.UUID                  `json:"id" yaml:"id"`
	Sources   []string                   `json:"sources" yaml:"sources"`
	LoadedAt  time.Time                  `json:"loaded_at" yaml:"loaded_at"`
	RawRows   int                        `json:"raw_rows" yaml:"raw_rows"`
	Records   []model.CompanyRecord      `json:"records" yaml:"records"`
	Platforms []model.PlatformDescriptor `json:"-" yaml:"-"`
}

// RowLoader fetches the raw rows of every configured source.
type RowLoader interface {
	LoadAll(ctx context.Context, specs []source.Spec) ([]model.RawRow, error)
}

// Store owns the current Dataset. Readers get a consistent snapshot;
// refreshes are serialized and replace the dataset wholesale.
type Store struct {
	loader  RowLoader
	builder *audit.Builder
	specs   []source.Spec
	now     func() time.Time

	refreshMu sync.Mutex

	mu      sync.RWMutex
	current *Dataset
}

// NewStore creates an empty Store.
func NewStore(loader RowLoader, builder *audit.Builder, specs []source.Spec) *Store {
	return &Store{
		loader:  loader,
		builder: builder,
		specs:   append([]source.Spec(nil), specs...),
		now:     time.Now,
	}
}

// Refresh loads every source, rebuilds the records and swaps them in. On
// failure the previous dataset stays current and the loader's error is
// returned unchanged, so source.IsUnavailable still applies.
func (s *Store) Refresh(ctx context.Context) (*Dataset, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := s.now()
	rows, err := s.loader.LoadAll(ctx, s.specs)
	if err != nil {
		zap.L().Warn("dataset: refresh failed", zap.Error(err))
		return nil, err
	}

	records := s.builder.Build(rows)
	ds := &Dataset{
		ID:        uuid.New(),
		LoadedAt:  s.now(),
		RawRows:   len(rows),
		Records:   records,
		Platforms: s.builder.Platforms(),
	}
	for _, spec := range s.specs {
		ds.Sources = append(ds.Sources, spec.Location())
	}

	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()

	zap.L().Info("dataset: refreshed",
		zap.String("id", ds.ID.String()),
		zap.Int("raw_rows", ds.RawRows),
		zap.Int("companies", len(records)),
		zap.Int("dropped", ds.RawRows-len(records)),
		zap.Duration("elapsed", s.now().Sub(start)),
	)
	return ds, nil
}

// Current returns the loaded dataset, or false before the first successful refresh.
func (s *Store) Current() (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// Watch refreshes on every tick until ctx is done. Failures are logged and
// the previous dataset is kept.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.Refresh(ctx)
		}
	}
}
