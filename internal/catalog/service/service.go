package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/erikgalindohub/structurecareapp/internal/catalog/domain"
	"github.com/erikgalindohub/structurecareapp/internal/logging"
	"github.com/erikgalindohub/structurecareapp/internal/metrics"
)

// ErrSuperseded is returned by Refresh when a newer refresh started before this one finished.
var ErrSuperseded = errors.New("catalog refresh superseded")

// Source loads the full catalog.
type Source interface {
	Load(ctx context.Context) ([]domain.Plant, error)
}

// Snapshot is the catalog as last applied. Plants is never mutated after it is published.
type Snapshot struct {
	Plants   []domain.Plant `json:"plants"`
	Loading  bool           `json:"loading"`
	Err      error          `json:"-"`
	LoadedAt time.Time      `json:"loaded_at"`
}

// Service owns the authoritative catalog snapshot. Only the most recent refresh may publish.
type Service struct {
	source Source
	now    func() time.Time

	mu         sync.RWMutex
	snap       Snapshot
	byID       map[string]domain.Plant
	generation uint64
	cancel     context.CancelFunc

	baseCtx context.Context
	sched   *cron.Cron
	wg      sync.WaitGroup
}

func New(source Source) *Service {
	return &Service{
		source:  source,
		now:     time.Now,
		snap:    Snapshot{Plants: []domain.Plant{}},
		byID:    map[string]domain.Plant{},
		baseCtx: context.Background(),
	}
}

// Snapshot returns the current catalog state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Service) Plants() []domain.Plant {
	return s.Snapshot().Plants
}

// Lookup finds a plant in the current snapshot.
func (s *Service) Lookup(id string) (domain.Plant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

// Refresh cancels any load in flight and loads the catalog again. The result is applied only
// if no newer refresh has started and ctx was not cancelled. An IngestionError empties the
// catalog and is kept on the snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	s.generation++
	gen := s.generation
	s.cancel = cancel
	s.snap.Loading = true
	s.mu.Unlock()
	defer cancel()

	plants, err := s.source.Load(loadCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return ErrSuperseded
	}
	s.cancel = nil
	s.snap.Loading = false
	if ctxErr := loadCtx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		s.publish(Snapshot{Plants: []domain.Plant{}, Err: err})
		return fmt.Errorf("refresh catalog: %w", err)
	}
	if plants == nil {
		plants = []domain.Plant{}
	}
	s.publish(Snapshot{Plants: plants, LoadedAt: s.now()})
	return nil
}

func (s *Service) publish(snap Snapshot) {
	byID := make(map[string]domain.Plant, len(snap.Plants))
	for _, p := range snap.Plants {
		byID[p.ID] = p
	}
	s.snap = snap
	s.byID = byID
	metrics.CatalogPlants.Set(float64(len(snap.Plants)))
}

// RefreshAsync starts a refresh detached from the caller's request.
func (s *Service) RefreshAsync() {
	s.mu.RLock()
	base := s.baseCtx
	s.mu.RUnlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.refreshLogged(base, "refresh_catalog_async")
	}()
}

func (s *Service) refreshLogged(ctx context.Context, operation string) {
	err := s.Refresh(ctx)
	switch {
	case err == nil, errors.Is(err, ErrSuperseded), errors.Is(err, context.Canceled):
	default:
		logging.New(ctx).LogError(operation, err)
	}
}

// Start performs the first load in the background and schedules refreshes with a cron
// expression such as "@every 30m". An empty schedule disables periodic refresh.
// Loads are bound to ctx.
func (s *Service) Start(ctx context.Context, schedule string) error {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	if schedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(schedule, func() { s.refreshLogged(ctx, "refresh_catalog_scheduled") }); err != nil {
			return fmt.Errorf("schedule catalog refresh %q: %w", schedule, err)
		}
		s.sched = c
		c.Start()
	}

	s.RefreshAsync()
	return nil
}

// Stop halts scheduled refreshes, cancels any load in flight and waits for background work.
func (s *Service) Stop() {
	if s.sched != nil {
		<-s.sched.Stop().Done()
	}
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}
