package service

import (
	"context"
	"errors"
	"time"

	catalog "github.com/erikgalindohub/structurecareapp/internal/catalog/domain"
	"github.com/erikgalindohub/structurecareapp/internal/logging"
	"github.com/erikgalindohub/structurecareapp/internal/metrics"
	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
	"github.com/erikgalindohub/structurecareapp/internal/projects/state"
)

var ErrSessionNotFound = errors.New("editing session not found")

const defaultProbeTimeout = 2 * time.Second

// Store is the part of the project gateway used by editing sessions.
type Store interface {
	Create(ctx context.Context, p domain.Project) (string, error)
	Update(ctx context.Context, id string, p domain.Project) error
	Get(ctx context.Context, id string) (domain.Project, error)
	Ping(ctx context.Context) error
}

// Catalog is the current plant catalog.
type Catalog interface {
	Plants() []catalog.Plant
	Lookup(id string) (catalog.Plant, bool)
}

// Sessions opens editing sessions and saves their projects.
type Sessions struct {
	registry     *Registry
	store        Store
	catalog      Catalog
	now          func() time.Time
	probeTimeout time.Duration
}

func New(store Store, cat Catalog, registry *Registry) *Sessions {
	return &Sessions{
		registry:     registry,
		store:        store,
		catalog:      cat,
		now:          time.Now,
		probeTimeout: defaultProbeTimeout,
	}
}

// Open starts a session on a new project, or on the stored project with projectID.
func (s *Sessions) Open(ctx context.Context, projectID string) (*Session, error) {
	st := state.New()
	if projectID != "" {
		p, err := s.store.Get(ctx, projectID)
		if err != nil {
			return nil, err
		}
		p.ID = projectID
		if st, err = state.Reduce(st, state.LoadProject{Project: p}); err != nil {
			return nil, err
		}
	}

	sess := s.registry.open(st)
	metrics.SessionsOpened.Inc()
	logging.New(ctx).LogInfof("open_session", "session_id=%s project_id=%q", sess.ID, projectID)
	return sess, nil
}

func (s *Sessions) Get(id string) (*Session, error) {
	sess, ok := s.registry.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Sessions) Close(id string) bool {
	return s.registry.Remove(id)
}

// Plant resolves a plant id against the current catalog.
func (s *Sessions) Plant(id string) (catalog.Plant, bool) {
	return s.catalog.Lookup(id)
}

// View returns the catalog as filtered by the session's view.
func (s *Sessions) View(sess *Session) []catalog.Plant {
	return sess.View(s.catalog.Plants())
}

// Save persists the session's project with the target status. An empty target keeps the
// current status. Checks run in order: connectivity, a save already running, client contact,
// then completion rules. A failed save leaves the session state as it was.
func (s *Sessions) Save(ctx context.Context, sess *Session, target domain.Status) (domain.Project, error) {
	logger := logging.New(ctx)

	if err := s.probe(ctx); err != nil {
		metrics.ProjectSaves.WithLabelValues("offline").Inc()
		logger.LogWarnf("save_project", "session_id=%s store unreachable: %v", sess.ID, err)
		return domain.Project{}, &domain.OfflineError{Err: err}
	}

	p, err := sess.beginSave()
	if err != nil {
		metrics.ProjectSaves.WithLabelValues("busy").Inc()
		return domain.Project{}, err
	}
	var saved *domain.Project
	defer func() { sess.endSave(saved) }()

	p, err = s.prepare(p, target)
	if err != nil {
		metrics.ProjectSaves.WithLabelValues("invalid").Inc()
		return domain.Project{}, err
	}

	if p.ID == "" {
		id, err := s.store.Create(ctx, p)
		if err != nil {
			metrics.ProjectSaves.WithLabelValues("error").Inc()
			logger.LogError("create_project", err)
			return domain.Project{}, &domain.PersistenceError{Op: "create", Err: err}
		}
		p.ID = id
	} else if err := s.store.Update(ctx, p.ID, p); err != nil {
		metrics.ProjectSaves.WithLabelValues("error").Inc()
		logger.LogError("update_project", err)
		return domain.Project{}, &domain.PersistenceError{Op: "update", Err: err}
	}

	saved = &p
	metrics.ProjectSaves.WithLabelValues("ok").Inc()
	logger.LogInfof("save_project", "session_id=%s project_id=%s status=%q", sess.ID, p.ID, p.Status)
	return p, nil
}

// prepare validates p for saving with target and stamps its dates.
func (s *Sessions) prepare(p domain.Project, target domain.Status) (domain.Project, error) {
	if !p.HasContact() {
		return p, &domain.ValidationError{Field: "client", Message: "Client Name and Email are required before saving."}
	}
	if target == "" {
		target = p.Status
	}

	now := s.now()
	if target != p.Status {
		st, err := state.Reduce(state.State{Project: p}, state.SetStatus{Status: target, At: now})
		if err != nil {
			return p, err
		}
		p = st.Project
	} else if p.IsCompleted() {
		if err := state.ValidateCompletion(p); err != nil {
			return p, err
		}
	}

	if p.DateCreated == nil {
		p.DateCreated = &now
	}
	if !p.IsCompleted() {
		p.DateCompleted = nil
	}
	return p, nil
}

func (s *Sessions) probe(ctx context.Context) error {
	pctx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()
	return s.store.Ping(pctx)
}
