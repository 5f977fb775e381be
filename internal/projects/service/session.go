package service

import (
	"sync"

	catalog "github.com/erikgalindohub/structurecareapp/internal/catalog/domain"
	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
	"github.com/erikgalindohub/structurecareapp/internal/projects/state"
	"github.com/erikgalindohub/structurecareapp/internal/selection"
)

// Session is one operator's editing context for a project. Actions are applied one at a
// time in the order they are dispatched.
type Session struct {
	ID string

	mu     sync.Mutex
	st     state.State
	saving bool
}

func newSession(id string, st state.State) *Session {
	return &Session{ID: id, st: st}
}

// State returns a snapshot of the session state.
func (s *Session) State() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// Dispatch applies a to the session. Plants cannot be added before a zone exists, edits
// wait for a running save to finish, and a completed project only accepts view changes.
func (s *Session) Dispatch(a state.Action) (state.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.Mutates() {
		if s.st.Project.IsCompleted() {
			return s.st, domain.ErrProjectLocked
		}
		if s.saving {
			return s.st, domain.ErrSaveInProgress
		}
	}
	if _, ok := a.(state.AddPlant); ok && len(s.st.Project.Zones) == 0 {
		return s.st, domain.ErrNoZones
	}

	next, err := state.Reduce(s.st, a)
	if err != nil {
		return s.st, err
	}
	s.st = next
	return next, nil
}

// View returns the catalog filtered by the session's current view.
func (s *Session) View(plants []catalog.Plant) []catalog.Plant {
	st := s.State()
	return selection.Apply(plants, st.Project.Assignments(), st.View)
}

// beginSave marks the session as saving and returns the project to persist.
func (s *Session) beginSave() (domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return domain.Project{}, domain.ErrSaveInProgress
	}
	s.saving = true
	return s.st.Project.Clone(), nil
}

// endSave clears the saving flag and, when saved is non-nil, commits it as the project.
func (s *Session) endSave(saved *domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if saved != nil {
		s.st.Project = saved.Clone()
	}
}
