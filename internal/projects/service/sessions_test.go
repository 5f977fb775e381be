package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/erikgalindohub/structurecareapp/internal/catalog/domain"
	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
	"github.com/erikgalindohub/structurecareapp/internal/projects/state"
	"github.com/erikgalindohub/structurecareapp/internal/selection"
)

type fakeStore struct {
	mu       sync.Mutex
	projects map[string]domain.Project
	nextID   int
	pingErr  error
	writeErr error
	creates  int
	updates  int
	// block, when set, holds Create/Update until closed.
	block chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{projects: map[string]domain.Project{}}
}

func (f *fakeStore) wait() {
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeStore) Create(_ context.Context, p domain.Project) (string, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.writeErr != nil {
		return "", f.writeErr
	}
	f.nextID++
	id := "sc-" + string(rune('0'+f.nextID))
	p.ID = id
	f.projects[id] = p.Clone()
	return id, nil
}

func (f *fakeStore) Update(_ context.Context, id string, p domain.Project) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.writeErr != nil {
		return f.writeErr
	}
	if _, ok := f.projects[id]; !ok {
		return domain.ErrNotFound
	}
	f.projects[id] = p.Clone()
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return domain.Project{}, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

type staticCatalog []catalog.Plant

func (c staticCatalog) Plants() []catalog.Plant { return c }

func (c staticCatalog) Lookup(id string) (catalog.Plant, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Plant{}, false
}

var (
	oak   = catalog.Plant{ID: "db-1", Name: "Oak", Type: "Tree"}
	rose  = catalog.Plant{ID: "db-2", Name: "Rose", Type: "Shrub"}
	fixed = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
)

func newSessions(store *fakeStore) *Sessions {
	s := New(store, staticCatalog{oak, rose}, NewRegistry(8, time.Hour))
	s.now = func() time.Time { return fixed }
	return s
}

func dispatch(t *testing.T, sess *Session, actions ...state.Action) {
	t.Helper()
	for _, a := range actions {
		_, err := sess.Dispatch(a)
		require.NoError(t, err, "%T", a)
	}
}

func withContact() []state.Action {
	return []state.Action{
		state.SetField{Field: state.FieldClientName, Value: "Dana"},
		state.SetField{Field: state.FieldClientEmail, Value: "dana@example.com"},
	}
}

func TestAddPlantRequiresZones(t *testing.T) {
	svc := newSessions(newFakeStore())
	sess, err := svc.Open(context.Background(), "")
	require.NoError(t, err)

	_, err = sess.Dispatch(state.AddPlant{Plant: oak})
	assert.ErrorIs(t, err, domain.ErrNoZones)
	assert.Empty(t, sess.State().Project.Plants)

	dispatch(t, sess, state.AddZone{Label: "Front"}, state.AddPlant{Plant: oak, Zones: []string{"Front"}})
	assert.Len(t, sess.State().Project.Plants, 1)
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	store := newFakeStore()
	svc := newSessions(store)
	ctx := context.Background()
	sess, err := svc.Open(ctx, "")
	require.NoError(t, err)
	dispatch(t, sess, withContact()...)

	first, err := svc.Save(ctx, sess, "")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	require.NotNil(t, first.DateCreated)
	assert.Equal(t, fixed, *first.DateCreated)
	assert.Nil(t, first.DateCompleted)
	assert.Equal(t, first.ID, sess.State().Project.ID)

	dispatch(t, sess, state.SetField{Field: state.FieldClientPhone, Value: "555-0101"})
	second, err := svc.Save(ctx, sess, domain.StatusInProgress)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, 1, store.updates)
	stored, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0101", stored.ClientPhone)
	assert.Equal(t, fixed, *stored.DateCreated)
}

func TestSaveOfflineLeavesStateUntouched(t *testing.T) {
	store := newFakeStore()
	store.pingErr = errors.New("dial tcp: connection refused")
	svc := newSessions(store)
	sess, err := svc.Open(context.Background(), "")
	require.NoError(t, err)
	dispatch(t, sess, withContact()...)
	before := sess.State()

	_, err = svc.Save(context.Background(), sess, "")

	var offline *domain.OfflineError
	assert.ErrorAs(t, err, &offline)
	assert.ErrorIs(t, err, domain.ErrOffline)
	assert.Equal(t, before, sess.State())
	assert.Zero(t, store.creates)
}

func TestSaveRequiresContact(t *testing.T) {
	store := newFakeStore()
	svc := newSessions(store)
	sess, err := svc.Open(context.Background(), "")
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), sess, "")

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Client Name and Email are required before saving.", ve.Message)
	assert.Zero(t, store.creates)
}

func TestCompleteRejectsUnassignedPlants(t *testing.T) {
	store := newFakeStore()
	svc := newSessions(store)
	sess, err := svc.Open(context.Background(), "")
	require.NoError(t, err)
	dispatch(t, sess, withContact()...)
	dispatch(t, sess, state.AddZone{Label: "Front"}, state.AddPlant{Plant: oak})

	_, err = svc.Save(context.Background(), sess, domain.StatusCompleted)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, oak.ID, ve.PlantID)
	assert.Equal(t, domain.StatusInProgress, sess.State().Project.Status)
	assert.Zero(t, store.creates)
}

func TestCompleteStampsAndLocks(t *testing.T) {
	store := newFakeStore()
	svc := newSessions(store)
	sess, err := svc.Open(context.Background(), "")
	require.NoError(t, err)
	dispatch(t, sess, withContact()...)
	dispatch(t, sess, state.AddZone{Label: "Front"}, state.AddPlant{Plant: oak, Zones: []string{"Front"}})

	saved, err := svc.Save(context.Background(), sess, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, saved.Status)
	require.NotNil(t, saved.DateCompleted)
	assert.Equal(t, fixed, *saved.DateCompleted)

	_, err = sess.Dispatch(state.AddZone{Label: "Side"})
	assert.ErrorIs(t, err, domain.ErrProjectLocked)

	_, err = sess.Dispatch(state.SetSearch{Term: "oak"})
	assert.NoError(t, err, "view actions still apply")
}

func TestPersistenceFailurePreservesState(t *testing.T) {
	store := newFakeStore()
	store.writeErr = errors.New("deadline exceeded")
	svc := newSessions(store)
	sess, err := svc.Open(context.Background(), "")
	require.NoError(t, err)
	dispatch(t, sess, withContact()...)
	before := sess.State()

	_, err = svc.Save(context.Background(), sess, "")

	var pe *domain.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "create", pe.Op)
	assert.Equal(t, before, sess.State())
	assert.Empty(t, sess.State().Project.ID)

	store.writeErr = nil
	_, err = svc.Save(context.Background(), sess, "")
	assert.NoError(t, err, "a failed save does not leave the session stuck")
}

func TestConcurrentSaveIsRejected(t *testing.T) {
	store := newFakeStore()
	store.block = make(chan struct{})
	svc := newSessions(store)
	sess, err := svc.Open(context.Background(), "")
	require.NoError(t, err)
	dispatch(t, sess, withContact()...)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Save(context.Background(), sess, "")
		done <- err
	}()

	require.Eventually(t, func() bool {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return sess.saving
	}, time.Second, 5*time.Millisecond)

	_, err = svc.Save(context.Background(), sess, "")
	assert.ErrorIs(t, err, domain.ErrSaveInProgress)

	_, err = sess.Dispatch(state.SetField{Field: state.FieldClientNotes, Value: "gate code 42"})
	assert.ErrorIs(t, err, domain.ErrSaveInProgress)

	close(store.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, store.creates)
}

func TestOpenLoadsStoredProject(t *testing.T) {
	store := newFakeStore()
	stored := domain.New()
	stored.ID = "sc-9"
	stored.ClientName = "Lee"
	stored.Zones = []string{"Front"}
	store.projects["sc-9"] = stored
	svc := newSessions(store)

	sess, err := svc.Open(context.Background(), "sc-9")
	require.NoError(t, err)
	assert.Equal(t, "Lee", sess.State().Project.ClientName)
	assert.Equal(t, "sc-9", sess.State().Project.ID)

	_, err = svc.Open(context.Background(), "sc-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestViewUsesSessionFilters(t *testing.T) {
	svc := newSessions(newFakeStore())
	sess, err := svc.Open(context.Background(), "")
	require.NoError(t, err)
	dispatch(t, sess,
		state.AddZone{Label: "Front"},
		state.AddPlant{Plant: rose, Zones: []string{"Front"}},
		state.SetZoneFilter{Zone: "Front"},
	)

	view := svc.View(sess)
	require.Len(t, view, 1)
	assert.Equal(t, rose.ID, view[0].ID)

	dispatch(t, sess, state.ClearFilters{}, state.SetSort{Mode: selection.SortByType})
	assert.Len(t, svc.View(sess), 2)
}

func TestRegistryGetAndClose(t *testing.T) {
	svc := newSessions(newFakeStore())
	sess, err := svc.Open(context.Background(), "")
	require.NoError(t, err)

	got, err := svc.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	assert.True(t, svc.Close(sess.ID))
	_, err = svc.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
