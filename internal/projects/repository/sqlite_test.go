package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
	"github.com/erikgalindohub/structurecareapp/internal/storage/sqlite"
)

func newSQLiteGateway(t *testing.T, feed Feed) *SQLiteGateway {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "projects.db"))
	require.NoError(t, err)

	g := NewSQLiteGateway(db, feed)
	require.NoError(t, g.Migrate())
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func sampleProject(name string, created time.Time) domain.Project {
	p := domain.New()
	p.ClientName = name
	p.ClientEmail = name + "@example.com"
	p.ClientPhone = "555-0100"
	p.Zones = []string{"Front", "Backyard"}
	p.Plants = []domain.PlantSelection{{ID: "db-1", Name: "Oak", Type: "Tree", Zones: []string{"Front"}}}
	p.DateCreated = &created
	return p
}

func TestSQLiteCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := newSQLiteGateway(t, nil)
	created := time.Date(2026, 3, 4, 5, 6, 7, 123456789, time.UTC)

	id, err := g.Create(ctx, sampleProject("dana", created))
	require.NoError(t, err)
	assert.Regexp(t, `^sc-\d{5}-\d{4}$`, id)

	got, err := g.Get(ctx, id)
	require.NoError(t, err)

	want := sampleProject("dana", created)
	want.ID = id
	assert.Equal(t, want, got)
}

func TestSQLiteUpdate(t *testing.T) {
	ctx := context.Background()
	g := newSQLiteGateway(t, nil)
	created := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	id, err := g.Create(ctx, sampleProject("dana", created))
	require.NoError(t, err)

	completed := created.Add(48 * time.Hour)
	p := sampleProject("dana", created)
	p.Status = domain.StatusCompleted
	p.DateCompleted = &completed
	require.NoError(t, g.Update(ctx, id, p))

	got, err := g.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.DateCompleted)
	assert.True(t, completed.Equal(*got.DateCompleted))
}

func TestSQLiteNotFound(t *testing.T) {
	ctx := context.Background()
	g := newSQLiteGateway(t, nil)

	_, err := g.Get(ctx, "sc-00000-0000")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = g.Update(ctx, "sc-00000-0000", domain.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteListOrdersNewestFirstAndFiltersStatus(t *testing.T) {
	ctx := context.Background()
	g := newSQLiteGateway(t, nil)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"old", "newest", "middle"} {
		offsets := []time.Duration{0, 72 * time.Hour, 24 * time.Hour}
		_, err := g.Create(ctx, sampleProject(name, base.Add(offsets[i])))
		require.NoError(t, err)
	}
	done := sampleProject("done", base.Add(96*time.Hour))
	done.Status = domain.StatusCompleted
	_, err := g.Create(ctx, done)
	require.NoError(t, err)

	items, err := g.List(ctx, domain.StatusInProgress)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "newest", items[0].ClientName)
	assert.Equal(t, "middle", items[1].ClientName)
	assert.Equal(t, "old", items[2].ClientName)

	items, err = g.List(ctx, domain.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "done", items[0].ClientName)
}

func TestSQLiteSubscribeEmitsOnChange(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g := newSQLiteGateway(t, NewLocalFeed())

	updates, err := g.Subscribe(ctx, domain.StatusInProgress)
	require.NoError(t, err)

	select {
	case first := <-updates:
		assert.Empty(t, first)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial snapshot")
	}

	_, err = g.Create(ctx, sampleProject("dana", time.Now().UTC()))
	require.NoError(t, err)

	select {
	case next := <-updates:
		require.Len(t, next, 1)
		assert.Equal(t, "dana", next[0].ClientName)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after create")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-updates:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSQLitePing(t *testing.T) {
	g := newSQLiteGateway(t, nil)
	assert.NoError(t, g.Ping(context.Background()))
}
