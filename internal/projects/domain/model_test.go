package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFillsNilCollections(t *testing.T) {
	p := Project{Plants: []PlantSelection{{ID: "db-1"}}}.Normalize()

	assert.NotNil(t, p.Zones)
	assert.NotNil(t, p.Plants[0].Zones)
	assert.Equal(t, StatusInProgress, p.Status)
}

func TestCloneIsDeep(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := New()
	p.Zones = []string{"Front"}
	p.Plants = []PlantSelection{{ID: "db-1", Zones: []string{"Front"}}}
	p.DateCreated = &created

	c := p.Clone()
	c.Zones[0] = "Back"
	c.Plants[0].Zones[0] = "Back"
	*c.DateCreated = created.Add(time.Hour)

	assert.Equal(t, "Front", p.Zones[0])
	assert.Equal(t, "Front", p.Plants[0].Zones[0])
	assert.Equal(t, created, *p.DateCreated)
}

func TestMatches(t *testing.T) {
	p := Project{ClientName: "Dana Reyes", ClientEmail: "dana@example.com", ClientPhone: "555-0102"}

	assert.True(t, p.Matches(""))
	assert.True(t, p.Matches("REYES"))
	assert.True(t, p.Matches("example"))
	assert.True(t, p.Matches("0102"))
	assert.False(t, p.Matches("smith"))
}

func TestUnassignedAndContact(t *testing.T) {
	p := New()
	p.Plants = []PlantSelection{{ID: "a", Zones: []string{"Front"}}, {ID: "b", Zones: []string{}}}

	require.Len(t, p.Unassigned(), 1)
	assert.Equal(t, "b", p.Unassigned()[0].ID)
	assert.False(t, p.HasContact())

	p.ClientName, p.ClientEmail = "Dana", "dana@example.com"
	assert.True(t, p.HasContact())
}

func TestNewPublicIDFormat(t *testing.T) {
	id, err := NewPublicID()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^sc-\d{5}-\d{4}$`), id)
}

func TestErrorMatching(t *testing.T) {
	var err error = &OfflineError{}
	assert.ErrorIs(t, err, ErrOffline)
}
