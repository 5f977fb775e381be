package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erikgalindohub/structurecareapp/internal/catalog/domain"
)

func names(plants []domain.Plant) []string {
	out := make([]string, 0, len(plants))
	for _, p := range plants {
		out = append(out, p.Name)
	}
	return out
}

func fixture() []domain.Plant {
	return []domain.Plant{
		{ID: "db-1", Name: "Oak", Scientific: "Quercus", Type: "Tree"},
		{ID: "db-2", Name: "Rose", Scientific: "Rosa", Type: "Shrub"},
		{ID: "db-3", Name: "Boxwood", Scientific: "Buxus", Type: "Shrub"},
		{ID: "db-4", Name: "aster", Scientific: "Symphyotrichum", Type: "Perennial"},
		{ID: "db-5", Name: "Maple", Scientific: "Acer", Type: "Shade Tree"},
	}
}

func TestSortByNameIsCaseInsensitive(t *testing.T) {
	got := Apply(fixture(), nil, Spec{Sort: SortByName})
	assert.Equal(t, []string{"aster", "Boxwood", "Maple", "Oak", "Rose"}, names(got))
}

func TestSortByTypeThenName(t *testing.T) {
	catalog := []domain.Plant{
		{ID: "1", Name: "B", Type: "Shrub"},
		{ID: "2", Name: "A", Type: "Tree"},
		{ID: "3", Name: "C", Type: "Shrub"},
	}
	got := Apply(catalog, nil, Spec{Sort: SortByType})
	assert.Equal(t, []string{"B", "C", "A"}, names(got))
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	catalog := []domain.Plant{
		{ID: "1", Name: "Oak", Type: "Tree"},
		{ID: "2", Name: "oak", Type: "Tree"},
	}
	got := Sort(catalog, SortByName)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
}

func TestSearchMatchesNameOrScientific(t *testing.T) {
	assert.Equal(t, []string{"Maple"}, names(Apply(fixture(), nil, Spec{Search: "ACER"})))
	assert.Equal(t, []string{"Oak"}, names(Apply(fixture(), nil, Spec{Search: "oa"})))
	assert.Empty(t, Apply(fixture(), nil, Spec{Search: "cactus"}))
}

func TestCategoryFilter(t *testing.T) {
	got := Apply(fixture(), nil, Spec{Category: "Trees"})
	assert.Equal(t, []string{"Maple", "Oak"}, names(got))

	got = Apply(fixture(), nil, Spec{Category: "Shrubs"})
	assert.Equal(t, []string{"Boxwood", "Rose"}, names(got))
}

func TestUnknownCategoryFiltersNothing(t *testing.T) {
	got := Apply(fixture(), nil, Spec{Category: "Weeds"})
	assert.Len(t, got, len(fixture()))
}

func TestZoneFilterOnlyShowsAssignedSelections(t *testing.T) {
	catalog := []domain.Plant{
		{ID: "oak", Name: "Oak", Type: "Tree"},
		{ID: "rose", Name: "Rose", Type: "Shrub"},
	}
	assigned := map[string][]string{"oak": {"Backyard"}}

	got := Apply(catalog, assigned, Spec{Zone: "Backyard"})
	assert.Equal(t, []string{"Oak"}, names(got))

	got = Apply(catalog, assigned, Spec{Zone: "Backyard", Category: "Shrubs"})
	assert.Equal(t, []string{"Oak"}, names(got), "zone filter takes precedence over category")

	got = Apply(catalog, assigned, Spec{Zone: "Front"})
	assert.Empty(t, got)
}

func TestZoneFilterExcludesUnselectedPlants(t *testing.T) {
	assigned := map[string][]string{"db-2": {}}
	got := Apply(fixture(), assigned, Spec{Zone: "Backyard"})
	assert.Empty(t, got)
}

func TestFiltersCompose(t *testing.T) {
	got := Apply(fixture(), nil, Spec{Search: "o", Category: "Shrubs"})
	assert.Equal(t, []string{"Boxwood", "Rose"}, names(got))
}

func TestApplyIsDeterministicAndDoesNotMutate(t *testing.T) {
	catalog := fixture()
	spec := Spec{Search: "a", Sort: SortByType}
	first := Apply(catalog, nil, spec)
	second := Apply(catalog, nil, spec)
	assert.Equal(t, first, second)
	assert.Equal(t, fixture(), catalog)
}

func TestClearPreservesSort(t *testing.T) {
	spec := Spec{Search: "oak", Category: "Trees", Zone: "Front", Sort: SortByType}
	cleared := Clear(spec)
	assert.Equal(t, Spec{Sort: SortByType}, cleared)
	assert.False(t, cleared.Active())
	assert.True(t, spec.Active())
}

func TestToggleCategory(t *testing.T) {
	spec := ToggleCategory(Spec{}, "Trees")
	assert.Equal(t, "Trees", spec.Category)
	spec = ToggleCategory(spec, "Shrubs")
	assert.Equal(t, "Shrubs", spec.Category)
	spec = ToggleCategory(spec, "Shrubs")
	assert.Equal(t, "", spec.Category)
}

func TestParseSortMode(t *testing.T) {
	m, err := ParseSortMode("type")
	assert.NoError(t, err)
	assert.Equal(t, SortByType, m)

	m, err = ParseSortMode("")
	assert.NoError(t, err)
	assert.Equal(t, SortByName, m)

	_, err = ParseSortMode("size")
	assert.Error(t, err)
}
