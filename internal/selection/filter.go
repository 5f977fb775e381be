package selection

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/erikgalindohub/structurecareapp/internal/catalog/domain"
)

// Apply returns the catalog records visible under spec. assigned maps selected plant ids to
// their zones. The result is a new slice; catalog is not modified.
//
// Search matches name or scientific name case-insensitively. A category keeps records whose
// type belongs to the group; unknown category names keep everything. A zone filter keeps only
// selected plants assigned to that zone and takes precedence over the category filter, so a
// zone view always shows every matching assignment.
func Apply(catalog []domain.Plant, assigned map[string][]string, spec Spec) []domain.Plant {
	term := strings.ToLower(spec.Search)
	category, hasCategory := LookupCategory(spec.Category)

	out := make([]domain.Plant, 0, len(catalog))
	for _, p := range Sort(catalog, spec.Sort) {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Scientific), term) {
			continue
		}
		if spec.Zone != "" {
			zones, ok := assigned[p.ID]
			if !ok || !slices.Contains(zones, spec.Zone) {
				continue
			}
			out = append(out, p)
			continue
		}
		if hasCategory && !category.Contains(p.Type) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort returns a copy of plants ordered by lower-cased name, or by lower-cased type then name.
// Ties keep catalog order.
func Sort(plants []domain.Plant, mode SortMode) []domain.Plant {
	sorted := slices.Clone(plants)
	col := collate.New(language.English)
	byName := func(a, b domain.Plant) int {
		return col.CompareString(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
	if mode == SortByType {
		slices.SortStableFunc(sorted, func(a, b domain.Plant) int {
			if c := col.CompareString(strings.ToLower(a.Type), strings.ToLower(b.Type)); c != 0 {
				return c
			}
			return byName(a, b)
		})
		return sorted
	}
	slices.SortStableFunc(sorted, byName)
	return sorted
}
