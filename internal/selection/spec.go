// Package selection filters and orders the plant catalog for the project editor.
package selection

import (
	"fmt"
	"slices"
)

type SortMode string

const (
	SortByName SortMode = "name"
	SortByType SortMode = "type"
)

func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortByName, SortByType:
		return SortMode(s), nil
	case "":
		return SortByName, nil
	}
	return "", fmt.Errorf("unknown sort mode %q", s)
}

// Spec is the operator's current view of the catalog.
type Spec struct {
	Search   string   `json:"search"`
	Category string   `json:"category,omitempty"`
	Zone     string   `json:"zone,omitempty"`
	Sort     SortMode `json:"sort"`
}

// Active reports whether any filter narrows the catalog. Sorting is not a filter.
func (s Spec) Active() bool {
	return s.Search != "" || s.Category != "" || s.Zone != ""
}

// Clear drops every filter and keeps the sort mode.
func Clear(s Spec) Spec {
	return Spec{Sort: s.Sort}
}

// ToggleCategory selects name, or clears the category filter if name is already selected.
func ToggleCategory(s Spec, name string) Spec {
	if s.Category == name {
		s.Category = ""
	} else {
		s.Category = name
	}
	return s
}

// Category is a named group of plant types.
type Category struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

func (c Category) Contains(plantType string) bool {
	return slices.Contains(c.Types, plantType)
}

var Categories = []Category{
	{Name: "Trees", Types: []string{"Tree", "Shade Tree", "Ornamental Tree", "Evergreen Tree", "Fruit Tree", "Nut Tree"}},
	{Name: "Shrubs", Types: []string{"Shrub", "Foundation Shrub", "Flowering Shrub", "Evergreen Shrub", "Privacy Shrub", "Screening Shrub"}},
	{Name: "Accents", Types: []string{
		"Perennial", "Annual", "Flowering Plant", "Bulb", "Groundcover", "Ornamental Grass",
		"Succulent", "Cactus", "Vine", "Climber", "Aquatic Plant", "Bog Plant",
	}},
}

func LookupCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
