// Package state holds the editable project and the operator's catalog view, and the pure
// reducer that moves them between valid states.
package state

import (
	"time"

	catalog "github.com/erikgalindohub/structurecareapp/internal/catalog/domain"
	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
	"github.com/erikgalindohub/structurecareapp/internal/selection"
)

// Field names accepted by SetField.
const (
	FieldClientName     = "clientName"
	FieldClientEmail    = "clientEmail"
	FieldClientPhone    = "clientPhone"
	FieldProjectAddress = "projectAddress"
	FieldClientNotes    = "clientNotes"
)

// Action is a state transition. The set of actions is closed.
type Action interface {
	// Mutates reports whether the action is an operator edit of the project. Completed
	// projects refuse such edits.
	Mutates() bool
	action()
}

type SetField struct {
	Field string
	Value string
}

type AddZone struct{ Label string }

type RemoveZone struct{ Label string }

// AddPlant selects a catalog plant. Zones not defined on the project are dropped.
type AddPlant struct {
	Plant catalog.Plant
	Zones []string
}

type RemovePlant struct{ PlantID string }

type UpdatePlantZones struct {
	PlantID string
	Zones   []string
}

// SetStatus moves the project between statuses. At stamps the completion date.
type SetStatus struct {
	Status domain.Status
	At     time.Time
}

// LoadProject replaces the project with a stored snapshot and keeps the view.
type LoadProject struct{ Project domain.Project }

type SetSearch struct{ Term string }

type ToggleCategory struct{ Name string }

type SetZoneFilter struct{ Zone string }

type SetSort struct{ Mode selection.SortMode }

type ClearFilters struct{}

func (SetField) Mutates() bool         { return true }
func (AddZone) Mutates() bool          { return true }
func (RemoveZone) Mutates() bool       { return true }
func (AddPlant) Mutates() bool         { return true }
func (RemovePlant) Mutates() bool      { return true }
func (UpdatePlantZones) Mutates() bool { return true }
func (SetStatus) Mutates() bool        { return true }
func (LoadProject) Mutates() bool      { return false }
func (SetSearch) Mutates() bool        { return false }
func (ToggleCategory) Mutates() bool   { return false }
func (SetZoneFilter) Mutates() bool    { return false }
func (SetSort) Mutates() bool          { return false }
func (ClearFilters) Mutates() bool     { return false }

func (SetField) action()         {}
func (AddZone) action()          {}
func (RemoveZone) action()       {}
func (AddPlant) action()         {}
func (RemovePlant) action()      {}
func (UpdatePlantZones) action() {}
func (SetStatus) action()        {}
func (LoadProject) action()      {}
func (SetSearch) action()        {}
func (ToggleCategory) action()   {}
func (SetZoneFilter) action()    {}
func (SetSort) action()          {}
func (ClearFilters) action()     {}
