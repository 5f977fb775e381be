package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
	"github.com/erikgalindohub/structurecareapp/internal/selection"
)

// State is everything an editing session owns.
type State struct {
	Project domain.Project `json:"project"`
	View    selection.Spec `json:"view"`
}

func New() State {
	return State{
		Project: domain.New(),
		View:    selection.Spec{Sort: selection.SortByName},
	}
}

// Reduce applies a to s and returns the next state. s is never modified. Actions whose
// precondition does not hold are no-ops; a rejected action returns s unchanged with a
// *domain.ValidationError.
func Reduce(s State, a Action) (State, error) {
	next := State{Project: s.Project.Clone(), View: s.View}
	p := &next.Project

	switch a := a.(type) {
	case SetField:
		if err := setField(p, a.Field, a.Value); err != nil {
			return s, err
		}

	case AddZone:
		label := strings.TrimSpace(a.Label)
		if label == "" || p.HasZone(label) {
			return s, nil
		}
		p.Zones = append(p.Zones, label)

	case RemoveZone:
		idx := slices.Index(p.Zones, a.Label)
		if idx < 0 {
			return s, nil
		}
		p.Zones = slices.Delete(p.Zones, idx, idx+1)
		for i := range p.Plants {
			p.Plants[i].Zones = slices.DeleteFunc(p.Plants[i].Zones, func(z string) bool { return z == a.Label })
		}
		if next.View.Zone == a.Label {
			next.View.Zone = ""
		}

	case AddPlant:
		if p.SelectionIndex(a.Plant.ID) >= 0 {
			return s, nil
		}
		p.Plants = append(p.Plants, domain.NewSelection(a.Plant, knownZones(*p, a.Zones)))

	case RemovePlant:
		idx := p.SelectionIndex(a.PlantID)
		if idx < 0 {
			return s, nil
		}
		p.Plants = slices.Delete(p.Plants, idx, idx+1)

	case UpdatePlantZones:
		idx := p.SelectionIndex(a.PlantID)
		if idx < 0 {
			return s, nil
		}
		p.Plants[idx].Zones = knownZones(*p, a.Zones)

	case SetStatus:
		if err := setStatus(p, a); err != nil {
			return s, err
		}

	case LoadProject:
		next.Project = a.Project.Clone()

	case SetSearch:
		next.View.Search = a.Term

	case ToggleCategory:
		next.View = selection.ToggleCategory(next.View, a.Name)

	case SetZoneFilter:
		next.View.Zone = a.Zone

	case SetSort:
		mode, err := selection.ParseSortMode(string(a.Mode))
		if err != nil {
			return s, &domain.ValidationError{Field: "sort", Message: err.Error()}
		}
		next.View.Sort = mode

	case ClearFilters:
		next.View = selection.Clear(next.View)

	default:
		return s, fmt.Errorf("unsupported action %T", a)
	}

	return next, nil
}

func setField(p *domain.Project, field, value string) error {
	switch field {
	case FieldClientName:
		p.ClientName = value
	case FieldClientEmail:
		p.ClientEmail = value
	case FieldClientPhone:
		p.ClientPhone = value
	case FieldProjectAddress:
		p.ProjectAddress = value
	case FieldClientNotes:
		p.ClientNotes = value
	default:
		return &domain.ValidationError{Field: field, Message: fmt.Sprintf("unknown project field %q", field)}
	}
	return nil
}

func setStatus(p *domain.Project, a SetStatus) error {
	switch a.Status {
	case domain.StatusInProgress:
		if p.IsCompleted() {
			return &domain.ValidationError{Field: "status", Message: "A completed project cannot be reopened."}
		}
		return nil

	case domain.StatusCompleted:
		if err := ValidateCompletion(*p); err != nil {
			return err
		}
		at := a.At
		p.Status = domain.StatusCompleted
		p.DateCompleted = &at
		return nil
	}
	return &domain.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", a.Status)}
}

// ValidateCompletion reports why p cannot be marked Completed, or nil if it can.
func ValidateCompletion(p domain.Project) error {
	if !p.HasContact() {
		return &domain.ValidationError{Field: "client", Message: "Client Name and Email are required before saving."}
	}
	unassigned := p.Unassigned()
	if len(unassigned) > 0 {
		first := unassigned[0]
		return &domain.ValidationError{
			Field:   "plants",
			PlantID: first.ID,
			Message: fmt.Sprintf(
				"Cannot finalize project. %d selected plant(s) (e.g., %s) do not have any Planting Areas assigned. Please assign areas before completing.",
				len(unassigned), first.Name,
			),
		}
	}
	return nil
}

// knownZones keeps the labels defined on p, in the given order and without duplicates.
func knownZones(p domain.Project, zones []string) []string {
	out := make([]string, 0, len(zones))
	for _, z := range zones {
		if p.HasZone(z) && !slices.Contains(out, z) {
			out = append(out, z)
		}
	}
	return out
}
