package http

import (
	"errors"
	"fmt"

	catalog "github.com/erikgalindohub/structurecareapp/internal/catalog/domain"
	"github.com/erikgalindohub/structurecareapp/internal/projects/state"
	"github.com/erikgalindohub/structurecareapp/internal/selection"
)

// Wire names for session actions.
const (
	actionSetField         = "SET_FIELD"
	actionAddZone          = "ADD_ZONE"
	actionRemoveZone       = "REMOVE_ZONE"
	actionAddPlant         = "ADD_PLANT"
	actionRemovePlant      = "REMOVE_PLANT"
	actionUpdatePlantZones = "UPDATE_PLANT_ZONES"
	actionSetSearch        = "SET_SEARCH"
	actionToggleCategory   = "TOGGLE_CATEGORY"
	actionSetZoneFilter    = "SET_ZONE_FILTER"
	actionSetSort          = "SET_SORT"
	actionClearFilters     = "CLEAR_FILTERS"
)

var errUnknownPlant = errors.New("plant is not in the catalog")

// actionReq is a session action as posted by the editor. Only the fields the type uses are read.
type actionReq struct {
	Type     string   `json:"type" binding:"required"`
	Field    string   `json:"field"`
	Value    string   `json:"value"`
	Label    string   `json:"label"`
	PlantID  string   `json:"plant_id"`
	Zones    []string `json:"zones"`
	Term     string   `json:"term"`
	Category string   `json:"category"`
	Zone     string   `json:"zone"`
	Sort     string   `json:"sort"`
}

type plantLookup func(id string) (catalog.Plant, bool)

func (r actionReq) toAction(lookup plantLookup) (state.Action, error) {
	switch r.Type {
	case actionSetField:
		return state.SetField{Field: r.Field, Value: r.Value}, nil
	case actionAddZone:
		return state.AddZone{Label: r.Label}, nil
	case actionRemoveZone:
		return state.RemoveZone{Label: r.Label}, nil
	case actionAddPlant:
		p, ok := lookup(r.PlantID)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errUnknownPlant, r.PlantID)
		}
		return state.AddPlant{Plant: p, Zones: r.Zones}, nil
	case actionRemovePlant:
		return state.RemovePlant{PlantID: r.PlantID}, nil
	case actionUpdatePlantZones:
		return state.UpdatePlantZones{PlantID: r.PlantID, Zones: r.Zones}, nil
	case actionSetSearch:
		return state.SetSearch{Term: r.Term}, nil
	case actionToggleCategory:
		return state.ToggleCategory{Name: r.Category}, nil
	case actionSetZoneFilter:
		return state.SetZoneFilter{Zone: r.Zone}, nil
	case actionSetSort:
		return state.SetSort{Mode: selection.SortMode(r.Sort)}, nil
	case actionClearFilters:
		return state.ClearFilters{}, nil
	}
	return nil, fmt.Errorf("unknown action type %q", r.Type)
}
