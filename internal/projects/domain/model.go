package domain

import (
	"slices"
	"strings"
	"time"

	catalog "github.com/erikgalindohub/structurecareapp/internal/catalog/domain"
)

type Status string

const (
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusInProgress, StatusCompleted:
		return Status(s), true
	}
	return "", false
}

// PlantSelection is a catalog plant chosen for a project. Display fields are copied at
// selection time so a saved project renders without the catalog.
type PlantSelection struct {
	ID         string   `json:"id" firestore:"id"`
	Name       string   `json:"name" firestore:"name"`
	Scientific string   `json:"scientific" firestore:"scientific"`
	Type       string   `json:"type" firestore:"type"`
	Light      string   `json:"light" firestore:"light"`
	Soil       string   `json:"soil" firestore:"soil"`
	Water      string   `json:"water" firestore:"water"`
	Aesthetic  string   `json:"aesthetic" firestore:"aesthetic"`
	Benefits   string   `json:"benefits" firestore:"benefits"`
	ImageURL   string   `json:"imageUrl" firestore:"imageUrl"`
	Zones      []string `json:"zones" firestore:"zones"`
}

func NewSelection(p catalog.Plant, zones []string) PlantSelection {
	return PlantSelection{
		ID:         p.ID,
		Name:       p.Name,
		Scientific: p.Scientific,
		Type:       p.Type,
		Light:      p.Light,
		Soil:       p.Soil,
		Water:      p.Water,
		Aesthetic:  p.Aesthetic,
		Benefits:   p.Benefits,
		ImageURL:   p.ImageURL,
		Zones:      zones,
	}
}

// Project is one client's landscaping plan.
type Project struct {
	ID             string           `json:"id" firestore:"-"`
	ClientName     string           `json:"clientName" firestore:"clientName"`
	ClientEmail    string           `json:"clientEmail" firestore:"clientEmail"`
	ClientPhone    string           `json:"clientPhone" firestore:"clientPhone"`
	ProjectAddress string           `json:"projectAddress" firestore:"projectAddress"`
	ClientNotes    string           `json:"clientNotes" firestore:"clientNotes"`
	Zones          []string         `json:"zones" firestore:"zones"`
	Plants         []PlantSelection `json:"plants" firestore:"plants"`
	Status         Status           `json:"status" firestore:"status"`
	DateCreated    *time.Time       `json:"dateCreated" firestore:"dateCreated"`
	DateCompleted  *time.Time       `json:"dateCompleted" firestore:"dateCompleted"`
}

// New returns an empty In Progress project.
func New() Project {
	return Project{
		Zones:  []string{},
		Plants: []PlantSelection{},
		Status: StatusInProgress,
	}
}

// Normalize fills nil collections and a missing status, as stored documents may omit them.
func (p Project) Normalize() Project {
	if p.Zones == nil {
		p.Zones = []string{}
	}
	if p.Plants == nil {
		p.Plants = []PlantSelection{}
	}
	for i := range p.Plants {
		if p.Plants[i].Zones == nil {
			p.Plants[i].Zones = []string{}
		}
	}
	if p.Status == "" {
		p.Status = StatusInProgress
	}
	return p
}

// Clone returns a deep copy.
func (p Project) Clone() Project {
	out := p
	out.Zones = slices.Clone(p.Zones)
	out.Plants = make([]PlantSelection, len(p.Plants))
	for i, s := range p.Plants {
		s.Zones = slices.Clone(s.Zones)
		out.Plants[i] = s
	}
	if p.DateCreated != nil {
		t := *p.DateCreated
		out.DateCreated = &t
	}
	if p.DateCompleted != nil {
		t := *p.DateCompleted
		out.DateCompleted = &t
	}
	return out.Normalize()
}

func (p Project) IsCompleted() bool { return p.Status == StatusCompleted }

func (p Project) HasZone(label string) bool { return slices.Contains(p.Zones, label) }

func (p Project) SelectionIndex(plantID string) int {
	return slices.IndexFunc(p.Plants, func(s PlantSelection) bool { return s.ID == plantID })
}

// Assignments maps each selected plant id to its zones.
func (p Project) Assignments() map[string][]string {
	out := make(map[string][]string, len(p.Plants))
	for _, s := range p.Plants {
		out[s.ID] = s.Zones
	}
	return out
}

// Unassigned returns selections that have no zone.
func (p Project) Unassigned() []PlantSelection {
	var out []PlantSelection
	for _, s := range p.Plants {
		if len(s.Zones) == 0 {
			out = append(out, s)
		}
	}
	return out
}

// HasContact reports whether the client name and email are both filled in.
func (p Project) HasContact() bool {
	return strings.TrimSpace(p.ClientName) != "" && strings.TrimSpace(p.ClientEmail) != ""
}

// Matches reports whether q appears in the client name or email (case-insensitive) or phone.
func (p Project) Matches(q string) bool {
	if q == "" {
		return true
	}
	lq := strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.ClientName), lq) ||
		strings.Contains(strings.ToLower(p.ClientEmail), lq) ||
		strings.Contains(p.ClientPhone, q)
}
