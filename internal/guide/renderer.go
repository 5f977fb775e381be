// Package guide renders the client-facing landscape care guide for a completed project.
package guide

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
)

var (
	ErrNotCompleted = errors.New("the client guide is available once the project is completed")
	ErrNoPlants     = errors.New("please select plants before attempting to generate the report")
)

//go:embed templates/guide.html.tmpl
var templateFS embed.FS

var guideTemplate = template.Must(
	template.New("guide.html.tmpl").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/guide.html.tmpl"),
)

// Business identifies the landscaping company on the guide.
type Business struct {
	Name     string
	Tagline  string
	Location string
	Phone    string
	Website  string
}

type labelled struct {
	Label string
	Value string
}

type plantCard struct {
	Name        string
	Scientific  string
	Description string
	Care        []labelled
	Zones       []string
}

type page struct {
	Project     domain.Project
	Business    Business
	Meta        []labelled
	Notes       string
	Plants      []plantCard
	FooterLeft  string
	FooterRight string
}

// Render produces the care guide HTML for p. The project must be completed and have at
// least one plant. All project text is escaped.
func Render(p domain.Project, b Business) ([]byte, error) {
	if !p.IsCompleted() {
		return nil, ErrNotCompleted
	}
	if len(p.Plants) == 0 {
		return nil, ErrNoPlants
	}

	var buf bytes.Buffer
	if err := guideTemplate.Execute(&buf, buildPage(p, b)); err != nil {
		return nil, fmt.Errorf("render guide: %w", err)
	}
	return buf.Bytes(), nil
}

func buildPage(p domain.Project, b Business) page {
	pg := page{
		Project:     p,
		Business:    b,
		Notes:       strings.TrimSpace(p.ClientNotes),
		FooterRight: b.Website,
	}

	if p.ClientName != "" {
		pg.Meta = append(pg.Meta, labelled{"Homeowner", p.ClientName})
	}
	if p.ProjectAddress != "" {
		pg.Meta = append(pg.Meta, labelled{"Project Address", p.ProjectAddress})
	}
	if d := completionDate(p); d != "" {
		pg.Meta = append(pg.Meta, labelled{"Project Completed", d})
	}

	var footer []string
	for _, s := range []string{b.Name, b.Phone} {
		if s != "" {
			footer = append(footer, s)
		}
	}
	pg.FooterLeft = strings.Join(footer, " • ")

	for _, s := range p.Plants {
		pg.Plants = append(pg.Plants, buildCard(s))
	}
	return pg
}

func buildCard(s domain.PlantSelection) plantCard {
	card := plantCard{
		Name:        s.Name,
		Scientific:  s.Scientific,
		Description: s.Aesthetic,
		Zones:       s.Zones,
	}
	if card.Description == "" {
		card.Description = s.Benefits
	}
	for _, cp := range []labelled{{"Light", s.Light}, {"Water", s.Water}, {"Soil", s.Soil}, {"Type", s.Type}} {
		if cp.Value != "" {
			card.Care = append(card.Care, cp)
		}
	}
	return card
}

func completionDate(p domain.Project) string {
	var t *time.Time
	switch {
	case p.DateCompleted != nil:
		t = p.DateCompleted
	case p.DateCreated != nil:
		t = p.DateCreated
	default:
		return ""
	}
	return t.Format("January 2, 2006")
}
