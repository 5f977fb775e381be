package ingest

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/erikgalindohub/structurecareapp/internal/catalog/domain"
)

// Column positions in the catalog sheet. Column 0 is an unused row marker.
const (
	colName = iota + 1
	colScientific
	colType
	colSize
	colAesthetic
	colLight
	colSoil
	colWater
	colBenefits
	colSubType
)

// Parse turns a tab-separated catalog export into plant records. The first row is a header.
// Rows without a name are skipped but still consume an id, so ids stay tied to sheet rows.
func Parse(body []byte, placeholderBase string) []domain.Plant {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return []domain.Plant{}
	}

	rows := strings.Split(text, "\n")
	plants := make([]domain.Plant, 0, len(rows))
	for i, row := range rows[1:] {
		cells := strings.Split(strings.TrimRight(row, "\r"), "\t")
		name := cell(cells, colName, "")
		if name == "" {
			continue
		}
		plants = append(plants, domain.Plant{
			ID:         fmt.Sprintf("db-%d", i+1),
			Name:       name,
			Scientific: cell(cells, colScientific, ""),
			Type:       cell(cells, colType, domain.DefaultType),
			Size:       cell(cells, colSize, domain.DefaultSize),
			Aesthetic:  cell(cells, colAesthetic, domain.DefaultAesthetic),
			Light:      cell(cells, colLight, domain.DefaultCare),
			Soil:       cell(cells, colSoil, domain.DefaultCare),
			Water:      cell(cells, colWater, domain.DefaultCare),
			Benefits:   cell(cells, colBenefits, domain.DefaultCare),
			SubType:    cell(cells, colSubType, domain.DefaultSubType),
			ImageURL:   placeholderBase + escapeComponent(name),
		})
	}
	return plants
}

func cell(cells []string, idx int, fallback string) string {
	if idx >= len(cells) {
		return fallback
	}
	if v := strings.TrimSpace(cells[idx]); v != "" {
		return v
	}
	return fallback
}

// escapeComponent escapes s for use inside a query value, encoding spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
