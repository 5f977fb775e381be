package domain

// Plant is one row of the plant catalog. Records are never mutated after ingestion.
type Plant struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Scientific string `json:"scientific"`
	Type       string `json:"type"`
	Size       string `json:"size"`
	Aesthetic  string `json:"aesthetic"`
	Light      string `json:"light"`
	Soil       string `json:"soil"`
	Water      string `json:"water"`
	Benefits   string `json:"benefits"`
	SubType    string `json:"subType"`
	ImageURL   string `json:"imageUrl"`
}

// Column defaults applied when a catalog cell is missing or blank.
const (
	DefaultType      = "Perennial"
	DefaultSize      = "Medium"
	DefaultAesthetic = "Description Missing"
	DefaultCare      = "Varies"
	DefaultSubType   = "General"
)
