package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/erikgalindohub/structurecareapp/internal/catalog/ingest"
	"github.com/erikgalindohub/structurecareapp/internal/selection"
)

// RunCatalog fetches the catalog once and prints it, sorted by name, as JSON on stdout.
func RunCatalog(args []string) error {
	url := os.Getenv("CATALOG_URL")
	if len(args) > 0 {
		url = args[0]
	}
	if url == "" {
		return fmt.Errorf("catalog url required (argument or CATALOG_URL)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	plants, err := ingest.NewLoader(url).Load(ctx)
	if err != nil {
		return err
	}

	counts := map[string]int{}
	for _, p := range plants {
		for _, c := range selection.Categories {
			if c.Contains(p.Type) {
				counts[c.Name]++
			}
		}
	}

	out := struct {
		Count      int            `json:"count"`
		Categories map[string]int `json:"categories"`
		Plants     any            `json:"plants"`
	}{
		Count:      len(plants),
		Categories: counts,
		Plants:     selection.Sort(plants, selection.SortByName),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
