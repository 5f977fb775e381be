package main

import (
	"context"
	"fmt"
	"os"

	"github.com/erikgalindohub/structurecareapp/config"
	"github.com/erikgalindohub/structurecareapp/internal/bootstrap"
	"github.com/erikgalindohub/structurecareapp/internal/guide"
)

// RunGuide renders the care guide of a stored project to a file, or stdout when no file is given.
func RunGuide(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: worker guide <projectID> [outFile]")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.Driver == config.DriverFirestore {
		return fmt.Errorf("guide export supports the SQL store drivers only")
	}

	ctx := context.Background()
	gw, err := bootstrap.OpenGateway(ctx, cfg.Database, nil, nil)
	if err != nil {
		return err
	}
	defer gw.Close()

	p, err := gw.Get(ctx, args[0])
	if err != nil {
		return err
	}
	html, err := guide.Render(p, guide.Business{
		Name:     cfg.Guide.BusinessName,
		Tagline:  cfg.Guide.BusinessTagline,
		Location: cfg.Guide.BusinessLocation,
		Phone:    cfg.Guide.BusinessPhone,
		Website:  cfg.Guide.BusinessWebsite,
	})
	if err != nil {
		return err
	}

	if len(args) < 2 {
		_, err = os.Stdout.Write(html)
		return err
	}
	return os.WriteFile(args[1], html, 0o644)
}
