package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"

	"github.com/erikgalindohub/structurecareapp/config"
	"github.com/erikgalindohub/structurecareapp/internal/api/http/routes"
	"github.com/erikgalindohub/structurecareapp/internal/auth"
	"github.com/erikgalindohub/structurecareapp/internal/bootstrap"
	"github.com/erikgalindohub/structurecareapp/internal/catalog/ingest"
	catalogsvc "github.com/erikgalindohub/structurecareapp/internal/catalog/service"
	"github.com/erikgalindohub/structurecareapp/internal/guide"
	"github.com/erikgalindohub/structurecareapp/internal/logging"
	"github.com/erikgalindohub/structurecareapp/internal/projects/service"
)

const serviceName = "structurecare-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.SetLevel(cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app *firebase.App
	if !cfg.Firebase.AuthDisabled || cfg.Database.Driver == config.DriverFirestore {
		app, err = auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
	}

	identity, err := identityProvider(ctx, cfg, app)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	gw, err := bootstrap.OpenGateway(ctx, cfg.Database, rdb, app)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer gw.Close()

	loader := ingest.NewLoader(cfg.Catalog.URL,
		ingest.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.Timeout}),
		ingest.WithRateLimit(cfg.Catalog.RatePerSecond),
		ingest.WithPlaceholderBase(cfg.Catalog.PlaceholderBase),
	)
	catalog := catalogsvc.New(loader)
	if err := catalog.Start(ctx, cfg.Catalog.RefreshSchedule); err != nil {
		log.Fatalf("catalog: %v", err)
	}
	defer catalog.Stop()

	var archive guide.Archive
	if cfg.Guide.ArchiveEnabled() {
		archive, err = guide.NewS3Archive(ctx, guide.S3Config{
			Region:          cfg.Guide.S3Region,
			Bucket:          cfg.Guide.S3Bucket,
			Endpoint:        cfg.Guide.S3Endpoint,
			AccessKeyID:     cfg.Guide.S3AccessKey,
			SecretAccessKey: cfg.Guide.S3SecretKey,
			PathStyle:       cfg.Guide.S3UsePathStyle,
		})
		if err != nil {
			log.Fatalf("guide archive: %v", err)
		}
	}

	sessions := service.New(gw, catalog, service.NewRegistry(cfg.Sessions.MaxOpen, cfg.Sessions.TTL))

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Store:          gw,
		V1: routes.V1Deps{
			Identity: identity,
			Catalog:  catalog,
			Sessions: sessions,
			Projects: gw,
			Business: guide.Business{
				Name:     cfg.Guide.BusinessName,
				Tagline:  cfg.Guide.BusinessTagline,
				Location: cfg.Guide.BusinessLocation,
				Phone:    cfg.Guide.BusinessPhone,
				Website:  cfg.Guide.BusinessWebsite,
			},
			Archive: archive,
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("%s listening on :%s (env=%s store=%s)", serviceName, cfg.Server.Port, cfg.App.Environment, cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func identityProvider(ctx context.Context, cfg *config.Config, app *firebase.App) (auth.Provider, error) {
	if cfg.Firebase.AuthDisabled {
		log.Printf("WARNING: AUTH_DISABLED=true, every request runs as the local operator")
		return auth.StaticProvider{Identity: auth.Identity{UID: "local", DisplayIdentity: "Local Operator"}}, nil
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return auth.NewFirebaseProvider(client, cfg.Firebase.AllowedDomain), nil
}
