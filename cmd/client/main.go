package main

import (
	"context"
	"log"
	"os"

	_ "time/tzdata"

	"github.com/dmitrijs2005/aideasy/internal/buildinfo"
	"github.com/dmitrijs2005/aideasy/internal/client/calendar"
	"github.com/dmitrijs2005/aideasy/internal/client/cli"
	"github.com/dmitrijs2005/aideasy/internal/client/client"
	"github.com/dmitrijs2005/aideasy/internal/client/config"
	"github.com/dmitrijs2005/aideasy/internal/client/services"
	"github.com/dmitrijs2005/aideasy/internal/client/session"
	"github.com/dmitrijs2005/aideasy/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("%v", err)
	}

	store, err := session.OpenSQLiteStore(ctx, cfg.SessionDB)
	if err != nil {
		log.Fatalf("session store error: %v", err)
	}
	defer store.Close()

	// The hook needs the app, the app needs the services built on the client.
	var app *cli.App
	apiClient, err := client.NewHTTPClient(cfg.ServerURL, store,
		client.WithLogger(logger.With("module", "api_client")),
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRefreshThreshold(cfg.RefreshThreshold),
		client.WithTokenTTL(cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		client.WithQueueCapacity(cfg.RefreshQueueCapacity),
		client.WithSessionExpiredHook(func() {
			if app != nil {
				app.OnSessionExpired()
			}
		}),
	)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app = cli.NewApp(cfg,
		services.NewAuthService(apiClient),
		services.NewScheduleService(apiClient, calendar.New(loc), cfg.HourRange()),
		services.NewDirectoryService(apiClient),
		os.Stdin, os.Stdout,
	)

	app.Run(ctx)

}
