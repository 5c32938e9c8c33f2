package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/promptdesk/internal/buildinfo"
	"github.com/dmitrijs2005/promptdesk/internal/client/cli"
	"github.com/dmitrijs2005/promptdesk/internal/client/client"
	"github.com/dmitrijs2005/promptdesk/internal/client/config"
	"github.com/dmitrijs2005/promptdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/promptdesk/internal/client/services"
	"github.com/dmitrijs2005/promptdesk/internal/client/session"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	db, err := client.InitDatabase(ctx, cfg.SessionDSN)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	storage := session.NewMetadataStorage(metadata.NewSQLiteRepository(db))
	api := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	auth := services.NewAuthService(api, storage)

	s, _, err := auth.Restore(ctx)
	if err != nil {
		log.Printf("could not restore session: %v", err)
	}

	app := cli.NewApp(s, api, auth, services.NewPromptService(api), os.Stdin, os.Stdout)
	app.Run(ctx)
}
