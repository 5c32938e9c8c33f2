package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/promptdesk/internal/buildinfo"
	"github.com/dmitrijs2005/promptdesk/internal/server"
	"github.com/dmitrijs2005/promptdesk/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
