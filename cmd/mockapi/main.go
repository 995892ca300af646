package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/aideasy/internal/buildinfo"
	"github.com/dmitrijs2005/aideasy/internal/mockapi"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := mockapi.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := mockapi.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Printf("%v", err)
	}

}
