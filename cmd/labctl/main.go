package main

import (
	"context"

	"github.com/saschasalles/LabPlatformAPI/internal/client/cli"
	"github.com/saschasalles/LabPlatformAPI/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
