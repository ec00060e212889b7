package main

import (
	"context"

	"github.com/aegislabs/aegis-backend/internal/client/cli"
	"github.com/aegislabs/aegis-backend/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Root(ctx)

}
