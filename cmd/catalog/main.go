package main

import (
	"context"
	"time"

	"github.com/niksmo/catalog/config"
	"github.com/niksmo/catalog/internal/app"
	"github.com/niksmo/catalog/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	if cfg.Mode == config.ModeHTTP {
		cfg.Print()
	}

	catalogApp := app.New(sigCtx, cfg)

	catalogApp.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	catalogApp.Close(ctx)
}
