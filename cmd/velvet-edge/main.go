package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"velvet_bite/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.NewApp()
	if err := a.RunEdge(ctx); err != nil {
		log.Fatal().Err(err).Msg("velvet-edge stopped")
	}
}
