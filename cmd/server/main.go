// Command server runs the dispersion simulation behind a websocket
// live-view endpoint.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, app.Config{}); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
