// Package app wires the simulation engine, the tick loop, the logging
// router, and the HTTP/websocket surface into a runnable server, the way
// the teacher's internal/app.Run assembles a Hub and an HTTP handler.
package app

import (
	"context"
	"fmt"
	"log"
	nethttp "net/http"
	"os"
	"strconv"

	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/mapdata"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/net/ws"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/sim"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/telemetry"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/world"
	"github.com/Kristofy/uniform-dispersion-problem-3d/logging"
	loggingSinks "github.com/Kristofy/uniform-dispersion-problem-3d/logging/sinks"
)

// Config tunes a Run invocation. Zero values fall back to sensible
// defaults, mirroring the teacher's app.Config/DefaultHubConfig split.
type Config struct {
	Logger telemetry.Logger
	Addr   string

	TickRate        int
	CommandCapacity int
	InitialMap      int
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.TickRate <= 0 {
		c.TickRate = 15
	}
	if c.CommandCapacity <= 0 {
		c.CommandCapacity = 64
	}
	return c
}

// Run builds the engine/loop/router/websocket stack and blocks serving
// HTTP until ctx is cancelled or the listener fails. Environment variables
// TICK_RATE_HZ and INITIAL_MAP_INDEX override Config when set, the way the
// teacher's app.Run reads KEYFRAME_INTERVAL_TICKS and ENABLE_PPROF_TRACE.
func Run(ctx context.Context, cfg Config) error {
	cfg = cfg.withDefaults()

	telemetryLogger := cfg.Logger
	if telemetryLogger == nil {
		telemetryLogger = telemetry.WrapLogger(log.Default())
	}

	if raw := os.Getenv("TICK_RATE_HZ"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.TickRate = value
		} else {
			telemetryLogger.Printf("invalid TICK_RATE_HZ=%q: %v", raw, err)
		}
	}
	if raw := os.Getenv("INITIAL_MAP_INDEX"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			cfg.InitialMap = value
		} else {
			telemetryLogger.Printf("invalid INITIAL_MAP_INDEX=%q: %v", raw, err)
		}
	}

	logConfig := logging.DefaultConfig()
	router, err := logging.NewRouter(logging.SystemClock{}, logConfig, []logging.NamedSink{
		{Name: "console", Sink: loggingSinks.NewConsoleSink(os.Stdout, logConfig.Console)},
	})
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	catalog := mapdata.DefaultCatalog()
	w := &world.World{}
	metrics := logging.NewMetrics()
	deps := sim.Deps{
		Logger:  telemetryLogger,
		Metrics: telemetry.WrapMetrics(metrics),
		Clock:   logging.SystemClock{},
		RNG:     sim.NewDefaultRNG(1),
		Events:  router,
	}

	engine := sim.NewEngine(w, catalog, deps)
	engine.Apply([]sim.Command{{Type: sim.CommandLoadMap, LoadMap: &sim.LoadMapPayload{Index: cfg.InitialMap}}})

	loop := sim.NewLoop(engine, sim.LoopConfig{
		TickRate:        cfg.TickRate,
		CommandCapacity: cfg.CommandCapacity,
	}, deps, sim.LoopHooks{})

	hub := ws.NewHub(loop, telemetryLogger)
	loop.SetAfterStep(hub.Broadcast)

	stop := make(chan struct{})
	go loop.Run(stop)
	defer close(stop)

	mux := nethttp.NewServeMux()
	mux.HandleFunc("/ws", ws.NewHandler(hub, ws.HandlerConfig{Logger: telemetryLogger}).Handle)

	srv := &nethttp.Server{Addr: cfg.Addr, Handler: mux}
	telemetryLogger.Printf("server listening on %s", srv.Addr)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return srv.Close()
	case err := <-errCh:
		if err != nil && err != nethttp.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}
