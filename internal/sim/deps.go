package sim

import (
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/telemetry"
	"github.com/Kristofy/uniform-dispersion-problem-3d/logging"
)

// Deps carries shared infrastructure dependencies required by the
// simulation engine: a logger, a metrics sink, a wall-clock abstraction for
// pacing the tick loop, and the host-provided randomness source spec.md §5
// calls "a single process-wide pseudorandom integer source supplied by the
// host". None of these feed the deterministic per-tick decision state
// except RNG.
type Deps struct {
	Logger  telemetry.Logger
	Metrics telemetry.Metrics
	Clock   logging.Clock
	RNG     RNG

	// Events receives the diagnostic anomaly notices described in
	// SPEC_FULL.md §2.1 (settlement anomalies, arena overflow, map loads,
	// completion). A nil Events drops them; engine behavior is unaffected
	// either way.
	Events logging.Publisher
}
