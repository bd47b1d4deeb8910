package ws

import (
	"encoding/json"
	nethttp "net/http"

	"github.com/gorilla/websocket"

	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/sim"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/telemetry"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/world"
)

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	Logger telemetry.Logger
}

// Handler upgrades HTTP connections to websockets and serves them as
// live-view sessions against a Hub.
type Handler struct {
	hub      *Hub
	logger   telemetry.Logger
	upgrader websocket.Upgrader
}

// NewHandler constructs a Handler over hub.
func NewHandler(hub *Hub, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *nethttp.Request) bool { return true },
		},
	}
}

// Handle upgrades the request and serves the viewer session until the
// connection closes.
func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed: %v", err)
		return
	}

	id, snapshot := h.hub.Register(conn)
	defer h.hub.Unregister(id)

	initial := snapshotMessage{Type: "snapshot", Snapshot: snapshot}
	data, err := json.Marshal(initial)
	if err != nil {
		h.logger.Printf("failed to marshal initial snapshot: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg viewerMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Printf("discarding malformed viewer message: %v", err)
			continue
		}

		cmd, ok := msg.toCommand()
		if !ok {
			h.logger.Printf("unknown viewer command %q", msg.Type)
			continue
		}
		h.hub.Enqueue(cmd)
	}
}

// viewerMessage is the JSON envelope a live-view client sends to edit the
// running simulation (spec.md §6's host edit commands, relayed over the
// wire instead of an in-process call).
type viewerMessage struct {
	Type              string `json:"type"`
	X                 int    `json:"x"`
	Y                 int    `json:"y"`
	Z                 int    `json:"z"`
	Kind              int    `json:"kind"`
	Index             int    `json:"index"`
	ActiveProbability int    `json:"activeProbability"`
}

func (m viewerMessage) toCommand() (sim.Command, bool) {
	switch m.Type {
	case "setCell":
		return sim.Command{
			Type:    sim.CommandSetCell,
			SetCell: &sim.SetCellPayload{X: m.X, Y: m.Y, Z: m.Z, Kind: world.CellKind(m.Kind)},
		}, true
	case "addRobot":
		return sim.Command{
			Type:     sim.CommandAddRobot,
			AddRobot: &sim.AddRobotPayload{X: m.X, Y: m.Y, Z: m.Z},
		}, true
	case "loadMap":
		return sim.Command{
			Type:    sim.CommandLoadMap,
			LoadMap: &sim.LoadMapPayload{Index: m.Index},
		}, true
	case "setActiveProbability":
		return sim.Command{
			Type:                 sim.CommandSetActiveProbability,
			SetActiveProbability: &sim.SetActiveProbabilityPayload{Probability: m.ActiveProbability},
		}, true
	case "setStartPosition":
		return sim.Command{
			Type:             sim.CommandSetStartPosition,
			SetStartPosition: &sim.SetStartPositionPayload{X: m.X, Y: m.Y, Z: m.Z},
		}, true
	case "reset":
		return sim.Command{Type: sim.CommandReset}, true
	default:
		return sim.Command{}, false
	}
}
