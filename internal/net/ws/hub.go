// Package ws broadcasts simulation snapshots to live viewers over
// websockets and relays their edit commands back into the tick loop,
// mirroring the teacher's subscriber/broadcast pattern in server/hub.go.
package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/sim"
	"github.com/Kristofy/uniform-dispersion-problem-3d/internal/telemetry"
)

const writeWait = 5 * time.Second

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans a single Loop's snapshots out to any number of connected
// viewers and forwards their edit commands into the loop's command buffer.
type Hub struct {
	mu      sync.Mutex
	clients map[uint64]*client
	nextID  atomic.Uint64

	loop   *sim.Loop
	logger telemetry.Logger
}

// NewHub wraps loop with a broadcaster. logger defaults to a no-op.
func NewHub(loop *sim.Loop, logger telemetry.Logger) *Hub {
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	return &Hub{
		clients: make(map[uint64]*client),
		loop:    loop,
		logger:  logger,
	}
}

// Register adds conn as a viewer and returns the id used to unregister it
// and the current snapshot to send as the initial frame.
func (h *Hub) Register(conn *websocket.Conn) (uint64, sim.Snapshot) {
	id := h.nextID.Add(1)
	h.mu.Lock()
	h.clients[id] = &client{conn: conn}
	h.mu.Unlock()
	return id, h.loop.Engine().Snapshot()
}

// Unregister drops the viewer and closes its connection.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	c, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

// Enqueue stages cmd for the next tick. It returns false if the command
// buffer is full, mirroring Loop.Enqueue.
func (h *Hub) Enqueue(cmd sim.Command) bool {
	return h.loop.Enqueue(cmd)
}

// Broadcast marshals result's snapshot once and writes it to every
// connected viewer, dropping any client whose write fails.
func (h *Hub) Broadcast(result sim.LoopStepResult) {
	msg := snapshotMessage{
		Type:     "snapshot",
		Tick:     result.Tick,
		Snapshot: result.Snapshot,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Printf("failed to marshal snapshot: %v", err)
		return
	}

	h.mu.Lock()
	clients := make(map[uint64]*client, len(h.clients))
	for id, c := range h.clients {
		clients[id] = c
	}
	h.mu.Unlock()

	for id, c := range clients {
		if err := c.write(data); err != nil {
			h.logger.Printf("dropping viewer %d: %v", id, err)
			h.Unregister(id)
		}
	}
}

type snapshotMessage struct {
	Type     string       `json:"type"`
	Tick     uint64       `json:"tick"`
	Snapshot sim.Snapshot `json:"snapshot"`
}
