package sim

import "testing"

type fakeMetrics struct {
	adds   map[string]uint64
	stores map[string]uint64
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{adds: map[string]uint64{}, stores: map[string]uint64{}}
}

func (f *fakeMetrics) Add(key string, delta uint64)   { f.adds[key] += delta }
func (f *fakeMetrics) Store(key string, value uint64) { f.stores[key] = value }

func TestCommandBufferPushDrainFIFO(t *testing.T) {
	b := NewCommandBuffer(4, nil)
	b.Push(Command{Type: CommandReset})
	b.Push(Command{Type: CommandAddRobot, AddRobot: &AddRobotPayload{X: 1}})
	b.Push(Command{Type: CommandLoadMap, LoadMap: &LoadMapPayload{Index: 2}})

	cmds := b.Drain()
	if len(cmds) != 3 {
		t.Fatalf("Drain returned %d commands, want 3", len(cmds))
	}
	if cmds[0].Type != CommandReset || cmds[1].Type != CommandAddRobot || cmds[2].Type != CommandLoadMap {
		t.Errorf("Drain order = %v, want FIFO", cmds)
	}
	if b.Len() != 0 {
		t.Errorf("Len after Drain = %d, want 0", b.Len())
	}
}

func TestCommandBufferOverflowRejectsPush(t *testing.T) {
	metrics := newFakeMetrics()
	b := NewCommandBuffer(2, metrics)
	if !b.Push(Command{Type: CommandReset}) {
		t.Fatalf("first Push should succeed")
	}
	if !b.Push(Command{Type: CommandReset}) {
		t.Fatalf("second Push should succeed")
	}
	if b.Push(Command{Type: CommandReset}) {
		t.Fatalf("third Push should be rejected, buffer at capacity 2")
	}
	if got := metrics.adds[commandBufferOverflowMetricKey]; got != 1 {
		t.Errorf("overflow metric = %d, want 1", got)
	}
}

func TestCommandBufferWrapsAroundRing(t *testing.T) {
	b := NewCommandBuffer(2, nil)
	b.Push(Command{Type: CommandReset})
	b.Drain()
	b.Push(Command{Type: CommandAddRobot, AddRobot: &AddRobotPayload{X: 7}})
	b.Push(Command{Type: CommandLoadMap, LoadMap: &LoadMapPayload{Index: 1}})

	cmds := b.Drain()
	if len(cmds) != 2 {
		t.Fatalf("Drain returned %d commands, want 2", len(cmds))
	}
	if cmds[0].AddRobot == nil || cmds[0].AddRobot.X != 7 {
		t.Errorf("first drained command = %v, want AddRobot{X:7}", cmds[0])
	}
	if cmds[1].LoadMap == nil || cmds[1].LoadMap.Index != 1 {
		t.Errorf("second drained command = %v, want LoadMap{Index:1}", cmds[1])
	}
}

func TestCommandBufferZeroCapacityClampsToOne(t *testing.T) {
	b := NewCommandBuffer(0, nil)
	if b.Capacity() != 1 {
		t.Errorf("Capacity() = %d, want 1", b.Capacity())
	}
}

func TestCommandBufferNilReceiverIsSafe(t *testing.T) {
	var b *CommandBuffer
	if b.Push(Command{}) {
		t.Errorf("Push on a nil buffer should report failure")
	}
	if b.Drain() != nil {
		t.Errorf("Drain on a nil buffer should return nil")
	}
	if b.Len() != 0 {
		t.Errorf("Len on a nil buffer should be 0")
	}
	if b.Capacity() != 0 {
		t.Errorf("Capacity on a nil buffer should be 0")
	}
}
