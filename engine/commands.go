package engine

import "github.com/plus3/wordfall/registry"

// Commands buffers registry changes requested during a tick. They are applied
// by Flush at the end of the tick.
type Commands struct {
	spawns    []registry.FallingItem
	evictions []registry.ItemId
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an item insertion. A zero ID is assigned on flush.
func (c *Commands) Spawn(item registry.FallingItem) {
	c.spawns = append(c.spawns, item)
}

// Evict queues the removal of an item that left the playfield.
func (c *Commands) Evict(id registry.ItemId) {
	c.evictions = append(c.evictions, id)
}

// Pending returns the number of queued spawns.
func (c *Commands) Pending() int {
	return len(c.spawns)
}

// FlushResult lists what a flush changed.
type FlushResult struct {
	Spawned  []registry.FallingItem
	Evicted  []registry.FallingItem
	Rejected int
}

// Flush applies the buffered commands to reg, evictions first so a full
// registry can take new spawns in the same tick, and resets the buffer.
func (c *Commands) Flush(reg *registry.Registry) FlushResult {
	var res FlushResult

	for _, id := range c.evictions {
		if item, ok := reg.Remove(id); ok {
			res.Evicted = append(res.Evicted, item)
		}
	}

	for _, item := range c.spawns {
		id, err := reg.Insert(item)
		if err != nil {
			res.Rejected++
			continue
		}
		item.ID = id
		res.Spawned = append(res.Spawned, item)
	}

	c.spawns = c.spawns[:0]
	c.evictions = c.evictions[:0]
	return res
}
