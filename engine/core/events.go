package core

import "github.com/1siamBot/rts-navigation/engine/maplib"

// Event represents a map lifecycle or terrain event
type Event struct {
	Type    EventType
	Tick    uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtMapLoaded EventType = iota
	EvtTileChanged
	EvtMapUnloaded
)

func (t EventType) String() string {
	switch t {
	case EvtMapLoaded:
		return "map_loaded"
	case EvtTileChanged:
		return "tile_changed"
	case EvtMapUnloaded:
		return "map_unloaded"
	}
	return "unknown"
}

// MapLoaded is the payload of EvtMapLoaded
type MapLoaded struct {
	Map *maplib.TileMap
}

// TileChange is the payload of EvtTileChanged. Tile holds the new value.
type TileChange struct {
	Desc maplib.TileDesc
	Tile maplib.Tile
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
	tick      uint64
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	if e.Tick == 0 {
		e.Tick = eb.tick
	}
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int { return len(eb.queue) }

// Dispatch processes all queued events and advances the tick. Handlers may
// emit; those events are delivered on the next Dispatch.
func (eb *EventBus) Dispatch() {
	queue := eb.queue
	eb.queue = nil
	for _, e := range queue {
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
	eb.tick++
}

// Tick returns the number of dispatches so far
func (eb *EventBus) Tick() uint64 { return eb.tick }
