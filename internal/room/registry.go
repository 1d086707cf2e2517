package room

import (
	"sync"

	"github.com/jonboulle/clockwork"
)

const roomIDLength = 8

// Registry owns every room for the process lifetime. Rooms are created
// lazily on first reference and are never expired.
type Registry struct {
	clock clockwork.Clock
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry(clock clockwork.Clock) *Registry {
	return &Registry{
		clock: clock,
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room for roomID, creating it if needed.
// Concurrent calls racing on a brand-new id all get the same instance.
func (g *Registry) GetOrCreate(roomID string) *Room {
	g.mu.RLock()
	r, ok := g.rooms[roomID]
	g.mu.RUnlock()
	if ok {
		return r
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if r, ok := g.rooms[roomID]; ok {
		return r
	}

	r = newRoom(g.clock.Now())
	g.rooms[roomID] = r

	return r
}

// CreateRoom registers an empty room under a fresh short id and returns
// the id.
func (g *Registry) CreateRoom() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		roomID := shortID(roomIDLength)
		if _, ok := g.rooms[roomID]; ok {
			continue
		}

		g.rooms[roomID] = newRoom(g.clock.Now())
		return roomID
	}
}

// Stats reports the current number of rooms and connected clients.
func (g *Registry) Stats() (rooms, clients int) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	rooms = len(g.rooms)
	for _, r := range g.rooms {
		clients += r.ClientCount()
	}
	return rooms, clients
}
