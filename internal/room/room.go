package room

import (
	"sync"
	"time"

	"github.com/watchparty/server/internal/domain"
)

// Room is the authoritative playback state for one watch party. Every
// session goroutine in the room shares the same instance, so all state
// access goes through the room mutex. Mutation is expected only from
// the host's command stream, but joins and connection pruning race with
// it from other goroutines.
type Room struct {
	mu        sync.Mutex
	isPlaying bool
	position  float64 // seconds
	updatedAt time.Time
	mediaID   string
	hostID    string
	conns     map[domain.Connection]string // conn -> client id
}

func newRoom(createdAt time.Time) *Room {
	return &Room{
		updatedAt: createdAt,
		conns:     make(map[domain.Connection]string),
	}
}

// Snapshot is the room state as sent to clients. Position is already
// extrapolated to the snapshot moment.
type Snapshot struct {
	IsPlaying bool
	Position  float64
	MediaID   string
	HostID    string
}

type JoinResult struct {
	HostID string
	IsHost bool
}

// AddClient registers a connection. The first client to ever join
// becomes host and keeps that role for the room's lifetime; there is no
// re-election when the host disconnects. A supplied media id is adopted
// only if the room has none yet and the joiner is the host.
func (r *Room) AddClient(conn domain.Connection, clientID, mediaID string) JoinResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[conn] = clientID

	if r.hostID == "" {
		r.hostID = clientID
	}
	if r.mediaID == "" && mediaID != "" && clientID == r.hostID {
		r.mediaID = mediaID
	}

	return JoinResult{HostID: r.hostID, IsHost: r.hostID == clientID}
}

// RemoveClient is a no-op if the connection is already gone; the
// session's close path and the broadcaster's pruning both call it.
func (r *Room) RemoveClient(conn domain.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conns, conn)
}

func (r *Room) IsHost(clientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.hostID != "" && r.hostID == clientID
}

func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.hostID
}

func (r *Room) ClientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.conns)
}

// EffectivePosition extrapolates the committed position with the time
// elapsed since the last state change while playing. Clients render
// this value instead of the last raw position.
func (r *Room) EffectivePosition(now time.Time) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.effectivePosition(now)
}

func (r *Room) effectivePosition(now time.Time) float64 {
	if !r.isPlaying {
		return r.position
	}
	return r.position + now.Sub(r.updatedAt).Seconds()
}

func (r *Room) Snapshot(now time.Time) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		IsPlaying: r.isPlaying,
		Position:  r.effectivePosition(now),
		MediaID:   r.mediaID,
		HostID:    r.hostID,
	}
}

// SetMedia switches content. Changing media invalidates the previous
// timeline, so playback resets to a paused position of zero.
func (r *Room) SetMedia(mediaID string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.mediaID = mediaID
	r.isPlaying = false
	r.position = 0
	r.updatedAt = now
}

func (r *Room) Play(at float64, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.position = at
	r.isPlaying = true
	r.updatedAt = now
}

func (r *Room) Pause(at float64, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.position = at
	r.isPlaying = false
	r.updatedAt = now
}

func (r *Room) Seek(to float64, playing bool, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.position = to
	r.isPlaying = playing
	r.updatedAt = now
}
