package room

import "github.com/watchparty/server/internal/domain"

// Broadcast fans msg out to every connection in the room except
// exclude. Each delivery is attempted independently; connections whose
// send fails are removed from the room after the pass, so a stale
// connection heals itself on next use even if its session never ran a
// clean close. Sends happen outside the room lock.
func (r *Room) Broadcast(msg any, exclude domain.Connection) {
	r.mu.Lock()
	conns := make([]domain.Connection, 0, len(r.conns))
	for c := range r.conns {
		if c == exclude {
			continue
		}
		conns = append(conns, c)
	}
	r.mu.Unlock()

	var dead []domain.Connection
	for _, c := range conns {
		if err := c.Send(msg); err != nil {
			dead = append(dead, c)
		}
	}

	if len(dead) == 0 {
		return
	}

	r.mu.Lock()
	for _, c := range dead {
		delete(r.conns, c)
	}
	r.mu.Unlock()
}
