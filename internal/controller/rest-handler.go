package controller

import (
	"net/http"

	"github.com/watchparty/server/pkg/rest"
)

func (c *controller) health(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"ok":      true,
		"service": serviceName,
		"ts_ms":   c.nowMS(),
	})
}

func (c *controller) createRoom(w http.ResponseWriter, r *http.Request) {
	roomID := c.registry.CreateRoom()
	c.logger.InfoContext(r.Context(), "room created", "room_id", roomID)

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"room_id": roomID})
}

func (c *controller) stats(w http.ResponseWriter, r *http.Request) {
	rooms, clients := c.registry.Stats()
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"rooms":   rooms,
		"clients": clients,
	})
}
