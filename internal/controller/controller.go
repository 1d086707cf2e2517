package controller

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/watchparty/server/internal/room"
	"github.com/watchparty/server/pkg/validator"
)

const serviceName = "watch-party-sync"

type controller struct {
	registry *room.Registry
	clock    clockwork.Clock
	upgrader websocket.Upgrader
	validate *validator.Validator
	logger   *slog.Logger
}

func NewController(registry *room.Registry, clock clockwork.Clock, logger *slog.Logger) *controller {
	return &controller{
		registry: registry,
		clock:    clock,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate: validator.NewValidator(),
		logger:   logger,
	}
}

func (c *controller) nowMS() int64 {
	return c.clock.Now().UnixMilli()
}
