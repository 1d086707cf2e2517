package controller

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/domain"
	"github.com/watchparty/server/internal/room"
	"github.com/watchparty/server/pkg/ctxlogger"
	"github.com/watchparty/server/pkg/wsconn"
)

const (
	maxNameLength = 40
	defaultName   = "guest"
)

func (c *controller) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	c.serveSession(r, wsconn.New(ws))
}

// serveSession drives one connection through the protocol states:
// awaiting join, active, closed. It runs on the request's goroutine and
// returns when the connection is no longer usable.
func (c *controller) serveSession(r *http.Request, conn *wsconn.Conn) {
	defer conn.Close()

	clientID := room.NewClientID()
	ctx := ctxlogger.AppendCtx(r.Context(), slog.String("client_id", clientID))

	// First message must be join.
	data, err := conn.ReadMessage()
	if err != nil {
		c.logger.DebugContext(ctx, "connection closed before join", "error", err)
		return
	}

	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.DebugContext(ctx, "malformed first message", "error", err)
		return
	}
	if env.Type != domain.TypeJoin {
		c.logger.DebugContext(ctx, "first message is not join", "type", env.Type)
		conn.CloseWithCode(websocket.CloseProtocolError, "first message must be join")
		return
	}

	var join domain.JoinInput
	if err := json.Unmarshal(data, &join); err != nil {
		c.logger.DebugContext(ctx, "malformed join message", "error", err)
		return
	}

	join.Room = strings.TrimSpace(join.Room)
	if validationErrors, ok := c.validate.Validate(join); !ok {
		c.logger.DebugContext(ctx, "invalid join message", "errors", validationErrors)
		conn.CloseWithCode(websocket.ClosePolicyViolation, "room is required")
		return
	}

	name := join.Name
	if name == "" {
		name = defaultName
	}
	if runes := []rune(name); len(runes) > maxNameLength {
		name = string(runes[:maxNameLength])
	}

	// want_host is accepted but has no effect: the host slot is only
	// ever open to the first joiner, who gets it regardless of the
	// flag.
	rm := c.registry.GetOrCreate(join.Room)
	res := rm.AddClient(conn, clientID, strings.TrimSpace(join.MediaID))
	defer rm.RemoveClient(conn)

	ctx = ctxlogger.AppendCtx(ctx, slog.String("room_id", join.Room))
	c.logger.InfoContext(ctx, "client joined", "name", name, "is_host", res.IsHost)

	if err := conn.Send(domain.Welcome{
		Type:     domain.TypeWelcome,
		ClientID: clientID,
		Room:     join.Room,
		HostID:   res.HostID,
	}); err != nil {
		c.logger.DebugContext(ctx, "failed to send welcome", "error", err)
		return
	}

	snap := rm.Snapshot(c.clock.Now())
	if err := conn.Send(domain.State{
		Type:      domain.TypeState,
		IsPlaying: snap.IsPlaying,
		Position:  snap.Position,
		ServerTS:  c.nowMS(),
		MediaID:   snap.MediaID,
		HostID:    snap.HostID,
	}); err != nil {
		c.logger.DebugContext(ctx, "failed to send state", "error", err)
		return
	}

	rm.Broadcast(domain.Event{
		Type:     domain.TypeEvent,
		Kind:     domain.KindJoin,
		Payload:  domain.JoinPayload{ClientID: clientID, Name: name},
		ServerTS: c.nowMS(),
		HostID:   res.HostID,
	}, conn)

	c.activeLoop(ctx, conn, rm, clientID)
}

func (c *controller) activeLoop(ctx context.Context, conn *wsconn.Conn, rm *room.Room, clientID string) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			c.logger.DebugContext(ctx, "session closed", "error", err)
			return
		}

		var env domain.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.logger.DebugContext(ctx, "malformed message", "error", err)
			return
		}

		if env.Type == domain.TypePing {
			var in domain.PingInput
			if err := json.Unmarshal(data, &in); err != nil {
				c.logger.DebugContext(ctx, "malformed ping", "error", err)
				return
			}
			if err := conn.Send(domain.Pong{
				Type:     domain.TypePong,
				T:        in.T,
				ServerTS: c.nowMS(),
			}); err != nil {
				c.logger.DebugContext(ctx, "failed to send pong", "error", err)
				return
			}
			continue
		}

		// Transport commands are host-only. A non-host command is
		// dropped without a reply: the connection stays open and no
		// state or broadcast happens.
		isHost := rm.IsHost(clientID)

		switch env.Type {
		case domain.TypeSetMedia:
			if !isHost {
				continue
			}
			var in domain.SetMediaInput
			if err := json.Unmarshal(data, &in); err != nil {
				c.logger.DebugContext(ctx, "malformed set_media", "error", err)
				return
			}
			mediaID := strings.TrimSpace(in.MediaID)
			rm.SetMedia(mediaID, c.clock.Now())
			c.logger.InfoContext(ctx, "media changed", "media_id", mediaID)
			c.broadcastEvent(rm, domain.KindSetMedia, domain.SetMediaPayload{MediaID: mediaID})

		case domain.TypePlay:
			if !isHost {
				continue
			}
			var in domain.PlayInput
			if err := json.Unmarshal(data, &in); err != nil {
				c.logger.DebugContext(ctx, "malformed play", "error", err)
				return
			}
			rm.Play(in.At, c.clock.Now())
			c.broadcastEvent(rm, domain.KindPlay, domain.PlayPayload{At: in.At})

		case domain.TypePause:
			if !isHost {
				continue
			}
			var in domain.PauseInput
			if err := json.Unmarshal(data, &in); err != nil {
				c.logger.DebugContext(ctx, "malformed pause", "error", err)
				return
			}
			rm.Pause(in.At, c.clock.Now())
			c.broadcastEvent(rm, domain.KindPause, domain.PausePayload{At: in.At})

		case domain.TypeSeek:
			if !isHost {
				continue
			}
			var in domain.SeekInput
			if err := json.Unmarshal(data, &in); err != nil {
				c.logger.DebugContext(ctx, "malformed seek", "error", err)
				return
			}
			rm.Seek(in.To, in.Playing, c.clock.Now())
			c.broadcastEvent(rm, domain.KindSeek, domain.SeekPayload{To: in.To, Playing: in.Playing})

		default:
			// Unknown types are ignored.
		}
	}
}

// broadcastEvent notifies the whole room, sender included, so the host
// sees its own command take effect.
func (c *controller) broadcastEvent(rm *room.Room, kind string, payload any) {
	rm.Broadcast(domain.Event{
		Type:     domain.TypeEvent,
		Kind:     kind,
		Payload:  payload,
		ServerTS: c.nowMS(),
		HostID:   rm.HostID(),
	}, nil)
}
