package domain

// Client -> server message types.
const (
	TypeJoin     = "join"
	TypeSetMedia = "set_media"
	TypePlay     = "play"
	TypePause    = "pause"
	TypeSeek     = "seek"
	TypePing     = "ping"
)

// Server -> client message types.
const (
	TypeWelcome = "welcome"
	TypeState   = "state"
	TypeEvent   = "event"
	TypePong    = "pong"
)

// Event kinds carried by TypeEvent messages.
const (
	KindJoin     = "join"
	KindSetMedia = "set_media"
	KindPlay     = "play"
	KindPause    = "pause"
	KindSeek     = "seek"
)

// Envelope carries only the discriminator; the full payload is decoded
// into the per-type input struct once the type is known.
type Envelope struct {
	Type string `json:"type"`
}

type JoinInput struct {
	Room     string `json:"room" validate:"required"`
	Name     string `json:"name"`
	WantHost bool   `json:"want_host"`
	MediaID  string `json:"media_id"`
}

type SetMediaInput struct {
	MediaID string `json:"media_id"`
}

type PlayInput struct {
	At float64 `json:"at"`
}

type PauseInput struct {
	At float64 `json:"at"`
}

type SeekInput struct {
	To      float64 `json:"to"`
	Playing bool    `json:"playing"`
}

type PingInput struct {
	T int64 `json:"t"`
}

type Welcome struct {
	Type     string `json:"type"`
	ClientID string `json:"client_id"`
	Room     string `json:"room"`
	HostID   string `json:"host_id"`
}

type State struct {
	Type      string  `json:"type"`
	IsPlaying bool    `json:"is_playing"`
	Position  float64 `json:"position"`
	ServerTS  int64   `json:"server_ts"`
	MediaID   string  `json:"media_id"`
	HostID    string  `json:"host_id"`
}

type Event struct {
	Type     string `json:"type"`
	Kind     string `json:"kind"`
	Payload  any    `json:"payload"`
	ServerTS int64  `json:"server_ts"`
	HostID   string `json:"host_id"`
}

type Pong struct {
	Type     string `json:"type"`
	T        int64  `json:"t"`
	ServerTS int64  `json:"server_ts"`
}

type JoinPayload struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
}

type SetMediaPayload struct {
	MediaID string `json:"media_id"`
}

type PlayPayload struct {
	At float64 `json:"at"`
}

type PausePayload struct {
	At float64 `json:"at"`
}

type SeekPayload struct {
	To      float64 `json:"to"`
	Playing bool    `json:"playing"`
}
