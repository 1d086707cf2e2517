package room

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoom_EffectivePosition(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := newRoom(clock.Now())

	assert.InDelta(t, 0.0, r.EffectivePosition(clock.Now()), 1e-9, "fresh room starts at zero")

	r.Play(10, clock.Now())
	clock.Advance(2 * time.Second)
	assert.InDelta(t, 12.0, r.EffectivePosition(clock.Now()), 1e-9, "position advances with wall clock while playing")

	clock.Advance(3 * time.Second)
	assert.InDelta(t, 15.0, r.EffectivePosition(clock.Now()), 1e-9)

	r.Pause(15, clock.Now())
	clock.Advance(30 * time.Second)
	assert.InDelta(t, 15.0, r.EffectivePosition(clock.Now()), 1e-9, "position frozen while paused")
}

func TestRoom_EffectivePositionDelta(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := newRoom(clock.Now())
	r.Play(0, clock.Now())

	first := r.EffectivePosition(clock.Now())
	clock.Advance(1337 * time.Millisecond)
	second := r.EffectivePosition(clock.Now())

	assert.InDelta(t, 1.337, second-first, 1e-9, "two reads differ by exactly the elapsed time")
}

func TestRoom_Seek(t *testing.T) {
	tests := []struct {
		name         string
		to           float64
		playing      bool
		advance      time.Duration
		wantPosition float64
	}{
		{
			name:         "seek while paused",
			to:           200,
			playing:      false,
			advance:      10 * time.Second,
			wantPosition: 200,
		},
		{
			name:         "seek and keep playing",
			to:           200,
			playing:      true,
			advance:      10 * time.Second,
			wantPosition: 210,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := clockwork.NewFakeClock()
			r := newRoom(clock.Now())
			r.Play(50, clock.Now())

			r.Seek(tt.to, tt.playing, clock.Now())
			clock.Advance(tt.advance)

			snap := r.Snapshot(clock.Now())
			assert.Equal(t, tt.playing, snap.IsPlaying)
			assert.InDelta(t, tt.wantPosition, snap.Position, 1e-9)
		})
	}
}

func TestRoom_SetMediaResetsTimeline(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := newRoom(clock.Now())

	host := &mockConn{}
	r.AddClient(host, "host-1", "m1")
	r.Play(30, clock.Now())
	clock.Advance(5 * time.Second)

	r.SetMedia("m2", clock.Now())
	clock.Advance(5 * time.Second)

	snap := r.Snapshot(clock.Now())
	assert.Equal(t, "m2", snap.MediaID)
	assert.False(t, snap.IsPlaying, "media change forces pause")
	assert.InDelta(t, 0.0, snap.Position, 1e-9, "media change resets position")
}

func TestRoom_HostAssignment(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := newRoom(clock.Now())

	first := &mockConn{}
	second := &mockConn{}

	res := r.AddClient(first, "c1", "")
	require.True(t, res.IsHost, "first joiner becomes host")
	require.Equal(t, "c1", res.HostID)

	res = r.AddClient(second, "c2", "")
	assert.False(t, res.IsHost)
	assert.Equal(t, "c1", res.HostID, "host is stable across joins")

	assert.True(t, r.IsHost("c1"))
	assert.False(t, r.IsHost("c2"))

	// Host leaving does not trigger re-election.
	r.RemoveClient(first)
	third := &mockConn{}
	res = r.AddClient(third, "c3", "")
	assert.False(t, res.IsHost)
	assert.Equal(t, "c1", res.HostID)
}

func TestRoom_MediaAdoption(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(r *Room)
		clientID  string
		mediaID   string
		wantMedia string
	}{
		{
			name:      "host seeds media on empty room",
			setup:     func(r *Room) {},
			clientID:  "c1",
			mediaID:   "m1",
			wantMedia: "m1",
		},
		{
			name: "guest cannot seed media",
			setup: func(r *Room) {
				r.AddClient(&mockConn{}, "host", "")
			},
			clientID:  "c2",
			mediaID:   "m1",
			wantMedia: "",
		},
		{
			name: "existing media is kept",
			setup: func(r *Room) {
				r.AddClient(&mockConn{}, "host", "m1")
			},
			clientID:  "c2",
			mediaID:   "m2",
			wantMedia: "m1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := clockwork.NewFakeClock()
			r := newRoom(clock.Now())
			tt.setup(r)

			r.AddClient(&mockConn{}, tt.clientID, tt.mediaID)

			snap := r.Snapshot(clock.Now())
			assert.Equal(t, tt.wantMedia, snap.MediaID)
		})
	}
}

func TestRoom_RemoveClientIdempotent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	r := newRoom(clock.Now())

	conn := &mockConn{}
	r.AddClient(conn, "c1", "")
	require.Equal(t, 1, r.ClientCount())

	r.RemoveClient(conn)
	r.RemoveClient(conn)
	assert.Equal(t, 0, r.ClientCount())
}
