package observer

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-sand/internal/material"
	"mad-sand/internal/sand"
)

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func newSession(t *testing.T, w, h int) *Session {
	t.Helper()
	world, err := sand.New(w, h)
	require.NoError(t, err)
	return NewSession(world, 200, quietLogger())
}

func countMaterial(f Frame, m material.Material) int {
	n := 0
	for _, c := range f.Cells {
		if material.Material(c/sand.Shades) == m {
			n++
		}
	}
	return n
}

func TestFrameRoundTrip(t *testing.T) {
	in := Frame{Tick: 99, Width: 3, Height: 2, Cells: []uint8{0, 4, 5, 8, 9, 27}}
	out, err := DecodeFrame(EncodeFrame(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = DecodeFrame([]byte("not zstd"))
	assert.ErrorIs(t, err, ErrBadFrame)
}

func TestCommandValidate(t *testing.T) {
	ok := Command{Type: "paint", Material: "Sand"}
	require.NoError(t, ok.Validate())
	assert.Equal(t, CmdPaint, ok.Type)

	for _, bad := range []Command{
		{Type: "EXPLODE"},
		{Type: CmdSelect},
		{Type: CmdPaint, Material: "lava"},
		{Type: CmdPaint, Radius: radius(-1)},
	} {
		assert.ErrorIs(t, bad.Validate(), ErrBadCommand, "%+v", bad)
	}
}

func radius(n int) *int { return &n }

func TestSessionRadiusDefaultsOnlyWhenOmitted(t *testing.T) {
	s := newSession(t, 9, 9)

	s.apply(Command{Type: CmdPaint, X: 4, Y: 4, Radius: radius(0), Material: "stone"})
	assert.Equal(t, 1, s.world.Grid().Count(material.Stone), "radius 0 paints one cell")

	s.apply(Command{Type: CmdPaint, X: 4, Y: 4, Material: "stone"})
	assert.Equal(t, 13, s.world.Grid().Count(material.Stone), "omitted radius uses the default brush")

	var cmd Command
	require.NoError(t, json.Unmarshal([]byte(`{"type":"PAINT","radius":0}`), &cmd))
	require.NotNil(t, cmd.Radius)
	assert.Equal(t, 0, *cmd.Radius)
}

func TestBootstrapDescribesPalette(t *testing.T) {
	s := newSession(t, 8, 4)
	b := s.Bootstrap()
	assert.Equal(t, Version, b.ProtocolVersion)
	assert.Equal(t, 8, b.Width)
	assert.Equal(t, 4, b.Height)
	assert.Equal(t, sand.Shades, b.Shades)
	assert.Len(t, b.Palette, material.Count()*sand.Shades)
	assert.Equal(t, "#000000", b.Palette[0])
	require.Len(t, b.Materials, material.Count())
	assert.Equal(t, "sand", b.Materials[material.Sand].Name)
	assert.Equal(t, "granular", b.Materials[material.Sand].Mobility)
}

func TestSessionAppliesCommandsBetweenTicks(t *testing.T) {
	s := newSession(t, 8, 8)
	frames, cancel := s.Subscribe()
	defer cancel()
	<-frames

	s.apply(Command{Type: CmdSelect, Material: "stone"})
	assert.Equal(t, material.Stone, s.world.Active())

	s.apply(Command{Type: CmdPaint, X: 4, Y: 0, Radius: radius(1), Material: "sand"})
	s.advance(0)
	f, err := DecodeFrame(<-frames)
	require.NoError(t, err)
	assert.Equal(t, 4, countMaterial(f, material.Sand))
	assert.Equal(t, uint64(0), f.Tick)

	s.advance(3)
	f, err = DecodeFrame(<-frames)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), f.Tick)
	assert.Equal(t, uint64(3), s.Bootstrap().Tick)

	s.apply(Command{Type: CmdLine, X: 0, Y: 7, X1: 7, Y1: 7, Radius: radius(1)})
	s.advance(0)
	f, err = DecodeFrame(<-frames)
	require.NoError(t, err)
	assert.Greater(t, countMaterial(f, material.Stone), 0, "line uses the selected material")

	s.apply(Command{Type: CmdPause})
	s.advance(5)
	assert.Equal(t, uint64(3), s.world.Tick(), "paused sessions do not tick")

	s.apply(Command{Type: CmdReset})
	s.advance(0)
	f, err = DecodeFrame(<-frames)
	require.NoError(t, err)
	assert.Equal(t, len(f.Cells), countMaterial(f, material.Empty))
}

func TestSubmitRejectsAndQueues(t *testing.T) {
	s := newSession(t, 4, 4)
	assert.ErrorIs(t, s.Submit(Command{Type: "nope"}), ErrBadCommand)
	for i := 0; i < commandQueue; i++ {
		require.NoError(t, s.Submit(Command{Type: CmdPaint}))
	}
	assert.ErrorIs(t, s.Submit(Command{Type: CmdPaint}), ErrBusy)
}

func TestRunClosesSubscribersOnCancel(t *testing.T) {
	s := newSession(t, 4, 4)
	frames, unsubscribe := s.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	for range frames {
	}
}

func TestServerStreamsFramesAndAcceptsCommands(t *testing.T) {
	s := newSession(t, 16, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	ts := httptest.NewServer(NewServer(s, quietLogger()).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/bootstrap")
	require.NoError(t, err)
	var boot Bootstrap
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&boot))
	resp.Body.Close()
	assert.Equal(t, 16, boot.Width)

	resp, err = http.Post(ts.URL+"/bootstrap", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	msgType, b, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, msgType)
	f, err := DecodeFrame(b)
	require.NoError(t, err)
	assert.Equal(t, 16*16, len(f.Cells))

	require.NoError(t, conn.WriteJSON(Command{Type: CmdPaint, X: 8, Y: 2, Radius: radius(1), Material: "sand"}))

	deadline := time.Now().Add(3 * time.Second)
	for {
		require.True(t, time.Now().Before(deadline), "no frame with sand arrived")
		_ = conn.SetReadDeadline(deadline)
		_, b, err := conn.ReadMessage()
		require.NoError(t, err)
		f, err := DecodeFrame(b)
		require.NoError(t, err)
		if countMaterial(f, material.Sand) == 5 {
			break
		}
	}
}

func TestServerRejectsRemoteClients(t *testing.T) {
	srv := NewServer(newSession(t, 4, 4), quietLogger())
	req := httptest.NewRequest(http.MethodGet, "/bootstrap", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	srv.AllowRemote = true
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
