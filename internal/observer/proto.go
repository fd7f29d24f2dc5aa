package observer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/lucasb-eyer/go-colorful"

	"mad-sand/internal/material"
	"mad-sand/internal/sand"
)

// Version is bumped whenever the bootstrap document or frame layout changes.
const Version = 1

// Command types accepted over the websocket.
const (
	CmdPaint  = "PAINT"
	CmdLine   = "LINE"
	CmdSelect = "SELECT"
	CmdReset  = "RESET"
	CmdPause  = "PAUSE"
)

var (
	// ErrBadCommand is returned for commands that cannot be applied.
	ErrBadCommand = errors.New("observer: bad command")
	// ErrBadFrame is returned by DecodeFrame for truncated payloads.
	ErrBadFrame = errors.New("observer: bad frame")
)

// Command is a client request applied by the session between ticks. PAINT
// uses X, Y. LINE paints from X, Y to X1, Y1. An empty Material means the
// session's active material and a nil Radius the default brush.
type Command struct {
	Type     string `json:"type"`
	X        int    `json:"x,omitempty"`
	Y        int    `json:"y,omitempty"`
	X1       int    `json:"x1,omitempty"`
	Y1       int    `json:"y1,omitempty"`
	Radius   *int   `json:"radius,omitempty"`
	Material string `json:"material,omitempty"`
	Seed     int64  `json:"seed,omitempty"`
}

// Validate normalises the type and checks the material name.
func (c *Command) Validate() error {
	c.Type = strings.ToUpper(strings.TrimSpace(c.Type))
	switch c.Type {
	case CmdPaint, CmdLine, CmdReset, CmdPause:
	case CmdSelect:
		if c.Material == "" {
			return fmt.Errorf("%w: SELECT without material", ErrBadCommand)
		}
	default:
		return fmt.Errorf("%w: type %q", ErrBadCommand, c.Type)
	}
	if c.Radius != nil && *c.Radius < 0 {
		return fmt.Errorf("%w: radius %d", ErrBadCommand, *c.Radius)
	}
	if c.Material != "" {
		if _, err := material.Parse(c.Material); err != nil {
			return fmt.Errorf("%w: %v", ErrBadCommand, err)
		}
	}
	return nil
}

// MaterialInfo describes one paintable material.
type MaterialInfo struct {
	Tag      uint8  `json:"tag"`
	Name     string `json:"name"`
	Density  uint8  `json:"density"`
	Mobility string `json:"mobility"`
}

// Bootstrap tells a client how to decode frames.
type Bootstrap struct {
	ProtocolVersion int            `json:"protocol_version"`
	Width           int            `json:"width"`
	Height          int            `json:"height"`
	TPS             int            `json:"tps"`
	Tick            uint64         `json:"tick"`
	Shades          int            `json:"shades"`
	Palette         []string       `json:"palette"`
	Materials       []MaterialInfo `json:"materials"`
}

func newBootstrap(w *sand.World, tps int) Bootstrap {
	size := w.Size()
	b := Bootstrap{
		ProtocolVersion: Version,
		Width:           size.W,
		Height:          size.H,
		TPS:             tps,
		Tick:            w.Tick(),
		Shades:          sand.Shades,
	}
	for _, c := range w.Palette() {
		cc, _ := colorful.MakeColor(c)
		b.Palette = append(b.Palette, cc.Hex())
	}
	for _, m := range material.All() {
		b.Materials = append(b.Materials, MaterialInfo{
			Tag:      uint8(m),
			Name:     m.String(),
			Density:  m.Density(),
			Mobility: m.Mobility().String(),
		})
	}
	return b
}

// Frame is one published view of the grid. Cells holds palette indices in
// row-major order.
type Frame struct {
	Tick   uint64
	Width  int
	Height int
	Cells  []uint8
}

const frameHeader = 16

// frameCodec compresses frames. EncodeAll and DecodeAll are safe for
// concurrent use.
type frameCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

var codec = func() frameCodec {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		panic(err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
	return frameCodec{enc: enc, dec: dec}
}()

// EncodeFrame packs a frame as a little-endian header (tick, width, height)
// followed by the cells, compressed with zstd.
func EncodeFrame(f Frame) []byte {
	raw := make([]byte, frameHeader+len(f.Cells))
	binary.LittleEndian.PutUint64(raw[0:], f.Tick)
	binary.LittleEndian.PutUint32(raw[8:], uint32(f.Width))
	binary.LittleEndian.PutUint32(raw[12:], uint32(f.Height))
	copy(raw[frameHeader:], f.Cells)
	return codec.enc.EncodeAll(raw, nil)
}

// DecodeFrame reverses EncodeFrame.
func DecodeFrame(b []byte) (Frame, error) {
	raw, err := codec.dec.DecodeAll(b, nil)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	if len(raw) < frameHeader {
		return Frame{}, fmt.Errorf("%w: %d bytes", ErrBadFrame, len(raw))
	}
	f := Frame{
		Tick:   binary.LittleEndian.Uint64(raw[0:]),
		Width:  int(binary.LittleEndian.Uint32(raw[8:])),
		Height: int(binary.LittleEndian.Uint32(raw[12:])),
		Cells:  raw[frameHeader:],
	}
	if f.Width*f.Height != len(f.Cells) {
		return Frame{}, fmt.Errorf("%w: %d cells for %dx%d", ErrBadFrame, len(f.Cells), f.Width, f.Height)
	}
	return f, nil
}
