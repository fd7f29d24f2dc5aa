package observer

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"mad-sand/internal/core"
	"mad-sand/internal/material"
	"mad-sand/internal/sand"
)

// ErrBusy is returned when the command queue is full.
var ErrBusy = errors.New("observer: session busy")

const (
	commandQueue   = 256
	subscriberBuf  = 4
	defaultRadius  = 2
	maxPaintRadius = 32
)

// Session owns a World on a single goroutine. Commands are queued and applied
// between ticks; every tick that changes the view is published to all
// subscribers as an encoded frame.
type Session struct {
	world *sand.World
	log   *log.Logger
	clock *core.FixedStep
	tps   int

	cmds   chan Command
	paused bool
	dirty  bool

	tick atomic.Uint64
	boot Bootstrap

	mu     sync.Mutex
	subs   map[uint64]chan []byte
	nextID uint64
	last   []byte
}

// NewSession wraps w. The session takes ownership: callers must not touch w
// once Run has started.
func NewSession(w *sand.World, tps int, logger *log.Logger) *Session {
	if tps <= 0 {
		tps = 60
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{
		world: w,
		log:   logger,
		clock: core.NewFixedStep(tps),
		tps:   tps,
		cmds:  make(chan Command, commandQueue),
		subs:  make(map[uint64]chan []byte),
		boot:  newBootstrap(w, tps),
	}
	s.tick.Store(w.Tick())
	s.last = EncodeFrame(s.frame())
	return s
}

// Bootstrap returns the static description of the session with the current
// tick.
func (s *Session) Bootstrap() Bootstrap {
	b := s.boot
	b.Tick = s.tick.Load()
	return b
}

// Submit validates cmd and queues it without blocking.
func (s *Session) Submit(cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	select {
	case s.cmds <- cmd:
		return nil
	default:
		return ErrBusy
	}
}

// Subscribe registers a frame consumer. The most recent frame is delivered
// immediately. Slow consumers miss frames rather than stall the session.
func (s *Session) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, subscriberBuf)
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = ch
	ch <- s.last
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			if _, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(ch)
			}
			s.mu.Unlock()
		})
	}
}

// Run drives the world until ctx is cancelled. All subscriber channels are
// closed on return.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.clock.Interval())
	defer ticker.Stop()
	defer s.closeAll()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-s.cmds:
			s.apply(cmd)
		case <-ticker.C:
			s.advance(s.clock.Due())
		}
	}
}

func (s *Session) advance(n int) {
	if s.paused {
		n = 0
	}
	for i := 0; i < n; i++ {
		s.world.Step()
	}
	if n == 0 && !s.dirty {
		return
	}
	s.dirty = false
	s.tick.Store(s.world.Tick())
	s.publish(EncodeFrame(s.frame()))
}

func (s *Session) apply(cmd Command) {
	m := s.world.Active()
	if cmd.Material != "" {
		if parsed, err := material.Parse(cmd.Material); err == nil {
			m = parsed
		}
	}
	radius := defaultRadius
	if cmd.Radius != nil {
		radius = max(*cmd.Radius, 0)
	}
	if radius > maxPaintRadius {
		radius = maxPaintRadius
	}

	switch cmd.Type {
	case CmdPaint:
		s.world.PaintBrush(cmd.X, cmd.Y, radius, m)
	case CmdLine:
		s.world.PaintLine(cmd.X, cmd.Y, cmd.X1, cmd.Y1, radius, m)
	case CmdSelect:
		s.world.SelectMaterial(m)
		return
	case CmdReset:
		s.world.Reset(cmd.Seed)
		s.log.Printf("session reset seed=%d", cmd.Seed)
	case CmdPause:
		s.paused = !s.paused
		return
	default:
		return
	}
	s.dirty = true
}

func (s *Session) frame() Frame {
	size := s.world.Size()
	return Frame{
		Tick:   s.world.Tick(),
		Width:  size.W,
		Height: size.H,
		Cells:  s.world.Cells(),
	}
}

func (s *Session) publish(b []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = b
	for _, ch := range s.subs {
		select {
		case ch <- b:
		default:
		}
	}
}

func (s *Session) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
