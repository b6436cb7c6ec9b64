// Package scene composes three wobbling rings into an SVG tree and drives it
// from a Host: one pointer tracker, one frame loop, one resize debounce.
package scene

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/iburimskiy/wobble-rings/internal/clock"
	"github.com/iburimskiy/wobble-rings/internal/palette"
	"github.com/iburimskiy/wobble-rings/internal/pointer"
	"github.com/iburimskiy/wobble-rings/internal/polar"
	"github.com/iburimskiy/wobble-rings/internal/radius"
	"github.com/iburimskiy/wobble-rings/internal/ring"
	"github.com/iburimskiy/wobble-rings/internal/svg"
	"github.com/iburimskiy/wobble-rings/internal/timing"
)

// DefaultResizeDebounce is the quiet period before a resize re-centers the scene.
const DefaultResizeDebounce = 10 * time.Millisecond

// Configuration holds the accessors the scene reads every frame. Nil
// accessors fall back to the palette defaults; a nil Center tracks the
// viewport center.
type Configuration struct {
	Center     func() polar.Point
	Points     func() int
	Colors     func() [3]string
	BlendMode  func() string
	Background func() string
}

func (c Configuration) points() int {
	if c.Points == nil {
		return ring.DefaultCount
	}
	return c.Points()
}

func (c Configuration) colors() [3]string {
	if c.Colors == nil {
		return palette.DefaultColors
	}
	return c.Colors()
}

func (c Configuration) blendMode() string {
	if c.BlendMode == nil {
		return palette.DefaultBlendMode
	}
	return c.BlendMode()
}

func (c Configuration) background() string {
	if c.Background == nil {
		return palette.DefaultBackground
	}
	return c.Background()
}

// Option configures a Scene.
type Option func(*Scene)

// WithClock sets the time source for waves, wobble and event timestamps.
func WithClock(c clock.Provider) Option {
	return func(s *Scene) { s.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Scene) { s.logger = l.Named("scene") }
}

// WithIdleAfter overrides how long the pointer tracker waits before drifting.
func WithIdleAfter(d time.Duration) Option {
	return func(s *Scene) { s.idleAfter = d }
}

func WithResizeDebounce(d time.Duration) Option {
	return func(s *Scene) { s.resizeWait = d }
}

type style struct {
	background string
	blendMode  string
	colors     [3]string
}

// Scene owns the SVG tree and the per-frame update loop. It is not safe for
// concurrent use; every method runs on the host's frame goroutine.
type Scene struct {
	cfg        Configuration
	clock      clock.Provider
	logger     *zap.Logger
	idleAfter  time.Duration
	resizeWait time.Duration

	tracker *pointer.Tracker
	rings   []*ring.Ring
	doc     *etree.Document
	root    *etree.Element
	group   *etree.Element

	viewW, viewH float64
	pendingW     float64
	pendingH     float64
	center       polar.Point
	resize       *timing.Debounce

	host     Host
	running  bool
	frameID  FrameID
	queued   bool
	removers []func()
	applied  *style
	frames   uint64
}

// New builds the scene tree. Nothing is mounted until Start.
func New(cfg Configuration, opts ...Option) *Scene {
	s := &Scene{
		cfg:        cfg,
		clock:      clock.System{},
		logger:     zap.NewNop(),
		idleAfter:  pointer.DefaultIdleAfter,
		resizeWait: DefaultResizeDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resize = timing.NewDebounce(s.resizeWait, s.applyResize)
	s.tracker = pointer.NewTracker(s.Center,
		pointer.WithIdleAfter(s.idleAfter),
		pointer.WithLogger(s.logger),
	)

	paths := make([]*etree.Element, len(Recipes))
	s.rings = make([]*ring.Ring, len(Recipes))
	for i, recipe := range Recipes {
		gen := radius.AtLeast(Baseline,
			radius.Dampened(radius.Waves(s.clock, recipe...), s.ringVector, s.clock))
		paths[i] = svg.Path(nil)
		s.rings[i] = ring.New(gen, s.cfg.points, paths[i])
	}
	s.group = svg.Group(nil, paths...)
	s.root = svg.Root(svg.Defs(svg.DotsPattern()), s.group)
	s.doc = svg.Document(s.root)
	return s
}

// ringVector is the tracker vector in ring space, where generator degree 0
// sits at the top.
func (s *Scene) ringVector() polar.Polar {
	v := s.tracker.Vector()
	v.Degree = polar.Normalize(v.Degree + ring.SampleOffset)
	return v
}

// Start mounts the scene into host, subscribes to input and requests the first
// frame. A host without a container leaves the scene stopped.
func (s *Scene) Start(host Host) {
	if s.running {
		return
	}
	w, h := host.Viewport()
	s.viewW, s.viewH = w, h
	s.center = polar.Point{X: w / 2, Y: h / 2}
	s.tracker.Pause()
	s.applyStyle()
	s.applyTransform()
	s.updateRings()

	if !host.Mount(s.root) {
		s.logger.Warn("No render container, scene not attached")
		return
	}
	s.host = host
	s.removers = append(s.removers,
		host.AddListener(PointerMove, s.onPointer),
		host.AddListener(TouchStart, s.onTouch),
		host.AddListener(TouchMove, s.onTouch),
		host.AddListener(Resize, s.onResize),
	)
	s.running = true
	s.schedule()
	s.logger.Info("Scene started",
		zap.Float64("width", w),
		zap.Float64("height", h),
		zap.Int("points", s.cfg.points()),
	)
}

// Stop removes every listener and cancels the pending frame. Calling it on a
// stopped scene does nothing.
func (s *Scene) Stop() {
	if !s.running {
		return
	}
	s.running = false
	for _, remove := range s.removers {
		remove()
	}
	s.removers = nil
	if s.queued {
		s.host.CancelFrame(s.frameID)
		s.queued = false
	}
	s.resize.Cancel()
	s.logger.Info("Scene stopped", zap.Uint64("frames", s.frames))
}

func (s *Scene) Running() bool { return s.running }

// Center returns the configured center, or the viewport center.
func (s *Scene) Center() polar.Point {
	if s.cfg.Center != nil {
		return s.cfg.Center()
	}
	return s.center
}

func (s *Scene) Rings() []*ring.Ring { return s.rings }

// Tracker exposes the pointer tracker for overlays.
func (s *Scene) Tracker() *pointer.Tracker { return s.tracker }

// Document returns the live SVG document. Callers must not mutate it.
func (s *Scene) Document() *etree.Document { return s.doc }

// Frames returns how many frame callbacks have run.
func (s *Scene) Frames() uint64 { return s.frames }

func (s *Scene) schedule() {
	s.frameID = s.host.RequestFrame(s.frame)
	s.queued = true
}

func (s *Scene) frame(now time.Time) {
	s.queued = false
	if !s.running {
		return
	}
	s.resize.Poll(now)
	s.tracker.Step(now)
	s.applyTransform()
	s.applyStyle()
	s.updateRings()
	s.frames++
	s.schedule()
}

func (s *Scene) updateRings() {
	for _, r := range s.rings {
		r.Update()
	}
}

func (s *Scene) onPointer(ev *Event) {
	if len(ev.Points) == 0 {
		return
	}
	s.tracker.Move(ev.Points[0], s.eventTime(ev))
}

func (s *Scene) onTouch(ev *Event) {
	ev.PreventDefault()
	if len(ev.Points) == 0 {
		return
	}
	s.tracker.Move(ev.Points[0], s.eventTime(ev))
}

func (s *Scene) onResize(ev *Event) {
	s.pendingW, s.pendingH = ev.Width, ev.Height
	s.resize.Call(s.eventTime(ev))
}

func (s *Scene) eventTime(ev *Event) time.Time {
	if ev.Time.IsZero() {
		return s.clock.Now()
	}
	return ev.Time
}

func (s *Scene) applyResize() {
	s.viewW, s.viewH = s.pendingW, s.pendingH
	s.center = polar.Point{X: s.viewW / 2, Y: s.viewH / 2}
	s.applyTransform()
	s.logger.Debug("Viewport resized",
		zap.Float64("width", s.viewW),
		zap.Float64("height", s.viewH),
	)
}

func (s *Scene) applyTransform() {
	c := s.Center()
	svg.SetAttr(s.group, "transform", svg.Translate(c.X, c.Y))
}

// applyStyle rewrites fill, blend and background attributes when the
// configuration accessors return something new.
func (s *Scene) applyStyle() {
	next := style{
		background: s.cfg.background(),
		blendMode:  s.cfg.blendMode(),
		colors:     s.cfg.colors(),
	}
	if s.applied != nil && *s.applied == next {
		return
	}
	svg.SetAttr(s.root, "style", "background-color: "+next.background)
	for i, r := range s.rings {
		el := r.Element()
		svg.SetAttr(el, "fill", next.colors[i])
		svg.SetAttr(el, "style", fmt.Sprintf("mix-blend-mode: %s", next.blendMode))
	}
	s.applied = &next
}
