package scene

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/iburimskiy/wobble-rings/internal/clock"
	"github.com/iburimskiy/wobble-rings/internal/polar"
)

const tick = 16 * time.Millisecond

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestScene(t *testing.T, cfg Configuration) (*Scene, *ManualHost) {
	t.Helper()
	c := clock.NewMock(time.Unix(1_700_000_000, 0))
	host := NewManualHost(c, 800, 600)
	s := New(cfg, WithClock(c), WithLogger(zaptest.NewLogger(t)))
	return s, host
}

func paths(t *testing.T, s *Scene) []*etree.Element {
	t.Helper()
	out := make([]*etree.Element, 0, len(s.Rings()))
	for _, r := range s.Rings() {
		out = append(out, r.Element())
	}
	return out
}

func TestStartBuildsTree(t *testing.T) {
	s, host := newTestScene(t, Configuration{})
	s.Start(host)
	t.Cleanup(s.Stop)

	require.True(t, s.Running())
	require.Same(t, s.Document().Root(), host.Mounted())
	assert.Equal(t, 4, host.ListenerCount())
	assert.Equal(t, 1, host.PendingFrames())

	root := host.Mounted()
	assert.Equal(t, "svg", root.Tag)
	assert.Equal(t, "100%", root.SelectAttrValue("width", ""))
	assert.Equal(t, "background-color: #000", root.SelectAttrValue("style", ""))

	pattern := root.FindElement("./defs/pattern[@id='dots']")
	require.NotNil(t, pattern)
	assert.Equal(t, "50", pattern.SelectAttrValue("width", ""))

	group := root.FindElement("./g")
	require.NotNil(t, group)
	assert.Equal(t, "translate(400, 300)", group.SelectAttrValue("transform", ""))

	fills := []string{"#F00", "#0F0", "#00F"}
	for i, p := range paths(t, s) {
		assert.Equal(t, fills[i], p.SelectAttrValue("fill", ""))
		assert.Equal(t, "mix-blend-mode: screen", p.SelectAttrValue("style", ""))
		assert.True(t, strings.HasPrefix(p.SelectAttrValue("d", ""), "M"), "path rendered before first frame")
	}
}

func TestFrameLoopReschedules(t *testing.T) {
	s, host := newTestScene(t, Configuration{})
	s.Start(host)
	t.Cleanup(s.Stop)

	for i := 1; i <= 5; i++ {
		assert.Equal(t, 1, host.Advance(tick))
		assert.Equal(t, 1, host.PendingFrames())
	}
	assert.EqualValues(t, 5, s.Frames())
}

func TestFramesRewritePathData(t *testing.T) {
	s, host := newTestScene(t, Configuration{})
	s.Start(host)
	t.Cleanup(s.Stop)

	before := s.Snapshot().Rings[0].PathData
	host.Advance(500 * time.Millisecond)
	after := s.Snapshot().Rings[0].PathData
	assert.NotEqual(t, before, after, "waves drift with the clock")
}

func TestStopTearsDown(t *testing.T) {
	s, host := newTestScene(t, Configuration{})
	s.Start(host)
	host.Advance(tick)

	s.Stop()
	assert.False(t, s.Running())
	assert.Zero(t, host.ListenerCount())
	assert.Zero(t, host.PendingFrames())
	assert.Zero(t, host.Advance(tick))

	assert.NotPanics(t, s.Stop, "second stop is a no-op")
	assert.EqualValues(t, 1, s.Frames())
}

func TestStopThenRestart(t *testing.T) {
	s, host := newTestScene(t, Configuration{})
	s.Start(host)
	s.Stop()
	s.Start(host)
	t.Cleanup(s.Stop)

	assert.True(t, s.Running())
	assert.Equal(t, 4, host.ListenerCount())
	assert.Equal(t, 1, host.PendingFrames())
}

func TestRestartDoesNotJump(t *testing.T) {
	s, host := newTestScene(t, Configuration{})
	s.Start(host)
	for range 200 {
		host.Advance(tick)
	}
	s.Stop()
	before := s.Tracker().Vector().Degree

	host.Clock().Advance(37 * time.Minute)
	s.Start(host)
	t.Cleanup(s.Stop)
	host.Advance(tick)

	moved := math.Abs(s.Tracker().Vector().Degree - before)
	moved = math.Min(moved, 360-moved)
	assert.LessOrEqual(t, moved, 0.1*float64(tick/time.Millisecond))
}

func TestMissingContainerIsNoop(t *testing.T) {
	s, host := newTestScene(t, Configuration{})
	host.WithoutContainer()

	s.Start(host)
	assert.False(t, s.Running())
	assert.Nil(t, host.Mounted())
	assert.Zero(t, host.ListenerCount())
	assert.Zero(t, host.PendingFrames())
	assert.NotPanics(t, s.Stop)
}

func TestTouchPreventsDefault(t *testing.T) {
	s, host := newTestScene(t, Configuration{})
	s.Start(host)
	t.Cleanup(s.Stop)

	ev := host.Touch(TouchStart, polar.Point{X: 400, Y: 400})
	assert.True(t, ev.DefaultPrevented())
	st := s.Tracker().State()
	assert.False(t, st.Idle)
	assert.InDelta(t, 90, st.Target.Degree, 1e-9)
	assert.InDelta(t, 100, st.Target.Radius, 1e-9)

	ev = host.Touch(TouchMove)
	assert.True(t, ev.DefaultPrevented(), "empty touch list still handled")

	ev = host.Pointer(500, 300)
	assert.False(t, ev.DefaultPrevented())
	assert.InDelta(t, 0, s.Tracker().State().Target.Degree, 1e-9)
}

func TestPointerFollowsInRingSpace(t *testing.T) {
	s, host := newTestScene(t, Configuration{})
	s.Start(host)
	t.Cleanup(s.Stop)

	// Straight up from the center.
	host.Pointer(400, 100)
	for range 100 {
		host.Advance(tick)
	}

	assert.InDelta(t, 270, s.Tracker().Vector().Degree, 1)
	assert.InDelta(t, 0, s.ringVector().Degree, 1, "screen top is generator degree 0")
	assert.False(t, s.Tracker().State().Idle)

	for range 30 {
		host.Advance(tick)
	}
	assert.True(t, s.Tracker().State().Idle, "drifts after two quiet seconds")
}

func TestResizeIsDebounced(t *testing.T) {
	s, host := newTestScene(t, Configuration{})
	s.Start(host)
	t.Cleanup(s.Stop)
	group := s.Document().Root().FindElement("./g")

	host.Resize(1000, 500)
	host.Advance(5 * time.Millisecond)
	host.Resize(1200, 800)
	host.Advance(5 * time.Millisecond)
	assert.Equal(t, "translate(400, 300)", group.SelectAttrValue("transform", ""))
	assert.Equal(t, polar.Point{X: 400, Y: 300}, s.Center())

	host.Advance(10 * time.Millisecond)
	assert.Equal(t, "translate(600, 400)", group.SelectAttrValue("transform", ""))
	assert.Equal(t, polar.Point{X: 600, Y: 400}, s.Center())

	snap := s.Snapshot()
	assert.Equal(t, 1200.0, snap.Width)
	assert.Equal(t, 800.0, snap.Height)
}

func TestRestyleOnChange(t *testing.T) {
	blend := "screen"
	colors := [3]string{"#F00", "#0F0", "#00F"}
	s, host := newTestScene(t, Configuration{
		BlendMode: func() string { return blend },
		Colors:    func() [3]string { return colors },
	})
	s.Start(host)
	t.Cleanup(s.Stop)

	blend = "multiply"
	colors[1] = "#ABCDEF"
	host.Advance(tick)

	ps := paths(t, s)
	for _, p := range ps {
		assert.Equal(t, "mix-blend-mode: multiply", p.SelectAttrValue("style", ""))
	}
	assert.Equal(t, "#F00", ps[0].SelectAttrValue("fill", ""))
	assert.Equal(t, "#ABCDEF", ps[1].SelectAttrValue("fill", ""))
}

func TestCustomCenterAndPoints(t *testing.T) {
	s, host := newTestScene(t, Configuration{
		Center: func() polar.Point { return polar.Point{X: 100, Y: 100} },
		Points: func() int { return 12 },
	})
	s.Start(host)
	t.Cleanup(s.Stop)

	group := s.Document().Root().FindElement("./g")
	assert.Equal(t, "translate(100, 100)", group.SelectAttrValue("transform", ""))
	for _, r := range s.Rings() {
		assert.Len(t, r.Points(), 12)
	}
}

func TestRingsStayNearBaseline(t *testing.T) {
	s, host := newTestScene(t, Configuration{})
	s.Start(host)
	t.Cleanup(s.Stop)
	host.Pointer(600, 300)

	for range 50 {
		host.Advance(tick)
		for _, rf := range s.Snapshot().Rings {
			require.Len(t, rf.Points, 90)
			for _, p := range rf.Points {
				r := math.Hypot(p.X, p.Y)
				assert.Greater(t, r, Baseline-35.0)
				assert.Less(t, r, Baseline+35.0)
			}
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s, host := newTestScene(t, Configuration{})
	s.Start(host)
	t.Cleanup(s.Stop)

	snap := s.Snapshot()
	require.Len(t, snap.Rings, 3)
	assert.Equal(t, "screen", snap.BlendMode)
	assert.Equal(t, "#000", snap.Background)
	assert.Equal(t, s.Rings()[0].Element().SelectAttrValue("d", ""), snap.Rings[0].PathData)

	orig := s.Rings()[0].Points()[0]
	snap.Rings[0].Points[0] = polar.Point{X: -1, Y: -1}
	assert.Equal(t, orig, s.Rings()[0].Points()[0])
}

func TestDispatcherOrderAndRemoval(t *testing.T) {
	var d Dispatcher
	var got []int
	removeA := d.AddListener(Resize, func(*Event) { got = append(got, 1) })
	d.AddListener(Resize, func(*Event) { got = append(got, 2) })
	d.AddListener(PointerMove, func(*Event) { got = append(got, 3) })

	d.Dispatch(&Event{Kind: Resize})
	assert.Equal(t, []int{1, 2}, got)

	removeA()
	removeA()
	got = nil
	d.Dispatch(&Event{Kind: Resize})
	assert.Equal(t, []int{2}, got)
	assert.Equal(t, 2, d.ListenerCount())

	ran := 0
	id := d.RequestFrame(func(time.Time) { ran++ })
	d.RequestFrame(func(time.Time) { ran += 10 })
	d.CancelFrame(id)
	d.CancelFrame(FrameID(999))
	assert.Equal(t, 1, d.RunFrames(time.Now()))
	assert.Equal(t, 10, ran)
	assert.Zero(t, d.PendingFrames())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "touchmove", TouchMove.String())
	assert.Equal(t, "EventKind(9)", EventKind(9).String())
}
