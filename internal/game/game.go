package game

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"

	"github.com/iburimskiy/wobble-rings/internal/clock"
	"github.com/iburimskiy/wobble-rings/internal/config"
	"github.com/iburimskiy/wobble-rings/internal/export"
	"github.com/iburimskiy/wobble-rings/internal/palette"
	"github.com/iburimskiy/wobble-rings/internal/polar"
	"github.com/iburimskiy/wobble-rings/internal/scene"
)

// Game runs a scene inside an ebiten window.
type Game struct {
	logger   *zap.Logger
	clock    clock.Provider
	host     *windowHost
	scene    *scene.Scene
	controls *Controls
	stats    *frameStats

	// save asks for a destination path; empty path or zenity.ErrCanceled
	// means the user backed out.
	save func() (string, error)

	started    time.Time
	lastUpdate time.Time

	// input edge detection
	cursorSeen bool
	cursorX    int
	cursorY    int
	touchIDs   []ebiten.TouchID

	lastErr error
	status  string
}

func newGame(cfg *config.Config, logger *zap.Logger, c clock.Provider) *Game {
	controls := NewControls(cfg.Scene)
	g := &Game{
		logger:   logger.Named("game"),
		clock:    c,
		host:     newWindowHost(cfg.Window.Width, cfg.Window.Height),
		controls: controls,
		stats:    newFrameStats(config.FrameStatsSize),
		save:     saveDialog,
	}
	g.scene = scene.New(controls.Configuration(),
		scene.WithClock(c),
		scene.WithLogger(logger),
		scene.WithIdleAfter(cfg.Scene.IdleTimeout),
		scene.WithResizeDebounce(cfg.Scene.ResizeDebounce),
	)
	g.started = c.Now()
	g.lastUpdate = g.started
	g.scene.Start(g.host)
	return g
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, logger *zap.Logger) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title + " - arrows: points, B: blend, C: colors, G: background, D: debug, S: save, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	g := newGame(cfg, logger, clock.System{})
	defer g.scene.Stop()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	now := g.clock.Now()
	g.stats.record(now.Sub(g.lastUpdate))
	g.lastUpdate = now

	g.pollPointer(now)
	g.pollTouches(now)

	if err := g.handleKeys(inpututil.IsKeyJustPressed); err != nil {
		return err
	}

	g.host.RunFrames(now)
	return nil
}

// handleKeys applies every key pressed this tick. It returns ebiten.Termination
// on quit.
func (g *Game) handleKeys(justPressed func(ebiten.Key) bool) error {
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeyUp) {
		g.controls.AddPoints(pointsStep)
	}
	if justPressed(ebiten.KeyDown) {
		g.controls.AddPoints(-pointsStep)
	}
	if justPressed(ebiten.KeyB) {
		g.controls.CycleBlend()
		if _, exact := blendFor(g.controls.BlendMode()); !exact {
			g.logger.Debug("Blend mode approximated in window", zap.String("mode", g.controls.BlendMode()))
		}
	}
	if justPressed(ebiten.KeyC) {
		g.controls.RotateHue(hueStep)
	}
	if justPressed(ebiten.KeyG) {
		g.controls.ToggleBackground()
	}
	if justPressed(ebiten.KeyD) {
		g.controls.ToggleDebug()
	}
	if justPressed(ebiten.KeyS) {
		if err := g.saveSnapshot(); err != nil {
			g.lastErr = err
			g.logger.Error("Snapshot failed", zap.Error(err))
		}
	}
	return nil
}

func (g *Game) pollPointer(now time.Time) {
	x, y := ebiten.CursorPosition()
	if !g.cursorSeen {
		g.cursorSeen = true
		g.cursorX, g.cursorY = x, y
		return
	}
	if x == g.cursorX && y == g.cursorY {
		return
	}
	g.cursorX, g.cursorY = x, y
	g.host.Dispatch(&scene.Event{
		Kind:   scene.PointerMove,
		Time:   now,
		Points: []polar.Point{{X: float64(x), Y: float64(y)}},
	})
}

func (g *Game) pollTouches(now time.Time) {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) == 0 {
		return
	}

	kind := scene.TouchMove
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		kind = scene.TouchStart
	} else if !touchesMoved(g.touchIDs) {
		return
	}

	points := make([]polar.Point, 0, len(g.touchIDs))
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		points = append(points, polar.Point{X: float64(x), Y: float64(y)})
	}
	g.host.Dispatch(&scene.Event{Kind: kind, Time: now, Points: points})
}

func touchesMoved(ids []ebiten.TouchID) bool {
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		px, py := inpututil.TouchPositionInPreviousTick(id)
		if x != px || y != py {
			return true
		}
	}
	return false
}

func (g *Game) Draw(screen *ebiten.Image) {
	frame := g.scene.Snapshot()
	screen.Fill(palette.Parse(frame.Background))

	blend, exact := blendFor(frame.BlendMode)
	for _, ring := range frame.Rings {
		drawRing(screen, frame.Center, ring, palette.Parse(ring.Fill), blend)
	}

	if g.controls.Debug() {
		g.drawDebug(screen, frame.Center)
	}

	mode := frame.BlendMode
	if !exact {
		mode += " (approx)"
	}
	status := fmt.Sprintf("points %d  blend %s  %.0f fps  %s",
		g.controls.Points(), mode, g.stats.fps(), formatDuration(g.lastUpdate.Sub(g.started)))
	if g.status != "" {
		status += " | " + g.status
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawDebug(screen *ebiten.Image, center polar.Point) {
	st := g.scene.Tracker().State()
	cur := polar.ToCartesian(st.Current)
	tgt := polar.ToCartesian(st.Target)

	cx, cy := float32(center.X), float32(center.Y)
	vector.StrokeLine(screen, cx, cy, cx+float32(cur.X), cy+float32(cur.Y), 2, color.RGBA{R: 255, G: 255, B: 255, A: 200}, true)
	vector.DrawFilledCircle(screen, cx+float32(tgt.X), cy+float32(tgt.Y), 4, color.RGBA{R: 255, G: 200, B: 0, A: 255}, true)
	vector.DrawFilledCircle(screen, cx, cy, 3, color.White, true)

	// Idle drift speed.
	const barW, barH = 100, 6
	vector.StrokeRect(screen, 12, 30, barW, barH, 1, color.RGBA{R: 100, G: 110, B: 130, A: 255}, false)
	vector.DrawFilledRect(screen, 12, 30, float32(barW*clamp01(st.Speed)), barH, color.RGBA{R: 0, G: 200, B: 255, A: 255}, false)

	state := "tracking"
	if st.Idle {
		state = "idle"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  deg %.1f  r %.1f", state, st.Current.Degree, st.Current.Radius), 12, 40)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.host.resize(outsideWidth, outsideHeight) {
		w, h := g.host.Viewport()
		g.host.Dispatch(&scene.Event{Kind: scene.Resize, Time: g.clock.Now(), Width: w, Height: h})
	}
	return outsideWidth, outsideHeight
}

func saveDialog() (string, error) {
	return zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.ConfirmOverwrite(),
		zenity.Filename("wobble-rings.svg"),
		zenity.FileFilters{
			{Name: "SVG", Patterns: []string{"*.svg"}},
			{Name: "PNG", Patterns: []string{"*.png"}},
		},
	)
}

func (g *Game) saveSnapshot() error {
	path, err := g.save()
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	if path == "" {
		return nil
	}
	if filepath.Ext(path) == "" {
		path += export.SVG.Ext()
	}
	if err := export.SaveFile(path, g.scene); err != nil {
		return err
	}
	g.lastErr = nil
	g.status = "saved " + filepath.Base(path)
	g.logger.Info("Snapshot saved", zap.String("path", path))
	return nil
}
