// Package app wires the page, the growth controller and pointer triggers into
// an ebiten game, and runs scripted sessions without a window.
package app

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/sprout"
	"github.com/phanxgames/sprout/internal/content"
	"github.com/phanxgames/sprout/internal/page"
)

// ErrNoScript is returned by RunScript when the app was built without one.
var ErrNoScript = errors.New("app: no script loaded")

// Options configures an App.
type Options struct {
	Logger   *slog.Logger
	Observer sprout.Observer

	// Headless draws growth into an in-memory image instead of an ebiten
	// image. No window or GPU is needed.
	Headless bool

	// Script drives the session instead of pointer input when set.
	Script *sprout.ScriptRunner

	// SnapshotDir receives PNGs written by script snapshot steps.
	SnapshotDir string
}

// App is the running site. It implements ebiten.Game and sprout.ScriptEnv.
type App struct {
	cfg      sprout.Config
	log      *slog.Logger
	variants map[string]*sprout.Variant

	page    *page.Page
	fonts   *page.Fonts
	ctrl    *sprout.Controller
	surface sprout.Surface
	tracker sprout.TriggerTracker

	script   *sprout.ScriptRunner
	snapDir  string
	snapshot []string

	w, h int
	dt   float32
}

var (
	_ ebiten.Game      = (*App)(nil)
	_ sprout.ScriptEnv = (*App)(nil)
)

// New builds an App showing store with cfg.
func New(cfg sprout.Config, store *content.Store, opts Options) (*App, error) {
	variants, err := cfg.BuildVariants()
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	a := &App{
		cfg:      cfg,
		log:      log,
		variants: variants,
		script:   opts.Script,
		snapDir:  opts.SnapshotDir,
		w:        cfg.Window.Width,
		h:        cfg.Window.Height,
		dt:       1.0 / float32(ebiten.DefaultTPS),
	}
	a.page = page.New(store, float64(a.w), float64(a.h))

	if opts.Headless {
		a.surface = sprout.NewImageSurface(a.w, a.h)
	} else {
		a.surface = sprout.NewEbitenSurface(a.w, a.h)
		if a.fonts, err = page.LoadFonts(); err != nil {
			return nil, err
		}
	}

	copts := []sprout.Option{sprout.WithLogger(log)}
	if cfg.Seed != 0 {
		copts = append(copts, sprout.WithSeed(cfg.Seed))
	}
	if opts.Observer != nil {
		copts = append(copts, sprout.WithObserver(opts.Observer))
	}
	a.ctrl, err = sprout.NewController(a.surface, a.page, a.page, copts...)
	if err != nil {
		return nil, err
	}
	a.ctrl.SetDebugMode(cfg.Debug)
	return a, nil
}

// Page returns the page model.
func (a *App) Page() *page.Page { return a.page }

// Controller returns the growth controller.
func (a *App) Controller() *sprout.Controller { return a.ctrl }

// Snapshots returns the paths written by snapshot steps so far.
func (a *App) Snapshots() []string { return a.snapshot }

// Element implements sprout.ScriptEnv.
func (a *App) Element(id string) *sprout.Element { return a.page.Element(id) }

// VariantFor implements sprout.ScriptEnv and picks the variant for a trigger
// element from the configured assignments.
func (a *App) VariantFor(el *sprout.Element) *sprout.Variant {
	return a.cfg.VariantFor(a.variants, el.Kind, a.page.Title(el))
}

// ScrollTo implements sprout.ScriptEnv.
func (a *App) ScrollTo(y float64) { a.page.ScrollTo(y) }

// Snapshot implements sprout.ScriptEnv. The page outline and the growth layer
// are composited into one PNG.
func (a *App) Snapshot(label string) error {
	if a.snapDir == "" {
		return fmt.Errorf("snapshot %q: no snapshot directory", label)
	}
	path, err := sprout.WriteSnapshot(a.snapDir, label, a.Composite())
	if err != nil {
		return err
	}
	a.log.Info("snapshot written", "label", label, "path", path)
	a.snapshot = append(a.snapshot, path)
	return nil
}

// Composite returns the page outline with the current growth layer drawn
// over it.
func (a *App) Composite() *image.RGBA {
	base := sprout.NewImageSurface(a.w, a.h)
	a.page.Outline(base)
	dst := base.Image()
	if layer := sprout.SurfaceImage(a.surface); layer != nil && a.ctrl.Running() {
		draw.Draw(dst, dst.Bounds(), layer, image.Point{}, draw.Over)
	}
	return dst
}

// RunScript plays the loaded script for at most maxFrames ticks.
func (a *App) RunScript(maxFrames int) (int, error) {
	if a.script == nil {
		return 0, ErrNoScript
	}
	frames, err := a.script.Run(a.ctrl, a, maxFrames)
	a.log.Info("script finished", "frames", frames, "done", a.script.Done(), "snapshots", len(a.snapshot))
	return frames, err
}

// Tick advances one frame without input: highlights, growth and the growth
// layer.
func (a *App) Tick() {
	a.page.Update(a.dt)
	a.ctrl.Update()
	a.ctrl.Draw()
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	if a.script != nil && !a.script.Done() {
		if err := a.script.Step(a.ctrl, a); err != nil {
			return err
		}
	} else {
		a.handleInput()
	}
	a.page.Update(a.dt)
	a.ctrl.Update()
	return nil
}

func (a *App) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.cfg.Debug = !a.cfg.Debug
		a.ctrl.SetDebugMode(a.cfg.Debug)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && a.page.Dialog() != nil {
		a.page.CloseDialog()
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		a.ctrl.Scrolled(a.page.ScrollBy(-dy * a.cfg.ScrollSpeed))
	}

	for _, ev := range a.tracker.Poll(a.w, a.h, a.page.HitTrigger) {
		a.Trigger(ev)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.Click(float64(x), float64(y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		a.Click(float64(x), float64(y))
	}
}

// Trigger applies a pointer trigger event to the page highlight and the
// controller.
func (a *App) Trigger(ev sprout.TriggerEvent) {
	switch ev.Type {
	case sprout.TriggerEnter:
		a.page.SetHover(ev.Element, true)
	case sprout.TriggerLeave:
		a.page.SetHover(ev.Element, false)
	}
	a.log.Debug("trigger", "type", ev.Type.String(), "element", ev.Element.ID, "pointer", ev.PointerID)
	a.ctrl.HandleTrigger(ev, a.VariantFor)
}

// Click performs a click at a viewport point. Navigation and dialogs clear
// every growth session.
func (a *App) Click(x, y float64) {
	action, target := a.page.Click(x, y)
	switch action {
	case page.ActionNavigate, page.ActionDetails, page.ActionClose:
		a.ctrl.StopAll()
		a.log.Debug("page action", "action", int(action), "target", target, "route", a.page.Route())
	case page.ActionExternal:
		a.log.Info("external link", "url", target)
	}
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	a.page.DrawBackground(screen, a.fonts)
	a.ctrl.Draw()
	if es, ok := a.surface.(*sprout.EbitenSurface); ok && a.ctrl.Running() {
		screen.DrawImage(es.Image(), nil)
	}
	a.page.DrawForeground(screen, a.fonts)
	if a.cfg.Debug {
		drawStats(screen, a.ctrl)
	}
}

// Layout implements ebiten.Game. A size change relays the page out and
// resizes the growth surface.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.w || outsideHeight != a.h {
		a.Resize(outsideWidth, outsideHeight)
	}
	return a.w, a.h
}

// Resize changes the viewport size.
func (a *App) Resize(w, h int) {
	a.w, a.h = max(w, 1), max(h, 1)
	a.page.Resize(float64(a.w), float64(a.h))
	a.ctrl.Resize(a.w, a.h)
}

// Run opens the window and blocks until it closes.
func (a *App) Run() error {
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetWindowSize(a.w, a.h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(a)
}
