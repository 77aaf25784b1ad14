package hopper

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Config holds the settings for a Game. Zero values select the defaults.
type Config struct {
	// Title is the window title.
	Title string
	// Width and Height are the screen size in pixels. Default 800x600.
	Width, Height int
	// WorldWidth and WorldHeight are the world extents. Default: screen size.
	WorldWidth, WorldHeight float64
	// StepMS is the fixed update step. Default 1000/60.
	StepMS float64
	// MaxSteps caps catch-up steps per tick. Default 240.
	MaxSteps int
	// Debug enables debug mode on the World.
	Debug bool
	// ShowFPS draws an FPS/TPS counter in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNGs. Default "screenshots".
	ScreenshotDir string
}

func (c *Config) applyDefaults() {
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.WorldWidth <= 0 {
		c.WorldWidth = float64(c.Width)
	}
	if c.WorldHeight <= 0 {
		c.WorldHeight = float64(c.Height)
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
}

// Scene is the set of hooks a Game calls. Preload and Create run once on
// Start; Update runs after every fixed step, Render after every tick's render.
// Any hook may be nil.
type Scene struct {
	Preload func(g *Game)
	Create  func(g *Game)
	Update  func(g *Game)
	Render  func(g *Game)
}

// Game ties a World, an EbitenSurface and a fixed-step Loop together and
// implements ebiten.Game. It can also be driven headless through Tick.
type Game struct {
	config  Config
	scene   Scene
	world   *World
	surface *EbitenSurface
	loop    *Loop

	started    bool
	quit       bool
	lastUpdate time.Time

	fps             *fpsOverlay
	screenshotQueue []string
	runner          *TestRunner
}

// NewGame creates a game. Nothing runs until Start, Tick or Run.
func NewGame(cfg Config, scene Scene) *Game {
	cfg.applyDefaults()
	g := &Game{
		config:  cfg,
		scene:   scene,
		world:   NewWorld(cfg.WorldWidth, cfg.WorldHeight),
		surface: NewEbitenSurface(),
		loop:    NewLoop(cfg.StepMS, cfg.MaxSteps),
	}
	g.world.SetSurface(g.surface)
	g.world.Camera().SetSize(float64(cfg.Width), float64(cfg.Height))
	g.world.SetDebugMode(cfg.Debug)
	g.loop.SetUpdate(g.step)
	g.loop.SetRender(g.Render)
	if cfg.ShowFPS {
		g.fps = &fpsOverlay{}
	}
	return g
}

// Config returns the effective configuration.
func (g *Game) Config() Config { return g.config }

// World returns the game's world.
func (g *Game) World() *World { return g.world }

// Cache returns the world's image cache.
func (g *Game) Cache() *Cache { return g.world.cache }

// Surface returns the surface the world renders into.
func (g *Game) Surface() *EbitenSurface { return g.surface }

// Loop returns the fixed-step scheduler.
func (g *Game) Loop() *Loop { return g.loop }

// Started reports whether Start ran.
func (g *Game) Started() bool { return g.started }

// Start runs the Preload and Create hooks and starts the loop. Later calls
// do nothing.
func (g *Game) Start() {
	if g.started {
		return
	}
	g.started = true
	if g.scene.Preload != nil {
		g.scene.Preload(g)
	}
	if g.scene.Create != nil {
		g.scene.Create(g)
	}
	g.loop.Start()
}

// Tick advances the game by elapsedMS of wall time, starting it first if
// needed. It returns the number of fixed steps run.
func (g *Game) Tick(elapsedMS float64) int {
	if !g.started {
		g.Start()
	}
	return g.loop.Advance(elapsedMS)
}

func (g *Game) step(stepMS float64) {
	g.world.Update(stepMS)
	if g.scene.Update != nil {
		safeCall("scene update", func() { g.scene.Update(g) })
	}
	if g.runner != nil {
		g.runner.step(g)
	}
}

// Render pushes the world to the surface and runs the Render hook. The loop
// calls it once per tick.
func (g *Game) Render() {
	g.world.Render()
	if g.scene.Render != nil {
		safeCall("scene render", func() { g.scene.Render(g) })
	}
}

// Quit ends Run after the current frame.
func (g *Game) Quit() {
	g.quit = true
	g.loop.Stop()
}

// Run opens a window and blocks until it is closed or Quit is called.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.config.Width, g.config.Height)
	if g.config.Title != "" {
		ebiten.SetWindowTitle(g.config.Title)
	}
	return ebiten.RunGame(g)
}

// Update implements ebiten.Game. It feeds the wall time since the previous
// call into the loop.
func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	now := time.Now()
	elapsed := g.loop.Step
	if !g.lastUpdate.IsZero() {
		elapsed = float64(now.Sub(g.lastUpdate)) / float64(time.Millisecond)
	}
	g.lastUpdate = now
	g.Tick(elapsed)
	if g.fps != nil {
		g.fps.update(elapsed / 1000)
	}
	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game with a fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.config.Width, g.config.Height
}
