package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilecraft/internal/action"
	"github.com/samdwyer/tilecraft/internal/gamedata"
	"github.com/samdwyer/tilecraft/internal/sim"
	"github.com/samdwyer/tilecraft/internal/telemetry"
	"github.com/samdwyer/tilecraft/internal/ui"
	"github.com/samdwyer/tilecraft/internal/world"
)

const (
	// frameInterval is the target time between simulation steps.
	frameInterval = 16 * time.Millisecond
	// MaxDeltaTime caps a single step after a stall.
	MaxDeltaTime = 0.06
)

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	tiles    *gamedata.TileRegistry
	tools    *gamedata.ToolRegistry
	sim      *sim.Sim
	hotbar   *Hotbar
	input    inputState
	state    State
	config   Config
	targetX  int
	targetY  int
	running  bool
	closed   bool
}

// New creates a new game instance.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := newGame(cfg, screen)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

func newGame(cfg Config, screen *ui.Screen) (*Game, error) {
	if err := cfg.Tuning.Validate(); err != nil {
		return nil, err
	}
	tiles, err := gamedata.LoadTileRegistry()
	if err != nil {
		return nil, err
	}
	tools, err := gamedata.LoadToolRegistry()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen, tiles),
		tiles:    tiles,
		tools:    tools,
		hotbar:   NewHotbar(),
		state:    StatePlay,
		config:   cfg,
		targetX:  -1,
		targetY:  -1,
		running:  true,
	}, nil
}

// Sim returns the running simulation, or nil before Run.
func (g *Game) Sim() *sim.Sim { return g.sim }

// State returns the current game state.
func (g *Game) State() State { return g.state }

// init generates the world and places the actor.
func (g *Game) init(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	t := g.config.Tuning
	seed := g.config.Seed
	if seed == 0 {
		seed = t.World.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	grid := world.NewGrid(t.World.Width, t.World.Height, t.TileSize())
	stats := world.GenerateTerrain(ctx, grid, rng)

	g.sim = sim.New(grid, g.tiles.Classification(), g.tools, t)
	spawnX := grid.Width() / 2
	g.sim.Spawn(spawnX)
	g.renderer.Attach(grid)

	span.SetAttributes(
		attribute.Int64("game.seed", seed),
		attribute.Int("world.trees", stats.Trees),
		attribute.Int("actor.spawn_x", spawnX),
		attribute.String("collision.predictive_step", t.Collision.PredictiveStep),
	)
}

// Run executes the main game loop until the player quits or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	g.init(ctx)

	done := make(chan struct{})
	events := make(chan tcell.Event, 64)
	go g.pollEvents(events, done)

	ticker := time.NewTicker(frameInterval)
	last := time.Now()

	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ctx, ev, time.Now())
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			g.step(ctx, min(dt, MaxDeltaTime), now)
			g.render()
		}
	}

	// Cleanup
	ticker.Stop()
	close(done)
	g.Close()
	return nil
}

// pollEvents forwards terminal events to the loop goroutine.
func (g *Game) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// step advances the simulation by dt seconds. Nothing moves while paused.
func (g *Game) step(ctx context.Context, dt float64, now time.Time) {
	if g.state != StatePlay {
		return
	}

	g.sim.Advance(dt, sim.Input{
		Left:  g.input.held(controlLeft, now),
		Right: g.input.held(controlRight, now),
		Jump:  g.input.held(controlJump, now),
	})

	x, y, ok := g.renderer.CellAt(g.input.mouseX, g.input.mouseY)
	if !ok {
		x, y = -1, -1
	}
	g.targetX, g.targetY = x, y

	tool := g.hotbar.Held()
	out := g.sim.Interact(tool, x, y, g.input.mouseDown, dt)
	if out.Completed() {
		g.traceCompletion(ctx, tool, x, y, out)
	}
}

func (g *Game) traceCompletion(ctx context.Context, tool gamedata.ToolID, x, y int, out action.Outcome) {
	_, span := telemetry.Tracer("game").Start(ctx, "action.complete")
	defer span.End()

	span.SetAttributes(
		attribute.String("action.kind", string(g.tools.ActionFor(tool))),
		attribute.Int("action.tool", int(tool)),
		attribute.Int("action.cell_x", x),
		attribute.Int("action.cell_y", y),
	)
	if out.Tile != world.TileEmpty {
		attrs := []attribute.KeyValue{attribute.Int("action.tile", int(out.Tile))}
		if def := g.tiles.GetByID(out.Tile); def != nil {
			attrs = append(attrs, attribute.String("action.tile_key", def.Key))
		}
		span.SetAttributes(attrs...)
	}
}

func (g *Game) render() {
	slots := g.hotbar.Slots()
	hotbar := make([]*gamedata.ToolDef, len(slots))
	for i, id := range slots {
		hotbar[i] = g.tools.GetByID(id)
	}

	g.renderer.Render(ui.Frame{
		Actor:    g.sim.Actor(),
		Progress: g.sim.Progress(),
		TargetX:  g.targetX,
		TargetY:  g.targetY,
		Hotbar:   hotbar,
		Selected: g.hotbar.Selected(),
	})
	if g.state == StatePaused {
		g.renderer.RenderMessage("-- paused (p to resume) --", 0)
		g.screen.Show()
	}
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev, now)
	case *tcell.EventMouse:
		g.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyLeft:
		g.input.press(controlLeft, now)
	case tcell.KeyRight:
		g.input.press(controlRight, now)
	case tcell.KeyUp:
		g.input.press(controlJump, now)

	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q' || r == 'Q':
			g.running = false
		case r == 'a' || r == 'A':
			g.input.press(controlLeft, now)
		case r == 'd' || r == 'D':
			g.input.press(controlRight, now)
		case r == 'w' || r == 'W' || r == ' ':
			g.input.press(controlJump, now)
		case r == 'p' || r == 'P':
			g.togglePause()
		case r >= '1' && r <= '9':
			g.selectSlot(ctx, int(r-'1'))
		}
	}
}

// handleMouseEvent tracks the pointer and the wheel.
func (g *Game) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	g.input.mouse(x, y, buttons&tcell.Button1 != 0)

	switch {
	case buttons&tcell.WheelUp != 0:
		g.cycleSlot(ctx, -1)
	case buttons&tcell.WheelDown != 0:
		g.cycleSlot(ctx, 1)
	}
}

// togglePause suspends or resumes the world. Pausing stops any action.
func (g *Game) togglePause() {
	if g.state == StatePaused {
		g.state = StatePlay
		return
	}
	g.state = StatePaused
	g.input.releaseAll()
	g.sim.StopAction()
}

func (g *Game) selectSlot(ctx context.Context, slot int) {
	from := g.hotbar.Held()
	if g.hotbar.Select(slot) {
		g.toolSwitched(ctx, from)
	}
}

func (g *Game) cycleSlot(ctx context.Context, delta int) {
	from := g.hotbar.Held()
	if g.hotbar.Cycle(delta) {
		g.toolSwitched(ctx, from)
	}
}

// toolSwitched cancels the running action whenever the held tool changes.
func (g *Game) toolSwitched(ctx context.Context, from gamedata.ToolID) {
	_, span := telemetry.Tracer("game").Start(ctx, "game.tool_switch")
	defer span.End()

	g.sim.StopAction()
	span.SetAttributes(
		attribute.Int("tool.from", int(from)),
		attribute.Int("tool.to", int(g.hotbar.Held())),
		attribute.Int("hotbar.slot", g.hotbar.Selected()),
	)
}

// Close releases the terminal. Safe to call more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.screen.Close()
}
