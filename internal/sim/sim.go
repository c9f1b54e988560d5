// Package sim owns one simulated world: a tile grid, one actor, the collision
// resolver and the action machine, stepped in a fixed per-frame order.
package sim

import (
	"github.com/samdwyer/tilecraft/internal/action"
	"github.com/samdwyer/tilecraft/internal/collision"
	"github.com/samdwyer/tilecraft/internal/entity"
	"github.com/samdwyer/tilecraft/internal/gamedata"
	"github.com/samdwyer/tilecraft/internal/tuning"
	"github.com/samdwyer/tilecraft/internal/world"
)

// Input is the movement input sampled for one frame.
type Input struct {
	Left  bool
	Right bool
	Jump  bool
}

// Direction returns -1, 0 or 1. Opposing keys cancel out.
func (in Input) Direction() int {
	dir := 0
	if in.Left {
		dir--
	}
	if in.Right {
		dir++
	}
	return dir
}

// ActorState is the actor snapshot returned after each Advance.
type ActorState struct {
	Position world.Vec2
	Velocity world.Vec2
	Hitbox   world.Rect
	OnGround bool
	Pose     entity.Pose
}

// MeleeHandler resolves the effect of a completed swing aimed at cell (x, y).
type MeleeHandler func(x, y int)

// Sim is a single-threaded simulation context. Frame order is:
// input, integration, collision (predictive then corrective), ground flag,
// then the action handlers called by the owner.
type Sim struct {
	grid     *world.Grid
	classes  *world.Classification
	tools    *gamedata.ToolRegistry
	actor    *entity.Actor
	resolver *collision.Resolver
	machine  *action.Machine

	// OnMelee is called when a swing completes. May be nil.
	OnMelee MeleeHandler
}

// New creates a simulation over grid. The actor starts at the world origin;
// use Spawn to drop it onto the terrain.
func New(grid *world.Grid, classes *world.Classification, tools *gamedata.ToolRegistry, t tuning.Tuning) *Sim {
	return &Sim{
		grid:     grid,
		classes:  classes,
		tools:    tools,
		actor:    entity.NewActor(world.Vec2{}, t.ActorSize(), t.ActorPhysics()),
		resolver: collision.NewResolver(classes, t.ResolverOptions()),
		machine:  action.NewMachine(t.Actions.DistanceMultiplier, t.Actions.MiningDuration),
	}
}

// Grid returns the simulated tile grid.
func (s *Sim) Grid() *world.Grid { return s.grid }

// Actor returns the simulated actor.
func (s *Sim) Actor() *entity.Actor { return s.actor }

// Progress returns the current action progress for display.
func (s *Sim) Progress() action.Progress { return s.machine.Progress() }

// Spawn stands the actor on the topmost tile of column x, or at the top of
// the world if the column is empty. Any action in progress is stopped.
func (s *Sim) Spawn(x int) {
	s.machine.Stop(s.actor)
	center := s.grid.CellCenter(x, 0)
	feet := s.actor.Size.Y
	if y := s.grid.SurfaceY(x); y >= 0 {
		feet = s.grid.CellRect(x, y).Y
	}
	s.actor.PlaceFeet(center.X, feet)
	s.actor.Velocity = world.Vec2{}
	s.actor.OnGround = s.resolver.Grounded(s.actor, s.grid)
}

// Advance steps the actor's kinematics and collision by dt seconds.
func (s *Sim) Advance(dt float64, in Input) ActorState {
	a := s.actor

	a.Move(in.Direction())
	if in.Jump {
		a.Jump()
	}

	a.Integrate(dt)
	s.resolver.Resolve(a, s.grid, dt)
	a.OnGround = s.resolver.Grounded(a, s.grid)

	return s.State()
}

// State returns the current actor snapshot.
func (s *Sim) State() ActorState {
	a := s.actor
	return ActorState{
		Position: a.Position,
		Velocity: a.Velocity,
		Hitbox:   a.Hitbox(),
		OnGround: a.OnGround,
		Pose:     a.Pose(),
	}
}

// TryMine advances mining on cell (x, y).
func (s *Sim) TryMine(x, y int, held bool, dt float64) action.Outcome {
	return s.machine.TryMine(s.actor, s.grid, s.classes, x, y, held, dt)
}

// TrySwing advances a sword swing aimed at cell (x, y).
func (s *Sim) TrySwing(x, y int, held bool, dt float64) action.Outcome {
	return s.swing(gamedata.ToolSword, x, y, held, dt)
}

// StopAction cancels any action in progress. Call it whenever the held tool
// changes or world interaction is suspended.
func (s *Sim) StopAction() {
	s.machine.Stop(s.actor)
}

// Interact drives the action that the held tool performs. Tools without an
// action stop whatever is running.
func (s *Sim) Interact(tool gamedata.ToolID, x, y int, held bool, dt float64) action.Outcome {
	switch s.tools.ActionFor(tool) {
	case gamedata.ActionMine:
		return s.TryMine(x, y, held, dt)
	case gamedata.ActionMelee:
		return s.swing(tool, x, y, held, dt)
	default:
		s.StopAction()
		return action.Outcome{Status: action.StatusCancelled, Tile: world.TileEmpty}
	}
}

func (s *Sim) swing(tool gamedata.ToolID, x, y int, held bool, dt float64) action.Outcome {
	duration := 0.0
	if def := s.tools.GetByID(tool); def != nil {
		duration = def.SwingDuration
	}
	out := s.machine.TrySwing(s.actor, s.grid, x, y, held, dt, duration)
	if out.Completed() && s.OnMelee != nil {
		s.OnMelee(x, y)
	}
	return out
}
