// Package action provides the timed world-interaction state machine (mining and melee).
package action

import (
	"github.com/samdwyer/tilecraft/internal/world"
)

const (
	// DefaultDistanceMultiplier scales the tile width into the reach limit.
	DefaultDistanceMultiplier = 3.0
	// DefaultMiningDuration is the time in seconds to break a tile.
	DefaultMiningDuration = 1.0
)

// Kind identifies which interaction is in progress.
type Kind int

const (
	// KindNone means no interaction is active.
	KindNone Kind = iota
	// KindMining is a timed tile break.
	KindMining
	// KindMelee is a timed weapon swing.
	KindMelee
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMining:
		return "mining"
	case KindMelee:
		return "melee"
	default:
		return "unknown"
	}
}

// Status is the per-frame result of an interaction handler.
type Status int

const (
	// StatusCancelled means nothing happened this frame, or the action was stopped.
	StatusCancelled Status = iota
	// StatusInProgress means the action is running and has not finished.
	StatusInProgress
	// StatusCompleted means the action finished this frame and its effect applied.
	StatusCompleted
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusCancelled:
		return "cancelled"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Outcome is returned by the interaction handlers.
type Outcome struct {
	Status Status
	Tile   world.Tile // Mined tile on a completed mining action, TileEmpty otherwise
}

// Completed returns true if the action finished this frame.
func (o Outcome) Completed() bool { return o.Status == StatusCompleted }

var cancelled = Outcome{Status: StatusCancelled, Tile: world.TileEmpty}
var inProgress = Outcome{Status: StatusInProgress, Tile: world.TileEmpty}

// PoseListener receives state-transition events so the actor can enter or
// leave the matching pose.
type PoseListener interface {
	ActionStarted(kind Kind)
	ActionStopped(kind Kind)
}

// Actor is the interacting entity as seen by the machine.
type Actor interface {
	PoseListener
	// Center returns the center of the actor's visual bounds.
	Center() world.Vec2
}

// Progress is the shared state of the single active interaction.
type Progress struct {
	Active   bool
	Kind     Kind
	TargetX  int
	TargetY  int
	Elapsed  float64
	Required float64
}

// Fraction returns elapsed/required clamped to [0, 1].
func (p Progress) Fraction() float64 {
	if !p.Active || p.Required <= 0 {
		return 0
	}
	f := p.Elapsed / p.Required
	if f > 1 {
		return 1
	}
	return f
}

// targets returns true if the progress is locked on (x, y).
func (p Progress) targets(x, y int) bool {
	return p.TargetX == x && p.TargetY == y
}

// Machine advances at most one interaction at a time.
// A Machine belongs to one actor; it holds no global state.
type Machine struct {
	progress           Progress
	distanceMultiplier float64
	miningDuration     float64
}

// NewMachine creates a machine with the given reach multiplier and mining duration.
// Non-positive values fall back to the defaults.
func NewMachine(distanceMultiplier, miningDuration float64) *Machine {
	if distanceMultiplier <= 0 {
		distanceMultiplier = DefaultDistanceMultiplier
	}
	if miningDuration <= 0 {
		miningDuration = DefaultMiningDuration
	}
	m := &Machine{
		distanceMultiplier: distanceMultiplier,
		miningDuration:     miningDuration,
	}
	m.reset()
	return m
}

// Progress returns a copy of the current interaction state.
func (m *Machine) Progress() Progress {
	return m.progress
}

// Kind returns the active interaction kind.
func (m *Machine) Kind() Kind {
	return m.progress.Kind
}

// Active returns true while an interaction is running.
func (m *Machine) Active() bool {
	return m.progress.Active
}

// Stop is the single teardown path. It notifies the actor to leave the pose
// for the current kind and resets progress. Safe to call when idle.
func (m *Machine) Stop(actor PoseListener) {
	if kind := m.progress.Kind; kind != KindNone && actor != nil {
		actor.ActionStopped(kind)
	}
	m.reset()
}

func (m *Machine) reset() {
	m.progress = Progress{
		Kind:    KindNone,
		TargetX: -1,
		TargetY: -1,
	}
}

func (m *Machine) start(actor PoseListener, kind Kind, x, y int, required float64) {
	m.progress = Progress{
		Active:   true,
		Kind:     kind,
		TargetX:  x,
		TargetY:  y,
		Required: required,
	}
	actor.ActionStarted(kind)
}

// InReach returns true if the center of cell (x, y) is within reach of the actor.
func (m *Machine) InReach(actor Actor, grid *world.Grid, x, y int) bool {
	maxDistance := grid.TileSize().X * m.distanceMultiplier
	return actor.Center().Distance(grid.CellCenter(x, y)) <= maxDistance
}

// TryMine advances a mining interaction on cell (x, y).
// On completion the cell is set to TileEmpty and the mined tile is reported.
func (m *Machine) TryMine(actor Actor, grid *world.Grid, classes *world.Classification, x, y int, held bool, dt float64) Outcome {
	if m.progress.Kind == KindMelee {
		m.Stop(actor)
	}

	// Button released while mining
	if m.progress.Kind == KindMining && !held {
		m.Stop(actor)
		return cancelled
	}
	if !held && m.progress.Kind == KindNone {
		return cancelled
	}

	// Any running action stops, even one locked on a different cell
	if !grid.InBounds(x, y) || !m.InReach(actor, grid, x, y) {
		m.Stop(actor)
		return cancelled
	}

	tile := grid.GetTile(x, y)
	if !classes.IsBreakable(tile) {
		m.Stop(actor)
		return cancelled
	}

	// Cursor moved to another cell
	if m.progress.Active && !m.progress.targets(x, y) {
		m.Stop(actor)
	}

	if !m.progress.Active {
		m.start(actor, KindMining, x, y, m.miningDuration)
	}

	m.progress.Elapsed += dt
	if m.progress.Elapsed >= m.progress.Required {
		grid.SetTile(x, y, world.TileEmpty)
		m.Stop(actor)
		return Outcome{Status: StatusCompleted, Tile: tile}
	}
	return inProgress
}

// TrySwing advances a melee interaction aimed at cell (x, y).
// swingDuration is the held weapon's swing time. Completion only reports the
// swing; resolving its effect belongs to the caller.
func (m *Machine) TrySwing(actor Actor, grid *world.Grid, x, y int, held bool, dt, swingDuration float64) Outcome {
	if m.progress.Kind == KindMining {
		m.Stop(actor)
	}

	// Button released mid-swing
	if m.progress.Kind == KindMelee && !held {
		m.Stop(actor)
		return cancelled
	}
	if !held && m.progress.Kind == KindNone {
		return cancelled
	}

	// Any running swing stops, even one aimed at a different cell
	if !m.InReach(actor, grid, x, y) {
		m.Stop(actor)
		return cancelled
	}

	if m.progress.Active && !m.progress.targets(x, y) {
		m.Stop(actor)
	}

	if m.progress.Active {
		m.progress.Elapsed += dt
		if m.progress.Elapsed >= m.progress.Required {
			m.Stop(actor)
			return Outcome{Status: StatusCompleted, Tile: world.TileEmpty}
		}
		return inProgress
	}

	m.start(actor, KindMelee, x, y, swingDuration)
	return inProgress
}
