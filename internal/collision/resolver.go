// Package collision keeps the actor out of solid tiles and detects ground contact.
package collision

import (
	"github.com/samdwyer/tilecraft/internal/entity"
	"github.com/samdwyer/tilecraft/internal/world"
)

const (
	// DefaultFixedStep is the nominal frame time used to project motion.
	DefaultFixedStep = 0.016
	// DefaultGroundEpsilon is how far below the hitbox the ground probe reaches.
	DefaultGroundEpsilon = 2.0
)

// StepMode selects the timestep used by the predictive pass.
type StepMode int

const (
	// StepFixed projects motion by the nominal fixed step regardless of frame time.
	StepFixed StepMode = iota
	// StepFrame projects motion by the actual frame delta.
	StepFrame
)

// String returns the mode name as used in configuration.
func (m StepMode) String() string {
	switch m {
	case StepFixed:
		return "fixed"
	case StepFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// ParseStepMode converts a configuration name to a StepMode.
func ParseStepMode(s string) (StepMode, bool) {
	switch s {
	case "fixed", "":
		return StepFixed, true
	case "frame":
		return StepFrame, true
	default:
		return StepFixed, false
	}
}

// Options configures a Resolver.
type Options struct {
	FixedStep     float64
	GroundEpsilon float64
	Mode          StepMode
}

// DefaultOptions returns the stock resolver configuration.
func DefaultOptions() Options {
	return Options{
		FixedStep:     DefaultFixedStep,
		GroundEpsilon: DefaultGroundEpsilon,
		Mode:          StepFixed,
	}
}

// Report describes what a Resolve pass changed.
type Report struct {
	BlockedX   bool // Horizontal velocity was zeroed
	BlockedY   bool // Vertical velocity was zeroed
	Landed     bool // Vertical block happened while falling
	RolledBack bool // Position was restored to the previous frame
}

// Resolver corrects actor motion against the solid tiles of a grid.
type Resolver struct {
	classes *world.Classification
	opts    Options
}

// NewResolver creates a resolver using classes to decide which tiles are solid.
func NewResolver(classes *world.Classification, opts Options) *Resolver {
	if opts.FixedStep <= 0 {
		opts.FixedStep = DefaultFixedStep
	}
	if opts.GroundEpsilon <= 0 {
		opts.GroundEpsilon = DefaultGroundEpsilon
	}
	return &Resolver{
		classes: classes,
		opts:    opts,
	}
}

// Options returns the resolver configuration.
func (r *Resolver) Options() Options {
	return r.opts
}

// Overlaps returns true if rect intersects any solid tile of the grid.
// Cells outside the grid never collide.
func (r *Resolver) Overlaps(rect world.Rect, grid *world.Grid) bool {
	left, top, right, bottom, ok := grid.CellSpan(rect)
	if !ok {
		return false
	}

	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			if !r.classes.IsSolid(grid.GetTile(x, y)) {
				continue
			}
			if rect.Intersects(grid.CellRect(x, y)) {
				return true
			}
		}
	}
	return false
}

// Resolve runs the predictive pass and then the corrective pass.
// dt is the frame delta that was used to integrate the actor.
func (r *Resolver) Resolve(a *entity.Actor, grid *world.Grid, dt float64) Report {
	report := r.Predict(a, grid, dt)
	report.RolledBack = r.Correct(a, grid)
	return report
}

// Predict zeroes each velocity component whose projected motion would enter
// a solid tile. Axes are tested independently from the current hitbox.
func (r *Resolver) Predict(a *entity.Actor, grid *world.Grid, dt float64) Report {
	var report Report
	step := r.step(dt)
	hitbox := a.Hitbox()

	if r.Overlaps(hitbox.Translate(a.Velocity.X*step, 0), grid) {
		a.Velocity.X = 0
		report.BlockedX = true
	}

	if r.Overlaps(hitbox.Translate(0, a.Velocity.Y*step), grid) {
		if a.Velocity.Y > 0 {
			a.OnGround = true
			report.Landed = true
		}
		a.Velocity.Y = 0
		report.BlockedY = true
	}

	return report
}

// Correct restores the previous position if the current hitbox is inside a
// solid tile. Returns true if it moved the actor.
func (r *Resolver) Correct(a *entity.Actor, grid *world.Grid) bool {
	if !r.Overlaps(a.Hitbox(), grid) {
		return false
	}
	if a.Position == a.PreviousPosition {
		return false
	}
	a.RevertPosition()
	return true
}

// Grounded returns true if a solid tile lies within the ground epsilon below the hitbox.
func (r *Resolver) Grounded(a *entity.Actor, grid *world.Grid) bool {
	return r.Overlaps(a.Hitbox().Translate(0, r.opts.GroundEpsilon), grid)
}

func (r *Resolver) step(dt float64) float64 {
	if r.opts.Mode == StepFrame {
		return dt
	}
	return r.opts.FixedStep
}
