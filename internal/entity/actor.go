// Package entity provides the controlled actor and its kinematics.
package entity

import (
	"math"

	"github.com/samdwyer/tilecraft/internal/action"
	"github.com/samdwyer/tilecraft/internal/world"
)

// Hitbox proportions relative to the visual bounds.
const (
	HitboxWidthRatio  = 0.7
	HitboxHeightRatio = 0.9
)

// DefaultSize is the visual bounds of the actor: 64px frames drawn at 1.5x.
var DefaultSize = world.Vec2{X: 96, Y: 96}

// Pose is the animated stance the actor is in.
type Pose int

const (
	// PoseIdle is the resting stance.
	PoseIdle Pose = iota
	// PoseMining plays while a tile is being broken.
	PoseMining
	// PoseSwinging plays during a weapon swing.
	PoseSwinging
)

// String returns the pose name.
func (p Pose) String() string {
	switch p {
	case PoseIdle:
		return "idle"
	case PoseMining:
		return "mining"
	case PoseSwinging:
		return "swinging"
	default:
		return "unknown"
	}
}

// Physics holds the kinematic constants for an actor.
type Physics struct {
	Gravity         float64 // Downward acceleration while airborne (units/s²)
	MaxFallSpeed    float64 // Clamp for downward velocity
	JumpVelocity    float64 // Vertical velocity set by a jump (negative is up)
	MoveSpeed       float64 // Horizontal speed while walking
	MiningMoveSpeed float64 // Horizontal speed while in the mining pose
	Friction        float64 // Horizontal velocity multiplier per grounded frame
	StopThreshold   float64 // Horizontal speed below which a grounded actor stops
}

// DefaultPhysics returns the stock kinematic constants.
func DefaultPhysics() Physics {
	return Physics{
		Gravity:         980,
		MaxFallSpeed:    600,
		JumpVelocity:    -450,
		MoveSpeed:       300,
		MiningMoveSpeed: 100,
		Friction:        0.88,
		StopThreshold:   5,
	}
}

// Actor is the kinematic body of the controlled character.
// Position is the top-left corner of the visual bounds.
type Actor struct {
	Position         world.Vec2
	Velocity         world.Vec2
	PreviousPosition world.Vec2
	Size             world.Vec2 // Visual bounds
	OnGround         bool
	FacingRight      bool

	pose    Pose
	hitbox  world.Rect
	physics Physics
}

// NewActor creates an actor at the given position.
func NewActor(pos, size world.Vec2, physics Physics) *Actor {
	a := &Actor{
		Position:         pos,
		PreviousPosition: pos,
		Size:             size,
		FacingRight:      true,
		physics:          physics,
	}
	a.updateHitbox()
	return a
}

// Physics returns the actor's kinematic constants.
func (a *Actor) Physics() Physics { return a.physics }

// Pose returns the current pose.
func (a *Actor) Pose() Pose { return a.pose }

// Bounds returns the visual bounds in world space.
func (a *Actor) Bounds() world.Rect {
	return world.Rect{X: a.Position.X, Y: a.Position.Y, Width: a.Size.X, Height: a.Size.Y}
}

// Center returns the center of the visual bounds.
func (a *Actor) Center() world.Vec2 {
	return a.Bounds().Center()
}

// Hitbox returns the collision rectangle: narrower and shorter than the
// visual bounds, horizontally centered and aligned to the feet.
func (a *Actor) Hitbox() world.Rect {
	return a.hitbox
}

func (a *Actor) updateHitbox() {
	w := a.Size.X * HitboxWidthRatio
	h := a.Size.Y * HitboxHeightRatio
	a.hitbox = world.Rect{
		X:      a.Position.X + (a.Size.X-w)/2,
		Y:      a.Position.Y + a.Size.Y - h,
		Width:  w,
		Height: h,
	}
}

// SetPosition moves the actor and recomputes the hitbox.
func (a *Actor) SetPosition(p world.Vec2) {
	a.Position = p
	a.updateHitbox()
}

// PlaceFeet positions the actor so its hitbox bottom rests at y, centered on x.
func (a *Actor) PlaceFeet(x, y float64) {
	a.SetPosition(world.Vec2{X: x - a.Size.X/2, Y: y - a.Size.Y})
	a.PreviousPosition = a.Position
}

// RevertPosition restores the position captured at the start of the frame.
func (a *Actor) RevertPosition() {
	a.SetPosition(a.PreviousPosition)
}

// Move sets horizontal velocity from input direction (-1, 0 or 1).
// Zero leaves velocity to friction.
func (a *Actor) Move(dir int) {
	if dir == 0 {
		return
	}
	speed := a.physics.MoveSpeed
	if a.pose == PoseMining {
		speed = a.physics.MiningMoveSpeed
	}
	if dir < 0 {
		a.Velocity.X = -speed
		a.FacingRight = false
	} else {
		a.Velocity.X = speed
		a.FacingRight = true
	}
}

// CanJump returns true if the actor is grounded and not in an action pose.
func (a *Actor) CanJump() bool {
	return a.OnGround && a.pose == PoseIdle
}

// Jump launches the actor upward. Returns false if the jump was not allowed.
func (a *Actor) Jump() bool {
	if !a.CanJump() {
		return false
	}
	a.Velocity.Y = a.physics.JumpVelocity
	a.OnGround = false
	return true
}

// Integrate advances the actor by dt seconds: gravity or friction, then
// position. The pre-move position is kept for rollback.
func (a *Actor) Integrate(dt float64) {
	a.PreviousPosition = a.Position

	if !a.OnGround {
		a.Velocity.Y += a.physics.Gravity * dt
		if a.Velocity.Y > a.physics.MaxFallSpeed {
			a.Velocity.Y = a.physics.MaxFallSpeed
		}
	} else {
		a.Velocity.X *= a.physics.Friction
		if math.Abs(a.Velocity.X) < a.physics.StopThreshold {
			a.Velocity.X = 0
		}
	}

	a.SetPosition(a.Position.Add(a.Velocity.Scale(dt)))
}

// =============================================================================
// action.PoseListener implementation
// =============================================================================

// ActionStarted enters the pose for the given interaction.
func (a *Actor) ActionStarted(kind action.Kind) {
	switch kind {
	case action.KindMining:
		a.pose = PoseMining
	case action.KindMelee:
		a.pose = PoseSwinging
	}
}

// ActionStopped returns to idle if the actor was in the pose for kind.
func (a *Actor) ActionStopped(kind action.Kind) {
	switch {
	case kind == action.KindMining && a.pose == PoseMining,
		kind == action.KindMelee && a.pose == PoseSwinging:
		a.pose = PoseIdle
	}
}

// Ensure Actor satisfies the action machine's view of an actor
var _ action.Actor = (*Actor)(nil)
