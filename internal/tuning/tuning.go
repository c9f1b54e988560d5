// Package tuning loads the simulation constants from a YAML file.
package tuning

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/tilecraft/internal/action"
	"github.com/samdwyer/tilecraft/internal/collision"
	"github.com/samdwyer/tilecraft/internal/entity"
	"github.com/samdwyer/tilecraft/internal/world"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid tuning")

// Tuning holds every adjustable constant of the simulation.
type Tuning struct {
	World     World     `yaml:"world"`
	Actor     Actor     `yaml:"actor"`
	Physics   Physics   `yaml:"physics"`
	Collision Collision `yaml:"collision"`
	Actions   Actions   `yaml:"actions"`
}

type World struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	TileSize float64 `yaml:"tile_size"`
	Seed     int64   `yaml:"seed"` // 0 picks a time-based seed
}

type Actor struct {
	VisualWidth  float64 `yaml:"visual_width"`
	VisualHeight float64 `yaml:"visual_height"`
}

type Physics struct {
	Gravity         float64 `yaml:"gravity"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	JumpVelocity    float64 `yaml:"jump_velocity"`
	MoveSpeed       float64 `yaml:"move_speed"`
	MiningMoveSpeed float64 `yaml:"mining_move_speed"`
	Friction        float64 `yaml:"friction"`
	StopThreshold   float64 `yaml:"stop_threshold"`
}

type Collision struct {
	FixedStep      float64 `yaml:"fixed_step"`
	GroundEpsilon  float64 `yaml:"ground_epsilon"`
	PredictiveStep string  `yaml:"predictive_step"` // "fixed" or "frame"
}

type Actions struct {
	DistanceMultiplier float64 `yaml:"distance_multiplier"`
	MiningDuration     float64 `yaml:"mining_duration"`
}

// Default returns the stock tuning.
func Default() Tuning {
	p := entity.DefaultPhysics()
	c := collision.DefaultOptions()
	return Tuning{
		World: World{
			Width:    world.DefaultWidth,
			Height:   world.DefaultHeight,
			TileSize: world.DefaultTileSize,
		},
		Actor: Actor{
			VisualWidth:  entity.DefaultSize.X,
			VisualHeight: entity.DefaultSize.Y,
		},
		Physics: Physics{
			Gravity:         p.Gravity,
			MaxFallSpeed:    p.MaxFallSpeed,
			JumpVelocity:    p.JumpVelocity,
			MoveSpeed:       p.MoveSpeed,
			MiningMoveSpeed: p.MiningMoveSpeed,
			Friction:        p.Friction,
			StopThreshold:   p.StopThreshold,
		},
		Collision: Collision{
			FixedStep:      c.FixedStep,
			GroundEpsilon:  c.GroundEpsilon,
			PredictiveStep: c.Mode.String(),
		},
		Actions: Actions{
			DistanceMultiplier: action.DefaultDistanceMultiplier,
			MiningDuration:     action.DefaultMiningDuration,
		},
	}
}

// Load reads a tuning file. Keys missing from the file keep their defaults.
func Load(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	t, err := Parse(raw)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(raw []byte) (Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Validate reports the first value the simulation cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.World.Width <= 0 || t.World.Height <= 0:
		return fmt.Errorf("%w: world size %dx%d", ErrInvalid, t.World.Width, t.World.Height)
	case t.World.TileSize <= 0:
		return fmt.Errorf("%w: tile_size %v", ErrInvalid, t.World.TileSize)
	case t.Actor.VisualWidth <= 0 || t.Actor.VisualHeight <= 0:
		return fmt.Errorf("%w: actor size %vx%v", ErrInvalid, t.Actor.VisualWidth, t.Actor.VisualHeight)
	case t.Physics.Gravity < 0 || t.Physics.MaxFallSpeed <= 0:
		return fmt.Errorf("%w: gravity %v max_fall_speed %v", ErrInvalid, t.Physics.Gravity, t.Physics.MaxFallSpeed)
	case t.Physics.JumpVelocity >= 0:
		return fmt.Errorf("%w: jump_velocity %v must be negative (up)", ErrInvalid, t.Physics.JumpVelocity)
	case t.Physics.Friction < 0 || t.Physics.Friction > 1:
		return fmt.Errorf("%w: friction %v outside [0, 1]", ErrInvalid, t.Physics.Friction)
	case t.Collision.FixedStep <= 0 || t.Collision.GroundEpsilon <= 0:
		return fmt.Errorf("%w: fixed_step %v ground_epsilon %v", ErrInvalid, t.Collision.FixedStep, t.Collision.GroundEpsilon)
	case t.Actions.DistanceMultiplier <= 0 || t.Actions.MiningDuration <= 0:
		return fmt.Errorf("%w: distance_multiplier %v mining_duration %v", ErrInvalid, t.Actions.DistanceMultiplier, t.Actions.MiningDuration)
	}
	if _, ok := collision.ParseStepMode(t.Collision.PredictiveStep); !ok {
		return fmt.Errorf("%w: predictive_step %q", ErrInvalid, t.Collision.PredictiveStep)
	}
	return nil
}

// TileSize returns the cell edge as a vector.
func (t Tuning) TileSize() world.Vec2 {
	return world.Vec2{X: t.World.TileSize, Y: t.World.TileSize}
}

// ActorSize returns the actor's visual bounds.
func (t Tuning) ActorSize() world.Vec2 {
	return world.Vec2{X: t.Actor.VisualWidth, Y: t.Actor.VisualHeight}
}

// ActorPhysics converts the physics section for entity.NewActor.
func (t Tuning) ActorPhysics() entity.Physics {
	return entity.Physics{
		Gravity:         t.Physics.Gravity,
		MaxFallSpeed:    t.Physics.MaxFallSpeed,
		JumpVelocity:    t.Physics.JumpVelocity,
		MoveSpeed:       t.Physics.MoveSpeed,
		MiningMoveSpeed: t.Physics.MiningMoveSpeed,
		Friction:        t.Physics.Friction,
		StopThreshold:   t.Physics.StopThreshold,
	}
}

// ResolverOptions converts the collision section for collision.NewResolver.
// An unknown step mode falls back to fixed.
func (t Tuning) ResolverOptions() collision.Options {
	mode, _ := collision.ParseStepMode(t.Collision.PredictiveStep)
	return collision.Options{
		FixedStep:     t.Collision.FixedStep,
		GroundEpsilon: t.Collision.GroundEpsilon,
		Mode:          mode,
	}
}
