package collision

import (
	"testing"

	"github.com/samdwyer/tilecraft/internal/entity"
	"github.com/samdwyer/tilecraft/internal/world"
)

const tileSize = 46.0

// newTestWorld returns a 20x20 grid with a stone floor on row 10 and a
// bedrock wall in column 12, plus a resolver that treats both as solid.
func newTestWorld() (*world.Grid, *Resolver) {
	grid := world.NewGrid(20, 20, world.Vec2{X: tileSize, Y: tileSize})
	for x := 0; x < grid.Width(); x++ {
		grid.SetTile(x, 10, world.TileStone)
	}
	for y := 0; y < 10; y++ {
		grid.SetTile(12, y, world.TileBedrock)
	}
	grid.SetTile(3, 9, world.TileFlowerRed)

	classes := world.NewClassification()
	classes.Set(world.TileStone, world.CapSolid|world.CapBreakable)
	classes.Set(world.TileBedrock, world.CapSolid)
	classes.Set(world.TileFlowerRed, world.CapBreakable)

	return grid, NewResolver(classes, DefaultOptions())
}

func newTestActor() *entity.Actor {
	return entity.NewActor(world.Vec2{}, entity.DefaultSize, entity.DefaultPhysics())
}

func TestStepModeParse(t *testing.T) {
	tests := []struct {
		input string
		mode  StepMode
		ok    bool
	}{
		{"fixed", StepFixed, true},
		{"", StepFixed, true},
		{"frame", StepFrame, true},
		{"variable", StepFixed, false},
	}

	for _, tt := range tests {
		mode, ok := ParseStepMode(tt.input)
		if mode != tt.mode || ok != tt.ok {
			t.Errorf("ParseStepMode(%q) = (%v, %v), want (%v, %v)", tt.input, mode, ok, tt.mode, tt.ok)
		}
	}

	if got := StepFrame.String(); got != "frame" {
		t.Errorf("StepFrame.String() = %q, want %q", got, "frame")
	}
}

func TestOverlaps(t *testing.T) {
	grid, r := newTestWorld()

	tests := []struct {
		name string
		rect world.Rect
		want bool
	}{
		{"inside floor", world.Rect{X: 100, Y: 470, Width: 10, Height: 10}, true},
		{"resting on floor", world.Rect{X: 100, Y: 400, Width: 40, Height: 60}, false},
		{"into floor", world.Rect{X: 100, Y: 401, Width: 40, Height: 60}, true},
		{"touching wall", world.Rect{X: 500, Y: 100, Width: 52, Height: 40}, false},
		{"into wall", world.Rect{X: 500, Y: 100, Width: 53, Height: 40}, true},
		{"non-solid flower", world.Rect{X: 140, Y: 420, Width: 20, Height: 20}, false},
		{"off grid", world.Rect{X: -500, Y: -500, Width: 100, Height: 100}, false},
		{"below grid", world.Rect{X: 100, Y: 2000, Width: 100, Height: 100}, false},
	}

	for _, tt := range tests {
		if got := r.Overlaps(tt.rect, grid); got != tt.want {
			t.Errorf("%s: Overlaps() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGroundDetection(t *testing.T) {
	grid, r := newTestWorld()
	a := newTestActor()

	// Resting exactly on the floor row
	a.PlaceFeet(200, 460)
	if !r.Grounded(a, grid) {
		t.Error("Grounded() resting on floor = false, want true")
	}

	// Lifted by more than the epsilon
	a.PlaceFeet(200, 457.5)
	if r.Grounded(a, grid) {
		t.Error("Grounded() lifted 2.5 = true, want false")
	}

	// Within the epsilon
	a.PlaceFeet(200, 459)
	if !r.Grounded(a, grid) {
		t.Error("Grounded() lifted 1 = false, want true")
	}
}

func TestCorrectiveRollback(t *testing.T) {
	grid, r := newTestWorld()
	a := newTestActor()
	a.PlaceFeet(200, 460)
	rest := a.Position

	// Integrate a fast fall straight into the floor
	a.Velocity.Y = 600
	a.Integrate(0.1)
	if !r.Overlaps(a.Hitbox(), grid) {
		t.Fatal("setup: actor should be embedded in the floor")
	}

	report := r.Resolve(a, grid, 0.1)
	if !report.RolledBack {
		t.Error("Resolve() RolledBack = false, want true")
	}
	if !report.Landed || !a.OnGround {
		t.Error("Resolve() should report landing while falling")
	}
	if a.Position != rest {
		t.Errorf("Position = %v, want previous %v", a.Position, rest)
	}
	if a.Velocity.Y != 0 {
		t.Errorf("Velocity.Y = %v, want 0", a.Velocity.Y)
	}

	// Second pass with no further movement is a no-op
	again := r.Resolve(a, grid, 0.1)
	if again.RolledBack || a.Position != rest {
		t.Errorf("second Resolve() moved actor: report=%+v position=%v", again, a.Position)
	}
}

func TestPredictiveHorizontalBlock(t *testing.T) {
	grid, r := newTestWorld()
	a := newTestActor()

	// Hitbox right edge 6 units left of the wall (wall starts at x=552)
	a.PlaceFeet(552-6-a.Hitbox().Width/2, 400)
	a.Velocity = world.Vec2{X: 600, Y: 0}

	report := r.Predict(a, grid, 0.016)
	if !report.BlockedX || a.Velocity.X != 0 {
		t.Errorf("Predict() BlockedX = %v, Velocity.X = %v; want blocked and 0", report.BlockedX, a.Velocity.X)
	}
	if report.BlockedY {
		t.Error("Predict() BlockedY = true, want false")
	}

	// Moving away from the wall slides freely
	a.Velocity = world.Vec2{X: -600, Y: 0}
	if report := r.Predict(a, grid, 0.016); report.BlockedX {
		t.Error("Predict() moving away from wall should not block")
	}
}

func TestPredictiveCeilingDoesNotGround(t *testing.T) {
	grid, r := newTestWorld()
	grid.SetTile(4, 2, world.TileStone)
	a := newTestActor()

	// Hitbox top 3 units below the ceiling tile, moving up
	a.PlaceFeet(4*tileSize+tileSize/2, 3*tileSize+3+a.Hitbox().Height)
	a.Velocity = world.Vec2{X: 0, Y: -450}

	report := r.Predict(a, grid, 0.016)
	if !report.BlockedY || a.Velocity.Y != 0 {
		t.Fatalf("Predict() BlockedY = %v, Velocity.Y = %v", report.BlockedY, a.Velocity.Y)
	}
	if report.Landed || a.OnGround {
		t.Error("upward block must not set OnGround")
	}
}

func TestStepModeProjection(t *testing.T) {
	grid, _ := newTestWorld()
	classes := world.NewClassification()
	classes.Set(world.TileBedrock, world.CapSolid)
	classes.Set(world.TileStone, world.CapSolid)

	fixed := NewResolver(classes, DefaultOptions())
	opts := DefaultOptions()
	opts.Mode = StepFrame
	frame := NewResolver(classes, opts)

	place := func() *entity.Actor {
		a := newTestActor()
		// 30 units of clearance before the wall
		a.PlaceFeet(552-30-a.Hitbox().Width/2, 400)
		a.Velocity = world.Vec2{X: 1000}
		return a
	}

	// A slow frame: fixed projection (16 units) misses the wall, frame projection (50) hits it
	a := place()
	if report := fixed.Predict(a, grid, 0.05); report.BlockedX {
		t.Error("fixed step should not see the wall")
	}
	b := place()
	if report := frame.Predict(b, grid, 0.05); !report.BlockedX {
		t.Error("frame step should see the wall")
	}
}

func TestActorOutsideGrid(t *testing.T) {
	grid, r := newTestWorld()
	a := newTestActor()
	a.SetPosition(world.Vec2{X: -5000, Y: -5000})
	a.Velocity = world.Vec2{X: 300, Y: 300}

	report := r.Resolve(a, grid, 0.016)
	if report != (Report{}) {
		t.Errorf("Resolve() off grid = %+v, want empty report", report)
	}
	if r.Grounded(a, grid) {
		t.Error("Grounded() off grid = true, want false")
	}
}
