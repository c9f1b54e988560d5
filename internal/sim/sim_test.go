package sim

import (
	"testing"

	"github.com/samdwyer/tilecraft/internal/action"
	"github.com/samdwyer/tilecraft/internal/entity"
	"github.com/samdwyer/tilecraft/internal/gamedata"
	"github.com/samdwyer/tilecraft/internal/tuning"
	"github.com/samdwyer/tilecraft/internal/world"
)

const frame = 0.016

// newTestSim builds a 20x15 world with a stone floor on row 10 and the actor
// standing on it in column 5.
func newTestSim(t *testing.T) *Sim {
	t.Helper()

	tiles := gamedata.MustLoadTileRegistry()
	tools := gamedata.MustLoadToolRegistry()
	tun := tuning.Default()

	grid := world.NewGrid(20, 15, tun.TileSize())
	for x := 0; x < grid.Width(); x++ {
		grid.SetTile(x, 10, world.TileStone)
		grid.SetTile(x, 14, world.TileBedrock)
	}

	s := New(grid, tiles.Classification(), tools, tun)
	s.Spawn(5)
	return s
}

func TestInputDirection(t *testing.T) {
	tests := []struct {
		in   Input
		want int
	}{
		{Input{}, 0},
		{Input{Left: true}, -1},
		{Input{Right: true}, 1},
		{Input{Left: true, Right: true}, 0},
	}

	for _, tt := range tests {
		if got := tt.in.Direction(); got != tt.want {
			t.Errorf("%+v.Direction() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSpawnRestsOnSurface(t *testing.T) {
	s := newTestSim(t)
	state := s.State()

	if !state.OnGround {
		t.Error("OnGround = false after Spawn, want true")
	}
	if state.Hitbox.Bottom() != 460 {
		t.Errorf("Hitbox.Bottom() = %v, want 460", state.Hitbox.Bottom())
	}

	// Standing still is stable
	for i := 0; i < 10; i++ {
		state = s.Advance(frame, Input{})
	}
	if !state.OnGround || state.Hitbox.Bottom() != 460 || state.Velocity != (world.Vec2{}) {
		t.Errorf("idle frames moved the actor: %+v", state)
	}
}

func TestFallAndLand(t *testing.T) {
	s := newTestSim(t)
	s.Actor().PlaceFeet(253, 300)
	s.Actor().OnGround = false

	var state ActorState
	for i := 0; i < 300; i++ {
		state = s.Advance(frame, Input{})
	}

	if !state.OnGround {
		t.Fatal("actor never landed")
	}
	if bottom := state.Hitbox.Bottom(); bottom > 460 || bottom < 458 {
		t.Errorf("Hitbox.Bottom() = %v, want within the ground epsilon of 460", bottom)
	}
	if s.resolver.Overlaps(state.Hitbox, s.Grid()) {
		t.Error("actor ended inside the floor")
	}
}

func TestWalkAndJump(t *testing.T) {
	s := newTestSim(t)
	start := s.State().Position

	state := s.Advance(frame, Input{Right: true})
	if state.Position.X <= start.X || !s.Actor().FacingRight {
		t.Errorf("Right input: Position.X = %v, want > %v", state.Position.X, start.X)
	}

	state = s.Advance(frame, Input{Jump: true})
	if state.OnGround || state.Velocity.Y >= 0 {
		t.Errorf("after jump: OnGround = %v, Velocity.Y = %v", state.OnGround, state.Velocity.Y)
	}
	if state.Position.Y >= start.Y {
		t.Errorf("Position.Y = %v, want above %v", state.Position.Y, start.Y)
	}

	// No double jump in mid-air
	vy := state.Velocity.Y
	state = s.Advance(frame, Input{Jump: true})
	if state.Velocity.Y < vy {
		t.Errorf("mid-air jump changed Velocity.Y from %v to %v", vy, state.Velocity.Y)
	}
}

func TestJumpBlockedWhileMining(t *testing.T) {
	s := newTestSim(t)

	s.TryMine(5, 10, true, frame)
	if s.State().Pose != entity.PoseMining {
		t.Fatalf("Pose = %v, want mining", s.State().Pose)
	}

	state := s.Advance(frame, Input{Jump: true})
	if !state.OnGround || state.Velocity.Y != 0 {
		t.Errorf("jumped while mining: %+v", state)
	}
}

func TestInteractDispatch(t *testing.T) {
	s := newTestSim(t)

	// Pickaxe mines the floor under the actor
	s.Interact(gamedata.ToolPickaxe, 5, 10, true, 0.5)
	out := s.Interact(gamedata.ToolPickaxe, 5, 10, true, 0.5)
	if !out.Completed() || out.Tile != world.TileStone {
		t.Fatalf("Interact(pickaxe) = %+v, want completed stone", out)
	}
	if got := s.Grid().GetTile(5, 10); got != world.TileEmpty {
		t.Errorf("GetTile(5, 10) = %d, want empty", got)
	}

	// The axe is a mining tool too
	if out := s.Interact(gamedata.ToolAxe, 4, 10, true, 0.1); out.Status != action.StatusInProgress {
		t.Errorf("Interact(axe) = %v, want in_progress", out.Status)
	}

	// An empty hand stops it
	if out := s.Interact(gamedata.ToolNone, 4, 10, true, 0.1); out.Status != action.StatusCancelled {
		t.Errorf("Interact(none) = %v, want cancelled", out.Status)
	}
	if s.Progress().Active {
		t.Error("action still active with empty hand")
	}
}

func TestSwingCallsMeleeHandler(t *testing.T) {
	s := newTestSim(t)

	var hits [][2]int
	s.OnMelee = func(x, y int) { hits = append(hits, [2]int{x, y}) }

	for i := 0; i < 3; i++ {
		s.Interact(gamedata.ToolSword, 6, 9, true, 0.25)
	}

	if len(hits) != 1 || hits[0] != [2]int{6, 9} {
		t.Errorf("melee hits = %v, want [[6 9]]", hits)
	}
	if s.Progress().Active {
		t.Error("swing still active after completion")
	}
}

func TestTrySwingUsesSwordDuration(t *testing.T) {
	s := newTestSim(t)

	s.TrySwing(6, 9, true, frame)
	sword := gamedata.MustLoadToolRegistry().GetByID(gamedata.ToolSword)
	if got := s.Progress().Required; got != sword.SwingDuration {
		t.Errorf("Required = %v, want %v", got, sword.SwingDuration)
	}
	if s.State().Pose != entity.PoseSwinging {
		t.Errorf("Pose = %v, want swinging", s.State().Pose)
	}

	s.StopAction()
	if s.Progress().Active || s.State().Pose != entity.PoseIdle {
		t.Error("StopAction() did not reset the swing")
	}
}

func TestMiningThenFallIntoHole(t *testing.T) {
	s := newTestSim(t)

	// Dig out the floor under the actor's hitbox and let it drop
	for _, x := range []int{4, 5, 6} {
		for i := 0; i < 2; i++ {
			s.TryMine(x, 10, true, 0.5)
		}
	}
	for _, x := range []int{4, 5, 6} {
		if s.Grid().GetTile(x, 10) != world.TileEmpty {
			t.Fatalf("cell (%d, 10) not mined", x)
		}
	}

	var state ActorState
	for i := 0; i < 300; i++ {
		state = s.Advance(frame, Input{})
	}
	if !state.OnGround {
		t.Fatal("actor did not land on the bedrock")
	}
	if bottom := state.Hitbox.Bottom(); bottom > 644 || bottom < 642 {
		t.Errorf("Hitbox.Bottom() = %v, want resting on row 14 (644)", bottom)
	}
}
