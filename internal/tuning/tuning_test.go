package tuning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/samdwyer/tilecraft/internal/collision"
	"github.com/samdwyer/tilecraft/internal/entity"
)

func TestDefaultIsValid(t *testing.T) {
	d := Default()
	if err := d.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if d.ActorPhysics() != entity.DefaultPhysics() {
		t.Errorf("ActorPhysics() = %+v, want %+v", d.ActorPhysics(), entity.DefaultPhysics())
	}
	if d.ResolverOptions() != collision.DefaultOptions() {
		t.Errorf("ResolverOptions() = %+v, want %+v", d.ResolverOptions(), collision.DefaultOptions())
	}
	if d.TileSize().X != 46 || d.ActorSize() != entity.DefaultSize {
		t.Errorf("TileSize() = %v, ActorSize() = %v", d.TileSize(), d.ActorSize())
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	raw := []byte(`
world:
  seed: 42
physics:
  gravity: 1200
collision:
  predictive_step: frame
`)
	got, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got.World.Seed != 42 {
		t.Errorf("World.Seed = %d, want 42", got.World.Seed)
	}
	if got.Physics.Gravity != 1200 {
		t.Errorf("Physics.Gravity = %v, want 1200", got.Physics.Gravity)
	}
	if got.ResolverOptions().Mode != collision.StepFrame {
		t.Errorf("ResolverOptions().Mode = %v, want frame", got.ResolverOptions().Mode)
	}

	// Unset keys keep their defaults
	d := Default()
	if got.Physics.JumpVelocity != d.Physics.JumpVelocity || got.World.Width != d.World.Width {
		t.Errorf("unset keys changed: %+v", got)
	}
	if got.Actions != d.Actions {
		t.Errorf("Actions = %+v, want %+v", got.Actions, d.Actions)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"zero width", "world: {width: 0}"},
		{"negative tile", "world: {tile_size: -1}"},
		{"upward jump sign", "physics: {jump_velocity: 450}"},
		{"friction above one", "physics: {friction: 1.5}"},
		{"step mode", "collision: {predictive_step: variable}"},
		{"mining duration", "actions: {mining_duration: 0}"},
	}

	for _, tt := range tests {
		_, err := Parse([]byte(tt.raw))
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: Parse() error = %v, want ErrInvalid", tt.name, err)
		}
	}

	if _, err := Parse([]byte("world: [")); err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("Parse() malformed YAML error = %v, want decode error", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("actions:\n  distance_multiplier: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Actions.DistanceMultiplier != 4 {
		t.Errorf("DistanceMultiplier = %v, want 4", got.Actions.DistanceMultiplier)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() missing file should fail")
	}
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	got, err := Load(filepath.Join("..", "..", "tuning.example.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != Default() {
		t.Errorf("tuning.example.yaml = %+v, want defaults %+v", got, Default())
	}
}
