package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/tilecraft/internal/world"
)

// TileRegistry holds loaded tile definitions keyed by tile id.
type TileRegistry struct {
	tiles map[world.Tile]*TileDef
	all   []TileDef
}

// NewTileRegistry creates a registry from loaded tile definitions.
// Duplicate ids are rejected.
func NewTileRegistry(tiles []TileDef) (*TileRegistry, error) {
	registry := &TileRegistry{
		tiles: make(map[world.Tile]*TileDef, len(tiles)),
		all:   tiles,
	}
	for i := range tiles {
		id := tiles[i].Tile()
		if id == world.TileEmpty {
			return nil, fmt.Errorf("tile %q uses the reserved empty id", tiles[i].Key)
		}
		if _, dup := registry.tiles[id]; dup {
			return nil, fmt.Errorf("duplicate tile id %d (%s)", id, tiles[i].Key)
		}
		registry.tiles[id] = &tiles[i]
	}
	return registry, nil
}

// LoadTileRegistry loads and creates a registry from the embedded tiles.json.
func LoadTileRegistry() (*TileRegistry, error) {
	tiles, err := LoadTiles()
	if err != nil {
		return nil, err
	}
	if len(tiles) == 0 {
		return nil, errors.New("no tiles loaded from tiles.json")
	}
	return NewTileRegistry(tiles)
}

// MustLoadTileRegistry loads a registry, panicking on error.
func MustLoadTileRegistry() *TileRegistry {
	registry, err := LoadTileRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the tile definition for a tile, or nil if not found.
func (r *TileRegistry) GetByID(t world.Tile) *TileDef {
	return r.tiles[t]
}

// Classification builds the solid/breakable lookup table from the definitions.
func (r *TileRegistry) Classification() *world.Classification {
	c := world.NewClassification()
	for _, def := range r.tiles {
		c.Set(def.Tile(), def.Capabilities())
	}
	return c
}

// InCategory returns the tiles of a category in definition order.
func (r *TileRegistry) InCategory(category string) []world.Tile {
	var out []world.Tile
	for i := range r.all {
		if r.all[i].Category == category {
			out = append(out, r.all[i].Tile())
		}
	}
	return out
}

// All returns all tile definitions.
func (r *TileRegistry) All() []TileDef {
	return r.all
}

// Count returns the number of tile types in the registry.
func (r *TileRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// ToolRegistry
// =============================================================================

// ToolRegistry holds loaded tool definitions keyed by tool id.
type ToolRegistry struct {
	tools map[ToolID]*ToolDef
	all   []ToolDef
}

// NewToolRegistry creates a registry from loaded tool definitions.
func NewToolRegistry(tools []ToolDef) (*ToolRegistry, error) {
	registry := &ToolRegistry{
		tools: make(map[ToolID]*ToolDef, len(tools)),
		all:   tools,
	}
	for i := range tools {
		id := tools[i].ID
		if id == ToolNone {
			return nil, fmt.Errorf("tool %q uses the reserved empty-hand id", tools[i].Key)
		}
		if _, dup := registry.tools[id]; dup {
			return nil, fmt.Errorf("duplicate tool id %d (%s)", id, tools[i].Key)
		}
		if tools[i].Action == ActionMelee && tools[i].SwingDuration <= 0 {
			return nil, fmt.Errorf("melee tool %q needs a positive swing duration", tools[i].Key)
		}
		registry.tools[id] = &tools[i]
	}
	return registry, nil
}

// LoadToolRegistry loads and creates a registry from the embedded tools.json.
func LoadToolRegistry() (*ToolRegistry, error) {
	tools, err := LoadTools()
	if err != nil {
		return nil, err
	}
	if len(tools) == 0 {
		return nil, errors.New("no tools loaded from tools.json")
	}
	return NewToolRegistry(tools)
}

// MustLoadToolRegistry loads a registry, panicking on error.
func MustLoadToolRegistry() *ToolRegistry {
	registry, err := LoadToolRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the tool definition, or nil if not found.
func (r *ToolRegistry) GetByID(id ToolID) *ToolDef {
	return r.tools[id]
}

// ActionFor returns the interaction class of a tool. Unknown tools and the
// empty hand drive no action.
func (r *ToolRegistry) ActionFor(id ToolID) ToolAction {
	if def := r.tools[id]; def != nil {
		return def.Action
	}
	return ActionNone
}

// All returns all tool definitions.
func (r *ToolRegistry) All() []ToolDef {
	return r.all
}

// Count returns the number of tools in the registry.
func (r *ToolRegistry) Count() int {
	return len(r.all)
}
