package gamedata

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tilecraft/internal/world"
)

// TileDef defines a tile type loaded from JSON.
type TileDef struct {
	ID        int    `json:"id"`        // Tile atlas index, matches world.Tile
	Key       string `json:"key"`       // Stable identifier (e.g., "stone")
	Name      string `json:"name"`      // Display name (e.g., "Stone")
	Glyph     string `json:"glyph"`     // Single character for terminal rendering
	Color     string `json:"color"`     // Hex color code (e.g., "#7F7F7F")
	Category  string `json:"category"`  // terrain, wood, ores, decorative, plants, liquids
	Solid     bool   `json:"solid"`     // Blocks actor movement
	Breakable bool   `json:"breakable"` // Can be mined
}

// Tile returns the definition's id as a world.Tile.
func (d *TileDef) Tile() world.Tile {
	return world.Tile(d.ID)
}

// Capabilities returns the classification mask for this tile.
func (d *TileDef) Capabilities() world.Capability {
	var caps world.Capability
	if d.Solid {
		caps |= world.CapSolid
	}
	if d.Breakable {
		caps |= world.CapBreakable
	}
	return caps
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *TileDef) GlyphRune() rune {
	for _, r := range d.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color.
func (d *TileDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(d.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// TilesFile represents the structure of tiles.json.
type TilesFile struct {
	Tiles []TileDef `json:"tiles"`
}

// LoadTiles loads tile definitions from the embedded tiles.json file.
func LoadTiles() ([]TileDef, error) {
	file, err := Load[TilesFile]("tiles.json")
	if err != nil {
		return nil, err
	}
	return file.Tiles, nil
}
