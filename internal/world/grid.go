package world

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Default world dimensions in tiles
	DefaultWidth  = 200
	DefaultHeight = 100

	// DefaultTileSize is the cell edge length in world units.
	DefaultTileSize = 46.0
)

// ErrSizeMismatch is returned when a tile slice does not match the grid dimensions.
var ErrSizeMismatch = errors.New("tile count does not match grid dimensions")

// ChangeHook is called after a cell is replaced by SetTile.
type ChangeHook func(x, y int, old, tile Tile)

// Grid is a fixed-size, row-major grid of tiles.
type Grid struct {
	width    int
	height   int
	tileSize Vec2
	tiles    []Tile
	hooks    []ChangeHook
}

// NewGrid creates a grid filled with TileEmpty.
func NewGrid(width, height int, tileSize Vec2) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = TileEmpty
	}
	return &Grid{
		width:    width,
		height:   height,
		tileSize: tileSize,
		tiles:    tiles,
	}
}

// LoadGrid creates a grid from an existing row-major tile slice.
// The slice is copied.
func LoadGrid(width, height int, tileSize Vec2, tiles []Tile) (*Grid, error) {
	if width < 0 || height < 0 || width*height != len(tiles) {
		return nil, fmt.Errorf("load grid %dx%d with %d tiles: %w", width, height, len(tiles), ErrSizeMismatch)
	}
	g := &Grid{
		width:    width,
		height:   height,
		tileSize: tileSize,
		tiles:    make([]Tile, len(tiles)),
	}
	copy(g.tiles, tiles)
	return g, nil
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in tiles.
func (g *Grid) Height() int { return g.height }

// TileSize returns the cell size in world units.
func (g *Grid) TileSize() Vec2 { return g.tileSize }

// InBounds returns true if (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// GetTile returns the tile at the given cell, or TileEmpty outside the grid.
func (g *Grid) GetTile(x, y int) Tile {
	if !g.InBounds(x, y) {
		return TileEmpty
	}
	return g.tiles[x+y*g.width]
}

// SetTile replaces the tile at the given cell and notifies change hooks.
// Writes outside the grid are ignored.
func (g *Grid) SetTile(x, y int, tile Tile) {
	if !g.InBounds(x, y) {
		return
	}
	i := x + y*g.width
	old := g.tiles[i]
	g.tiles[i] = tile
	for _, hook := range g.hooks {
		hook(x, y, old, tile)
	}
}

// OnChange registers a hook called after every successful SetTile.
func (g *Grid) OnChange(hook ChangeHook) {
	if hook != nil {
		g.hooks = append(g.hooks, hook)
	}
}

// Fill writes tile to every cell without notifying hooks.
// Intended for generators that build the grid before anything observes it.
func (g *Grid) Fill(tile Tile) {
	for i := range g.tiles {
		g.tiles[i] = tile
	}
}

// set writes a cell without notifying hooks; used during generation.
func (g *Grid) set(x, y int, tile Tile) {
	if g.InBounds(x, y) {
		g.tiles[x+y*g.width] = tile
	}
}

// CellRect returns the world-space rectangle of a cell.
func (g *Grid) CellRect(x, y int) Rect {
	return Rect{
		X:      float64(x) * g.tileSize.X,
		Y:      float64(y) * g.tileSize.Y,
		Width:  g.tileSize.X,
		Height: g.tileSize.Y,
	}
}

// CellCenter returns the world-space center of a cell.
func (g *Grid) CellCenter(x, y int) Vec2 {
	return g.CellRect(x, y).Center()
}

// CellAt converts a world position to cell coordinates by floor division.
// The result may lie outside the grid.
func (g *Grid) CellAt(p Vec2) (int, int) {
	if g.tileSize.X <= 0 || g.tileSize.Y <= 0 {
		return 0, 0
	}
	return int(math.Floor(p.X / g.tileSize.X)), int(math.Floor(p.Y / g.tileSize.Y))
}

// CellSpan returns the inclusive cell range covered by r, clamped to the grid.
// ok is false when the rectangle lies entirely outside the grid.
func (g *Grid) CellSpan(r Rect) (left, top, right, bottom int, ok bool) {
	if g.width == 0 || g.height == 0 {
		return 0, 0, 0, 0, false
	}
	left, top = g.CellAt(Vec2{X: r.X, Y: r.Y})
	right, bottom = g.CellAt(Vec2{X: r.Right(), Y: r.Bottom()})

	if right < 0 || bottom < 0 || left >= g.width || top >= g.height {
		return 0, 0, 0, 0, false
	}

	left = max(left, 0)
	top = max(top, 0)
	right = min(right, g.width-1)
	bottom = min(bottom, g.height-1)
	return left, top, right, bottom, true
}

// SurfaceY returns the row of the topmost non-empty tile in column x, or -1.
func (g *Grid) SurfaceY(x int) int {
	for y := 0; y < g.height; y++ {
		if g.GetTile(x, y) != TileEmpty {
			return y
		}
	}
	return -1
}
