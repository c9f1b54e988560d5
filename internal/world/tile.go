// Package world provides the tile grid, tile classification and terrain generation.
package world

// Tile identifies the content of a single grid cell.
// Values match the tile atlas indices; TileEmpty is reserved.
type Tile int

// TileEmpty is the sentinel for an unoccupied cell. It is never a placed tile type.
const TileEmpty Tile = -1

// Terrain
const (
	TileGravel      Tile = 0
	TileStone       Tile = 1
	TileDirt        Tile = 2
	TileGrass       Tile = 3
	TileCobblestone Tile = 16
	TileBedrock     Tile = 17
	TileSand        Tile = 18
)

// Wood
const (
	TilePlanks   Tile = 4
	TileLog      Tile = 20
	TileDarkLog  Tile = 116
	TileWhiteLog Tile = 117
	TileLeaves   Tile = 153
)

// Building and decorative blocks
const (
	TileBricks           Tile = 7
	TileTNT              Tile = 8
	TileChest            Tile = 27
	TileBookshelf        Tile = 35
	TileMossyCobblestone Tile = 36
	TileObsidian         Tile = 37
	TileFurnace          Tile = 44
	TileCraftingTable    Tile = 60
	TileTorch            Tile = 80
	TilePumpkin          Tile = 102
	TileMelon            Tile = 137
	TileCake             Tile = 140
	TileLapisBlock       Tile = 144
	TileEnchantingTable  Tile = 182
)

// Ores and metal blocks
const (
	TileIronBlock    Tile = 22
	TileGoldBlock    Tile = 23
	TileDiamondBlock Tile = 24
	TileGoldOre      Tile = 32
	TileIronOre      Tile = 33
	TileCoalOre      Tile = 34
	TileDiamondOre   Tile = 50
	TileRubyOre      Tile = 51
	TileLapisOre     Tile = 160
)

// Plants and liquids
const (
	TileFlowerRed     Tile = 12
	TileFlowerYellow  Tile = 13
	TileMushroomRed   Tile = 28
	TileMushroomBrown Tile = 29
	TileWater         Tile = 207
	TileLava          Tile = 210
)

// Capability is a bitmask of tile properties.
type Capability uint8

const (
	// CapSolid marks tiles that block actor movement.
	CapSolid Capability = 1 << iota
	// CapBreakable marks tiles that can be mined.
	CapBreakable
)

// Classification maps tile types to their capabilities.
// The table is data supplied by the caller; unknown tiles have no capabilities.
type Classification struct {
	caps map[Tile]Capability
}

// NewClassification creates an empty classification table.
func NewClassification() *Classification {
	return &Classification{caps: make(map[Tile]Capability)}
}

// Set assigns the capability mask for a tile type. TileEmpty cannot be assigned.
func (c *Classification) Set(t Tile, caps Capability) {
	if t == TileEmpty {
		return
	}
	if caps == 0 {
		delete(c.caps, t)
		return
	}
	c.caps[t] = caps
}

// Capabilities returns the capability mask for a tile type.
func (c *Classification) Capabilities(t Tile) Capability {
	if c == nil || t == TileEmpty {
		return 0
	}
	return c.caps[t]
}

// IsSolid returns true if the tile blocks movement.
func (c *Classification) IsSolid(t Tile) bool {
	return c.Capabilities(t)&CapSolid != 0
}

// IsBreakable returns true if the tile can be mined.
func (c *Classification) IsBreakable(t Tile) bool {
	return c.Capabilities(t)&CapBreakable != 0
}
