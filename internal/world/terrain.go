package world

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tilecraft/internal/telemetry"
)

const (
	// Terrain layout parameters
	surfaceDepth  = 25 // Rows between the surface and the bottom of the world
	bedrockRows   = 3
	oreStartDepth = 5 // Stone rows below the dirt before ores may appear

	waterPoolCount = 4
	lavaCaveCount  = 6
	waterCaveCount = 5
	treeCount      = 20
	plantCount     = 30
)

// TerrainStats summarizes what a generation pass placed.
type TerrainStats struct {
	WaterPools int
	LavaPools  int
	Caves      int
	Trees      int
	Plants     int
}

// GenerateTerrain paints a fresh landscape into g using rng.
// Every cell is overwritten; change hooks are not notified.
func GenerateTerrain(ctx context.Context, g *Grid, rng *rand.Rand) TerrainStats {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()
	gen := &terrainGen{grid: g, rng: rng}

	g.Fill(TileEmpty)
	gen.layTerrain()
	gen.placeLiquids()
	gen.growTrees()
	gen.scatterPlants()

	span.SetAttributes(
		attribute.Int("world.width", g.Width()),
		attribute.Int("world.height", g.Height()),
		attribute.Int("world.water_pools", gen.stats.WaterPools),
		attribute.Int("world.lava_pools", gen.stats.LavaPools),
		attribute.Int("world.caves", gen.stats.Caves),
		attribute.Int("world.trees", gen.stats.Trees),
		attribute.Int("world.plants", gen.stats.Plants),
		attribute.Int64("world.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return gen.stats
}

// terrainGen holds the state of a single generation pass.
type terrainGen struct {
	grid  *Grid
	rng   *rand.Rand
	stats TerrainStats
}

// randomInt returns a value in [lo, hi]. Inverted ranges collapse to lo.
func (t *terrainGen) randomInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + t.rng.Intn(hi-lo+1)
}

// baseHeight returns the nominal surface row.
func (t *terrainGen) baseHeight() int {
	h := t.grid.Height()
	if h > surfaceDepth+bedrockRows {
		return h - surfaceDepth
	}
	return h / 3
}

// layTerrain builds the grass, dirt, stone, ore and bedrock columns.
func (t *terrainGen) layTerrain() {
	g := t.grid
	height := g.Height()
	base := t.baseHeight()

	for x := 0; x < g.Width(); x++ {
		surfaceY := base
		if x%4 == 0 {
			surfaceY += t.randomInt(-1, 1)
		}
		g.set(x, surfaceY, TileGrass)

		dirtDepth := 3 + t.randomInt(0, 1)
		for y := surfaceY + 1; y < surfaceY+dirtDepth; y++ {
			g.set(x, y, TileDirt)
		}

		for y := surfaceY + dirtDepth; y < height-bedrockRows; y++ {
			if y > surfaceY+dirtDepth+oreStartDepth {
				g.set(x, y, t.pickOre(y-surfaceY))
			} else {
				g.set(x, y, TileStone)
			}
		}

		for y := max(height-bedrockRows, 0); y < height; y++ {
			g.set(x, y, TileBedrock)
		}
	}
}

// pickOre chooses the tile for a stone cell at the given depth below the surface.
// Rarer ores only appear deeper.
func (t *terrainGen) pickOre(depth int) Tile {
	switch {
	case t.randomInt(0, 100) < 5:
		return TileCoalOre
	case t.randomInt(0, 100) < 3 && depth > 10:
		return TileIronOre
	case t.randomInt(0, 100) < 2 && depth > 15:
		return TileGoldOre
	case t.randomInt(0, 100) < 1 && depth > 20:
		return TileDiamondOre
	default:
		return TileStone
	}
}

// placeLiquids adds surface water, then underground caves holding lava or water.
func (t *terrainGen) placeLiquids() {
	g := t.grid
	w, h := g.Width(), g.Height()

	for i := 0; i < waterPoolCount; i++ {
		poolX := t.randomInt(15, w-16)
		surfaceY := t.findSurface(poolX)
		if surfaceY > 0 && surfaceY < h-5 {
			t.pool(poolX, surfaceY+1, t.randomInt(2, 4), TileWater)
			t.stats.WaterPools++
		}
	}

	for i := 0; i < lavaCaveCount; i++ {
		x := t.randomInt(10, w-11)
		y := t.randomInt(h/2+10, h-15)
		t.cave(x, y, t.randomInt(3, 5))
		t.pool(x, y, t.randomInt(2, 4), TileLava)
		t.stats.Caves++
		t.stats.LavaPools++
	}

	for i := 0; i < waterCaveCount; i++ {
		x := t.randomInt(10, w-11)
		y := t.randomInt(h/2+5, h-10)
		t.cave(x, y, t.randomInt(3, 6))
		t.pool(x, y, t.randomInt(2, 4), TileWater)
		t.stats.Caves++
		t.stats.WaterPools++
	}
}

// pool fills the lower half-disc of radius size centered on (cx, cy) with liquid.
func (t *terrainGen) pool(cx, cy, size int, liquid Tile) {
	for x := cx - size; x <= cx+size; x++ {
		for y := cy; y <= cy+size; y++ {
			if math.Hypot(float64(x-cx), float64(y-cy)) < float64(size) {
				t.grid.set(x, y, liquid)
			}
		}
	}
}

// cave carves a flattened ellipse of empty cells.
func (t *terrainGen) cave(cx, cy, size int) {
	for x := cx - size; x <= cx+size; x++ {
		for y := cy - size/2; y <= cy+size/2; y++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			if math.Sqrt(dx*dx+dy*dy*1.5) < float64(size) {
				t.grid.set(x, y, TileEmpty)
			}
		}
	}
}

// findSurface returns the row of the grass tile in column x, or -1.
func (t *terrainGen) findSurface(x int) int {
	for y := 0; y < t.grid.Height(); y++ {
		if t.grid.GetTile(x, y) == TileGrass {
			return y
		}
	}
	return -1
}

// growTrees plants log trunks topped with a leaf canopy.
func (t *terrainGen) growTrees() {
	g := t.grid
	for i := 0; i < treeCount; i++ {
		treeX := t.randomInt(5, g.Width()-6)
		surfaceY := t.findSurface(treeX)
		if surfaceY <= 5 {
			continue
		}

		trunkHeight := t.randomInt(4, 6)
		for dy := 1; dy <= trunkHeight; dy++ {
			g.set(treeX, surfaceY-dy, TileLog)
		}

		leafStartY := surfaceY - trunkHeight
		const leafSize = 2
		for ly := leafStartY; ly >= leafStartY-2; ly-- {
			for lx := treeX - leafSize; lx <= treeX+leafSize; lx++ {
				if g.InBounds(lx, ly) && g.GetTile(lx, ly) == TileEmpty {
					g.set(lx, ly, TileLeaves)
				}
			}
		}
		t.stats.Trees++
	}
}

// scatterPlants places grass tufts and flowers on top of the surface.
func (t *terrainGen) scatterPlants() {
	g := t.grid
	for i := 0; i < plantCount; i++ {
		plantX := t.randomInt(2, g.Width()-3)
		surfaceY := t.findSurface(plantX)
		if surfaceY <= 0 {
			continue
		}

		plantY := surfaceY - 1
		if g.GetTile(plantX, plantY) != TileEmpty {
			continue
		}

		switch {
		case t.randomInt(0, 100) < 70:
			g.set(plantX, plantY, TileGrass)
		case t.randomInt(0, 1) == 0:
			g.set(plantX, plantY, TileFlowerRed)
		default:
			g.set(plantX, plantY, TileFlowerYellow)
		}
		t.stats.Plants++
	}
}
