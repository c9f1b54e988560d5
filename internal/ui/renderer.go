package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tilecraft/internal/action"
	"github.com/samdwyer/tilecraft/internal/entity"
	"github.com/samdwyer/tilecraft/internal/gamedata"
	"github.com/samdwyer/tilecraft/internal/world"
)

// HUDRows is the number of terminal rows below the world viewport.
const HUDRows = 2

// progressWidth is the number of cells in the action progress bar.
const progressWidth = 20

// Frame is everything drawn in one pass besides the grid itself.
type Frame struct {
	Actor    *entity.Actor
	Progress action.Progress
	TargetX  int
	TargetY  int
	Hotbar   []*gamedata.ToolDef // nil entries are empty slots
	Selected int
}

// glyph is a cached terminal cell for one tile.
type glyph struct {
	r     rune
	style tcell.Style
}

// Renderer draws a viewport of the grid, one terminal cell per tile.
type Renderer struct {
	screen  *Screen
	tiles   *gamedata.TileRegistry
	grid    *world.Grid
	cache   []glyph
	originX int
	originY int
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, tiles *gamedata.TileRegistry) *Renderer {
	return &Renderer{screen: screen, tiles: tiles}
}

// Attach builds the glyph cache for grid and keeps it current through the
// grid's change hook.
func (r *Renderer) Attach(grid *world.Grid) {
	r.grid = grid
	r.cache = make([]glyph, grid.Width()*grid.Height())
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			r.cache[y*grid.Width()+x] = r.glyphFor(grid.GetTile(x, y))
		}
	}
	grid.OnChange(func(x, y int, _, tile world.Tile) {
		r.cache[y*grid.Width()+x] = r.glyphFor(tile)
	})
}

func (r *Renderer) glyphFor(tile world.Tile) glyph {
	if tile == world.TileEmpty {
		return glyph{r: ' ', style: tcell.StyleDefault}
	}
	def := r.tiles.GetByID(tile)
	if def == nil {
		return glyph{r: '?', style: tcell.StyleDefault.Foreground(tcell.ColorFuchsia)}
	}
	return glyph{r: def.GlyphRune(), style: tcell.StyleDefault.Foreground(def.TCellColor())}
}

// Origin returns the grid cell drawn at the top-left of the screen.
func (r *Renderer) Origin() (int, int) {
	return r.originX, r.originY
}

// CellAt converts a screen position to a grid cell using the last rendered
// viewport. ok is false for positions in the HUD rows.
func (r *Renderer) CellAt(sx, sy int) (x, y int, ok bool) {
	_, h := r.screen.Size()
	if sy >= h-HUDRows || sx < 0 || sy < 0 {
		return 0, 0, false
	}
	return r.originX + sx, r.originY + sy, true
}

// Render draws the grid around the actor, the actor, the target cell and the HUD.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	w, h := r.screen.Size()
	viewH := h - HUDRows

	r.follow(f.Actor, w, viewH)
	r.drawGrid(w, viewH)
	r.drawTarget(f.TargetX, f.TargetY, w, viewH)
	r.drawActor(f.Actor, w, viewH)
	r.drawProgress(f.Progress, viewH)
	r.drawHotbar(f.Hotbar, f.Selected, viewH+1)

	r.screen.Show()
}

// follow centers the viewport on the actor, clamped to the grid.
func (r *Renderer) follow(a *entity.Actor, viewW, viewH int) {
	cx, cy := r.grid.CellAt(a.Center())
	r.originX = clamp(cx-viewW/2, 0, max(0, r.grid.Width()-viewW))
	r.originY = clamp(cy-viewH/2, 0, max(0, r.grid.Height()-viewH))
}

func (r *Renderer) drawGrid(viewW, viewH int) {
	for sy := 0; sy < viewH; sy++ {
		for sx := 0; sx < viewW; sx++ {
			x, y := r.originX+sx, r.originY+sy
			if !r.grid.InBounds(x, y) {
				continue
			}
			g := r.cache[y*r.grid.Width()+x]
			r.screen.SetContent(sx, sy, g.r, g.style)
		}
	}
}

func (r *Renderer) drawTarget(x, y, viewW, viewH int) {
	sx, sy := x-r.originX, y-r.originY
	if !r.grid.InBounds(x, y) || sx < 0 || sy < 0 || sx >= viewW || sy >= viewH {
		return
	}
	g := r.cache[y*r.grid.Width()+x]
	ch := g.r
	if ch == ' ' {
		ch = '+'
	}
	r.screen.SetContent(sx, sy, ch, g.style.Reverse(true))
}

// drawActor fills every cell the hitbox overlaps.
func (r *Renderer) drawActor(a *entity.Actor, viewW, viewH int) {
	style := tcell.StyleDefault.Bold(true).Foreground(poseColor(a.Pose()))
	hitbox := a.Hitbox()
	left, top, right, bottom, ok := r.grid.CellSpan(hitbox)
	if !ok {
		return
	}
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			if !hitbox.Intersects(r.grid.CellRect(x, y)) {
				continue
			}
			sx, sy := x-r.originX, y-r.originY
			if sx < 0 || sy < 0 || sx >= viewW || sy >= viewH {
				continue
			}
			r.screen.SetContent(sx, sy, '@', style)
		}
	}
}

func poseColor(p entity.Pose) tcell.Color {
	switch p {
	case entity.PoseMining:
		return tcell.ColorOrange
	case entity.PoseSwinging:
		return tcell.ColorRed
	default:
		return tcell.ColorYellow
	}
}

func (r *Renderer) drawProgress(p action.Progress, y int) {
	if !p.Active {
		return
	}
	filled := int(p.Fraction() * progressWidth)
	bar := "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressWidth-filled) + "]"
	text := fmt.Sprintf("%s %s %3d%%", bar, p.Kind, int(p.Fraction()*100))
	r.screen.DrawText(0, y, text, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func (r *Renderer) drawHotbar(slots []*gamedata.ToolDef, selected, y int) {
	x := 0
	for i, def := range slots {
		ch := ' '
		if def != nil {
			ch = def.GlyphRune()
		}
		style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
		if i == selected {
			style = style.Reverse(true)
		}
		label := fmt.Sprintf("%d:%c", i+1, ch)
		r.screen.DrawText(x, y, label, style)
		x += len(label) + 1
	}
	if selected >= 0 && selected < len(slots) && slots[selected] != nil {
		r.screen.DrawText(x+1, y, slots[selected].Name, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
}

// RenderMessage displays a message at the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
