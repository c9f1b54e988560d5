package game

import "github.com/samdwyer/tilecraft/internal/gamedata"

// HotbarSize is the number of quick-select tool slots.
const HotbarSize = 9

// Hotbar holds the quick-select tools and which one is in hand.
type Hotbar struct {
	slots    [HotbarSize]gamedata.ToolID
	selected int
}

// NewHotbar creates the starting hotbar: sword, pickaxe, axe and shovel in
// the first four slots, the rest empty.
func NewHotbar() *Hotbar {
	h := &Hotbar{}
	for i := range h.slots {
		h.slots[i] = gamedata.ToolNone
	}
	h.slots[0] = gamedata.ToolSword
	h.slots[1] = gamedata.ToolPickaxe
	h.slots[2] = gamedata.ToolAxe
	h.slots[3] = gamedata.ToolShovel
	return h
}

// Held returns the tool in the selected slot.
func (h *Hotbar) Held() gamedata.ToolID {
	return h.slots[h.selected]
}

// Selected returns the selected slot index.
func (h *Hotbar) Selected() int {
	return h.selected
}

// Slots returns a copy of the slot contents.
func (h *Hotbar) Slots() []gamedata.ToolID {
	out := make([]gamedata.ToolID, HotbarSize)
	copy(out, h.slots[:])
	return out
}

// Set puts a tool into a slot. Out-of-range slots are ignored.
func (h *Hotbar) Set(slot int, tool gamedata.ToolID) {
	if slot < 0 || slot >= HotbarSize {
		return
	}
	h.slots[slot] = tool
}

// Select changes the selected slot. Returns true if the held tool changed.
func (h *Hotbar) Select(slot int) bool {
	if slot < 0 || slot >= HotbarSize || slot == h.selected {
		return false
	}
	before := h.Held()
	h.selected = slot
	return h.Held() != before
}

// Cycle moves the selection by delta slots, wrapping around.
// Returns true if the held tool changed.
func (h *Hotbar) Cycle(delta int) bool {
	slot := ((h.selected+delta)%HotbarSize + HotbarSize) % HotbarSize
	return h.Select(slot)
}
