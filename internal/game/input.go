package game

import "time"

// keyHold is how long a key press counts as held. Terminals report presses
// and auto-repeats but never releases.
const keyHold = 150 * time.Millisecond

// control is a movement input the loop samples every frame.
type control int

const (
	controlLeft control = iota
	controlRight
	controlJump
	controlCount
)

// inputState tracks the most recent terminal input.
type inputState struct {
	heldUntil [controlCount]time.Time

	mouseX    int
	mouseY    int
	mouseDown bool
}

// press marks c as held until now+keyHold. Pressing a direction releases
// the opposite one.
func (in *inputState) press(c control, now time.Time) {
	in.heldUntil[c] = now.Add(keyHold)
	switch c {
	case controlLeft:
		in.heldUntil[controlRight] = time.Time{}
	case controlRight:
		in.heldUntil[controlLeft] = time.Time{}
	}
}

// held returns true if c was pressed within the hold window.
func (in *inputState) held(c control, now time.Time) bool {
	return now.Before(in.heldUntil[c])
}

// mouse records the pointer position and primary button state.
func (in *inputState) mouse(x, y int, down bool) {
	in.mouseX, in.mouseY = x, y
	in.mouseDown = down
}

// releaseAll drops every held input.
func (in *inputState) releaseAll() {
	in.heldUntil = [controlCount]time.Time{}
	in.mouseDown = false
}
