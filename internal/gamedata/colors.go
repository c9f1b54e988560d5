package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor turns a "#RRGGBB" or "RRGGBB" tile color into a tcell color.
func ParseHexColor(s string) (tcell.Color, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return tcell.ColorDefault, fmt.Errorf("tile color %q: want 6 hex digits", s)
	}

	rgb, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("tile color %q: %w", s, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}
