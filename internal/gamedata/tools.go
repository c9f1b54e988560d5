package gamedata

// ToolID identifies a holdable tool.
type ToolID int

// Tool ids share the atlas numbering with tiles.
const (
	ToolNone    ToolID = -1 // Empty hand
	ToolPickaxe ToolID = 203
	ToolSword   ToolID = 204
	ToolAxe     ToolID = 1002
	ToolShovel  ToolID = 1003
)

// ToolAction is the interaction class a tool drives.
type ToolAction string

const (
	ActionNone  ToolAction = "none"
	ActionMine  ToolAction = "mine"
	ActionMelee ToolAction = "melee"
)

// ToolDef defines a tool loaded from JSON.
type ToolDef struct {
	ID            ToolID     `json:"id"`
	Key           string     `json:"key"`
	Name          string     `json:"name"`
	Glyph         string     `json:"glyph"`
	Action        ToolAction `json:"action"`
	SwingDuration float64    `json:"swingDuration"` // Seconds per swing, melee tools only
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *ToolDef) GlyphRune() rune {
	for _, r := range d.Glyph {
		return r
	}
	return '?'
}

// ToolsFile represents the structure of tools.json.
type ToolsFile struct {
	Tools []ToolDef `json:"tools"`
}

// LoadTools loads tool definitions from the embedded tools.json file.
func LoadTools() ([]ToolDef, error) {
	file, err := Load[ToolsFile]("tools.json")
	if err != nil {
		return nil, err
	}
	return file.Tools, nil
}
