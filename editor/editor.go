package editor

import (
	"github.com/1siamBot/rts-navigation/engine/core"
	"github.com/1siamBot/rts-navigation/engine/maplib"
)

// Action represents an undoable edit of one tile
type Action struct {
	Desc    maplib.TileDesc
	OldTile maplib.Tile
	NewTile maplib.Tile
}

// Editor paints terrain that affects navigation. Every tile it changes is
// announced on the bus as EvtTileChanged.
type Editor struct {
	TileMap   *maplib.TileMap
	Bus       *core.EventBus
	BrushSize int
	Tool      EditorTool
	UndoStack [][]Action
	RedoStack [][]Action
	FilePath  string
	Modified  bool

	// Materials are written back when saving a .pfmap file
	Materials []maplib.Material
}

// EditorTool represents the current editor tool
type EditorTool int

const (
	ToolToggle EditorTool = iota // flip the pathable flag
	ToolBlock
	ToolClear // reset to a flat pathable tile
	ToolRamp  // steep ramp, impassable regardless of the flag
	numTools
)

func (t EditorTool) String() string {
	switch t {
	case ToolToggle:
		return "toggle"
	case ToolBlock:
		return "block"
	case ToolClear:
		return "clear"
	case ToolRamp:
		return "ramp"
	}
	return "unknown"
}

// Next cycles to the following tool
func (t EditorTool) Next() EditorTool { return (t + 1) % numTools }

// NewEditor creates an editor for tm
func NewEditor(tm *maplib.TileMap, bus *core.EventBus) *Editor {
	return &Editor{
		TileMap:   tm,
		Bus:       bus,
		BrushSize: 1,
	}
}

// LoadMap loads a map file and announces it
func (e *Editor) LoadMap(path string) error {
	tm, err := maplib.LoadJSON(path)
	if err != nil {
		return err
	}
	e.TileMap = tm
	e.FilePath = path
	e.Modified = false
	e.UndoStack = nil
	e.RedoStack = nil
	if e.Bus != nil {
		e.Bus.Emit(core.Event{Type: core.EvtMapLoaded, Payload: core.MapLoaded{Map: tm}})
	}
	return nil
}

// SaveMap saves the current map
func (e *Editor) SaveMap(path string) error {
	if path == "" {
		path = e.FilePath
	}
	if path == "" {
		path = "untitled.json"
	}
	e.FilePath = path
	e.Modified = false
	if maplib.IsPFMap(path) {
		return e.TileMap.SavePFMap(path, e.Materials)
	}
	return e.TileMap.SaveJSON(path)
}

// Paint applies the current tool around global tile (cx, cy)
func (e *Editor) Paint(cx, cy int) {
	var actions []Action
	r := e.BrushSize / 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d := e.TileMap.Desc(cx+dx, cy+dy)
			t := e.TileMap.At(d)
			if t == nil {
				continue
			}
			old := *t
			next := e.apply(old)
			if next == old {
				continue
			}
			*t = next
			actions = append(actions, Action{Desc: d, OldTile: old, NewTile: next})
			e.emit(d, next)
		}
	}
	if len(actions) > 0 {
		e.UndoStack = append(e.UndoStack, actions)
		e.RedoStack = nil
		e.Modified = true
	}
}

func (e *Editor) apply(t maplib.Tile) maplib.Tile {
	switch e.Tool {
	case ToolToggle:
		t.Pathable = !t.Pathable
	case ToolBlock:
		t.Pathable = false
	case ToolClear:
		t = maplib.FlatTile()
	case ToolRamp:
		t.Type = maplib.TileRampNS
		t.RampHeight = 2
	}
	return t
}

func (e *Editor) emit(d maplib.TileDesc, t maplib.Tile) {
	if e.Bus == nil {
		return
	}
	e.Bus.Emit(core.Event{Type: core.EvtTileChanged, Payload: core.TileChange{Desc: d, Tile: t}})
}

// Undo reverts the last action
func (e *Editor) Undo() {
	if len(e.UndoStack) == 0 {
		return
	}
	actions := e.UndoStack[len(e.UndoStack)-1]
	e.UndoStack = e.UndoStack[:len(e.UndoStack)-1]
	for _, a := range actions {
		if t := e.TileMap.At(a.Desc); t != nil {
			*t = a.OldTile
			e.emit(a.Desc, a.OldTile)
		}
	}
	e.RedoStack = append(e.RedoStack, actions)
	e.Modified = true
}

// Redo re-applies the last undone action
func (e *Editor) Redo() {
	if len(e.RedoStack) == 0 {
		return
	}
	actions := e.RedoStack[len(e.RedoStack)-1]
	e.RedoStack = e.RedoStack[:len(e.RedoStack)-1]
	for _, a := range actions {
		if t := e.TileMap.At(a.Desc); t != nil {
			*t = a.NewTile
			e.emit(a.Desc, a.NewTile)
		}
	}
	e.UndoStack = append(e.UndoStack, actions)
	e.Modified = true
}
