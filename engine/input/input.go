package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a viewer command bound to a key
type Action uint8

const (
	ActionRelink Action = iota
	ActionToggleCost
	ActionTogglePortals
	ActionClearRoute
	ActionRouteMode
	ActionCycleTool
	ActionSaveMap
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	numActions
)

// DefaultBindings maps every action to its key
func DefaultBindings() map[Action]ebiten.Key {
	return map[Action]ebiten.Key{
		ActionRelink:        ebiten.KeyR,
		ActionToggleCost:    ebiten.KeyC,
		ActionTogglePortals: ebiten.KeyP,
		ActionClearRoute:    ebiten.KeyEscape,
		ActionRouteMode:     ebiten.KeyTab,
		ActionCycleTool:     ebiten.KeyT,
		ActionSaveMap:       ebiten.KeyF5,
		ActionPanUp:         ebiten.KeyW,
		ActionPanDown:       ebiten.KeyS,
		ActionPanLeft:       ebiten.KeyA,
		ActionPanRight:      ebiten.KeyD,
	}
}

// InputState tracks mouse and keyboard state per frame
type InputState struct {
	// Mouse
	MouseX, MouseY   int
	MouseDX, MouseDY int // delta since last frame
	prevMouseX       int
	prevMouseY       int
	LeftJustPressed  bool
	RightPressed     bool
	ScrollY          float64

	// Drag with the right button pans the view
	DragStartX, DragStartY int
	Dragging               bool
	DragThreshold          int

	Bindings map[Action]ebiten.Key
	held     [numActions]bool
	pressed  [numActions]bool
}

func NewInputState() *InputState {
	return &InputState{
		DragThreshold: 5,
		Bindings:      DefaultBindings(),
	}
}

// Update should be called every frame
func (s *InputState) Update() {
	s.prevMouseX = s.MouseX
	s.prevMouseY = s.MouseY
	s.MouseX, s.MouseY = ebiten.CursorPosition()
	s.MouseDX = s.MouseX - s.prevMouseX
	s.MouseDY = s.MouseY - s.prevMouseY

	s.LeftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	rightDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		s.DragStartX = s.MouseX
		s.DragStartY = s.MouseY
		s.Dragging = false
	}
	s.RightPressed = rightDown
	s.trackDrag(rightDown)

	_, s.ScrollY = ebiten.Wheel()

	for a, k := range s.Bindings {
		if a >= numActions {
			continue
		}
		s.held[a] = ebiten.IsKeyPressed(k)
		s.pressed[a] = inpututil.IsKeyJustPressed(k)
	}
}

func (s *InputState) trackDrag(down bool) {
	if !down {
		s.Dragging = false
		return
	}
	if !s.Dragging {
		dx := s.MouseX - s.DragStartX
		dy := s.MouseY - s.DragStartY
		if dx*dx+dy*dy > s.DragThreshold*s.DragThreshold {
			s.Dragging = true
		}
	}
}

// Held reports whether the action's key is down this frame
func (s *InputState) Held(a Action) bool { return a < numActions && s.held[a] }

// Pressed reports whether the action's key went down this frame
func (s *InputState) Pressed(a Action) bool { return a < numActions && s.pressed[a] }
