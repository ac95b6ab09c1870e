package ui2d

// MouseButton identifies the buttons the UI tracks.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
)

// InputState is the pointer state widgets read. The owner feeds it with
// Move, Press, Release and Scroll; Context.Begin derives the per-frame
// edges and deltas.
type InputState struct {
	MouseX, MouseY           float32
	MouseDeltaX, MouseDeltaY float32

	MouseLeftDown  bool
	MouseRightDown bool

	MouseLeftPressed  bool
	MouseLeftReleased bool

	// MouseLeftClicked latches a press that was released before the frame
	// began. The first widget under the pointer consumes it.
	MouseLeftClicked bool

	ScrollY float32

	last struct {
		x, y float32
		left bool
	}
}

// Move records the pointer position.
func (i *InputState) Move(x, y float32) {
	i.MouseX, i.MouseY = x, y
}

// Press records a button going down at (x, y).
func (i *InputState) Press(b MouseButton, x, y float32) {
	i.Move(x, y)
	switch b {
	case ButtonLeft:
		i.MouseLeftDown = true
		i.MouseLeftClicked = true
	case ButtonRight:
		i.MouseRightDown = true
	}
}

// Release records a button going up at (x, y).
func (i *InputState) Release(b MouseButton, x, y float32) {
	i.Move(x, y)
	switch b {
	case ButtonLeft:
		i.MouseLeftDown = false
	case ButtonRight:
		i.MouseRightDown = false
	}
}

// Scroll accumulates wheel movement for the frame.
func (i *InputState) Scroll(dy float32) {
	i.ScrollY += dy
}

// Update derives deltas and left-button edges against the previous frame.
func (i *InputState) Update() {
	i.MouseDeltaX = i.MouseX - i.last.x
	i.MouseDeltaY = i.MouseY - i.last.y
	i.MouseLeftPressed = i.MouseLeftDown && !i.last.left
	i.MouseLeftReleased = !i.MouseLeftDown && i.last.left

	i.last.x, i.last.y = i.MouseX, i.MouseY
	i.last.left = i.MouseLeftDown
}

// EndFrame drops the per-frame latches.
func (i *InputState) EndFrame() {
	i.MouseLeftClicked = false
	i.ScrollY = 0
}
