package ui2d

import "testing"

func TestInputEdges(t *testing.T) {
	var in InputState

	in.Press(ButtonLeft, 5, 5)
	in.Update()
	if !in.MouseLeftPressed || in.MouseLeftReleased {
		t.Fatalf("press frame: pressed=%v released=%v", in.MouseLeftPressed, in.MouseLeftReleased)
	}
	if in.MouseDeltaX != 5 || in.MouseDeltaY != 5 {
		t.Errorf("delta = %v,%v", in.MouseDeltaX, in.MouseDeltaY)
	}
	in.EndFrame()
	if in.MouseLeftClicked {
		t.Error("click survived EndFrame")
	}

	in.Move(8, 5)
	in.Update()
	if in.MouseLeftPressed || in.MouseDeltaX != 3 {
		t.Errorf("hold frame: pressed=%v dx=%v", in.MouseLeftPressed, in.MouseDeltaX)
	}

	in.Release(ButtonLeft, 8, 5)
	in.Update()
	if !in.MouseLeftReleased || in.MouseLeftDown {
		t.Error("release not detected")
	}
}

func TestInputRightButtonAndScroll(t *testing.T) {
	var in InputState
	in.Press(ButtonRight, 0, 0)
	if !in.MouseRightDown || in.MouseLeftClicked {
		t.Error("right press misrecorded")
	}
	in.Release(ButtonRight, 0, 0)
	if in.MouseRightDown {
		t.Error("right release misrecorded")
	}

	in.Scroll(1.5)
	in.Scroll(-0.5)
	if in.ScrollY != 1 {
		t.Errorf("ScrollY = %v, want 1", in.ScrollY)
	}
	in.EndFrame()
	if in.ScrollY != 0 {
		t.Error("scroll survived EndFrame")
	}
}
