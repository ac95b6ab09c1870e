package app

import (
	"context"
	"time"

	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/postfx"
	"github.com/Faultbox/showroom/internal/engine/ui2d"
)

// Surface is what a page draws onto: the drawable size in pixels and the
// post-processing chain that presents its HDR image.
type Surface struct {
	Width  int32
	Height int32
	Bloom  *postfx.Bloom

	// PointWidth and PointHeight are the window size in the units mouse
	// events use. They differ from Width and Height on high-DPI displays.
	PointWidth  float32
	PointHeight float32
}

// Page is one full-screen experience driven by the frame loop.
type Page interface {
	// Enter creates GPU resources and starts background work.
	Enter(ctx context.Context, s *Surface) error
	// Exit releases everything Enter created.
	Exit()

	HandleEvent(ev input.Event)
	Update(dt time.Duration)
	Resize(width, height int32)

	// Render draws the scene and presents it through s.Bloom.
	Render(s *Surface)
	// DrawUI lays out the page's widgets between ui.Begin and ui.End.
	DrawUI(ui *ui2d.Context)
}

// Manager switches pages at frame boundaries.
type Manager struct {
	current Page
	next    Page
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the active page, or nil.
func (m *Manager) Current() Page {
	return m.current
}

// Change schedules next to become active on the following Update.
func (m *Manager) Change(next Page) {
	m.next = next
}

// Update applies a pending change, then updates the active page. A page
// whose Enter fails is not activated.
func (m *Manager) Update(ctx context.Context, s *Surface, dt time.Duration) error {
	if m.next != nil {
		if m.current != nil {
			m.current.Exit()
			m.current = nil
		}
		next := m.next
		m.next = nil
		if err := next.Enter(ctx, s); err != nil {
			return err
		}
		m.current = next
	}

	if m.current != nil {
		m.current.Update(dt)
	}
	return nil
}

// Close exits the active page.
func (m *Manager) Close() {
	if m.current != nil {
		m.current.Exit()
		m.current = nil
	}
	m.next = nil
}
