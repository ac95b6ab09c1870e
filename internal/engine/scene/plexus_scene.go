package scene

import (
	"fmt"

	"github.com/Faultbox/showroom/internal/engine/framebuffer"
	"github.com/Faultbox/showroom/internal/plexus"
)

// PlexusScene renders a plexus system into its own HDR target.
type PlexusScene struct {
	framebuffer *framebuffer.Framebuffer
	renderer    *PlexusRenderer
}

// NewPlexusScene creates the target and renderer.
func NewPlexusScene(width, height int32, style PlexusStyle) (*PlexusScene, error) {
	fb, err := framebuffer.NewWithOptions(width, height, framebuffer.Options{Format: framebuffer.RGBA16F})
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}
	r, err := NewPlexusRenderer(style)
	if err != nil {
		fb.Destroy()
		return nil, err
	}
	return &PlexusScene{framebuffer: fb, renderer: r}, nil
}

// Render syncs sys to the GPU and draws it on black.
func (ps *PlexusScene) Render(sys *plexus.System, cam Camera) uint32 {
	ps.renderer.Sync(sys)

	restore := ps.framebuffer.BindWithViewport()
	defer restore()
	ps.framebuffer.Clear(0, 0, 0, 1)

	_, h := ps.framebuffer.Size()
	ps.renderer.Render(cam.ViewMatrix(), cam.ProjectionMatrix(), h)
	return ps.framebuffer.ColorTexture()
}

// Resize updates the target size.
func (ps *PlexusScene) Resize(width, height int32) {
	if w, h := ps.framebuffer.Size(); w == width && h == height {
		return
	}
	ps.framebuffer.Resize(width, height)
}

// Destroy releases GPU resources.
func (ps *PlexusScene) Destroy() {
	ps.renderer.Destroy()
	ps.framebuffer.Destroy()
}
