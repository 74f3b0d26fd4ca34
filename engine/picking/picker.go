package picking

import (
	"fmt"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer"
)

// Pickable is anything that can draw itself with the renderer's current state. During a pick the
// renderer's single color override replaces the object's shading with its id color.
type Pickable interface {
	ID() uint32
	Enabled() bool
	Draw() error
}

// pickClearColor is opaque black, which decodes to NoHit.
var pickClearColor = IDToColor(NoHit)

// Pick renders every enabled object in its id color into the current framebuffer and decodes the
// pixel under (x, y). Depth testing stays on, so the frontmost object wins.
//
// The framebuffer is left holding the id image; the caller re-renders the visible frame before
// presenting it. The clear color and the single color override are restored even when a draw
// fails.
//
// Parameters:
//   - r: the renderer to draw with
//   - objects: the candidates, drawn in order
//   - x: the framebuffer column
//   - y: the framebuffer row, counted from the bottom edge
//
// Returns:
//   - uint32: the decoded id, NoHit on a miss
//   - bool: true if the pixel belongs to an object with a non-zero id
//   - error: the first draw failure
func Pick(r renderer.Renderer, objects []Pickable, x, y int) (id uint32, hit bool, err error) {
	savedClear := r.ClearColor()
	savedEnabled, savedColor := r.SingleColor()
	defer func() {
		r.SetSingleColor(savedEnabled, savedColor)
		r.SetClearColor(savedClear)
	}()

	r.SetClearColor(pickClearColor)
	r.BeginFrame()
	for _, obj := range objects {
		if !obj.Enabled() {
			continue
		}
		r.SetSingleColor(true, IDToColor(obj.ID()))
		if err := obj.Draw(); err != nil {
			return NoHit, false, fmt.Errorf("pick draw of object %d: %w", obj.ID(), err)
		}
	}

	id = ColorToID(r.ReadPixel(x, y))
	return id, id != NoHit, nil
}
