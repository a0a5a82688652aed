package main

import (
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/keepyuppy/contact"
)

// MouseInput stands in for a tracked hand: while the left button (or a
// touch) is held the cursor is a contact point.
type MouseInput struct{}

var _ contact.Source = (*MouseInput)(nil)

func NewMouseInput() *MouseInput {
	return &MouseInput{}
}

func (m *MouseInput) Contacts(dt float64) []contact.Point {
	var out []contact.Point
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		out = append(out, contact.Point{
			ID:  "mouse",
			Pos: cp.Vector{X: float64(mx), Y: float64(my)},
		})
	}

	for _, id := range ebiten.AppendTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		out = append(out, contact.Point{
			ID:  touchID(id),
			Pos: cp.Vector{X: float64(tx), Y: float64(ty)},
		})
	}
	return out
}

func touchID(id ebiten.TouchID) string {
	return "touch/" + strconv.Itoa(int(id))
}
