// Package control turns pointer input into drag state for a world.
//
// A [Drag] latches the body nearest to a press, follows the pointer while
// the button is held and releases on button up:
//
//	d := control.NewDrag()
//	d.Press(w, pos)        // latches the nearest body via SetDrag
//	d.Move(pos)            // updates the target
//	w.Tick(dt, d.Target()) // nil target when nothing is held
//	d.Release(w)
package control
