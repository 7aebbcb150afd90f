package constraints

import (
	"fmt"
	"math"

	"github.com/san-kum/sandsim/internal/dynamo"
)

// Composite is a group of bodies and the constraints joining them. Link
// endpoints are absolute ids: the builder is told the id its first body
// will receive.
type Composite struct {
	Bodies      []dynamo.Body
	Links       []dynamo.Link
	StaticLinks []dynamo.StaticLink
}

// Rope hangs segments+2 bodies straight down from anchor, joined by static
// links of length/segments. The two end bodies are twice the size of the
// interior ones; radius caps the end size.
func Rope(anchor dynamo.Vec2, length float64, segments int, radius float64, base int, c dynamo.Color) (*Composite, error) {
	if segments < 1 {
		return nil, fmt.Errorf("%w: rope needs at least one segment, got %d", dynamo.ErrInvalidComposite, segments)
	}
	if length <= 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return nil, fmt.Errorf("%w: rope length must be positive, got %v", dynamo.ErrInvalidComposite, length)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: rope radius must be positive, got %v", dynamo.ErrInvalidComposite, radius)
	}

	rest := length / float64(segments)
	endR := math.Min(radius, rest/2)
	midR := math.Min(radius/2, rest/4)

	n := segments + 2
	comp := &Composite{
		Bodies:      make([]dynamo.Body, 0, n),
		StaticLinks: make([]dynamo.StaticLink, 0, n-1),
	}
	for i := 0; i < n; i++ {
		r := midR
		if i == 0 || i == n-1 {
			r = endR
		}
		pos := anchor.Add(dynamo.V(0, float64(i)*rest))
		comp.Bodies = append(comp.Bodies, dynamo.NewBody(r, pos, c))
	}
	for i := 0; i < n-1; i++ {
		comp.StaticLinks = append(comp.StaticLinks, dynamo.StaticLink{A: base + i, B: base + i + 1, RestLength: rest})
	}
	return comp, nil
}

// SoftBody places count bodies on a circle and closes them into a ring of
// static links.
func SoftBody(center dynamo.Vec2, count int, radius, subRadius float64, base int, c dynamo.Color) (*Composite, error) {
	comp, rest, err := ring(center, count, radius, subRadius, c)
	if err != nil {
		return nil, err
	}
	comp.StaticLinks = make([]dynamo.StaticLink, 0, count)
	for i := 0; i < count; i++ {
		comp.StaticLinks = append(comp.StaticLinks, dynamo.StaticLink{A: base + i, B: base + (i+1)%count, RestLength: rest})
	}
	return comp, nil
}

// SpringBody is SoftBody joined by springs instead of rigid links.
func SpringBody(center dynamo.Vec2, count int, radius, subRadius float64, base int, c dynamo.Color) (*Composite, error) {
	comp, rest, err := ring(center, count, radius, subRadius, c)
	if err != nil {
		return nil, err
	}
	comp.Links = make([]dynamo.Link, 0, count)
	for i := 0; i < count; i++ {
		comp.Links = append(comp.Links, dynamo.Link{A: base + i, B: base + (i+1)%count, RestLength: rest})
	}
	return comp, nil
}

func ring(center dynamo.Vec2, count int, radius, subRadius float64, c dynamo.Color) (*Composite, float64, error) {
	if count < 2 {
		return nil, 0, fmt.Errorf("%w: ring needs at least two bodies, got %d", dynamo.ErrInvalidComposite, count)
	}
	if !(radius > 0) || !(subRadius > 0) || math.IsInf(radius, 0) || math.IsInf(subRadius, 0) {
		return nil, 0, fmt.Errorf("%w: ring radii must be positive, got %v and %v", dynamo.ErrInvalidComposite, radius, subRadius)
	}

	comp := &Composite{Bodies: make([]dynamo.Body, 0, count)}
	for i := 0; i < count; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(count))
		pos := center.Add(dynamo.V(cos*radius, sin*radius))
		comp.Bodies = append(comp.Bodies, dynamo.NewBody(subRadius, pos, c))
	}
	return comp, 2 * math.Pi * radius / float64(count), nil
}
