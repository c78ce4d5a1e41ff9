package geom

// Ray is a parametric ray: Position(t) = Origin + Direction*t.
type Ray struct {
	Origin    Tuple
	Direction Tuple
}

func NewRay(origin, direction Tuple) Ray {
	return Ray{Origin: origin, Direction: direction}
}

func (r Ray) Position(t float64) Tuple {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform applies m to both the origin and direction, producing the
// ray in the space m maps into. Used to bring a world-space ray into
// an object's local space via the object's inverse transform.
func (r Ray) Transform(m Matrix) Ray {
	return Ray{
		Origin:    m.MulTuple(r.Origin),
		Direction: m.MulTuple(r.Direction),
	}
}
