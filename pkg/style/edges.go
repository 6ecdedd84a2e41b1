package style

// Edges holds a value for each of the four sides of a cell, used for padding.
type Edges struct {
	Top      float64
	Leading  float64
	Bottom   float64
	Trailing float64
}

// EdgeAll returns Edges with the same value on every side.
func EdgeAll(f float64) Edges {
	return Edges{Top: f, Leading: f, Bottom: f, Trailing: f}
}

// EdgeSymmetric returns Edges with h on the leading/trailing sides and v on
// the top/bottom sides.
func EdgeSymmetric(h, v float64) Edges {
	return Edges{Top: v, Leading: h, Bottom: v, Trailing: h}
}

// EdgeInsets returns Edges in top, leading, bottom, trailing order.
func EdgeInsets(top, leading, bottom, trailing float64) Edges {
	return Edges{Top: top, Leading: leading, Bottom: bottom, Trailing: trailing}
}

// Horizontal returns the sum of the leading and trailing values.
func (e Edges) Horizontal() float64 {
	return e.Leading + e.Trailing
}

// Vertical returns the sum of the top and bottom values.
func (e Edges) Vertical() float64 {
	return e.Top + e.Bottom
}
