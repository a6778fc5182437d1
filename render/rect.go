package render

// Rect is a half-open axis-aligned rectangle in screen space: a pixel
// (x, y) is covered when X0 <= x < X1 and Y0 <= y < Y1.
type Rect struct {
	X0, Y0 int
	X1, Y1 int
}

// Viewport is the logical render target size. It is fixed for the
// lifetime of a display configuration.
type Viewport struct {
	Width  int
	Height int
}

func (v Viewport) Area() int { return v.Width * v.Height }

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.X1-r.X0 <= 0 || r.Y1-r.Y0 <= 0
}

// Area returns the number of pixels covered by r.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return (r.X1 - r.X0) * (r.Y1 - r.Y0)
}

// Union returns the bounding rectangle of r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	if o.X0 < r.X0 {
		r.X0 = o.X0
	}
	if o.Y0 < r.Y0 {
		r.Y0 = o.Y0
	}
	if o.X1 > r.X1 {
		r.X1 = o.X1
	}
	if o.Y1 > r.Y1 {
		r.Y1 = o.Y1
	}
	return r
}

// Intersects reports whether r and o share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Touches reports whether r and o overlap or share an edge: neither is
// strictly to the side of the other along both axes. Touching
// rectangles are merged into one during plan computation.
func (r Rect) Touches(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return !(r.X1 < o.X0 || o.X1 < r.X0 || r.Y1 < o.Y0 || o.Y1 < r.Y0)
}

// Clip returns r clamped to the viewport.
func (r Rect) Clip(vp Viewport) Rect {
	if r.X0 < 0 {
		r.X0 = 0
	}
	if r.Y0 < 0 {
		r.Y0 = 0
	}
	if r.X1 > vp.Width {
		r.X1 = vp.Width
	}
	if r.Y1 > vp.Height {
		r.Y1 = vp.Height
	}
	if r.Empty() {
		return Rect{}
	}
	return r
}
