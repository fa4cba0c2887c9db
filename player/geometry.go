package player

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Area returns Width*Height, or 0 for degenerate rectangles.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Intersect returns the overlap of r and other; the zero Rect when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := max(r.Left, other.Left)
	top := max(r.Top, other.Top)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())

	if right <= left || bottom <= top {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// IntersectionChange describes how much of a player's box is inside the viewport.
type IntersectionChange struct {
	IntersectionRect   Rect
	BoundingClientRect Rect
}

// VisiblePercent returns the share of the bounding box that intersects the viewport, from 0 to 100.
// A zero-area bounding box is never visible.
func (c IntersectionChange) VisiblePercent() float64 {
	bounding := c.BoundingClientRect.Area()
	if bounding == 0 {
		return 0
	}
	return c.IntersectionRect.Area() * 100 / bounding
}
