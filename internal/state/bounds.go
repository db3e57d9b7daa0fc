package state

// Rect is an axis aligned area of the drawing surface.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	minX, minY := min(r.X, o.X), min(r.Y, o.Y)
	maxX := max(r.X+r.Width, o.X+o.Width)
	maxY := max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Bounds returns the bounding box of every sample in s grown by padding
// on each side.
func (s Stroke) Bounds(padding float64) Rect {
	if len(s) == 0 {
		return Rect{}
	}
	minX, minY := s[0].X, s[0].Y
	maxX, maxY := s[0].X, s[0].Y
	for _, sm := range s[1:] {
		minX, maxX = min(minX, sm.X), max(maxX, sm.X)
		minY, maxY = min(minY, sm.Y), max(maxY, sm.Y)
	}
	return Rect{
		X:      minX - padding,
		Y:      minY - padding,
		Width:  maxX - minX + 2*padding,
		Height: maxY - minY + 2*padding,
	}
}

// Bounds returns the union of the padded bounds of every stroke.
func (h History) Bounds(padding float64) Rect {
	var r Rect
	for _, st := range h {
		r = r.Union(st.Bounds(padding))
	}
	return r
}
