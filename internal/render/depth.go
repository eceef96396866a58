package render

import "math"

// DepthBuffer holds the perpendicular wall distance of every screen column.
// The wall pass rewrites it completely each frame before sprites read it.
type DepthBuffer []float64

func NewDepthBuffer(width int) DepthBuffer {
	d := make(DepthBuffer, width)
	d.Reset()
	return d
}

// Reset marks every column as unobstructed.
func (d DepthBuffer) Reset() {
	for i := range d {
		d[i] = math.Inf(1)
	}
}

// Visible reports whether something at depth in column col is in front of
// the camera and nearer than the wall drawn there.
func (d DepthBuffer) Visible(col int, depth float64) bool {
	return depth > 0 && depth < d[col]
}
