package quantization

import "github.com/chewxy/math32"

// Bounds is the running per-axis minimum/maximum of all coordinates
// seen by a store. Bounds only ever widen; they are never recomputed
// from current content.
type Bounds struct {
	MinX, MaxX float32
	MinY, MaxY float32
	MinZ, MaxZ float32
}

// NewBounds returns empty Bounds: mins at +Inf and maxes at -Inf, so
// the first Extend adopts the sample on every axis.
func NewBounds() Bounds {
	return Bounds{
		MinX: math32.Inf(1), MaxX: math32.Inf(-1),
		MinY: math32.Inf(1), MaxY: math32.Inf(-1),
		MinZ: math32.Inf(1), MaxZ: math32.Inf(-1),
	}
}

// IsEmpty reports whether no sample has been absorbed yet.
func (b Bounds) IsEmpty() bool {
	return b.MinX > b.MaxX
}

// Extend widens the bounds to include the sample.
func (b *Bounds) Extend(x, y, z float32) {
	b.MinX = math32.Min(b.MinX, x)
	b.MaxX = math32.Max(b.MaxX, x)
	b.MinY = math32.Min(b.MinY, y)
	b.MaxY = math32.Max(b.MaxY, y)
	b.MinZ = math32.Min(b.MinZ, z)
	b.MaxZ = math32.Max(b.MaxZ, z)
}

// ExtendBounds widens the bounds to cover o.
func (b *Bounds) ExtendBounds(o Bounds) {
	if o.IsEmpty() {
		return
	}
	b.Extend(o.MinX, o.MinY, o.MinZ)
	b.Extend(o.MaxX, o.MaxY, o.MaxZ)
}

// Contains reports whether the sample lies inside the bounds.
func (b Bounds) Contains(x, y, z float32) bool {
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY &&
		z >= b.MinZ && z <= b.MaxZ
}
