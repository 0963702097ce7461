package quantization

// Levels is the magnitude of the signed quantization range: encoded
// words lie in [0, Levels] per axis.
const Levels = 32767

// Quantizer is a stateless scalar codec against a fixed Bounds. It is a
// cheap value; construct one per batch of Encode/Decode calls from the
// bounds in force at that moment.
type Quantizer struct {
	bounds Bounds
}

// NewQuantizer creates a Quantizer for the given bounds.
func NewQuantizer(b Bounds) Quantizer {
	return Quantizer{bounds: b}
}

// Bounds returns the bounds the codec maps against.
func (q Quantizer) Bounds() Bounds {
	return q.bounds
}

// Encode quantizes a coordinate triple into signed 16-bit words. Each
// axis is normalized into [0,1] against the bounds, then scaled to
// [0, Levels] and rounded to the nearest representable word. Samples
// outside the bounds are clamped; a degenerate axis (max == min)
// encodes to 0.
func (q Quantizer) Encode(x, y, z float32) (qx, qy, qz int16) {
	qx = encodeAxis(x, q.bounds.MinX, q.bounds.MaxX)
	qy = encodeAxis(y, q.bounds.MinY, q.bounds.MaxY)
	qz = encodeAxis(z, q.bounds.MinZ, q.bounds.MaxZ)
	return qx, qy, qz
}

// Decode reconstructs a coordinate triple from quantized words, using
// the codec's bounds. A degenerate axis decodes to its min.
func (q Quantizer) Decode(qx, qy, qz int16) (x, y, z float32) {
	x = decodeAxis(qx, q.bounds.MinX, q.bounds.MaxX)
	y = decodeAxis(qy, q.bounds.MinY, q.bounds.MaxY)
	z = decodeAxis(qz, q.bounds.MinZ, q.bounds.MaxZ)
	return x, y, z
}

// Step returns the per-axis resolution (max-min)/Levels. A round trip
// through Encode/Decode moves a value by at most half a step on each
// axis. Degenerate axes report 0.
func (q Quantizer) Step() (sx, sy, sz float32) {
	return stepAxis(q.bounds.MinX, q.bounds.MaxX),
		stepAxis(q.bounds.MinY, q.bounds.MaxY),
		stepAxis(q.bounds.MinZ, q.bounds.MaxZ)
}

func encodeAxis(v, min, max float32) int16 {
	if max <= min {
		return 0
	}

	n := (v - min) / (max - min)
	if n < 0 {
		n = 0
	} else if n > 1 {
		n = 1
	}

	return int16(n*Levels + 0.5)
}

func decodeAxis(q int16, min, max float32) float32 {
	if max <= min {
		return min
	}
	return float32(q)/Levels*(max-min) + min
}

func stepAxis(min, max float32) float32 {
	if max <= min {
		return 0
	}
	return (max - min) / Levels
}
