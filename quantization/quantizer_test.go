package quantization

import (
	"math"
	"testing"
)

func TestBounds_Extend(t *testing.T) {
	b := NewBounds()
	if !b.IsEmpty() {
		t.Fatal("new bounds should be empty")
	}

	b.Extend(1.0, -2.0, 3.0)
	if b.IsEmpty() {
		t.Fatal("bounds should not be empty after extend")
	}
	if b.MinX != 1.0 || b.MaxX != 1.0 {
		t.Errorf("first sample must be adopted on x: got [%f, %f]", b.MinX, b.MaxX)
	}

	b.Extend(-5.0, 4.0, 3.0)
	if b.MinX != -5.0 || b.MaxX != 1.0 {
		t.Errorf("expected x bounds [-5, 1], got [%f, %f]", b.MinX, b.MaxX)
	}
	if b.MinY != -2.0 || b.MaxY != 4.0 {
		t.Errorf("expected y bounds [-2, 4], got [%f, %f]", b.MinY, b.MaxY)
	}
	if b.MinZ != 3.0 || b.MaxZ != 3.0 {
		t.Errorf("expected degenerate z bounds [3, 3], got [%f, %f]", b.MinZ, b.MaxZ)
	}
}

func TestBounds_ExtendBounds(t *testing.T) {
	a := NewBounds()
	a.Extend(0, 0, 0)

	b := NewBounds()
	b.Extend(-1, 10, 5)

	a.ExtendBounds(b)
	if a.MinX != -1 || a.MaxY != 10 || a.MaxZ != 5 {
		t.Errorf("merged bounds wrong: %+v", a)
	}

	// Merging empty bounds is a no-op.
	before := a
	a.ExtendBounds(NewBounds())
	if a != before {
		t.Errorf("merging empty bounds changed %+v to %+v", before, a)
	}
}

func TestBounds_Contains(t *testing.T) {
	b := NewBounds()
	b.Extend(0, 0, 0)
	b.Extend(10, 20, 30)

	if !b.Contains(5, 10, 15) {
		t.Error("interior sample should be contained")
	}
	if !b.Contains(0, 0, 0) || !b.Contains(10, 20, 30) {
		t.Error("boundary samples should be contained")
	}
	if b.Contains(-1, 10, 15) {
		t.Error("outside sample should not be contained")
	}
}

func TestQuantizer_RoundTrip(t *testing.T) {
	b := NewBounds()
	b.Extend(-100, 0, 50)
	b.Extend(250, 80, 90)

	q := NewQuantizer(b)
	sx, sy, sz := q.Step()

	samples := [][3]float32{
		{-100, 0, 50},
		{250, 80, 90},
		{0, 40, 70},
		{-99.999, 0.001, 50.001},
		{123.456, 78.9, 86.42},
	}

	for _, s := range samples {
		qx, qy, qz := q.Encode(s[0], s[1], s[2])
		x, y, z := q.Decode(qx, qy, qz)

		// Half a step per axis, with a little float32 slack.
		if d := math.Abs(float64(x - s[0])); d > float64(sx)*0.55 {
			t.Errorf("x round trip of %f off by %f (step %f)", s[0], d, sx)
		}
		if d := math.Abs(float64(y - s[1])); d > float64(sy)*0.55 {
			t.Errorf("y round trip of %f off by %f (step %f)", s[1], d, sy)
		}
		if d := math.Abs(float64(z - s[2])); d > float64(sz)*0.55 {
			t.Errorf("z round trip of %f off by %f (step %f)", s[2], d, sz)
		}
	}
}

func TestQuantizer_Extremes(t *testing.T) {
	b := NewBounds()
	b.Extend(-1, -1, -1)
	b.Extend(1, 1, 1)

	q := NewQuantizer(b)

	qx, qy, qz := q.Encode(-1, -1, -1)
	if qx != 0 || qy != 0 || qz != 0 {
		t.Errorf("min corner should encode to zero words, got (%d, %d, %d)", qx, qy, qz)
	}
	x, y, z := q.Decode(qx, qy, qz)
	if x != -1 || y != -1 || z != -1 {
		t.Errorf("min corner should decode exactly, got (%f, %f, %f)", x, y, z)
	}

	qx, qy, qz = q.Encode(1, 1, 1)
	if qx != Levels || qy != Levels || qz != Levels {
		t.Errorf("max corner should encode to Levels, got (%d, %d, %d)", qx, qy, qz)
	}
	x, y, z = q.Decode(qx, qy, qz)
	if x != 1 || y != 1 || z != 1 {
		t.Errorf("max corner should decode exactly, got (%f, %f, %f)", x, y, z)
	}
}

func TestQuantizer_Clamp(t *testing.T) {
	b := NewBounds()
	b.Extend(0, 0, 0)
	b.Extend(10, 10, 10)

	q := NewQuantizer(b)

	qx, _, _ := q.Encode(-5, 5, 5)
	if qx != 0 {
		t.Errorf("below-min sample should clamp to 0, got %d", qx)
	}
	qx, _, _ = q.Encode(15, 5, 5)
	if qx != Levels {
		t.Errorf("above-max sample should clamp to Levels, got %d", qx)
	}
}

func TestQuantizer_DegenerateAxis(t *testing.T) {
	b := NewBounds()
	b.Extend(5, 1, 7)
	b.Extend(5, 2, 7)

	q := NewQuantizer(b)

	qx, qy, qz := q.Encode(5, 1.5, 7)
	if qx != 0 || qz != 0 {
		t.Errorf("degenerate axes should encode to 0, got x=%d z=%d", qx, qz)
	}

	x, _, z := q.Decode(qx, qy, qz)
	if x != 5 || z != 7 {
		t.Errorf("degenerate axes should decode to min, got x=%f z=%f", x, z)
	}

	sx, sy, sz := q.Step()
	if sx != 0 || sz != 0 {
		t.Errorf("degenerate axes should report step 0, got x=%f z=%f", sx, sz)
	}
	if sy <= 0 {
		t.Errorf("live axis should report positive step, got %f", sy)
	}
}
