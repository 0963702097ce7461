package point

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceTo(t *testing.T) {
	t.Run("Pythagorean", func(t *testing.T) {
		a := New(1, 0, 0, 0)
		b := New(2, 3, 4, 0)
		assert.InDelta(t, 5.0, a.DistanceTo(b), 1e-5)

		c := New(3, 1, 2, 2)
		assert.InDelta(t, 3.0, a.DistanceTo(c), 1e-5)
	})

	t.Run("Symmetry", func(t *testing.T) {
		a := New(1, 1.5, -2.25, 10)
		b := New(2, -7, 3.125, 0.5)
		assert.Equal(t, a.DistanceTo(b), b.DistanceTo(a))
	})

	t.Run("Coincident", func(t *testing.T) {
		a := New(1, 4, 5, 6)
		b := New(2, 4, 5, 6)
		assert.Equal(t, float32(0), a.DistanceTo(b))
		assert.Equal(t, float32(0), a.DistanceTo(a))
	})
}

func TestSlopeTo(t *testing.T) {
	t.Run("FortyFiveDegrees", func(t *testing.T) {
		a := New(1, 0, 0, 0)
		b := New(2, 10, 0, 10)
		assert.InDelta(t, 100.0, a.SlopeTo(b), 1e-4)
	})

	t.Run("Downhill", func(t *testing.T) {
		a := New(1, 0, 0, 10)
		b := New(2, 0, 20, 5)
		assert.InDelta(t, -25.0, a.SlopeTo(b), 1e-4)
	})

	t.Run("VerticalUp", func(t *testing.T) {
		a := New(1, 0, 0, 0)
		b := New(2, 0, 0, 5)
		s := a.SlopeTo(b)
		require.True(t, math32.IsInf(s, 1), "expected +Inf, got %v", s)
	})

	t.Run("VerticalDown", func(t *testing.T) {
		a := New(1, 0, 0, 0)
		b := New(2, 0, 0, -5)
		s := a.SlopeTo(b)
		require.True(t, math32.IsInf(s, -1), "expected -Inf, got %v", s)
	})

	t.Run("Coincident", func(t *testing.T) {
		a := New(1, 2, 3, 4)
		b := New(2, 2, 3, 4)
		assert.Equal(t, float32(0), a.SlopeTo(b))
	})

	t.Run("Flat", func(t *testing.T) {
		a := New(1, 0, 0, 7)
		b := New(2, 100, -30, 7)
		assert.Equal(t, float32(0), a.SlopeTo(b))
	})
}

func TestBearingTo(t *testing.T) {
	origin := New(1, 0, 0, 0)

	t.Run("CardinalDirections", func(t *testing.T) {
		tests := []struct {
			name     string
			to       Point
			expected float32
		}{
			{"North", New(2, 0, 10, 0), 0},
			{"East", New(2, 10, 0, 0), 90},
			{"South", New(2, 0, -10, 0), 180},
			{"West", New(2, -10, 0, 0), 270},
			{"NorthEast", New(2, 10, 10, 0), 45},
			{"SouthWest", New(2, -10, -10, 0), 225},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.InDelta(t, tt.expected, origin.BearingTo(tt.to), 1e-3)
			})
		}
	})

	t.Run("IgnoresElevation", func(t *testing.T) {
		assert.InDelta(t, 90.0, origin.BearingTo(New(2, 10, 0, 500)), 1e-3)
	})

	t.Run("RangeInvariant", func(t *testing.T) {
		// Sweep directions around the compass; every bearing must land
		// in [0, 360).
		for i := 0; i < 720; i++ {
			rad := float64(i) * 0.5 * math.Pi / 180
			to := New(2, float32(math.Cos(rad)), float32(math.Sin(rad)), 0)
			b := origin.BearingTo(to)
			require.GreaterOrEqual(t, b, float32(0), "angle %d", i)
			require.Less(t, b, float32(360), "angle %d", i)
		}
	})
}
